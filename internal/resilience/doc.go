// Package resilience provides the single-retry policy, an optional circuit
// breaker and an optional client-side rate limiter.
// Uses sony/gobreaker for circuit breaking and golang.org/x/time/rate for rate limiting.
package resilience
