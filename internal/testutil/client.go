package testutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/prilive-com/oshibot/sender"
)

// CircuitBreakerAggressiveTrip returns settings for testing breaker behavior.
// Trips after just 2 consecutive failures.
func CircuitBreakerAggressiveTrip() sender.CircuitBreakerSettings {
	return sender.CircuitBreakerSettings{
		MaxRequests: 1,
		Interval:    0,
		Timeout:     2 * time.Second, // Long enough to stay open during test assertions
		Threshold:   2,
	}
}

// NewTestClient creates a standard test client against baseURL.
// Retry stays enabled but never really waits: a fresh FakeSleeper is installed
// unless opts supply another sleeper.
func NewTestClient(t *testing.T, baseURL string, opts ...sender.Option) *sender.Client {
	t.Helper()

	defaultOpts := []sender.Option{
		sender.WithBaseURL(baseURL),
		sender.WithSleeper(&FakeSleeper{}),
	}

	client, err := sender.New(TestToken, append(defaultOpts, opts...)...)
	require.NoError(t, err)

	t.Cleanup(func() { client.Close() })
	return client
}

// NewRetryTestClient creates a client whose 429 pauses are recorded by sleeper.
func NewRetryTestClient(t *testing.T, baseURL string, sleeper *FakeSleeper, opts ...sender.Option) *sender.Client {
	t.Helper()
	return NewTestClient(t, baseURL, append([]sender.Option{sender.WithSleeper(sleeper)}, opts...)...)
}

// NewBreakerTestClient creates a client for testing circuit breaker behavior.
// Circuit breaker trips aggressively for fast testing.
func NewBreakerTestClient(t *testing.T, baseURL string, opts ...sender.Option) *sender.Client {
	t.Helper()
	return NewTestClient(t, baseURL, append([]sender.Option{
		sender.WithCircuitBreaker(CircuitBreakerAggressiveTrip()),
	}, opts...)...)
}
