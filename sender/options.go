package sender

import (
	"log/slog"
	"net/http"
	"time"
)

// Option configures the Client.
type Option func(*Client)

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithHTTPClient sets a custom HTTP client.
// WithTimeout then only bounds the error message; the client's own timeout applies.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.httpClient = client
	}
}

// WithBaseURL sets the API base URL (useful for testing and self-hosted servers).
func WithBaseURL(url string) Option {
	return func(c *Client) {
		c.config.BaseURL = url
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.config.Timeout = d
	}
}

// WithAutoRetry enables or disables the single retry on HTTP 429.
func WithAutoRetry(enabled bool) Option {
	return func(c *Client) {
		c.config.AutoRetry = enabled
	}
}

// WithRetryDelay sets the pause before the 429 retry.
func WithRetryDelay(d time.Duration) Option {
	return func(c *Client) {
		c.config.RetryDelay = d
	}
}

// WithSleeper sets a custom sleeper for retry timing (useful for testing).
func WithSleeper(s Sleeper) Option {
	return func(c *Client) {
		c.sleeper = s
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.config.UserAgent = ua
	}
}

// WithMaxResponseSize caps how many response bytes are read.
func WithMaxResponseSize(n int64) Option {
	return func(c *Client) {
		c.config.MaxResponseSize = n
	}
}

// WithRateLimit paces requests client-side to perMinute requests per minute.
// The server allows 60 messages per minute per bot.
func WithRateLimit(perMinute, burst int) Option {
	return func(c *Client) {
		c.config.RequestsPerMinute = perMinute
		c.config.RateLimitBurst = burst
	}
}

// WithCircuitBreaker enables the circuit breaker with the given settings.
func WithCircuitBreaker(settings CircuitBreakerSettings) Option {
	return func(c *Client) {
		c.config.BreakerEnabled = true
		c.config.BreakerMaxRequests = settings.MaxRequests
		c.config.BreakerInterval = settings.Interval
		c.config.BreakerTimeout = settings.Timeout
		c.config.BreakerThreshold = settings.Threshold
		c.config.BreakerFailureRatio = settings.FailureRatio
		c.config.BreakerMinRequests = settings.MinRequests
	}
}
