package sender

import (
	"strings"
	"time"

	"github.com/prilive-com/oshibot/internal/validate"
	"github.com/prilive-com/oshibot/oshi"
)

// DefaultBaseURL is the public OSHI Messenger endpoint.
const DefaultBaseURL = "https://oshi-messenger.com"

// Config holds sender configuration. A Client copies it at construction and
// never changes it afterwards.
type Config struct {
	// Bot token
	Token oshi.SecretToken

	// API settings
	BaseURL         string        `validate:"required,http_url"`
	Timeout         time.Duration `validate:"gt=0"`
	UserAgent       string        `validate:"required"`
	MaxResponseSize int64         `validate:"gt=0"`
	KeepAlive       time.Duration `validate:"gte=0"`
	MaxIdleConns    int           `validate:"gte=0"`
	IdleTimeout     time.Duration `validate:"gte=0"`

	// Rate limit handling: one retry after RetryDelay on HTTP 429.
	AutoRetry  bool
	RetryDelay time.Duration `validate:"gte=0"`

	// Client-side pacing. 0 disables the limiter.
	RequestsPerMinute int `validate:"gte=0"`
	RateLimitBurst    int `validate:"gte=0"`

	// Circuit breaker, disabled unless BreakerEnabled is set.
	BreakerEnabled      bool
	BreakerMaxRequests  uint32
	BreakerInterval     time.Duration `validate:"gte=0"`
	BreakerTimeout      time.Duration `validate:"gte=0"`
	BreakerThreshold    uint32
	BreakerFailureRatio float64 `validate:"gte=0,lte=1"`
	BreakerMinRequests  uint32
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		BaseURL:             DefaultBaseURL,
		Timeout:             10 * time.Second,
		UserAgent:           "OSHI-Bot-SDK/1.0 Go",
		MaxResponseSize:     10 << 20,
		KeepAlive:           30 * time.Second,
		MaxIdleConns:        100,
		IdleTimeout:         90 * time.Second,
		AutoRetry:           true,
		RetryDelay:          5 * time.Second,
		BreakerMaxRequests:  5,
		BreakerInterval:     60 * time.Second,
		BreakerTimeout:      30 * time.Second,
		BreakerThreshold:    5,
		BreakerFailureRatio: 0.5,
		BreakerMinRequests:  10,
	}
}

// Validate checks the configuration. An empty token yields ErrInvalidToken;
// any other problem yields an *oshi.ValidationError.
func (c Config) Validate() error {
	if c.Token.IsEmpty() {
		return ErrInvalidToken
	}
	return validate.Struct(c)
}

func (c *Config) normalize() {
	c.BaseURL = strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
}
