package oshibot

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/prilive-com/oshibot/oshi"
	"github.com/prilive-com/oshibot/sender"
)

// Shared types, re-exported so simple programs need a single import.
type (
	Response        = oshi.Response
	Group           = oshi.Group
	Error           = oshi.Error
	RegisterRequest = sender.RegisterRequest
	BroadcastResult = sender.BroadcastResult
)

// Bot is an OSHI bot bound to one token.
type Bot struct {
	sender *sender.Client
	logger *slog.Logger
}

type botConfig struct {
	// Sender settings
	senderConfig sender.Config

	httpClient *http.Client
	sleeper    sender.Sleeper

	// Logger
	logger *slog.Logger
}

// Option configures the Bot.
type Option func(*botConfig)

// WithBaseURL points the bot at another OSHI server.
func WithBaseURL(url string) Option {
	return func(c *botConfig) {
		c.senderConfig.BaseURL = url
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *botConfig) {
		c.senderConfig.Timeout = d
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *botConfig) {
		c.logger = logger
	}
}

// WithAutoRetry enables or disables the single retry on HTTP 429.
func WithAutoRetry(enabled bool) Option {
	return func(c *botConfig) {
		c.senderConfig.AutoRetry = enabled
	}
}

// WithRetryDelay sets the pause before the 429 retry.
func WithRetryDelay(d time.Duration) Option {
	return func(c *botConfig) {
		c.senderConfig.RetryDelay = d
	}
}

// WithRateLimit paces requests client-side.
func WithRateLimit(perMinute, burst int) Option {
	return func(c *botConfig) {
		c.senderConfig.RequestsPerMinute = perMinute
		c.senderConfig.RateLimitBurst = burst
	}
}

// WithCircuitBreaker enables the circuit breaker with default settings.
func WithCircuitBreaker() Option {
	return func(c *botConfig) {
		c.senderConfig.BreakerEnabled = true
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *botConfig) {
		c.httpClient = client
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *botConfig) {
		c.senderConfig.UserAgent = ua
	}
}

// WithSleeper replaces the clock used for the 429 pause.
func WithSleeper(s sender.Sleeper) Option {
	return func(c *botConfig) {
		c.sleeper = s
	}
}

// New creates a Bot for token.
func New(token string, opts ...Option) (*Bot, error) {
	if token == "" {
		return nil, oshi.ErrInvalidToken
	}

	cfg := botConfig{
		senderConfig: sender.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	cfg.senderConfig.Token = oshi.SecretToken(token)

	// Use configured logger or default
	logger := cfg.logger
	if logger == nil {
		logger = slog.Default()
	}

	senderOpts := []sender.Option{sender.WithLogger(logger)}
	if cfg.httpClient != nil {
		senderOpts = append(senderOpts, sender.WithHTTPClient(cfg.httpClient))
	}
	if cfg.sleeper != nil {
		senderOpts = append(senderOpts, sender.WithSleeper(cfg.sleeper))
	}

	client, err := sender.NewFromConfig(cfg.senderConfig, senderOpts...)
	if err != nil {
		return nil, err
	}

	return &Bot{sender: client, logger: logger}, nil
}

// Send posts content to a group.
func (b *Bot) Send(ctx context.Context, groupID, content string) (Response, error) {
	return b.sender.Send(ctx, groupID, content)
}

// SendResult posts content to a group and decodes the typed result.
func (b *Bot) SendResult(ctx context.Context, groupID, content string) (*oshi.SendResult, error) {
	resp, err := b.sender.Send(ctx, groupID, content)
	if err != nil {
		return nil, err
	}
	var out oshi.SendResult
	if err := resp.Decode(&out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Info returns the bot's metadata.
func (b *Bot) Info(ctx context.Context) (Response, error) {
	return b.sender.Info(ctx)
}

// BotInfo returns the bot's metadata as a typed view.
func (b *Bot) BotInfo(ctx context.Context) (*oshi.BotInfo, error) {
	resp, err := b.sender.Info(ctx)
	if err != nil {
		return nil, err
	}
	var out oshi.BotInfo
	if err := resp.Decode(&out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Register registers the bot.
func (b *Bot) Register(ctx context.Context, req RegisterRequest) (Response, error) {
	return b.sender.Register(ctx, req)
}

// UpdateGroups replaces the bot's group assignments.
func (b *Bot) UpdateGroups(ctx context.Context, groups []Group) (Response, error) {
	return b.sender.UpdateGroups(ctx, groups)
}

// Unregister removes the bot.
func (b *Bot) Unregister(ctx context.Context) (Response, error) {
	return b.sender.Unregister(ctx)
}

// ListBots lists every bot on the server. No token is sent.
func (b *Bot) ListBots(ctx context.Context) (Response, error) {
	return b.sender.ListBots(ctx)
}

// SendToAllGroups posts content to every group the bot belongs to.
func (b *Bot) SendToAllGroups(ctx context.Context, content string) ([]BroadcastResult, error) {
	return b.sender.SendToAllGroups(ctx, content)
}

// Groups returns the bot's groups.
func (b *Bot) Groups(ctx context.Context) ([]Response, error) {
	return b.sender.Groups(ctx)
}

// Stats returns the bot's message statistics.
func (b *Bot) Stats(ctx context.Context) (Response, error) {
	return b.sender.Stats(ctx)
}

// Sender returns the underlying sender client for advanced usage.
func (b *Bot) Sender() *sender.Client {
	return b.sender
}

// Close releases idle connections. It is safe to call more than once.
func (b *Bot) Close() error {
	return b.sender.Close()
}

func (b *Bot) String() string {
	return b.sender.String()
}
