package sender

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"github.com/sony/gobreaker/v2"

	"github.com/prilive-com/oshibot/internal/httpclient"
	"github.com/prilive-com/oshibot/internal/resilience"
	"github.com/prilive-com/oshibot/internal/scrub"
	"github.com/prilive-com/oshibot/oshi"
)

// Sleeper abstracts time-based waiting for testing.
type Sleeper = resilience.Sleeper

// CircuitBreakerSettings configures the optional circuit breaker.
type CircuitBreakerSettings struct {
	// MaxRequests is the maximum number of requests allowed in half-open state.
	MaxRequests uint32

	// Interval is the cyclic period of the closed state.
	// If 0, internal counts never reset in closed state.
	Interval time.Duration

	// Timeout is the duration of the open state before transitioning to half-open.
	Timeout time.Duration

	// Threshold trips the breaker after this many consecutive failures. 0 disables it.
	Threshold uint32

	// FailureRatio trips the breaker once MinRequests have been counted. 0 MinRequests disables it.
	FailureRatio float64
	MinRequests  uint32
}

// DefaultCircuitBreakerSettings returns production-ready defaults.
func DefaultCircuitBreakerSettings() CircuitBreakerSettings {
	cfg := DefaultConfig()
	return CircuitBreakerSettings{
		MaxRequests:  cfg.BreakerMaxRequests,
		Interval:     cfg.BreakerInterval,
		Timeout:      cfg.BreakerTimeout,
		Threshold:    cfg.BreakerThreshold,
		FailureRatio: cfg.BreakerFailureRatio,
		MinRequests:  cfg.BreakerMinRequests,
	}
}

// Client talks to the OSHI bot API on behalf of one bot token.
// It holds no per-bot state between calls and is safe for concurrent use.
type Client struct {
	config     Config
	httpClient *http.Client
	rest       *resty.Client
	logger     *slog.Logger
	sleeper    Sleeper
	limiter    *resilience.Limiter
	breaker    *gobreaker.CircuitBreaker[oshi.Response]
}

// call is one logical operation: built once, dispatched once or twice.
type call struct {
	method string
	path   string
	addr   string
	id     string
	body   []byte
	query  map[string]string
}

// attempt is the raw outcome of one dispatch.
type attempt struct {
	status int
	body   []byte
}

// New creates a new Client with the given token and options.
func New(token string, opts ...Option) (*Client, error) {
	cfg := DefaultConfig()
	cfg.Token = oshi.SecretToken(token)
	return NewFromConfig(cfg, opts...)
}

// NewFromConfig creates a Client from a Config.
func NewFromConfig(cfg Config, opts ...Option) (*Client, error) {
	c := &Client{config: cfg}

	for _, opt := range opts {
		opt(c)
	}

	c.config.normalize()
	if err := c.config.Validate(); err != nil {
		return nil, err
	}

	if c.logger == nil {
		c.logger = slog.Default()
	}

	if c.httpClient == nil {
		hc := httpclient.DefaultConfig()
		hc.RequestTimeout = c.config.Timeout
		hc.IdleTimeout = c.config.IdleTimeout
		hc.KeepAlive = c.config.KeepAlive
		hc.MaxIdleConns = c.config.MaxIdleConns
		hc.MaxIdleConnsPerHost = c.config.MaxIdleConns
		c.httpClient = httpclient.New(hc)
	}

	if c.sleeper == nil {
		c.sleeper = resilience.RealSleeper{}
	}

	c.limiter = resilience.NewLimiter(c.config.RequestsPerMinute, c.config.RateLimitBurst)

	if c.config.BreakerEnabled {
		c.breaker = resilience.NewBreaker[oshi.Response](resilience.BreakerConfig{
			Name:         "oshibot-sender",
			MaxRequests:  c.config.BreakerMaxRequests,
			Interval:     c.config.BreakerInterval,
			Timeout:      c.config.BreakerTimeout,
			Threshold:    c.config.BreakerThreshold,
			FailureRatio: c.config.BreakerFailureRatio,
			MinRequests:  c.config.BreakerMinRequests,
			IsSuccessful: isBreakerSuccess,
			OnStateChange: func(name, from, to string) {
				c.logger.Info("circuit breaker state changed",
					"name", name,
					"from", from,
					"to", to,
				)
			},
		})
	}

	c.rest = resty.NewWithClient(c.httpClient).
		SetBaseURL(c.config.BaseURL).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", c.config.UserAgent).
		SetRetryCount(0).
		SetDoNotParseResponse(true).
		SetLogger(restyLogger{logger: c.logger})

	return c, nil
}

// Close releases idle connections held by the client.
// It is safe to call Close more than once and concurrently with in-flight
// requests, which complete normally.
func (c *Client) Close() error {
	httpclient.CloseIdle(c.httpClient)
	return nil
}

// Config returns a copy of the client's configuration.
func (c *Client) Config() Config {
	return c.config
}

// String renders the client without exposing its token.
func (c *Client) String() string {
	return fmt.Sprintf("oshibot.Client(token='%s', base_url='%s')", c.config.Token.Prefix(), c.config.BaseURL)
}

// GoString matches String so %#v does not reveal more than %v.
func (c *Client) GoString() string { return c.String() }

// execute runs one logical operation: build once, optional pacing, dispatch,
// at most one retry on HTTP 429, then classification.
func (c *Client) execute(ctx context.Context, method, path string, payload any, query map[string]string) (oshi.Response, error) {
	cl, err := c.newCall(method, path, payload, query)
	if err != nil {
		return nil, err
	}

	if c.breaker == nil {
		return c.run(ctx, cl)
	}

	resp, err := c.breaker.Execute(func() (oshi.Response, error) {
		return c.run(ctx, cl)
	})
	if resilience.Rejected(err) {
		return nil, cl.annotate(oshi.NewTransportError(cl.addr,
			"Circuit breaker open: "+cl.addr,
			fmt.Errorf("%w: %w", ErrCircuitOpen, err)))
	}
	return resp, err
}

func (c *Client) newCall(method, path string, payload any, query map[string]string) (*call, error) {
	cl := &call{
		method: method,
		path:   path,
		addr:   scrub.Addr(c.config.BaseURL + path),
		id:     uuid.NewString(),
		query:  query,
	}
	if payload != nil {
		body, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("oshibot: marshal %s payload: %w", path, err)
		}
		cl.body = body
	}
	return cl, nil
}

func (c *Client) run(ctx context.Context, cl *call) (oshi.Response, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, cl.annotate(oshi.NewTransportError(cl.addr,
			"Request not sent, rate limiter wait aborted: "+cl.addr, err))
	}

	retry := resilience.RetryConfig{Enabled: c.config.AutoRetry, Delay: c.config.RetryDelay}
	var last int
	res, err := resilience.RetryOnce(ctx, retry, c.sleeper,
		func(n int) (*attempt, error) {
			last = n
			return c.dispatch(ctx, cl, n)
		},
		func(a *attempt) bool {
			return a.status == http.StatusTooManyRequests
		},
		func(wait time.Duration) {
			c.logger.Warn("rate limited, retrying once",
				"method", cl.method,
				"path", cl.path,
				"request_id", cl.id,
				"delay", wait,
			)
		},
	)
	if err != nil {
		var oe *oshi.Error
		if errors.As(err, &oe) {
			// The 429 that triggered the retry stands when the retry never got a response.
			if last == 2 && oe.Kind == oshi.KindTransport {
				return nil, cl.annotate(oshi.NewRateLimitError(oe))
			}
			return nil, err
		}
		// The pause before the retry was interrupted.
		return nil, cl.annotate(oshi.NewRateLimitError(err))
	}

	if res.status == http.StatusTooManyRequests {
		return nil, cl.annotate(oshi.NewRateLimitError(nil))
	}

	data, cerr := oshi.Classify(res.status, res.body)
	if cerr != nil {
		return nil, cl.annotate(cerr)
	}
	return data, nil
}

// dispatch sends the prepared request once. The returned error is always an
// *oshi.Error of KindTransport or KindProtocol.
func (c *Client) dispatch(ctx context.Context, cl *call, n int) (*attempt, error) {
	req := c.rest.R().
		SetContext(ctx).
		SetHeader("X-Request-ID", cl.id)
	if cl.body != nil {
		req.SetBody(cl.body)
	}
	if len(cl.query) > 0 {
		req.SetQueryParams(cl.query)
	}

	start := time.Now()
	resp, err := req.Execute(cl.method, cl.path)
	if err != nil {
		c.logger.Debug("request failed",
			"method", cl.method,
			"path", cl.path,
			"request_id", cl.id,
			"attempt", n,
			"error", scrub.TokenFromError(err, c.config.Token),
		)
		return nil, cl.annotate(c.transportError(cl, err))
	}
	raw := resp.RawBody()
	defer raw.Close()

	body, err := io.ReadAll(io.LimitReader(raw, c.config.MaxResponseSize+1))
	if err != nil {
		return nil, cl.annotate(c.transportError(cl, err))
	}
	if int64(len(body)) > c.config.MaxResponseSize {
		return nil, cl.annotate(oshi.NewProtocolError(resp.StatusCode(), ErrResponseTooLarge))
	}

	c.logger.Debug("request completed",
		"method", cl.method,
		"path", cl.path,
		"request_id", cl.id,
		"attempt", n,
		"status", resp.StatusCode(),
		"duration", time.Since(start),
	)

	return &attempt{status: resp.StatusCode(), body: body}, nil
}

// transportError builds a KindTransport error whose cause has the token scrubbed.
func (c *Client) transportError(cl *call, err error) *oshi.Error {
	cause := scrub.TokenFromError(err, c.config.Token)

	var msg string
	switch {
	case errors.Is(err, context.Canceled):
		msg = "Request cancelled: " + cl.addr
	case isTimeout(err):
		msg = fmt.Sprintf("Request timed out after %s", c.config.Timeout)
	default:
		msg = "Connection failed: " + cl.addr
	}
	return oshi.NewTransportError(cl.addr, msg, cause)
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

func (cl *call) annotate(e *oshi.Error) *oshi.Error {
	e.Method = cl.method
	e.Path = cl.path
	if e.Addr == "" {
		e.Addr = cl.addr
	}
	e.RequestID = cl.id
	return e
}

// isBreakerSuccess determines if an error should count as a circuit breaker failure.
// Only transport failures and 5xx responses trip the breaker; 4xx and 429
// are the caller's problem, and cancellation is not a service failure.
func isBreakerSuccess(err error) bool {
	if err == nil {
		return true
	}
	if errors.Is(err, context.Canceled) {
		return true
	}
	var e *oshi.Error
	if !errors.As(err, &e) {
		return false
	}
	if e.Kind == oshi.KindTransport {
		return false
	}
	return e.Status < 500
}
