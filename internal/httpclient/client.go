// Package httpclient builds the tuned *http.Client shared by every request
// the SDK makes.
package httpclient

import (
	"crypto/tls"
	"net"
	"net/http"
	"time"
)

// Config sizes the transport. Zero ConnectTimeout and TLSTimeout inherit
// RequestTimeout.
type Config struct {
	RequestTimeout time.Duration
	ConnectTimeout time.Duration
	TLSTimeout     time.Duration
	IdleTimeout    time.Duration
	KeepAlive      time.Duration

	MaxIdleConns        int
	MaxIdleConnsPerHost int
	MaxConnsPerHost     int // 0 is unlimited
}

// DefaultConfig returns defaults sized for a single bot talking to one host.
func DefaultConfig() Config {
	return Config{
		RequestTimeout:      10 * time.Second,
		IdleTimeout:         90 * time.Second,
		KeepAlive:           30 * time.Second,
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		MaxConnsPerHost:     20,
	}
}

func (cfg Config) inherit() Config {
	if cfg.ConnectTimeout <= 0 {
		cfg.ConnectTimeout = cfg.RequestTimeout
	}
	if cfg.TLSTimeout <= 0 {
		cfg.TLSTimeout = cfg.RequestTimeout
	}
	return cfg
}

// New returns a client whose Timeout bounds each request end to end.
// TLS below 1.2 is refused and proxies follow the environment.
func New(cfg Config) *http.Client {
	cfg = cfg.inherit()
	return &http.Client{
		Transport: newTransport(cfg),
		Timeout:   cfg.RequestTimeout,
	}
}

func newTransport(cfg Config) *http.Transport {
	dialer := &net.Dialer{
		Timeout:   cfg.ConnectTimeout,
		KeepAlive: cfg.KeepAlive,
	}
	return &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		DialContext:           dialer.DialContext,
		TLSClientConfig:       &tls.Config{MinVersion: tls.VersionTLS12},
		TLSHandshakeTimeout:   cfg.TLSTimeout,
		ResponseHeaderTimeout: cfg.RequestTimeout,
		ExpectContinueTimeout: time.Second,
		IdleConnTimeout:       cfg.IdleTimeout,
		MaxIdleConns:          cfg.MaxIdleConns,
		MaxIdleConnsPerHost:   cfg.MaxIdleConnsPerHost,
		MaxConnsPerHost:       cfg.MaxConnsPerHost,
		ForceAttemptHTTP2:     true,
	}
}

// CloseIdle drops pooled idle connections. In-flight requests are not affected.
func CloseIdle(client *http.Client) {
	if client == nil {
		return
	}
	if t, ok := client.Transport.(interface{ CloseIdleConnections() }); ok {
		t.CloseIdleConnections()
	}
}
