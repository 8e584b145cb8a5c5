// Package http builds the outbound HTTP client used for YouTube Data API
// calls: pooled connections, a fixed user agent and per-host rate limiting.
package http

import (
	"net/http"
	"time"
)

// Config holds HTTP client configuration.
type Config struct {
	// Timeout for individual HTTP requests
	Timeout time.Duration

	// RequestRate is the allowed requests per second per host; 0 disables limiting.
	RequestRate float64

	// Burst is the token bucket size.
	Burst int

	// User agent for HTTP requests
	UserAgent string

	// Connection pool configuration
	Transport TransportConfig
}

// TransportConfig configures the HTTP transport (connection pooling).
type TransportConfig struct {
	MaxIdleConns        int
	MaxIdleConnsPerHost int
	IdleConnTimeout     time.Duration
	ForceAttemptHTTP2   bool
}

// DefaultConfig returns defaults suited to the Data API's quota model.
func DefaultConfig() *Config {
	return &Config{
		Timeout:     30 * time.Second,
		RequestRate: 5,
		Burst:       1,
		UserAgent:   "ytcombine/1.0",
		Transport:   DefaultTransportConfig(),
	}
}

// DefaultTransportConfig returns sensible defaults for HTTP transport configuration.
func DefaultTransportConfig() TransportConfig {
	return TransportConfig{
		MaxIdleConns:        10,
		MaxIdleConnsPerHost: 4,
		IdleConnTimeout:     90 * time.Second,
		ForceAttemptHTTP2:   true,
	}
}

// RateLimitedTransport waits on a RateLimiter before delegating each request.
type RateLimitedTransport struct {
	Base      http.RoundTripper
	Limiter   *RateLimiter
	UserAgent string
}

// RoundTrip implements http.RoundTripper.
func (t *RateLimitedTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if err := t.Limiter.Wait(req.Context(), req.URL.String()); err != nil {
		return nil, err
	}
	if t.UserAgent != "" && req.Header.Get("User-Agent") == "" {
		// RoundTrippers must not modify the caller's request.
		req = req.Clone(req.Context())
		req.Header.Set("User-Agent", t.UserAgent)
	}
	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}
	return base.RoundTrip(req)
}

// New creates an *http.Client with the given configuration. The client is
// meant to be handed to oauth2 as its base transport.
func New(cfg *Config) *http.Client {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	transport := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		MaxIdleConns:        cfg.Transport.MaxIdleConns,
		MaxIdleConnsPerHost: cfg.Transport.MaxIdleConnsPerHost,
		IdleConnTimeout:     cfg.Transport.IdleConnTimeout,
		ForceAttemptHTTP2:   cfg.Transport.ForceAttemptHTTP2,
	}

	return &http.Client{
		Timeout: cfg.Timeout,
		Transport: &RateLimitedTransport{
			Base:      transport,
			Limiter:   NewRateLimiter(cfg.RequestRate, cfg.Burst),
			UserAgent: cfg.UserAgent,
		},
	}
}
