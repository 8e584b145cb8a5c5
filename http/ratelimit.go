package http

import (
	"context"
	"net/url"
	"sync"

	"golang.org/x/time/rate"
)

// RateLimiter hands out per-host token buckets so bursts of API calls are
// spread out before they reach the quota-metered endpoint.
type RateLimiter struct {
	limiters    map[string]*rate.Limiter
	mu          sync.Mutex
	rps         float64
	burst       int
	customRates map[string]float64
}

// NewRateLimiter creates a limiter allowing rps requests per second per
// host. rps of 0 disables limiting.
func NewRateLimiter(rps float64, burst int) *RateLimiter {
	if burst < 1 {
		burst = 1
	}
	return &RateLimiter{
		limiters:    make(map[string]*rate.Limiter),
		rps:         rps,
		burst:       burst,
		customRates: make(map[string]float64),
	}
}

// Wait blocks until a request to urlStr is allowed or ctx is done.
func (rl *RateLimiter) Wait(ctx context.Context, urlStr string) error {
	if rl == nil {
		return nil
	}
	limiter := rl.getLimiter(extractHost(urlStr))
	if limiter == nil {
		return nil
	}
	return limiter.Wait(ctx)
}

// SetCustomRate overrides the rate for a single host.
func (rl *RateLimiter) SetCustomRate(host string, rps float64) {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	rl.customRates[host] = rps
	delete(rl.limiters, host)
}

// Stats returns the configured rate for every host seen so far.
func (rl *RateLimiter) Stats() map[string]float64 {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	stats := make(map[string]float64, len(rl.limiters))
	for host := range rl.limiters {
		stats[host] = rl.rateFor(host)
	}
	return stats
}

func (rl *RateLimiter) getLimiter(host string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	rps := rl.rateFor(host)
	if rps <= 0 {
		return nil
	}
	if l, ok := rl.limiters[host]; ok {
		return l
	}
	l := rate.NewLimiter(rate.Limit(rps), rl.burst)
	rl.limiters[host] = l
	return l
}

// rateFor must be called with mu held.
func (rl *RateLimiter) rateFor(host string) float64 {
	if rps, ok := rl.customRates[host]; ok {
		return rps
	}
	return rl.rps
}

func extractHost(urlStr string) string {
	u, err := url.Parse(urlStr)
	if err != nil || u.Host == "" {
		return "unknown"
	}
	return u.Hostname()
}
