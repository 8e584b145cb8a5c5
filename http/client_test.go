package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"google.golang.org/api/googleapi"
)

func TestNewClientNilConfig(t *testing.T) {
	client := New(nil)
	if client == nil {
		t.Fatal("expected client to be created with default config")
	}
	if client.Timeout != 30*time.Second {
		t.Errorf("Timeout = %v, want 30s", client.Timeout)
	}
	if _, ok := client.Transport.(*RateLimitedTransport); !ok {
		t.Errorf("Transport = %T, want *RateLimitedTransport", client.Transport)
	}
}

func TestClientSetsUserAgent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("User-Agent"); got != "ytcombine-test" {
			t.Errorf("User-Agent = %q, want ytcombine-test", got)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	cfg := DefaultConfig()
	cfg.UserAgent = "ytcombine-test"
	cfg.RequestRate = 0
	client := New(cfg)

	resp, err := client.Get(server.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected status 200, got %d", resp.StatusCode)
	}
}

func TestClientKeepsExplicitUserAgent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("User-Agent"); got != "custom" {
			t.Errorf("User-Agent = %q, want custom", got)
		}
	}))
	defer server.Close()

	client := New(DefaultConfig())
	req, _ := http.NewRequest(http.MethodGet, server.URL, nil)
	req.Header.Set("User-Agent", "custom")
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	resp.Body.Close()
}

func TestRateLimiterWait(t *testing.T) {
	rl := NewRateLimiter(10.0, 1) // 100ms per request
	ctx := context.Background()
	url := "https://youtube.googleapis.com/youtube/v3/playlists"

	if err := rl.Wait(ctx, url); err != nil {
		t.Fatalf("Wait failed: %v", err)
	}

	start := time.Now()
	if err := rl.Wait(ctx, url); err != nil {
		t.Fatalf("Wait failed: %v", err)
	}
	if elapsed := time.Since(start); elapsed < 50*time.Millisecond {
		t.Errorf("second request waited %v, want ~100ms", elapsed)
	}
}

func TestRateLimiterContextCanceled(t *testing.T) {
	rl := NewRateLimiter(0.5, 1)
	ctx, cancel := context.WithCancel(context.Background())
	url := "https://youtube.googleapis.com/youtube/v3/videos"

	if err := rl.Wait(ctx, url); err != nil {
		t.Fatalf("first Wait failed: %v", err)
	}
	cancel()
	if err := rl.Wait(ctx, url); err == nil {
		t.Error("Wait after cancel returned nil, want error")
	}
}

func TestRateLimiterDisabled(t *testing.T) {
	rl := NewRateLimiter(0, 1)
	for i := 0; i < 100; i++ {
		if err := rl.Wait(context.Background(), "https://example.com"); err != nil {
			t.Fatalf("Wait failed: %v", err)
		}
	}
	if len(rl.Stats()) != 0 {
		t.Errorf("Stats() = %v, want no limiters when disabled", rl.Stats())
	}
}

func TestRateLimiterCustomRate(t *testing.T) {
	rl := NewRateLimiter(1, 1)
	rl.SetCustomRate("youtube.googleapis.com", 20)

	rl.Wait(context.Background(), "https://youtube.googleapis.com:443/youtube/v3/videos")
	rl.Wait(context.Background(), "https://oauth2.googleapis.com/token")

	stats := rl.Stats()
	if stats["youtube.googleapis.com"] != 20 {
		t.Errorf("custom host rate = %v, want 20", stats["youtube.googleapis.com"])
	}
	if stats["oauth2.googleapis.com"] != 1 {
		t.Errorf("default host rate = %v, want 1", stats["oauth2.googleapis.com"])
	}
}

func TestIsTransient(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"canceled", context.Canceled, false},
		{"wrapped deadline", fmt.Errorf("list: %w", context.DeadlineExceeded), false},
		{"network", errors.New("connection reset by peer"), true},
		{"500", &googleapi.Error{Code: 500}, true},
		{"503", &googleapi.Error{Code: 503}, true},
		{"429", &googleapi.Error{Code: 429}, true},
		{"404", &googleapi.Error{Code: 404}, false},
		{"400", &googleapi.Error{Code: 400}, false},
		{"403 forbidden", &googleapi.Error{Code: 403, Errors: []googleapi.ErrorItem{{Reason: "forbidden"}}}, false},
		{"403 rate limit", &googleapi.Error{Code: 403, Errors: []googleapi.ErrorItem{{Reason: "rateLimitExceeded"}}}, true},
		{"wrapped 502", fmt.Errorf("page: %w", &googleapi.Error{Code: 502}), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsTransient(tt.err); got != tt.want {
				t.Errorf("IsTransient(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestStatusCode(t *testing.T) {
	if got := StatusCode(fmt.Errorf("x: %w", &googleapi.Error{Code: 404})); got != 404 {
		t.Errorf("StatusCode() = %d, want 404", got)
	}
	if got := StatusCode(errors.New("plain")); got != 0 {
		t.Errorf("StatusCode() = %d, want 0", got)
	}
}
