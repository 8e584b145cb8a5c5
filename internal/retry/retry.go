// Package retry provides a bounded retry loop with pluggable backoff.
package retry

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"time"
)

// ErrAttemptsExhausted is matched by errors returned from Do after the last
// allowed attempt failed.
var ErrAttemptsExhausted = errors.New("retry: attempts exhausted")

// BackoffFunc returns how long to wait after the given failed attempt.
// Attempts are numbered from 1.
type BackoffFunc func(attempt int) time.Duration

// SleepFunc blocks for d or until ctx is done.
type SleepFunc func(ctx context.Context, d time.Duration) error

// Config holds retry configuration.
type Config struct {
	// MaxAttempts is the total number of attempts, including the first one.
	MaxAttempts int
	// Backoff computes the delay between attempts.
	Backoff BackoffFunc
	// Sleep waits between attempts. Nil means a timer honoring ctx.
	Sleep SleepFunc
	// OnRetry, if set, is called before each sleep.
	OnRetry func(attempt int, err error, wait time.Duration)
}

// DefaultConfig returns the publishing policy: five attempts with
// attempt^attempt second pauses (1s, 4s, 27s, 256s).
func DefaultConfig() Config {
	return Config{
		MaxAttempts: 5,
		Backoff:     SelfPower(time.Second),
	}
}

// SelfPower waits attempt^attempt units after each failure.
func SelfPower(unit time.Duration) BackoffFunc {
	return func(attempt int) time.Duration {
		if attempt < 1 {
			return 0
		}
		n := math.Pow(float64(attempt), float64(attempt))
		return time.Duration(n * float64(unit))
	}
}

// Exponential grows the wait by multiplier after every failure starting at
// initial, capped at max. jitterFraction (0.0-1.0) spreads the result.
func Exponential(initial, max time.Duration, multiplier, jitterFraction float64) BackoffFunc {
	return func(attempt int) time.Duration {
		if attempt < 1 {
			return 0
		}
		backoff := float64(initial) * math.Pow(multiplier, float64(attempt-1))
		if backoff > float64(max) {
			backoff = float64(max)
		}
		d := time.Duration(backoff)
		d += jitter(d, jitterFraction)
		if d > max {
			d = max
		}
		return d
	}
}

// ErrorClassifier determines if an error is retryable.
type ErrorClassifier func(error) bool

// Always treats every error as transient.
func Always(error) bool { return true }

// IsRetryable retries everything except context cancellation and deadlines.
func IsRetryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	return true
}

// Do executes fn until it succeeds, the classifier rejects an error, or
// cfg.MaxAttempts attempts have failed. Errors rejected by the classifier are
// returned unchanged; exhaustion yields a *RetryableError.
func Do(ctx context.Context, cfg Config, classifier ErrorClassifier, fn func(context.Context) error) error {
	if classifier == nil {
		classifier = IsRetryable
	}
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}
	sleep := cfg.Sleep
	if sleep == nil {
		sleep = timerSleep
	}

	var lastErr error
	for attempt := 1; ; attempt++ {
		err := fn(ctx)
		if err == nil {
			return nil
		}
		lastErr = err
		if !classifier(err) {
			return err
		}

		if attempt >= cfg.MaxAttempts {
			return &RetryableError{Err: lastErr, Attempts: attempt}
		}

		var wait time.Duration
		if cfg.Backoff != nil {
			wait = cfg.Backoff(attempt)
		}
		if cfg.OnRetry != nil {
			cfg.OnRetry(attempt, err, wait)
		}
		if err := sleep(ctx, wait); err != nil {
			return err
		}
	}
}

func timerSleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// jitter returns a random duration in range [-fraction*d, +fraction*d].
func jitter(d time.Duration, fraction float64) time.Duration {
	if fraction <= 0 {
		return 0
	}
	jitterRange := float64(d) * fraction
	return time.Duration((rand.Float64() - 0.5) * 2 * jitterRange)
}

// RetryableError reports the last error seen once all attempts failed.
type RetryableError struct {
	Err      error
	Attempts int
}

func (e *RetryableError) Error() string {
	return fmt.Sprintf("failed after %d attempts: %v", e.Attempts, e.Err)
}

func (e *RetryableError) Unwrap() error {
	return e.Err
}

// Is reports exhaustion so callers can test with errors.Is(err, ErrAttemptsExhausted).
func (e *RetryableError) Is(target error) bool {
	return target == ErrAttemptsExhausted
}
