package http

import (
	"context"
	"errors"
	"net/http"

	"google.golang.org/api/googleapi"
)

// Error reasons the Data API uses for conditions worth retrying.
var transientReasons = map[string]bool{
	"rateLimitExceeded":     true,
	"userRateLimitExceeded": true,
	"backendError":          true,
	"internalError":         true,
}

// IsTransient reports whether a Data API call that failed with err is worth
// repeating. Server errors, 429, rate-limit reasons and transport failures
// are transient; other 4xx responses and context errors are not.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var gerr *googleapi.Error
	if !errors.As(err, &gerr) {
		return true
	}

	for _, item := range gerr.Errors {
		if transientReasons[item.Reason] {
			return true
		}
	}
	return ShouldRetry(gerr.Code)
}

// StatusCode extracts the HTTP status from a Data API error, or 0.
func StatusCode(err error) int {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		return gerr.Code
	}
	return 0
}

// IsServerError checks if status code is a server error (5xx).
func IsServerError(statusCode int) bool {
	return statusCode >= 500 && statusCode < 600
}

// ShouldRetry determines if a request should be retried based on status code.
func ShouldRetry(statusCode int) bool {
	if IsServerError(statusCode) {
		return true
	}
	switch statusCode {
	case http.StatusRequestTimeout, http.StatusTooManyRequests:
		return true
	}
	return false
}
