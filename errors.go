package ytcombine

import (
	"ytcombine/internal/retry"
	"ytcombine/internal/storage"
	"ytcombine/youtube"
)

// Type aliases for convenient error handling.
type (
	// APIError wraps a failed YouTube Data API call.
	APIError = youtube.APIError
	// RetryableError wraps the last error once retries were exhausted.
	RetryableError = retry.RetryableError
	// StorageError wraps errors during token cache or report operations.
	StorageError = storage.StorageError
)

// Sentinel errors exported from sub-packages.
var (
	// ErrChannelNotFound indicates the source channel could not be resolved.
	ErrChannelNotFound = youtube.ErrChannelNotFound
	// ErrPlaylistNotCreated indicates the destination playlist was not created.
	ErrPlaylistNotCreated = youtube.ErrPlaylistNotCreated
	// ErrVideoNotFound indicates a statistics lookup returned no video.
	ErrVideoNotFound = youtube.ErrVideoNotFound
	// ErrAttemptsExhausted matches errors returned after the last retry.
	ErrAttemptsExhausted = retry.ErrAttemptsExhausted

	// Storage errors
	ErrNotFound       = storage.ErrNotFound
	ErrStorageCorrupt = storage.ErrStorageCorrupt
	ErrLockTimeout    = storage.ErrLockTimeout
)

// IsRetryable reports whether err is worth retrying: anything except
// context cancellation and deadlines.
func IsRetryable(err error) bool {
	return retry.IsRetryable(err)
}
