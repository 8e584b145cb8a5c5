package youtube

import (
	"context"

	yt "google.golang.org/api/youtube/v3"

	ythttp "ytcombine/http"
	"ytcombine/internal/retry"
)

// RetryingAPI repeats listing calls that fail with transient errors. Insert
// calls pass through untouched; the Publisher applies its own policy.
type RetryingAPI struct {
	API
	Config     retry.Config
	Classifier retry.ErrorClassifier
}

// WithListRetry wraps api so list pages are retried under cfg. A nil
// classifier retries transient Data API errors only.
func WithListRetry(api API, cfg retry.Config, classifier retry.ErrorClassifier) *RetryingAPI {
	if classifier == nil {
		classifier = ythttp.IsTransient
	}
	return &RetryingAPI{API: api, Config: cfg, Classifier: classifier}
}

func (r *RetryingAPI) ListChannels(ctx context.Context, params Params) (Page[*yt.Channel], error) {
	return retryList(ctx, r, r.API.ListChannels, params)
}

func (r *RetryingAPI) ListPlaylists(ctx context.Context, params Params) (Page[*yt.Playlist], error) {
	return retryList(ctx, r, r.API.ListPlaylists, params)
}

func (r *RetryingAPI) ListPlaylistItems(ctx context.Context, params Params) (Page[*yt.PlaylistItem], error) {
	return retryList(ctx, r, r.API.ListPlaylistItems, params)
}

func (r *RetryingAPI) ListVideos(ctx context.Context, params Params) (Page[*yt.Video], error) {
	return retryList(ctx, r, r.API.ListVideos, params)
}

func retryList[T any](ctx context.Context, r *RetryingAPI, list ListFunc[T], params Params) (Page[T], error) {
	var page Page[T]
	err := retry.Do(ctx, r.Config, r.Classifier, func(ctx context.Context) error {
		var err error
		page, err = list(ctx, params)
		return err
	})
	if err != nil {
		return Page[T]{}, err
	}
	return page, nil
}
