// Package youtube combines the videos of several playlists of a YouTube
// channel into one new playlist through the YouTube Data API v3.
package youtube

import (
	"context"
	"errors"

	yt "google.golang.org/api/youtube/v3"
)

// Sentinel errors for combine operations.
var (
	ErrChannelNotFound    = errors.New("youtube: channel not found")
	ErrVideoNotFound      = errors.New("youtube: video not found")
	ErrPlaylistNotCreated = errors.New("youtube: playlist not created")
	ErrRepeatedPageToken  = errors.New("youtube: page token repeated")
)

// API is the part of the YouTube Data API the combiner relies on. Every
// listing call is paginated through the "pageToken" parameter.
type API interface {
	ListChannels(ctx context.Context, params Params) (Page[*yt.Channel], error)
	ListPlaylists(ctx context.Context, params Params) (Page[*yt.Playlist], error)
	ListPlaylistItems(ctx context.Context, params Params) (Page[*yt.PlaylistItem], error)
	ListVideos(ctx context.Context, params Params) (Page[*yt.Video], error)

	InsertPlaylist(ctx context.Context, playlist *yt.Playlist, params Params) (*yt.Playlist, error)
	InsertPlaylistItem(ctx context.Context, item *yt.PlaylistItem, params Params) (*yt.PlaylistItem, error)
}

// Item is one video gathered from the source playlists.
type Item struct {
	// VideoID identifies the video and is the deduplication key.
	VideoID string `json:"video_id"`
	// PlaylistID is the source playlist the item was first seen in.
	PlaylistID string `json:"playlist_id"`
	// Score is the engagement score; zero until scored.
	Score uint64 `json:"score"`
}

// PlaylistURL returns the public URL of a playlist.
func PlaylistURL(id string) string {
	return "https://www.youtube.com/playlist?list=" + id
}

// APIError wraps a failed remote call with the API method name.
//
//	var apiErr *youtube.APIError
//	if errors.As(err, &apiErr) {
//		fmt.Printf("%s failed: %v\n", apiErr.Op, apiErr.Err)
//	}
type APIError struct {
	// Op is the API method, e.g. "playlistItems.insert".
	Op string
	// Err is the underlying error that occurred.
	Err error
}

// Error returns a string representation of the API error.
func (e *APIError) Error() string {
	return "youtube: " + e.Op + ": " + e.Err.Error()
}

// Unwrap returns the underlying error for use with errors.Is() and errors.As().
func (e *APIError) Unwrap() error { return e.Err }
