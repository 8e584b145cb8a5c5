package youtube

import (
	"context"
	"fmt"

	"google.golang.org/api/option"
	yt "google.golang.org/api/youtube/v3"
)

// APIClient implements API on top of the generated Data API v3 bindings.
type APIClient struct {
	service *yt.Service
}

// NewAPIClient creates a client. Callers normally pass
// option.WithHTTPClient with an OAuth-authorized client.
func NewAPIClient(ctx context.Context, opts ...option.ClientOption) (*APIClient, error) {
	service, err := yt.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create youtube service: %w", err)
	}
	return &APIClient{service: service}, nil
}

// ListChannels calls channels.list.
func (c *APIClient) ListChannels(ctx context.Context, params Params) (Page[*yt.Channel], error) {
	resp, err := c.service.Channels.List(params.Parts()).Context(ctx).Do(params.callOptions()...)
	if err != nil {
		return Page[*yt.Channel]{}, &APIError{Op: "channels.list", Err: err}
	}
	return Page[*yt.Channel]{Items: resp.Items, NextPageToken: resp.NextPageToken}, nil
}

// ListPlaylists calls playlists.list.
func (c *APIClient) ListPlaylists(ctx context.Context, params Params) (Page[*yt.Playlist], error) {
	resp, err := c.service.Playlists.List(params.Parts()).Context(ctx).Do(params.callOptions()...)
	if err != nil {
		return Page[*yt.Playlist]{}, &APIError{Op: "playlists.list", Err: err}
	}
	return Page[*yt.Playlist]{Items: resp.Items, NextPageToken: resp.NextPageToken}, nil
}

// ListPlaylistItems calls playlistItems.list.
func (c *APIClient) ListPlaylistItems(ctx context.Context, params Params) (Page[*yt.PlaylistItem], error) {
	resp, err := c.service.PlaylistItems.List(params.Parts()).Context(ctx).Do(params.callOptions()...)
	if err != nil {
		return Page[*yt.PlaylistItem]{}, &APIError{Op: "playlistItems.list", Err: err}
	}
	return Page[*yt.PlaylistItem]{Items: resp.Items, NextPageToken: resp.NextPageToken}, nil
}

// ListVideos calls videos.list.
func (c *APIClient) ListVideos(ctx context.Context, params Params) (Page[*yt.Video], error) {
	resp, err := c.service.Videos.List(params.Parts()).Context(ctx).Do(params.callOptions()...)
	if err != nil {
		return Page[*yt.Video]{}, &APIError{Op: "videos.list", Err: err}
	}
	return Page[*yt.Video]{Items: resp.Items, NextPageToken: resp.NextPageToken}, nil
}

// InsertPlaylist calls playlists.insert.
func (c *APIClient) InsertPlaylist(ctx context.Context, playlist *yt.Playlist, params Params) (*yt.Playlist, error) {
	resp, err := c.service.Playlists.Insert(params.Parts(), playlist).Context(ctx).Do(params.callOptions()...)
	if err != nil {
		return nil, &APIError{Op: "playlists.insert", Err: err}
	}
	return resp, nil
}

// InsertPlaylistItem calls playlistItems.insert.
func (c *APIClient) InsertPlaylistItem(ctx context.Context, item *yt.PlaylistItem, params Params) (*yt.PlaylistItem, error) {
	resp, err := c.service.PlaylistItems.Insert(params.Parts(), item).Context(ctx).Do(params.callOptions()...)
	if err != nil {
		return nil, &APIError{Op: "playlistItems.insert", Err: err}
	}
	return resp, nil
}
