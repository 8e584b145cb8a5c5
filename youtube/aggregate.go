package youtube

import (
	"context"
	"fmt"
	"strconv"

	yt "google.golang.org/api/youtube/v3"
)

// DefaultPageSize is the largest maxResults the Data API accepts.
const DefaultPageSize = 50

// ListAllPlaylists returns every playlist owned by channelID.
func ListAllPlaylists(ctx context.Context, api API, channelID string, pageSize int64) ([]*yt.Playlist, error) {
	return Collect(ctx, api.ListPlaylists, Params{
		"part":       "contentDetails,snippet",
		"channelId":  channelID,
		"maxResults": pageSizeParam(pageSize),
	})
}

// ListItems returns every item of one playlist as Items, in playlist order.
// Entries without a video id (deleted or private videos) are skipped.
func ListItems(ctx context.Context, api API, playlistID string, pageSize int64) ([]*Item, error) {
	raw, err := Collect(ctx, api.ListPlaylistItems, Params{
		"part":       "contentDetails",
		"playlistId": playlistID,
		"maxResults": pageSizeParam(pageSize),
	})
	if err != nil {
		return nil, fmt.Errorf("list items of %s: %w", playlistID, err)
	}

	items := make([]*Item, 0, len(raw))
	for _, it := range raw {
		id := videoID(it)
		if id == "" {
			continue
		}
		items = append(items, &Item{VideoID: id, PlaylistID: playlistID})
	}
	return items, nil
}

// Aggregate fetches the items of every playlist and merges them so each
// video appears once.
func Aggregate(ctx context.Context, api API, playlists []*yt.Playlist, pageSize int64) ([]*Item, error) {
	lists := make([][]*Item, 0, len(playlists))
	for _, pl := range playlists {
		items, err := ListItems(ctx, api, pl.Id, pageSize)
		if err != nil {
			return nil, err
		}
		lists = append(lists, items)
	}
	return Merge(lists...), nil
}

// Merge concatenates lists, dropping repeated video ids. The first
// occurrence wins and keeps its position.
func Merge(lists ...[]*Item) []*Item {
	seen := make(map[string]bool)
	var out []*Item
	for _, list := range lists {
		for _, item := range list {
			if seen[item.VideoID] {
				continue
			}
			seen[item.VideoID] = true
			out = append(out, item)
		}
	}
	return out
}

func videoID(it *yt.PlaylistItem) string {
	if it == nil {
		return ""
	}
	if it.ContentDetails != nil && it.ContentDetails.VideoId != "" {
		return it.ContentDetails.VideoId
	}
	if it.Snippet != nil && it.Snippet.ResourceId != nil {
		return it.Snippet.ResourceId.VideoId
	}
	return ""
}

func pageSizeParam(n int64) string {
	if n <= 0 {
		n = DefaultPageSize
	}
	return strconv.FormatInt(n, 10)
}
