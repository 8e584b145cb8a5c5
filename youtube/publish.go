package youtube

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	yt "google.golang.org/api/youtube/v3"

	"ytcombine/internal/resource"
	"ytcombine/internal/retry"
)

// Privacy statuses accepted for the created playlist.
const (
	PrivacyPublic   = "public"
	PrivacyPrivate  = "private"
	PrivacyUnlisted = "unlisted"
)

// ValidPrivacy reports whether s is an accepted privacy status.
func ValidPrivacy(s string) bool {
	switch s {
	case PrivacyPublic, PrivacyPrivate, PrivacyUnlisted:
		return true
	}
	return false
}

// PlaylistSpec describes the playlist to create.
type PlaylistSpec struct {
	Title       string
	Description string
	Privacy     string
}

// InsertResult lists the outcome per video, in insertion order.
type InsertResult struct {
	Inserted  []string
	Abandoned []string
}

// Publisher creates the destination playlist and fills it.
type Publisher struct {
	API API
	// Retry governs playlist item inserts. Every error is treated as
	// transient.
	Retry retry.Config
	// OnAttempt, if set, is called before every insert attempt.
	OnAttempt func(videoID string, attempt int)
	// OnAbandon, if set, is called when an item runs out of attempts.
	OnAbandon func(videoID string, err error)
	Logger    *slog.Logger
}

// CreatePlaylist inserts a new playlist. A response without an id counts
// as failure.
func (p *Publisher) CreatePlaylist(ctx context.Context, spec PlaylistSpec) (*yt.Playlist, error) {
	var body yt.Playlist
	err := resource.Decode(map[string]string{
		"snippet.title":        spec.Title,
		"snippet.description":  spec.Description,
		"status.privacyStatus": spec.Privacy,
	}, &body)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPlaylistNotCreated, err)
	}

	created, err := p.API.InsertPlaylist(ctx, &body, Params{"part": "snippet,status"})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPlaylistNotCreated, err)
	}
	if created == nil || created.Id == "" {
		return nil, fmt.Errorf("%w: response carried no id", ErrPlaylistNotCreated)
	}
	return created, nil
}

// Insert adds one video to playlistID, retrying under p.Retry.
func (p *Publisher) Insert(ctx context.Context, playlistID, videoID string) error {
	var body yt.PlaylistItem
	err := resource.Decode(map[string]string{
		"snippet.playlistId":         playlistID,
		"snippet.resourceId.kind":    "youtube#video",
		"snippet.resourceId.videoId": videoID,
		"snippet.position":           "",
	}, &body)
	if err != nil {
		return err
	}

	cfg := p.Retry
	cfg.OnRetry = func(attempt int, err error, wait time.Duration) {
		p.logger().Debug("youtube: failed to add item",
			slog.String("video", videoID),
			slog.Int("attempt", attempt),
			slog.Duration("sleep", wait),
			slog.Any("error", err))
	}

	attempt := 0
	return retry.Do(ctx, cfg, retry.Always, func(ctx context.Context) error {
		attempt++
		if p.OnAttempt != nil {
			p.OnAttempt(videoID, attempt)
		}
		_, err := p.API.InsertPlaylistItem(ctx, &body, Params{"part": "snippet"})
		return err
	})
}

// InsertAll inserts items in order. An item that exhausts its attempts is
// abandoned and the next one is tried; only context cancellation stops the
// loop early.
func (p *Publisher) InsertAll(ctx context.Context, playlistID string, items []*Item) (*InsertResult, error) {
	res := &InsertResult{}
	for _, item := range items {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		err := p.Insert(ctx, playlistID, item.VideoID)
		if err == nil {
			res.Inserted = append(res.Inserted, item.VideoID)
			p.logger().Debug("youtube: added item", slog.String("video", item.VideoID))
			continue
		}
		if ctx.Err() != nil {
			return res, ctx.Err()
		}

		res.Abandoned = append(res.Abandoned, item.VideoID)
		p.logger().Warn("youtube: giving up on item", slog.String("video", item.VideoID), slog.Any("error", err))
		if p.OnAbandon != nil {
			p.OnAbandon(item.VideoID, err)
		}
	}
	return res, nil
}

func (p *Publisher) logger() *slog.Logger {
	if p.Logger != nil {
		return p.Logger
	}
	return slog.Default()
}
