package youtube

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/dustin/go-humanize"
	yt "google.golang.org/api/youtube/v3"

	"ytcombine/internal/retry"
)

// Options selects what a Combiner run reads and what it creates.
type Options struct {
	// Username or ChannelID identifies the source channel; ChannelID wins
	// when both are set.
	Username  string
	ChannelID string
	// Pattern is the glob applied to playlist titles.
	Pattern string
	// Sort ranks the merged videos by engagement score.
	Sort bool
	// DryRun stops before anything is written.
	DryRun bool
	// Playlist describes the playlist to create.
	Playlist PlaylistSpec
}

// Result describes what a run found and did.
type Result struct {
	ChannelID string
	Playlists []*yt.Playlist
	Selected  []*yt.Playlist
	Items     []*Item
	Created   *yt.Playlist
	Inserted  []string
	Abandoned []string
}

// Combiner runs the pipeline: resolve the channel, list and filter its
// playlists, merge their videos, optionally rank them, then publish.
type Combiner struct {
	API       API
	Scorer    *Scorer
	Publisher *Publisher
	PageSize  int64
	// Out receives progress and status lines.
	Out    io.Writer
	Logger *slog.Logger
}

// ResolveChannel returns channelID if set, otherwise looks up the single
// channel owned by username.
func (c *Combiner) ResolveChannel(ctx context.Context, username, channelID string) (string, error) {
	if channelID != "" {
		return channelID, nil
	}
	if username == "" {
		return "", fmt.Errorf("%w: no username or channel id given", ErrChannelNotFound)
	}

	page, err := c.API.ListChannels(ctx, Params{
		"part":        "id",
		"forUsername": username,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrChannelNotFound, err)
	}
	if len(page.Items) == 0 || page.Items[0] == nil || page.Items[0].Id == "" {
		return "", fmt.Errorf("%w: username %q", ErrChannelNotFound, username)
	}
	return page.Items[0].Id, nil
}

// Run executes the whole pipeline. Errors wrapping ErrChannelNotFound mean
// nothing was read; ErrPlaylistNotCreated means the publish phase was
// skipped. The Result is non-nil whenever the channel was resolved.
func (c *Combiner) Run(ctx context.Context, opts Options) (*Result, error) {
	channelID, err := c.ResolveChannel(ctx, opts.Username, opts.ChannelID)
	if err != nil {
		return nil, err
	}
	res := &Result{ChannelID: channelID}

	res.Playlists, err = ListAllPlaylists(ctx, c.API, channelID, c.PageSize)
	if err != nil {
		return res, fmt.Errorf("list playlists: %w", err)
	}
	label := opts.Username
	if label == "" {
		label = channelID
	}
	c.printf("Found %s playlists for channel '%s'.\n", humanize.Comma(int64(len(res.Playlists))), label)

	res.Selected, err = FilterPlaylists(res.Playlists, opts.Pattern)
	if err != nil {
		return res, err
	}
	c.printf("Selected %s playlists from original set based on filter '%s'.\n", humanize.Comma(int64(len(res.Selected))), opts.Pattern)

	res.Items, err = Aggregate(ctx, c.API, res.Selected, c.PageSize)
	if err != nil {
		return res, err
	}
	c.printf("Found %s playlist items across %s playlists.\n",
		humanize.Comma(int64(len(res.Items))), humanize.Comma(int64(len(res.Selected))))

	if opts.Sort {
		if err := c.rank(ctx, res.Items); err != nil {
			return res, err
		}
	}

	if opts.DryRun {
		c.printf("Dry run - %s videos would be added in this order:\n", humanize.Comma(int64(len(res.Items))))
		for i, item := range res.Items {
			c.printf("%4d. %s (score %s)\n", i+1, item.VideoID, humanize.Comma(int64(item.Score)))
		}
		return res, nil
	}

	return res, c.publish(ctx, opts.Playlist, res)
}

func (c *Combiner) rank(ctx context.Context, items []*Item) error {
	c.printf("Sorting.")
	scorer := Scorer{API: c.API, Logger: c.Logger}
	if c.Scorer != nil {
		scorer = *c.Scorer
	}
	onScored := scorer.OnScored
	scorer.OnScored = func(item *Item, err error) {
		c.printf(".")
		if onScored != nil {
			onScored(item, err)
		}
	}
	if err := scorer.ScoreAll(ctx, items); err != nil {
		c.printf("\n")
		return err
	}
	c.printf(".\n")

	SortByScore(items)
	c.printf("All sorted.\n")
	return nil
}

func (c *Combiner) publish(ctx context.Context, spec PlaylistSpec, res *Result) error {
	pub := Publisher{API: c.API, Retry: retry.DefaultConfig(), Logger: c.Logger}
	if c.Publisher != nil {
		pub = *c.Publisher
	}

	created, err := pub.CreatePlaylist(ctx, spec)
	if err != nil {
		c.printf("Unable to create playlist!\n")
		return err
	}
	res.Created = created
	c.printf("Created playlist %s - adding videos.", created.Id)

	onAttempt, onAbandon := pub.OnAttempt, pub.OnAbandon
	pub.OnAttempt = func(videoID string, attempt int) {
		c.printf(".")
		if onAttempt != nil {
			onAttempt(videoID, attempt)
		}
	}
	pub.OnAbandon = func(videoID string, err error) {
		c.printf("\nGiving up on item %s.\n", videoID)
		if onAbandon != nil {
			onAbandon(videoID, err)
		}
	}

	ins, err := pub.InsertAll(ctx, created.Id, res.Items)
	res.Inserted, res.Abandoned = ins.Inserted, ins.Abandoned
	c.printf(".\n")
	if err != nil {
		return err
	}

	c.printf("Your playlist is ready: %s\n", PlaylistURL(created.Id))
	return nil
}

func (c *Combiner) printf(format string, args ...any) {
	if c.Out == nil {
		return
	}
	fmt.Fprintf(c.Out, format, args...)
}
