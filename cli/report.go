package main

import (
	"errors"
	"time"

	"ytcombine/internal/storage"
	"ytcombine/youtube"
)

func fillReport(r *storage.Report, opts *options, res *youtube.Result, runErr error, now time.Time) {
	r.FinishedAt = now
	r.Channel = opts.channel
	if r.Channel == "" {
		r.Channel = opts.username
	}
	r.Pattern = opts.matches
	r.Sorted = opts.sort
	r.DryRun = opts.dryRun
	if runErr != nil {
		r.Error = runErr.Error()
	}
	if res == nil {
		return
	}

	if res.ChannelID != "" {
		r.Channel = res.ChannelID
	}
	for _, pl := range res.Selected {
		ref := storage.PlaylistRef{ID: pl.Id}
		if pl.Snippet != nil {
			ref.Title = pl.Snippet.Title
		}
		r.Sources = append(r.Sources, ref)
	}
	r.Videos = make([]string, 0, len(res.Items))
	for _, item := range res.Items {
		r.Videos = append(r.Videos, item.VideoID)
	}
	if res.Created != nil {
		r.PlaylistID = res.Created.Id
		r.PlaylistURL = youtube.PlaylistURL(res.Created.Id)
	}
	r.Inserted = res.Inserted
	r.Abandoned = res.Abandoned
}

// exitCode maps a run error to the process status. A playlist that could
// not be created is reported but still exits 0.
func exitCode(err error) int {
	switch {
	case err == nil, errors.Is(err, youtube.ErrPlaylistNotCreated):
		return 0
	case errors.Is(err, errUsage):
		return 2
	default:
		return 1
	}
}
