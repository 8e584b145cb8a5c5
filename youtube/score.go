package youtube

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/panjf2000/ants/v2"
	yt "google.golang.org/api/youtube/v3"
)

// Statistics are the engagement counters of a video. Absent counters are zero.
type Statistics struct {
	ViewCount     uint64
	LikeCount     uint64
	DislikeCount  uint64
	CommentCount  uint64
	FavoriteCount uint64
}

// StatisticsFrom converts the API representation.
func StatisticsFrom(s *yt.VideoStatistics) Statistics {
	if s == nil {
		return Statistics{}
	}
	return Statistics{
		ViewCount:     s.ViewCount,
		LikeCount:     s.LikeCount,
		DislikeCount:  s.DislikeCount,
		CommentCount:  s.CommentCount,
		FavoriteCount: s.FavoriteCount,
	}
}

// Score weighs engagement: views and dislikes count once, comments ten
// times, likes a hundred times and favorites a thousand times.
func Score(s Statistics) uint64 {
	return s.ViewCount +
		s.DislikeCount +
		s.CommentCount*10 +
		s.LikeCount*100 +
		s.FavoriteCount*1000
}

// Scorer looks up statistics for items and assigns their scores.
type Scorer struct {
	API API
	// Workers bounds concurrent lookups; 1 or less scores sequentially.
	Workers int
	// OnScored, if set, is called after each item is scored.
	OnScored func(item *Item, err error)
	Logger   *slog.Logger
}

// Lookup fetches the statistics of one video.
func (s *Scorer) Lookup(ctx context.Context, videoID string) (Statistics, error) {
	page, err := s.API.ListVideos(ctx, Params{
		"part": "statistics,snippet",
		"id":   videoID,
	})
	if err != nil {
		return Statistics{}, err
	}
	if len(page.Items) == 0 || page.Items[0] == nil {
		return Statistics{}, fmt.Errorf("%w: %s", ErrVideoNotFound, videoID)
	}
	return StatisticsFrom(page.Items[0].Statistics), nil
}

// ScoreAll sets Score on every item. Videos whose lookup fails score 0 and
// are logged, not returned as errors; only context cancellation aborts.
func (s *Scorer) ScoreAll(ctx context.Context, items []*Item) error {
	if s.Workers <= 1 {
		for _, item := range items {
			if err := ctx.Err(); err != nil {
				return err
			}
			s.scoreOne(ctx, item, nil)
		}
		return nil
	}

	pool, err := ants.NewPool(s.Workers)
	if err != nil {
		return fmt.Errorf("youtube: score pool: %w", err)
	}
	defer pool.Release()

	var wg sync.WaitGroup
	var mu sync.Mutex
	for _, item := range items {
		if ctx.Err() != nil {
			break
		}
		item := item
		wg.Add(1)
		err := pool.Submit(func() {
			defer wg.Done()
			s.scoreOne(ctx, item, &mu)
		})
		if err != nil {
			wg.Done()
			return fmt.Errorf("youtube: submit score task: %w", err)
		}
	}
	wg.Wait()
	return ctx.Err()
}

// scoreOne serializes OnScored through mu when mu is non-nil.
func (s *Scorer) scoreOne(ctx context.Context, item *Item, mu *sync.Mutex) {
	stats, err := s.Lookup(ctx, item.VideoID)
	if err != nil {
		item.Score = 0
		s.logger().Debug("youtube: score lookup failed", slog.String("video", item.VideoID), slog.Any("error", err))
	} else {
		item.Score = Score(stats)
		s.logger().Debug("youtube: scored", slog.String("video", item.VideoID), slog.Uint64("score", item.Score))
	}

	if s.OnScored != nil {
		if mu != nil {
			mu.Lock()
			defer mu.Unlock()
		}
		s.OnScored(item, err)
	}
}

func (s *Scorer) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}

// SortByScore orders items by descending score. Equal scores keep their
// relative order.
func SortByScore(items []*Item) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Score > items[j].Score
	})
}
