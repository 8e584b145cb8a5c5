// Package ytcombine merges the playlists of a YouTube channel into a single
// new playlist.
//
// Overview
//
// A run resolves a channel, lists its playlists, keeps those whose title
// matches a shell-style glob, collects every video they contain (each video
// once, first occurrence wins), optionally ranks the videos by an engagement
// score and finally creates a playlist holding them in that order.
//
// The work is done by the youtube package:
//
//   - youtube.Combiner: the whole pipeline
//   - youtube.Collect: drains a paginated listing call
//   - youtube.FilterPlaylists: glob filter on playlist titles
//   - youtube.Aggregate: merged, deduplicated video list
//   - youtube.Scorer: statistics lookup and scoring
//   - youtube.Publisher: playlist creation and item inserts with retry
//
// Quick Start
//
//	apiClient, err := youtube.NewAPIClient(ctx, option.WithHTTPClient(authorized))
//	if err != nil {
//		log.Fatal(err)
//	}
//	c := &youtube.Combiner{API: apiClient, Out: os.Stdout}
//	res, err := c.Run(ctx, youtube.Options{
//		Username: "someone",
//		Pattern:  "*2017*",
//		Sort:     true,
//		Playlist: youtube.PlaylistSpec{Title: "Best of 2017", Privacy: youtube.PrivacyPrivate},
//	})
//
// Scoring
//
// The engagement score of a video is
//
//	views + dislikes + 10*comments + 100*likes + 1000*favorites
//
// Videos whose statistics cannot be fetched score 0. Sorting is stable and
// descending.
//
// Publishing
//
// Each playlist item insert is attempted up to five times. After failed
// attempt n the publisher sleeps n^n seconds (1s, 4s, 27s, 256s). An item
// that still fails is abandoned and the run continues with the next one.
//
// Configuration
//
// The ytcombine command loads settings from, in increasing priority:
//
//  1. Default values
//  2. Config file (ytcombine.json or ~/.config/ytcombine/ytcombine.json,
//     or the file named by YTCOMBINE_CONFIG)
//  3. A .env file in the working directory
//  4. Environment variables
//
// Environment variables:
//
//   - YTCOMBINE_CLIENT_SECRETS: OAuth client secrets file
//   - YTCOMBINE_TOKEN_CACHE: file caching the OAuth token
//   - YTCOMBINE_REPORT: JSON run report path
//   - YTCOMBINE_PAGE_SIZE: maxResults for listing calls (1-50)
//   - YTCOMBINE_REQUEST_RATE: API requests per second
//   - YTCOMBINE_LIST_RETRIES: retries of transient listing failures
//   - YTCOMBINE_INSERT_ATTEMPTS: attempts per playlist item
//   - YTCOMBINE_SCORE_WORKERS: concurrent statistics lookups
//   - YTCOMBINE_DEBUG: debug logging (true/false)
//
// Error Handling
//
//	if errors.Is(err, ytcombine.ErrChannelNotFound) {
//		fmt.Println("Channel not found")
//	}
//
//	var apiErr *ytcombine.APIError
//	if errors.As(err, &apiErr) {
//		fmt.Printf("%s failed: %v\n", apiErr.Op, apiErr.Err)
//	}
package ytcombine
