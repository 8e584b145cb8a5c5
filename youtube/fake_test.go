package youtube

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"sync"

	yt "google.golang.org/api/youtube/v3"
)

var errInsert = errors.New("backend hiccup")

// fakeAPI serves canned data in pages of pageSize and records writes.
type fakeAPI struct {
	mu       sync.Mutex
	pageSize int

	channels  map[string]string         // username -> channel id
	playlists map[string][]*yt.Playlist // channel id -> playlists
	items     map[string][]string       // playlist id -> video ids
	stats     map[string]*yt.VideoStatistics

	// failInserts is the number of failing attempts per video; -1 fails forever.
	failInserts map[string]int
	createErr   error
	createNoID  bool
	listErr     error

	calls          []string
	listParams     []Params
	insertAttempts map[string]int
	inserted       []string
	created        []*yt.Playlist
	insertBodies   []*yt.PlaylistItem
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		pageSize:       2,
		channels:       map[string]string{},
		playlists:      map[string][]*yt.Playlist{},
		items:          map[string][]string{},
		stats:          map[string]*yt.VideoStatistics{},
		failInserts:    map[string]int{},
		insertAttempts: map[string]int{},
	}
}

func playlist(id, title string) *yt.Playlist {
	return &yt.Playlist{Id: id, Snippet: &yt.PlaylistSnippet{Title: title}}
}

func servePage[T any](all []T, size int, params Params) Page[T] {
	start := 0
	if tok := params[pageTokenParam]; tok != "" {
		start, _ = strconv.Atoi(strings.TrimPrefix(tok, "tok-"))
	}
	end := start + size
	if end > len(all) {
		end = len(all)
	}
	page := Page[T]{Items: all[start:end]}
	if end < len(all) {
		page.NextPageToken = "tok-" + strconv.Itoa(end)
	}
	return page
}

func (f *fakeAPI) record(op string, params Params) {
	f.calls = append(f.calls, op)
	f.listParams = append(f.listParams, params)
}

func (f *fakeAPI) ListChannels(ctx context.Context, params Params) (Page[*yt.Channel], error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("channels.list", params)
	id, ok := f.channels[params["forUsername"]]
	if !ok {
		return Page[*yt.Channel]{}, nil
	}
	return Page[*yt.Channel]{Items: []*yt.Channel{{Id: id}}}, nil
}

func (f *fakeAPI) ListPlaylists(ctx context.Context, params Params) (Page[*yt.Playlist], error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("playlists.list", params)
	if f.listErr != nil {
		return Page[*yt.Playlist]{}, f.listErr
	}
	return servePage(f.playlists[params["channelId"]], f.pageSize, params), nil
}

func (f *fakeAPI) ListPlaylistItems(ctx context.Context, params Params) (Page[*yt.PlaylistItem], error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("playlistItems.list", params)
	var all []*yt.PlaylistItem
	for _, id := range f.items[params["playlistId"]] {
		all = append(all, &yt.PlaylistItem{ContentDetails: &yt.PlaylistItemContentDetails{VideoId: id}})
	}
	return servePage(all, f.pageSize, params), nil
}

func (f *fakeAPI) ListVideos(ctx context.Context, params Params) (Page[*yt.Video], error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("videos.list", params)
	st, ok := f.stats[params["id"]]
	if !ok {
		return Page[*yt.Video]{}, nil
	}
	return Page[*yt.Video]{Items: []*yt.Video{{Id: params["id"], Statistics: st}}}, nil
}

func (f *fakeAPI) InsertPlaylist(ctx context.Context, pl *yt.Playlist, params Params) (*yt.Playlist, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, "playlists.insert")
	f.created = append(f.created, pl)
	if f.createErr != nil {
		return nil, f.createErr
	}
	if f.createNoID {
		return &yt.Playlist{}, nil
	}
	out := *pl
	out.Id = "PLnew"
	return &out, nil
}

func (f *fakeAPI) InsertPlaylistItem(ctx context.Context, item *yt.PlaylistItem, params Params) (*yt.PlaylistItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, "playlistItems.insert")
	f.insertBodies = append(f.insertBodies, item)
	id := item.Snippet.ResourceId.VideoId
	f.insertAttempts[id]++
	if n := f.failInserts[id]; n < 0 || f.insertAttempts[id] <= n {
		return nil, errInsert
	}
	f.inserted = append(f.inserted, id)
	return &yt.PlaylistItem{Id: "item-" + id}, nil
}

func videoIDs(items []*Item) []string {
	ids := make([]string, len(items))
	for i, it := range items {
		ids[i] = it.VideoID
	}
	return ids
}
