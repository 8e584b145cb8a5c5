package youtube

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"ytcombine/internal/retry"
)

// instantRetry is the default publishing policy with sleeps recorded
// instead of taken.
func instantRetry(waits *[]time.Duration) retry.Config {
	cfg := retry.DefaultConfig()
	cfg.Sleep = func(ctx context.Context, d time.Duration) error {
		*waits = append(*waits, d)
		return nil
	}
	return cfg
}

func TestValidPrivacy(t *testing.T) {
	for _, s := range []string{"public", "private", "unlisted"} {
		if !ValidPrivacy(s) {
			t.Errorf("ValidPrivacy(%q) = false", s)
		}
	}
	for _, s := range []string{"", "Public", "secret"} {
		if ValidPrivacy(s) {
			t.Errorf("ValidPrivacy(%q) = true", s)
		}
	}
}

func TestPublisher_CreatePlaylist(t *testing.T) {
	api := newFakeAPI()
	p := &Publisher{API: api}

	pl, err := p.CreatePlaylist(context.Background(), PlaylistSpec{Title: "T", Description: "D", Privacy: PrivacyPrivate})
	if err != nil {
		t.Fatalf("CreatePlaylist() error = %v", err)
	}
	if pl.Id != "PLnew" {
		t.Errorf("CreatePlaylist() id = %q, want PLnew", pl.Id)
	}

	body := api.created[0]
	if body.Snippet == nil || body.Snippet.Title != "T" || body.Snippet.Description != "D" {
		t.Errorf("snippet = %+v", body.Snippet)
	}
	if body.Status == nil || body.Status.PrivacyStatus != "private" {
		t.Errorf("status = %+v", body.Status)
	}
}

func TestPublisher_CreatePlaylistFailures(t *testing.T) {
	tests := []struct {
		name  string
		setup func(*fakeAPI)
	}{
		{"api error", func(f *fakeAPI) { f.createErr = errors.New("quota") }},
		{"no id", func(f *fakeAPI) { f.createNoID = true }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := newFakeAPI()
			tt.setup(api)
			p := &Publisher{API: api}

			_, err := p.CreatePlaylist(context.Background(), PlaylistSpec{Title: "T", Privacy: PrivacyPublic})
			if !errors.Is(err, ErrPlaylistNotCreated) {
				t.Errorf("CreatePlaylist() error = %v, want ErrPlaylistNotCreated", err)
			}
		})
	}
}

func TestPublisher_InsertBody(t *testing.T) {
	api := newFakeAPI()
	p := &Publisher{API: api, Retry: retry.DefaultConfig()}

	if err := p.Insert(context.Background(), "PLnew", "v1"); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}

	body := api.insertBodies[0]
	if body.Snippet.PlaylistId != "PLnew" {
		t.Errorf("playlistId = %q", body.Snippet.PlaylistId)
	}
	if body.Snippet.ResourceId.Kind != "youtube#video" || body.Snippet.ResourceId.VideoId != "v1" {
		t.Errorf("resourceId = %+v", body.Snippet.ResourceId)
	}
	if body.Snippet.Position != 0 {
		t.Errorf("position = %d, want unset", body.Snippet.Position)
	}
}

func TestPublisher_InsertRecovers(t *testing.T) {
	api := newFakeAPI()
	api.failInserts["v1"] = 2

	var waits []time.Duration
	var attempts []int
	p := &Publisher{
		API:       api,
		Retry:     instantRetry(&waits),
		OnAttempt: func(_ string, attempt int) { attempts = append(attempts, attempt) },
	}

	if err := p.Insert(context.Background(), "PL", "v1"); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}
	if want := []int{1, 2, 3}; !reflect.DeepEqual(attempts, want) {
		t.Errorf("attempts = %v, want %v", attempts, want)
	}
	if want := []time.Duration{time.Second, 4 * time.Second}; !reflect.DeepEqual(waits, want) {
		t.Errorf("waits = %v, want %v", waits, want)
	}
}

func TestPublisher_InsertAllAbandonsAndContinues(t *testing.T) {
	api := newFakeAPI()
	api.failInserts["bad"] = -1

	var waits []time.Duration
	var abandoned []string
	p := &Publisher{
		API:       api,
		Retry:     instantRetry(&waits),
		OnAbandon: func(id string, err error) { abandoned = append(abandoned, id) },
	}

	res, err := p.InsertAll(context.Background(), "PL", []*Item{{VideoID: "bad"}, {VideoID: "good"}})
	if err != nil {
		t.Fatalf("InsertAll() error = %v", err)
	}

	if api.insertAttempts["bad"] != 5 {
		t.Errorf("bad attempted %d times, want 5", api.insertAttempts["bad"])
	}
	want := []time.Duration{time.Second, 4 * time.Second, 27 * time.Second, 256 * time.Second}
	if !reflect.DeepEqual(waits, want) {
		t.Errorf("waits = %v, want %v", waits, want)
	}
	if !reflect.DeepEqual(res.Abandoned, []string{"bad"}) || !reflect.DeepEqual(abandoned, []string{"bad"}) {
		t.Errorf("abandoned = %v / %v, want [bad]", res.Abandoned, abandoned)
	}
	if !reflect.DeepEqual(res.Inserted, []string{"good"}) || !reflect.DeepEqual(api.inserted, []string{"good"}) {
		t.Errorf("inserted = %v, want [good]", res.Inserted)
	}
}

func TestPublisher_InsertAllContextCanceled(t *testing.T) {
	api := newFakeAPI()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := &Publisher{API: api, Retry: retry.DefaultConfig()}
	res, err := p.InsertAll(ctx, "PL", []*Item{{VideoID: "v1"}})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("InsertAll() error = %v, want context.Canceled", err)
	}
	if len(res.Inserted) != 0 || len(api.insertBodies) != 0 {
		t.Errorf("inserted after cancel: %v", res.Inserted)
	}
}
