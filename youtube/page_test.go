package youtube

import (
	"context"
	"errors"
	"reflect"
	"testing"
)

func TestCollect_FollowsPageTokens(t *testing.T) {
	var seen []Params
	list := func(ctx context.Context, params Params) (Page[string], error) {
		seen = append(seen, params)
		if params["pageToken"] == "" {
			return Page[string]{Items: []string{"a", "b"}, NextPageToken: "t1"}, nil
		}
		return Page[string]{Items: []string{"c"}}, nil
	}

	got, err := Collect(context.Background(), list, Params{"part": "snippet", "channelId": "C", "empty": ""})
	if err != nil {
		t.Fatalf("Collect() error = %v", err)
	}
	if want := []string{"a", "b", "c"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Collect() = %v, want %v", got, want)
	}

	if len(seen) != 2 {
		t.Fatalf("list called %d times, want 2", len(seen))
	}
	if _, ok := seen[0]["empty"]; ok {
		t.Error("empty parameter was sent")
	}
	if seen[0]["pageToken"] != "" {
		t.Errorf("first call pageToken = %q, want none", seen[0]["pageToken"])
	}
	if seen[1]["pageToken"] != "t1" {
		t.Errorf("second call pageToken = %q, want %q", seen[1]["pageToken"], "t1")
	}
	if seen[1]["channelId"] != "C" || seen[1]["part"] != "snippet" {
		t.Errorf("second call lost parameters: %v", seen[1])
	}
}

func TestCollect_SinglePage(t *testing.T) {
	calls := 0
	list := func(ctx context.Context, params Params) (Page[int], error) {
		calls++
		return Page[int]{Items: []int{1, 2, 3}}, nil
	}

	got, err := Collect(context.Background(), list, nil)
	if err != nil {
		t.Fatalf("Collect() error = %v", err)
	}
	if len(got) != 3 || calls != 1 {
		t.Errorf("Collect() = %v after %d calls, want 3 items after 1 call", got, calls)
	}
}

func TestCollect_Error(t *testing.T) {
	boom := errors.New("boom")
	list := func(ctx context.Context, params Params) (Page[int], error) {
		if params["pageToken"] == "t1" {
			return Page[int]{}, boom
		}
		return Page[int]{Items: []int{1}, NextPageToken: "t1"}, nil
	}

	if _, err := Collect(context.Background(), list, nil); !errors.Is(err, boom) {
		t.Errorf("Collect() error = %v, want %v", err, boom)
	}
}

func TestCollect_RepeatedToken(t *testing.T) {
	list := func(ctx context.Context, params Params) (Page[int], error) {
		return Page[int]{Items: []int{1}, NextPageToken: "loop"}, nil
	}

	if _, err := Collect(context.Background(), list, nil); !errors.Is(err, ErrRepeatedPageToken) {
		t.Errorf("Collect() error = %v, want ErrRepeatedPageToken", err)
	}
}

func TestCollect_ContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	list := func(ctx context.Context, params Params) (Page[int], error) {
		t.Fatal("list called after cancel")
		return Page[int]{}, nil
	}
	if _, err := Collect(ctx, list, nil); !errors.Is(err, context.Canceled) {
		t.Errorf("Collect() error = %v, want context.Canceled", err)
	}
}

func TestParams(t *testing.T) {
	p := Params{"part": "id,snippet", "q": ""}

	if got := p.Compact(); len(got) != 1 || got["part"] != "id,snippet" {
		t.Errorf("Compact() = %v", got)
	}
	if _, ok := p["q"]; !ok {
		t.Error("Compact() modified the receiver")
	}

	w := p.With("pageToken", "x")
	if w["pageToken"] != "x" {
		t.Errorf("With() pageToken = %q", w["pageToken"])
	}
	if _, ok := p["pageToken"]; ok {
		t.Error("With() modified the receiver")
	}

	if got, want := p.Parts(), []string{"id", "snippet"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Parts() = %v, want %v", got, want)
	}
	if got := (Params{}).Parts(); got != nil {
		t.Errorf("Parts() of empty = %v, want nil", got)
	}

	if got := len(Params{"part": "id", "a": "1", "b": "2"}.callOptions()); got != 2 {
		t.Errorf("callOptions() len = %d, want 2", got)
	}
}
