package youtube

import (
	"context"
	"sort"
	"strings"

	"google.golang.org/api/googleapi"
)

const (
	partParam      = "part"
	pageTokenParam = "pageToken"
)

// Params are the query parameters of a Data API call, keyed by their API
// names ("part", "channelId", "maxResults", "pageToken", ...).
type Params map[string]string

// Compact returns a copy of p without empty values.
func (p Params) Compact() Params {
	out := make(Params, len(p))
	for k, v := range p {
		if v != "" {
			out[k] = v
		}
	}
	return out
}

// With returns a copy of p with key set to value.
func (p Params) With(key, value string) Params {
	out := make(Params, len(p)+1)
	for k, v := range p {
		out[k] = v
	}
	out[key] = value
	return out
}

// Parts splits the comma-separated "part" parameter.
func (p Params) Parts() []string {
	if p[partParam] == "" {
		return nil
	}
	return strings.Split(p[partParam], ",")
}

// callOptions turns every parameter except "part" into a query option.
func (p Params) callOptions() []googleapi.CallOption {
	keys := make([]string, 0, len(p))
	for k := range p {
		if k != partParam {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	opts := make([]googleapi.CallOption, 0, len(keys))
	for _, k := range keys {
		opts = append(opts, googleapi.QueryParameter(k, p[k]))
	}
	return opts
}

// Page is one response of a paginated listing call.
type Page[T any] struct {
	Items         []T
	NextPageToken string
}

// ListFunc fetches one page for the given parameters.
type ListFunc[T any] func(ctx context.Context, params Params) (Page[T], error)

// Collect drains every page of list into one slice in response order.
// Empty parameters are dropped before each call and the continuation token
// of each response is sent as "pageToken" on the next.
func Collect[T any](ctx context.Context, list ListFunc[T], params Params) ([]T, error) {
	var all []T
	params = params.Compact()
	seen := make(map[string]bool)

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		page, err := list(ctx, params)
		if err != nil {
			return nil, err
		}
		all = append(all, page.Items...)

		token := page.NextPageToken
		if token == "" {
			return all, nil
		}
		if seen[token] {
			return nil, ErrRepeatedPageToken
		}
		seen[token] = true
		params = params.With(pageTokenParam, token)
	}
}
