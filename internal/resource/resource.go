// Package resource turns flat dotted property maps into nested API request
// bodies.
//
// A key such as "snippet.title" addresses the "title" field of the
// "snippet" object. A trailing "[]" on the last segment ("snippet.tags[]")
// marks a comma-separated list value. Properties with empty values are left
// out of the result entirely, including any object that would only have
// held them.
package resource

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

const arraySuffix = "[]"

// Build nests props by their dotted keys. Keys are applied in sorted order so
// the result does not depend on map iteration; when a key needs an object
// where a scalar was already stored, the object replaces the scalar.
func Build(props map[string]string) map[string]any {
	keys := make([]string, 0, len(props))
	for k := range props {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make(map[string]any)
	for _, key := range keys {
		set(out, strings.Split(key, "."), props[key])
	}
	return out
}

func set(ref map[string]any, path []string, value string) {
	if value == "" {
		return
	}
	for i, seg := range path {
		name, isArray := strings.CutSuffix(seg, arraySuffix)

		if i == len(path)-1 {
			if isArray {
				ref[name] = strings.Split(value, ",")
			} else {
				ref[name] = value
			}
			return
		}

		next, ok := ref[name].(map[string]any)
		if !ok {
			next = make(map[string]any)
			ref[name] = next
		}
		ref = next
	}
}

// Decode builds props and unmarshals the nested result into out, which is
// typically a pointer to a generated API struct such as *youtube.Playlist.
func Decode(props map[string]string, out any) error {
	body, err := json.Marshal(Build(props))
	if err != nil {
		return fmt.Errorf("resource: encode: %w", err)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("resource: decode into %T: %w", out, err)
	}
	return nil
}
