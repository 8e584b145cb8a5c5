package youtube

import (
	"fmt"
	"regexp"
	"strings"

	yt "google.golang.org/api/youtube/v3"
)

// Glob is a compiled shell-style pattern: "*" matches any run of characters
// (including "/"), "?" matches one character, "[seq]" and "[!seq]" match a
// character class. Matching is case-sensitive.
type Glob struct {
	pattern string
	re      *regexp.Regexp
}

// CompileGlob compiles pattern. An unterminated "[" is taken literally.
func CompileGlob(pattern string) (*Glob, error) {
	re, err := regexp.Compile(translateGlob(pattern))
	if err != nil {
		return nil, fmt.Errorf("youtube: bad glob %q: %w", pattern, err)
	}
	return &Glob{pattern: pattern, re: re}, nil
}

// Match reports whether s matches the whole pattern.
func (g *Glob) Match(s string) bool {
	return g.re.MatchString(s)
}

// String returns the source pattern.
func (g *Glob) String() string { return g.pattern }

func translateGlob(pattern string) string {
	var b strings.Builder
	b.WriteString(`(?s)\A`)

	n := len(pattern)
	for i := 0; i < n; {
		c := pattern[i]
		switch c {
		case '*':
			b.WriteString(".*")
			i++
		case '?':
			b.WriteString(".")
			i++
		case '[':
			j := i + 1
			if j < n && pattern[j] == '!' {
				j++
			}
			if j < n && pattern[j] == ']' {
				j++
			}
			for j < n && pattern[j] != ']' {
				j++
			}
			if j >= n {
				b.WriteString(`\[`)
				i++
				continue
			}
			class := strings.ReplaceAll(pattern[i+1:j], `\`, `\\`)
			class = strings.ReplaceAll(class, `[`, `\[`)
			switch {
			case strings.HasPrefix(class, "!"):
				class = "^" + class[1:]
			case strings.HasPrefix(class, "^"):
				class = `\` + class
			}
			b.WriteString("[" + class + "]")
			i = j + 1
		default:
			b.WriteString(regexp.QuoteMeta(pattern[i : i+1]))
			i++
		}
	}

	b.WriteString(`\z`)
	return b.String()
}

// MatchTitle reports whether title matches the glob pattern.
func MatchTitle(pattern, title string) (bool, error) {
	g, err := CompileGlob(pattern)
	if err != nil {
		return false, err
	}
	return g.Match(title), nil
}

// FilterPlaylists returns the playlists whose snippet title matches pattern,
// preserving order.
func FilterPlaylists(playlists []*yt.Playlist, pattern string) ([]*yt.Playlist, error) {
	g, err := CompileGlob(pattern)
	if err != nil {
		return nil, err
	}

	var out []*yt.Playlist
	for _, pl := range playlists {
		if pl == nil {
			continue
		}
		if g.Match(playlistTitle(pl)) {
			out = append(out, pl)
		}
	}
	return out, nil
}

func playlistTitle(pl *yt.Playlist) string {
	if pl.Snippet == nil {
		return ""
	}
	return pl.Snippet.Title
}
