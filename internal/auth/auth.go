// Package auth obtains OAuth2 user credentials for the YouTube Data API
// through the installed-application flow and keeps them in a token cache.
package auth

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"strings"
	"sync"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/youtube/v3"

	"ytcombine/internal/storage"
)

// Scope grants full read/write access to the authenticated account over SSL.
const Scope = youtube.YoutubeForceSslScope

// ErrNoCode is returned when the user submits an empty authorization code.
var ErrNoCode = errors.New("auth: no authorization code entered")

// TokenCache persists tokens between runs.
type TokenCache interface {
	Load() (*oauth2.Token, error)
	Save(*oauth2.Token) error
}

// LoadConfig reads a client secrets file downloaded from the Google Cloud
// console.
func LoadConfig(path string) (*oauth2.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("auth: read client secrets: %w", err)
	}
	cfg, err := google.ConfigFromJSON(data, Scope)
	if err != nil {
		return nil, fmt.Errorf("auth: parse client secrets %s: %w", path, err)
	}
	return cfg, nil
}

// Authenticator runs the console flow when no usable token is cached.
type Authenticator struct {
	Config *oauth2.Config
	Cache  TokenCache
	In     io.Reader
	Out    io.Writer
	Logger *slog.Logger
}

// Client returns an HTTP client that authorizes requests, layered on base.
func (a *Authenticator) Client(ctx context.Context, base *http.Client) (*http.Client, error) {
	if base != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, base)
	}
	ts, err := a.TokenSource(ctx)
	if err != nil {
		return nil, err
	}
	return oauth2.NewClient(ctx, ts), nil
}

// TokenSource loads the cached token, or asks the user to authorize the
// application when there is none. Refreshed tokens are written back.
func (a *Authenticator) TokenSource(ctx context.Context) (oauth2.TokenSource, error) {
	tok, err := a.Cache.Load()
	switch {
	case err == nil:
	case errors.Is(err, storage.ErrNotFound), errors.Is(err, storage.ErrStorageCorrupt):
		if errors.Is(err, storage.ErrStorageCorrupt) {
			a.logger().Warn("auth: discarding unreadable token cache", slog.Any("error", err))
		}
		tok, err = a.exchange(ctx)
		if err != nil {
			return nil, err
		}
		if err := a.Cache.Save(tok); err != nil {
			a.logger().Warn("auth: could not cache token", slog.Any("error", err))
		}
	default:
		return nil, err
	}

	return &persistingSource{
		base:   a.Config.TokenSource(ctx, tok),
		cache:  a.Cache,
		last:   tok.AccessToken,
		logger: a.logger(),
	}, nil
}

func (a *Authenticator) exchange(ctx context.Context) (*oauth2.Token, error) {
	verifier := oauth2.GenerateVerifier()
	authURL := a.Config.AuthCodeURL("state", oauth2.AccessTypeOffline, oauth2.S256ChallengeOption(verifier))

	fmt.Fprintf(a.Out, "Please visit this URL to authorize this application:\n%s\n", authURL)
	fmt.Fprint(a.Out, "Enter the authorization code (or the full redirect URL): ")

	line, err := bufio.NewReader(a.In).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("auth: read code: %w", err)
	}
	code := parseCode(line)
	if code == "" {
		return nil, ErrNoCode
	}

	tok, err := a.Config.Exchange(ctx, code, oauth2.VerifierOption(verifier))
	if err != nil {
		return nil, fmt.Errorf("auth: exchange code: %w", err)
	}
	return tok, nil
}

// parseCode accepts either a bare code or the redirect URL carrying it.
func parseCode(input string) string {
	input = strings.TrimSpace(input)
	if strings.HasPrefix(input, "http://") || strings.HasPrefix(input, "https://") {
		if u, err := url.Parse(input); err == nil {
			return u.Query().Get("code")
		}
	}
	return input
}

func (a *Authenticator) logger() *slog.Logger {
	if a.Logger != nil {
		return a.Logger
	}
	return slog.Default()
}

type persistingSource struct {
	base   oauth2.TokenSource
	cache  TokenCache
	logger *slog.Logger

	mu   sync.Mutex
	last string
}

func (s *persistingSource) Token() (*oauth2.Token, error) {
	tok, err := s.base.Token()
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if tok.AccessToken != s.last {
		if err := s.cache.Save(tok); err != nil {
			s.logger.Warn("auth: could not cache refreshed token", slog.Any("error", err))
		}
		s.last = tok.AccessToken
	}
	return tok, nil
}
