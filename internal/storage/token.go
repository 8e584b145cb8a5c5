package storage

import (
	"encoding/json"
	"errors"
	"os"
	"time"

	"golang.org/x/oauth2"
)

const defaultLockTimeout = 5 * time.Second

// TokenStore caches an OAuth token as JSON on disk.
type TokenStore struct {
	Path        string
	LockTimeout time.Duration
}

// NewTokenStore returns a store for the token file at path.
func NewTokenStore(path string) *TokenStore {
	return &TokenStore{Path: path, LockTimeout: defaultLockTimeout}
}

// Load reads the cached token. It returns ErrNotFound when no token has been
// saved yet.
func (s *TokenStore) Load() (*oauth2.Token, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, &StorageError{Op: "read", Entity: "token", ID: s.Path, Err: ErrNotFound}
		}
		return nil, &StorageError{Op: "read", Entity: "token", ID: s.Path, Err: err}
	}

	var tok oauth2.Token
	if err := json.Unmarshal(data, &tok); err != nil {
		return nil, &StorageError{Op: "read", Entity: "token", ID: s.Path, Err: ErrStorageCorrupt}
	}
	return &tok, nil
}

// Save replaces the cached token atomically with owner-only permissions.
func (s *TokenStore) Save(tok *oauth2.Token) error {
	data, err := json.MarshalIndent(tok, "", "  ")
	if err != nil {
		return &StorageError{Op: "write", Entity: "token", ID: s.Path, Err: err}
	}

	timeout := s.LockTimeout
	if timeout <= 0 {
		timeout = defaultLockTimeout
	}
	err = WithLock(s.Path, timeout, func() error {
		return WriteFile(s.Path, data, 0600)
	})
	if err != nil {
		var serr *StorageError
		if errors.As(err, &serr) {
			return err
		}
		return &StorageError{Op: "write", Entity: "token", ID: s.Path, Err: err}
	}
	return nil
}
