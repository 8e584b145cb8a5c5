package storage

import (
	"encoding/json"
	"errors"
	"os"
	"time"

	"github.com/google/uuid"
)

// PlaylistRef identifies a source playlist in a Report.
type PlaylistRef struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// Report records what a single combine run did.
type Report struct {
	RunID      string    `json:"run_id"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at,omitempty"`

	Channel string        `json:"channel"`
	Pattern string        `json:"pattern"`
	Sources []PlaylistRef `json:"sources"`
	Sorted  bool          `json:"sorted"`
	DryRun  bool          `json:"dry_run,omitempty"`

	PlaylistID  string   `json:"playlist_id,omitempty"`
	PlaylistURL string   `json:"playlist_url,omitempty"`
	Videos      []string `json:"videos"`
	Inserted    []string `json:"inserted,omitempty"`
	Abandoned   []string `json:"abandoned,omitempty"`
	Error       string   `json:"error,omitempty"`
}

// NewReport starts a report with a fresh run id.
func NewReport(now time.Time) *Report {
	return &Report{
		RunID:     uuid.NewString(),
		StartedAt: now,
	}
}

// SaveReport writes r to path atomically.
func SaveReport(path string, r *Report) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return &StorageError{Op: "write", Entity: "report", ID: path, Err: err}
	}
	if err := WriteFile(path, data, 0644); err != nil {
		return &StorageError{Op: "write", Entity: "report", ID: path, Err: err}
	}
	return nil
}

// LoadReport reads a report written by SaveReport.
func LoadReport(path string) (*Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, &StorageError{Op: "read", Entity: "report", ID: path, Err: ErrNotFound}
		}
		return nil, &StorageError{Op: "read", Entity: "report", ID: path, Err: err}
	}
	var r Report
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, &StorageError{Op: "read", Entity: "report", ID: path, Err: ErrStorageCorrupt}
	}
	return &r, nil
}
