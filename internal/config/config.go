// Package config manages application configuration.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	// OAuth settings
	ClientSecretsFile string `json:"client_secrets_file"`
	TokenCacheFile    string `json:"token_cache_file"`

	// API settings
	PageSize    int64         `json:"page_size"`
	RequestRate float64       `json:"request_rate"`
	HTTPTimeout time.Duration `json:"http_timeout"`
	UserAgent   string        `json:"user_agent"`

	// Listing retry settings
	ListRetries       int           `json:"list_retries"`
	InitialBackoff    time.Duration `json:"initial_backoff"`
	MaxBackoff        time.Duration `json:"max_backoff"`
	BackoffMultiplier float64       `json:"backoff_multiplier"`

	// Publishing settings
	InsertAttempts int           `json:"insert_attempts"`
	InsertUnit     time.Duration `json:"insert_backoff_unit"`

	// Scoring settings
	ScoreWorkers int `json:"score_workers"`

	// Output settings
	ReportFile string `json:"report_file"`
	Debug      bool   `json:"debug"`
}

// DefaultConfig returns configuration with safe defaults.
func DefaultConfig() *Config {
	return &Config{
		ClientSecretsFile: "client_id.json",
		TokenCacheFile:    filepath.Join(configDir(), "token.json"),
		PageSize:          50,
		RequestRate:       5,
		HTTPTimeout:       30 * time.Second,
		UserAgent:         "ytcombine/1.0",
		ListRetries:       3,
		InitialBackoff:    1 * time.Second,
		MaxBackoff:        30 * time.Second,
		BackoffMultiplier: 2.0,
		InsertAttempts:    5,
		InsertUnit:        time.Second,
		ScoreWorkers:      1,
	}
}

func configDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "ytcombine")
	}
	return filepath.Join(os.Getenv("HOME"), ".config", "ytcombine")
}

// Load loads configuration from environment variables, a .env file, a config
// file, and applies defaults.
// Priority: env vars > .env > config file > defaults
func Load() (*Config, error) {
	cfg := DefaultConfig()

	if err := cfg.loadFromFile(cfg.filePaths()); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("load config file: %w", err)
		}
	}

	// godotenv.Load never overrides variables that are already set.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	if err := cfg.loadFromEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) filePaths() []string {
	if p := os.Getenv("YTCOMBINE_CONFIG"); p != "" {
		return []string{p}
	}
	return []string{
		"ytcombine.json",
		filepath.Join(configDir(), "ytcombine.json"),
	}
}

// loadFromFile loads the first config file found in paths.
func (c *Config) loadFromFile(paths []string) error {
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return err
		}

		if err := json.Unmarshal(data, c); err != nil {
			return fmt.Errorf("parse %s: %w", path, err)
		}
		return nil
	}

	return os.ErrNotExist
}

// loadFromEnv overrides config with YTCOMBINE_* environment variables.
func (c *Config) loadFromEnv() error {
	if v := os.Getenv("YTCOMBINE_CLIENT_SECRETS"); v != "" {
		c.ClientSecretsFile = v
	}
	if v := os.Getenv("YTCOMBINE_TOKEN_CACHE"); v != "" {
		c.TokenCacheFile = v
	}
	if v := os.Getenv("YTCOMBINE_REPORT"); v != "" {
		c.ReportFile = v
	}
	if v := os.Getenv("YTCOMBINE_USER_AGENT"); v != "" {
		c.UserAgent = v
	}
	if v := os.Getenv("YTCOMBINE_DEBUG"); v != "" {
		c.Debug = v == "true" || v == "1"
	}

	ints := []struct {
		key string
		dst *int
	}{
		{"YTCOMBINE_LIST_RETRIES", &c.ListRetries},
		{"YTCOMBINE_INSERT_ATTEMPTS", &c.InsertAttempts},
		{"YTCOMBINE_SCORE_WORKERS", &c.ScoreWorkers},
	}
	for _, e := range ints {
		if v := os.Getenv(e.key); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("%s: %w", e.key, err)
			}
			*e.dst = n
		}
	}

	if v := os.Getenv("YTCOMBINE_PAGE_SIZE"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("YTCOMBINE_PAGE_SIZE: %w", err)
		}
		c.PageSize = n
	}
	if v := os.Getenv("YTCOMBINE_REQUEST_RATE"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("YTCOMBINE_REQUEST_RATE: %w", err)
		}
		c.RequestRate = f
	}

	durations := []struct {
		key string
		dst *time.Duration
	}{
		{"YTCOMBINE_HTTP_TIMEOUT", &c.HTTPTimeout},
		{"YTCOMBINE_INITIAL_BACKOFF", &c.InitialBackoff},
		{"YTCOMBINE_MAX_BACKOFF", &c.MaxBackoff},
		{"YTCOMBINE_INSERT_BACKOFF_UNIT", &c.InsertUnit},
	}
	for _, e := range durations {
		if v := os.Getenv(e.key); v != "" {
			d, err := time.ParseDuration(v)
			if err != nil {
				return fmt.Errorf("%s: %w", e.key, err)
			}
			*e.dst = d
		}
	}
	return nil
}

// Validate checks configuration validity.
func (c *Config) Validate() error {
	if c.ClientSecretsFile == "" {
		return fmt.Errorf("client_secrets_file must be set")
	}
	if c.TokenCacheFile == "" {
		return fmt.Errorf("token_cache_file must be set")
	}
	if c.PageSize < 1 || c.PageSize > 50 {
		return fmt.Errorf("page_size must be between 1 and 50")
	}
	if c.RequestRate < 0 {
		return fmt.Errorf("request_rate must be non-negative")
	}
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("http_timeout must be positive")
	}
	if c.ListRetries < 0 {
		return fmt.Errorf("list_retries must be non-negative")
	}
	if c.InitialBackoff <= 0 {
		return fmt.Errorf("initial_backoff must be positive")
	}
	if c.MaxBackoff < c.InitialBackoff {
		return fmt.Errorf("max_backoff must be >= initial_backoff")
	}
	if c.BackoffMultiplier <= 1 {
		return fmt.Errorf("backoff_multiplier must be > 1")
	}
	if c.InsertAttempts < 1 {
		return fmt.Errorf("insert_attempts must be at least 1")
	}
	if c.InsertUnit < 0 {
		return fmt.Errorf("insert_backoff_unit must be non-negative")
	}
	if c.ScoreWorkers < 1 {
		return fmt.Errorf("score_workers must be at least 1")
	}
	return nil
}
