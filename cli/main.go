package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	flag "github.com/spf13/pflag"
	"google.golang.org/api/option"

	ythttp "ytcombine/http"
	"ytcombine/internal/auth"
	"ytcombine/internal/config"
	"ytcombine/internal/retry"
	"ytcombine/internal/storage"
	"ytcombine/youtube"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitCode(err)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(stderr, "Error loading config: %v\n", err)
		return 1
	}
	opts.apply(cfg)

	logger := newLogger(stderr, cfg.Debug)
	logger.Debug("parsed arguments",
		slog.String("username", opts.username),
		slog.String("channel", opts.channel),
		slog.String("matches", opts.matches),
		slog.Bool("sort", opts.sort),
		slog.String("privacy", opts.privacy),
		slog.String("title", opts.title),
		slog.Bool("dry_run", opts.dryRun),
		slog.Int("workers", cfg.ScoreWorkers))

	report := storage.NewReport(time.Now())
	res, err := combine(ctx, cfg, opts, stdin, stdout, stderr, logger)

	if cfg.ReportFile != "" {
		fillReport(report, opts, res, err, time.Now())
		if rerr := storage.SaveReport(cfg.ReportFile, report); rerr != nil {
			logger.Warn("could not write report", slog.String("path", cfg.ReportFile), slog.Any("error", rerr))
		} else {
			logger.Debug("report written", slog.String("path", cfg.ReportFile), slog.String("run_id", report.RunID))
		}
	}

	switch {
	case err == nil:
	case errors.Is(err, youtube.ErrPlaylistNotCreated):
		logger.Debug("publish skipped", slog.Any("error", err))
	case errors.Is(err, youtube.ErrChannelNotFound):
		fmt.Fprintf(stderr, "Unable to find channel: %v\n", err)
	default:
		fmt.Fprintf(stderr, "Error: %v\n", err)
	}
	return exitCode(err)
}

func combine(ctx context.Context, cfg *config.Config, opts *options, stdin io.Reader, stdout, stderr io.Writer, logger *slog.Logger) (*youtube.Result, error) {
	oauthCfg, err := auth.LoadConfig(cfg.ClientSecretsFile)
	if err != nil {
		return nil, err
	}

	base := ythttp.New(&ythttp.Config{
		Timeout:     cfg.HTTPTimeout,
		RequestRate: cfg.RequestRate,
		Burst:       1,
		UserAgent:   cfg.UserAgent,
		Transport:   ythttp.DefaultTransportConfig(),
	})
	authn := &auth.Authenticator{
		Config: oauthCfg,
		Cache:  storage.NewTokenStore(cfg.TokenCacheFile),
		In:     stdin,
		Out:    stderr,
		Logger: logger,
	}
	client, err := authn.Client(ctx, base)
	if err != nil {
		return nil, err
	}

	apiClient, err := youtube.NewAPIClient(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, err
	}
	api := youtube.WithListRetry(apiClient, retry.Config{
		MaxAttempts: cfg.ListRetries + 1,
		Backoff:     retry.Exponential(cfg.InitialBackoff, cfg.MaxBackoff, cfg.BackoffMultiplier, 0.1),
		OnRetry: func(attempt int, err error, wait time.Duration) {
			logger.Debug("retrying list call", slog.Int("attempt", attempt), slog.Duration("wait", wait), slog.Any("error", err))
		},
	}, nil)

	combiner := &youtube.Combiner{
		API:    api,
		Scorer: &youtube.Scorer{API: api, Workers: cfg.ScoreWorkers, Logger: logger},
		Publisher: &youtube.Publisher{
			API: api,
			Retry: retry.Config{
				MaxAttempts: cfg.InsertAttempts,
				Backoff:     retry.SelfPower(cfg.InsertUnit),
			},
			Logger: logger,
		},
		PageSize: cfg.PageSize,
		Out:      stdout,
		Logger:   logger,
	}

	return combiner.Run(ctx, youtube.Options{
		Username:  opts.username,
		ChannelID: opts.channel,
		Pattern:   opts.matches,
		Sort:      opts.sort,
		DryRun:    opts.dryRun,
		Playlist: youtube.PlaylistSpec{
			Title:       opts.title,
			Description: opts.description,
			Privacy:     opts.privacy,
		},
	})
}

func newLogger(w io.Writer, debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
