package main

import (
	"errors"
	"fmt"
	"io"

	flag "github.com/spf13/pflag"

	"ytcombine/internal/config"
	"ytcombine/youtube"
)

const (
	defaultTitle       = "YouTube Combiner Playlist Output"
	defaultDescription = "ITS A PLAYLIST OF PLAYLISTS!!!111"
)

var errUsage = errors.New("usage error")

type options struct {
	username    string
	channel     string
	matches     string
	sort        bool
	debug       bool
	dryRun      bool
	privacy     string
	title       string
	description string

	clientSecrets string
	tokenCache    string
	report        string
	workers       int

	set map[string]bool
}

func parseFlags(args []string, stderr io.Writer) (*options, error) {
	opts := &options{set: make(map[string]bool)}

	fs := flag.NewFlagSet("ytcombine", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.username, "username", "", "Username of the channel to read playlists from")
	fs.StringVar(&opts.channel, "channel", "", "ID of the channel to read playlists from")
	fs.StringVar(&opts.matches, "matches", "*", "Glob matched against playlist titles")
	fs.BoolVar(&opts.sort, "sort", false, "Sort videos by engagement score before adding them")
	fs.BoolVar(&opts.debug, "debug", false, "Print debug output")
	fs.StringVar(&opts.privacy, "privacy", youtube.PrivacyPublic, "Privacy of the new playlist: public, private or unlisted")
	fs.StringVar(&opts.title, "title", defaultTitle, "Title of the new playlist")
	fs.StringVar(&opts.description, "description", defaultDescription, "Description of the new playlist")

	fs.StringVar(&opts.clientSecrets, "client-secrets", "", "OAuth client secrets file (overrides config)")
	fs.StringVar(&opts.tokenCache, "token-cache", "", "File caching the OAuth token (overrides config)")
	fs.StringVar(&opts.report, "report", "", "Write a JSON run report to this file")
	fs.IntVar(&opts.workers, "workers", 1, "Concurrent statistics lookups when sorting")
	fs.BoolVar(&opts.dryRun, "dry-run", false, "Show the resulting order without creating anything")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: ytcombine (--username NAME | --channel ID) [flags]\n\nCombine the playlists of a channel into one new playlist.\n\nFlags:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", errUsage, err)
	}
	fs.Visit(func(f *flag.Flag) { opts.set[f.Name] = true })

	if err := opts.validate(fs.Args()); err != nil {
		fs.Usage()
		return nil, err
	}
	return opts, nil
}

func (o *options) validate(rest []string) error {
	switch {
	case len(rest) > 0:
		return fmt.Errorf("%w: unexpected arguments %q", errUsage, rest)
	case o.username != "" && o.channel != "":
		return fmt.Errorf("%w: --username and --channel are mutually exclusive", errUsage)
	case o.username == "" && o.channel == "":
		return fmt.Errorf("%w: one of --username or --channel is required", errUsage)
	case !youtube.ValidPrivacy(o.privacy):
		return fmt.Errorf("%w: invalid --privacy %q (use public, private or unlisted)", errUsage, o.privacy)
	case o.workers < 1:
		return fmt.Errorf("%w: --workers must be at least 1", errUsage)
	}
	return nil
}

// apply overrides cfg with the flags given on the command line.
func (o *options) apply(cfg *config.Config) {
	if o.set["client-secrets"] {
		cfg.ClientSecretsFile = o.clientSecrets
	}
	if o.set["token-cache"] {
		cfg.TokenCacheFile = o.tokenCache
	}
	if o.set["report"] {
		cfg.ReportFile = o.report
	}
	if o.set["workers"] {
		cfg.ScoreWorkers = o.workers
	}
	if o.debug {
		cfg.Debug = true
	}
}
