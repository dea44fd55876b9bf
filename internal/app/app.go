package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"courtwatch/internal/availability"
	"courtwatch/internal/cache"
	"courtwatch/internal/config"
	"courtwatch/internal/feed"
	"courtwatch/internal/logging"
	"courtwatch/internal/notify"
	"courtwatch/internal/prefs"
	"courtwatch/internal/state"
	"courtwatch/internal/ui"
)

// Options configure the courtwatch application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/courtwatch/prefs.toml
	StatePath  string // overrides the configured state file path
	PollEvery  int    // seconds; zero uses the configured interval
	CSVPath    string // once mode: also export the table as CSV
	DryRun     bool   // log notifications instead of emailing
}

// Run boots the courtwatch TUI until the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}
	logging.Setup(cfg.LogLevel, os.Stderr)

	userPrefs, _ := prefs.Load(opts.PrefsPath)

	client, err := feed.NewClient(cfg.FeedURL)
	if err != nil {
		return fmt.Errorf("init feed client: %w", err)
	}

	store := &state.Store{}
	notifier := watchNotifier(cfg, opts.DryRun)

	interval := time.Duration(cfg.PollSeconds) * time.Second
	if opts.PollEvery > 0 {
		interval = time.Duration(opts.PollEvery) * time.Second
	}

	poller := NewPoller(client, store, notifier, cfg.StatePath)

	// Populate the store before the timer goroutine starts so the first
	// cycle is never run from two goroutines at once.
	poller.Refresh(ctx)

	// Start background poller
	StartPoller(ctx, poller, interval)

	uiOpts := ui.Options{
		Context:       ctx,
		Store:         store,
		PollTick:      interval,
		ThemeName:     userPrefs.Theme,
		PrefsPath:     opts.PrefsPath,
		InitialFilter: userPrefs.VenueFilter,
		Refresh:       poller.Kick,
	}
	return ui.Run(uiOpts)
}

// RunOnce performs a single poll-diff-notify cycle and exits. This is the
// cron mode: state is only persisted after a successful cycle, so a failed
// notification is retried on the next run.
func RunOnce(ctx context.Context, opts Options) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}
	logger := logging.Setup(cfg.LogLevel, os.Stderr)

	client, err := feed.NewClient(cfg.FeedURL)
	if err != nil {
		return fmt.Errorf("init feed client: %w", err)
	}

	logger.Info("fetching feed")
	payload, err := client.FetchAvailability(ctx)
	if err != nil {
		return fmt.Errorf("fetch feed: %w", err)
	}
	curr := availability.Tabularise(payload)

	prev, err := cache.Load(cfg.StatePath)
	if err != nil {
		return fmt.Errorf("load state: %w", err)
	}
	if prev == nil {
		logger.Info("no cached state found; starting fresh")
	}

	changed := availability.Diff(curr, prev)
	if len(changed) > 0 {
		notifier, err := buildNotifier(cfg, opts.DryRun)
		if err != nil {
			return err
		}
		logger.Info("sending notification", "changes", len(changed))
		if err := notifier.Notify(ctx, notify.ChangeSubject, notify.ChangeBody(changed)); err != nil {
			return fmt.Errorf("send notification: %w", err)
		}
	} else {
		logger.Info("no changes detected; no notification")
	}

	if opts.CSVPath != "" {
		if err := availability.ExportCSV(opts.CSVPath, curr); err != nil {
			return fmt.Errorf("export csv: %w", err)
		}
		logger.Info("exported table", "path", opts.CSVPath, "rows", len(curr))
	}

	if err := cache.Save(cfg.StatePath, curr); err != nil {
		return fmt.Errorf("save state: %w", err)
	}
	logger.Info("state saved", "path", cfg.StatePath, "rows", len(curr))
	return nil
}

func loadConfig(opts Options) (config.Config, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}
	if opts.StatePath != "" {
		cfg.StatePath = opts.StatePath
	}
	return cfg, nil
}

// buildNotifier picks the delivery mechanism for once mode. Email must be
// configured unless the run is a dry run.
func buildNotifier(cfg config.Config, dryRun bool) (notify.Notifier, error) {
	if dryRun {
		return notify.NewConsole(), nil
	}
	return notify.NewGmail(gmailConfig(cfg))
}

// watchNotifier never fails: watch mode falls back to console output when
// email is not configured so the UI still works.
func watchNotifier(cfg config.Config, dryRun bool) notify.Notifier {
	if dryRun || !cfg.EmailConfigured() {
		if !dryRun {
			slog.Warn("email not configured; notifications go to the log")
		}
		return notify.NewConsole()
	}
	notifier, err := notify.NewGmail(gmailConfig(cfg))
	if err != nil {
		slog.Warn("gmail notifier unavailable; notifications go to the log", "error", err)
		return notify.NewConsole()
	}
	return notifier
}

func gmailConfig(cfg config.Config) notify.GmailConfig {
	return notify.GmailConfig{
		From:         cfg.EmailFrom,
		To:           cfg.EmailTo,
		AccessToken:  cfg.AccessToken,
		RefreshToken: cfg.RefreshToken,
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
	}
}
