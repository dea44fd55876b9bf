package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"courtwatch/internal/app"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "override config path (optional)")
	statePath := flag.String("state", "", "override state file path (optional)")
	pollSeconds := flag.Int("poll", 0, "poll interval in seconds (optional)")
	once := flag.Bool("once", false, "poll once, notify on changes, and exit")
	csvPath := flag.String("csv", "", "with -once: also export the table as CSV")
	dryRun := flag.Bool("dry-run", false, "log notifications instead of emailing")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	opts := app.Options{
		ConfigPath: *configPath,
		StatePath:  *statePath,
		CSVPath:    *csvPath,
		DryRun:     *dryRun,
	}
	if poll := *pollSeconds; poll > 0 {
		opts.PollEvery = poll
	}

	var err error
	if *once {
		err = app.RunOnce(ctx, opts)
	} else {
		err = app.Run(ctx, opts)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "courtwatch: %v\n", err)
		return 1
	}
	return 0
}
