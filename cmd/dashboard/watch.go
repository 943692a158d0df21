package main

import (
	"bufio"
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/jonathan/content-dashboard/internal/config"
	"github.com/jonathan/content-dashboard/internal/logging"
	"github.com/jonathan/content-dashboard/internal/observability"
	"github.com/jonathan/content-dashboard/internal/poller"
	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Poll the dashboard API from the terminal",
	Long:  "Poll the dashboard endpoint on an interval and redraw the terminal. Press Enter to refresh immediately.",
	RunE:  runWatch,
}

var (
	watchURL      string
	watchInterval string
)

func init() {
	watchCmd.Flags().StringVar(&watchURL, "url", "", "Dashboard endpoint (overrides DASHBOARD_URL)")
	watchCmd.Flags().StringVar(&watchInterval, "interval", "", "Poll interval, e.g. 30s (overrides POLL_INTERVAL)")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Resolve(configPath)
	if err != nil {
		return err
	}
	if err := cfg.ApplyFile(&config.File{DashboardURL: watchURL, PollInterval: watchInterval}); err != nil {
		return err
	}
	if err := cfg.ValidateClient(); err != nil {
		return err
	}

	// logs go to stderr so they do not interleave with the redrawn screen
	logger := logging.New(cmd.ErrOrStderr(), cfg.LogLevel, cfg.LogFormat)

	fetcher, err := poller.NewHTTPFetcher(cfg.DashboardURL, cfg.RequestTimeout)
	if err != nil {
		return err
	}
	client := poller.New(fetcher, poller.Options{
		Interval: cfg.PollInterval,
		Renderer: observability.NewTerminalPrinter(cmd.OutOrStdout()),
		Logger:   logger,
	})

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go readRefreshKeys(ctx, bufio.NewScanner(cmd.InOrStdin()), client.Refresh)
	return client.Run(ctx)
}

// readRefreshKeys calls refresh for every line read until ctx is done or input ends
func readRefreshKeys(ctx context.Context, scanner *bufio.Scanner, refresh func()) {
	for scanner.Scan() {
		if ctx.Err() != nil {
			return
		}
		refresh()
	}
}
