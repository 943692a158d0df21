package main

import (
	"fmt"
	"log/slog"

	"github.com/jonathan/content-dashboard/internal/config"
	"github.com/jonathan/content-dashboard/internal/dashboard"
	"github.com/jonathan/content-dashboard/internal/logging"
	"github.com/jonathan/content-dashboard/internal/server"
	"github.com/jonathan/content-dashboard/internal/server/ratelimit"
	"github.com/spf13/cobra"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the dashboard HTTP server",
	Long:  `Start an HTTP server that exposes /api/data and the dashboard page.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides PORT)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Resolve(configPath)
	if err != nil {
		return err
	}
	if servePort != 0 {
		cfg.Port = servePort
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logging.Setup(cfg.LogLevel, cfg.LogFormat)
	logger := slog.Default()

	src, err := newSource(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to create row source: %w", err)
	}
	svc := dashboard.NewService(src, cfg.SpreadsheetID, logger)

	srv, err := server.New(server.Config{
		Addr:            cfg.Addr(),
		PollInterval:    cfg.PollInterval,
		ShutdownTimeout: cfg.ShutdownTimeout,
		RateLimit: ratelimit.NewConfig(
			cfg.RateLimit.Enabled,
			cfg.RateLimit.Limit,
			cfg.RateLimit.Window,
			cfg.RateLimit.Burst,
			cfg.RateLimit.Whitelist,
		),
		Logger: logger,
	}, svc)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	logger.Info("dashboard configured", "source", cfg.Source, "addr", cfg.Addr())
	return srv.Start(cmd.Context())
}
