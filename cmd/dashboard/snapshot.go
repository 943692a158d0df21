package main

import (
	"encoding/json"
	"fmt"

	"github.com/jonathan/content-dashboard/internal/config"
	"github.com/jonathan/content-dashboard/internal/dashboard"
	"github.com/jonathan/content-dashboard/internal/logging"
	"github.com/jonathan/content-dashboard/internal/observability"
	"github.com/jonathan/content-dashboard/internal/sheets"
	"github.com/spf13/cobra"
)

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Fetch and transform the activity sheet once",
	Long:  "Fetch the activity sheet once and print the dashboard, either boxed for the terminal or as the /api/data JSON body.",
	RunE:  runSnapshot,
}

var (
	snapshotJSON  bool
	snapshotRows  string
	snapshotIndex int
)

func init() {
	snapshotCmd.Flags().BoolVar(&snapshotJSON, "json", false, "Print the JSON response instead of the boxed view")
	snapshotCmd.Flags().StringVar(&snapshotRows, "rows", "", "Read rows from a JSON file ([[header...], [row...]]) instead of the configured source")
	snapshotCmd.Flags().IntVar(&snapshotIndex, "index", -1, "Show the detail view of one activity record")
	rootCmd.AddCommand(snapshotCmd)
}

func runSnapshot(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Resolve(configPath)
	if err != nil {
		return err
	}
	logger := logging.New(cmd.ErrOrStderr(), cfg.LogLevel, cfg.LogFormat)

	var (
		src           sheets.Source
		spreadsheetID string
	)
	if snapshotRows != "" {
		src, err = loadRows(snapshotRows)
	} else {
		if err = cfg.Validate(); err != nil {
			return err
		}
		src, err = newSource(cfg, logger)
		spreadsheetID = cfg.SpreadsheetID
	}
	if err != nil {
		return err
	}

	svc := dashboard.NewService(src, spreadsheetID, logger)
	ctx := cmd.Context()

	var out any
	printer := observability.NewPrinter(cmd.OutOrStdout())
	if snapshotIndex >= 0 {
		detail, err := svc.Activity(ctx, snapshotIndex, dashboard.Match{})
		if err != nil {
			return err
		}
		if !snapshotJSON {
			printer.PrintActivityDetail(detail)
			return nil
		}
		out = detail
	} else {
		resp, err := svc.Build(ctx)
		if err != nil {
			return err
		}
		if !snapshotJSON {
			printer.PrintDashboard(resp)
			return nil
		}
		out = resp
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("failed to encode response: %w", err)
	}
	return nil
}

