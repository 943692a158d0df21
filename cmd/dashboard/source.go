package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/jonathan/content-dashboard/internal/config"
	"github.com/jonathan/content-dashboard/internal/sheets"
)

// newSource builds the row source selected by cfg
func newSource(cfg *config.Config, logger *slog.Logger) (sheets.Source, error) {
	switch cfg.Source {
	case config.SourceWorkbook:
		return sheets.NewWorkbookSource(cfg.WorkbookPath, cfg.ActivityRange, cfg.StatusRange, logger)
	case config.SourceSheets:
		return sheets.NewGoogleSource(sheets.GoogleOptions{
			SpreadsheetID:   cfg.SpreadsheetID,
			ActivityRange:   cfg.ActivityRange,
			StatusRange:     cfg.StatusRange,
			CredentialsJSON: cfg.CredentialsJSON,
			CredentialsFile: cfg.CredentialsFile,
			Timeout:         cfg.RequestTimeout,
			Logger:          logger,
		})
	default:
		return nil, fmt.Errorf("unknown source %q", cfg.Source)
	}
}

// loadRows reads a JSON array of rows, header first, into a static source
func loadRows(path string) (*sheets.StaticSource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows file: %w", err)
	}
	var rows [][]string
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("failed to parse rows file: %w", err)
	}
	return &sheets.StaticSource{Rows: rows, EngineStatus: sheets.DefaultEngineStatus}, nil
}
