// Package sheets reads the activity log and engine status from a spreadsheet.
//
// A Source returns the raw rows of the activity range (header first) and the
// engine status text. Sources never cache: every Fetch reads the sheet again.
package sheets

import (
	"context"
	"strings"
)

// DefaultEngineStatus is reported when the status range is missing, empty or unreadable
const DefaultEngineStatus = "Idle"

// Snapshot is one read of the spreadsheet
type Snapshot struct {
	Rows         [][]string
	EngineStatus string
}

// Source is a spreadsheet-backed row source
type Source interface {
	Fetch(ctx context.Context) (*Snapshot, error)
}

// StaticSource serves fixed rows. It is used by tests and offline demos.
type StaticSource struct {
	Rows         [][]string
	EngineStatus string
	Err          error
}

// Fetch returns a copy of the configured rows
func (s *StaticSource) Fetch(ctx context.Context) (*Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.Err != nil {
		return nil, s.Err
	}

	rows := make([][]string, len(s.Rows))
	for i, row := range s.Rows {
		rows[i] = append([]string(nil), row...)
	}
	status := s.EngineStatus
	if status == "" {
		status = DefaultEngineStatus
	}
	return &Snapshot{Rows: rows, EngineStatus: status}, nil
}

// StatusText picks the engine status from a status row laid out as
// [state, message]. The message wins over the state.
func StatusText(row []string) string {
	if len(row) > 1 {
		if v := strings.TrimSpace(row[1]); v != "" {
			return v
		}
	}
	if len(row) > 0 {
		if v := strings.TrimSpace(row[0]); v != "" {
			return v
		}
	}
	return DefaultEngineStatus
}
