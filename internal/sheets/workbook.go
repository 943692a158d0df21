package sheets

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/xuri/excelize/v2"
)

// WorkbookSource reads the activity log from a local .xlsx export of the
// spreadsheet. The file is reopened on every Fetch.
type WorkbookSource struct {
	path     string
	activity A1Range
	status   *A1Range
	logger   *slog.Logger
}

// NewWorkbookSource builds a source for the workbook at path using the same
// A1 ranges as the Sheets API source. An empty statusRange disables the status read.
func NewWorkbookSource(path, activityRange, statusRange string, logger *slog.Logger) (*WorkbookSource, error) {
	if path == "" {
		return nil, fmt.Errorf("workbook path is required")
	}
	activity, err := ParseA1(activityRange)
	if err != nil {
		return nil, err
	}

	src := &WorkbookSource{path: path, activity: activity, logger: logger}
	if src.logger == nil {
		src.logger = slog.Default()
	}
	src.logger = src.logger.With("source", "workbook")

	if statusRange != "" {
		status, err := ParseA1(statusRange)
		if err != nil {
			return nil, err
		}
		src.status = &status
	}
	return src, nil
}

// Fetch reads the activity sheet and the status sheet from the workbook
func (s *WorkbookSource) Fetch(ctx context.Context) (*Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := excelize.OpenFile(s.path)
	if err != nil {
		return nil, &Error{Op: "connect", Cause: err}
	}
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows(s.activity.Sheet)
	if err != nil {
		return nil, &Error{Op: "read", Range: s.activity.Sheet, Cause: err}
	}

	snap := &Snapshot{
		Rows:         s.activity.Apply(rows),
		EngineStatus: DefaultEngineStatus,
	}

	if s.status != nil {
		statusRows, err := f.GetRows(s.status.Sheet)
		if err != nil {
			s.logger.Warn("status sheet unavailable, using default", "sheet", s.status.Sheet, "error", err)
			return snap, nil
		}
		if cut := s.status.Apply(statusRows); len(cut) > 0 {
			snap.EngineStatus = StatusText(cut[0])
		}
	}
	return snap, nil
}
