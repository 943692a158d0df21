// Package dashboard assembles the dashboard view model from a row source.
package dashboard

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jonathan/content-dashboard/internal/sheets"
	"github.com/jonathan/content-dashboard/internal/transform"
	"github.com/jonathan/content-dashboard/internal/types"
)

// Service builds the dashboard response on demand. It keeps no state between calls.
type Service struct {
	source        sheets.Source
	spreadsheetID string
	logger        *slog.Logger
}

// NewService creates a Service reading from source. spreadsheetID is echoed in
// responses so the UI can link to the sheet; it may be empty.
func NewService(source sheets.Source, spreadsheetID string, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{source: source, spreadsheetID: spreadsheetID, logger: logger}
}

// Build fetches the sheet and transforms it. The zero state is returned as the
// transformer produced it, without spreadsheetId or engineStatus.
func (s *Service) Build(ctx context.Context) (*types.DashboardResponse, error) {
	start := time.Now()

	snap, err := s.source.Fetch(ctx)
	if err != nil {
		return nil, &UpstreamError{Cause: err}
	}

	resp := transform.Transform(snap.Rows)
	if resp.Stats.Total > 0 {
		resp.SpreadsheetID = s.spreadsheetID
		resp.EngineStatus = snap.EngineStatus
	}

	s.logger.DebugContext(ctx, "dashboard built",
		"rows", resp.Stats.Total,
		"platforms", len(resp.PlatformDistribution),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return resp, nil
}

// Match identifies a record the caller saw in an earlier response. The zero
// Match selects purely by index.
type Match struct {
	Timestamp    string
	OriginalLink string
}

// IsZero reports whether m carries no identity
func (m Match) IsZero() bool {
	return m == Match{}
}

func (m Match) matches(rec types.ActivityRecord) bool {
	return rec.Timestamp == m.Timestamp && rec.OriginalLink == m.OriginalLink
}

// Activity returns one record of the current activity list together with its
// parsed content strategy.
//
// The sheet is read again, so rows may have moved since the caller's response.
// With a non-zero match the record at index is used only if it still matches;
// otherwise the matching record is looked up in the current list.
func (s *Service) Activity(ctx context.Context, index int, match Match) (*types.ActivityDetail, error) {
	resp, err := s.Build(ctx)
	if err != nil {
		return nil, err
	}

	count := len(resp.Activity)
	if match.IsZero() {
		if index < 0 || index >= count {
			return nil, &NotFoundError{Index: index, Count: count}
		}
		return Detail(index, resp.Activity[index]), nil
	}

	if index >= 0 && index < count && match.matches(resp.Activity[index]) {
		return Detail(index, resp.Activity[index]), nil
	}
	for i, rec := range resp.Activity {
		if match.matches(rec) {
			s.logger.DebugContext(ctx, "activity moved", "requested", index, "found", i)
			return Detail(i, rec), nil
		}
	}
	return nil, &NotFoundError{Index: index, Count: count, Moved: true}
}

// Detail builds the detail view of rec at position index
func Detail(index int, rec types.ActivityRecord) *types.ActivityDetail {
	strategy, _ := rec.Field(transform.FieldContentStrategy)
	return &types.ActivityDetail{
		Index:    index,
		Record:   rec,
		Strategy: transform.ParseContentStrategy(strategy),
	}
}

// UpstreamError wraps a failed read from the row source
type UpstreamError struct {
	Cause error
}

func (e *UpstreamError) Error() string {
	return e.Cause.Error()
}

func (e *UpstreamError) Unwrap() error {
	return e.Cause
}

// NotFoundError indicates an activity index outside the current list
type NotFoundError struct {
	Index int
	Count int
	Moved bool // the requested record is no longer in the list
}

func (e *NotFoundError) Error() string {
	if e.Moved {
		return fmt.Sprintf("activity %d is no longer in the recent list", e.Index)
	}
	return fmt.Sprintf("activity %d not found (have %d)", e.Index, e.Count)
}
