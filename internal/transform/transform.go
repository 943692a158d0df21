// Package transform converts raw activity-sheet rows into the dashboard view model.
package transform

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/jonathan/content-dashboard/internal/types"
)

const (
	// MaxActivity is the number of records echoed in the activity list
	MaxActivity = 10

	// NoActivity is the lastActivity value of the zero state
	NoActivity = "Never"

	// FieldContentStrategy is the lower-cased header of column G
	FieldContentStrategy = "content strategy"

	fieldTimestamp = "timestamp"
	fieldPlatform  = "platform"

	// positional columns: B and C of the activity sheet
	colOriginalLink = 1
	colFinalLink    = 2
)

var titlePattern = regexp.MustCompile(`(?s)TITLE:(.*?)(?:\n\n|$)`)

// Empty returns the zero-state response used when the sheet has no data rows.
// Success is 100 here while ComputeStats reports 0 for an empty record set;
// both are placeholders.
func Empty() *types.DashboardResponse {
	return &types.DashboardResponse{
		Stats: types.Stats{
			Total:        0,
			Success:      100,
			Processing:   0,
			LastActivity: NoActivity,
		},
		Activity:             []types.ActivityRecord{},
		PlatformDistribution: []types.PlatformCount{},
	}
}

// Transform builds the dashboard view model from a header row followed by data rows.
// The first data row is assumed to be the most recent one.
func Transform(rows [][]string) *types.DashboardResponse {
	if len(rows) <= 1 {
		return Empty()
	}

	records := Records(rows[0], rows[1:])
	activity := records
	if len(activity) > MaxActivity {
		activity = activity[:MaxActivity]
	}

	return &types.DashboardResponse{
		Stats:                ComputeStats(records),
		Activity:             activity,
		PlatformDistribution: Distribution(records),
	}
}

// Records maps every data row to an ActivityRecord in original order
func Records(header []string, data [][]string) []types.ActivityRecord {
	keys := make([]string, len(header))
	for i, h := range header {
		keys[i] = strings.ToLower(h)
	}

	total := len(data)
	records := make([]types.ActivityRecord, 0, total)
	for i, row := range data {
		records = append(records, buildRecord(keys, row, total-i))
	}
	return records
}

func buildRecord(keys []string, row []string, number int) types.ActivityRecord {
	fields := make(map[string]string, len(keys))
	for i, key := range keys {
		if i < len(row) {
			fields[key] = row[i]
		}
	}

	rec := types.ActivityRecord{
		Timestamp: fields[fieldTimestamp],
		Platform:  fields[fieldPlatform],
		Fields:    fields,
	}

	rec.Title = fmt.Sprintf("Video %d", number)
	if strategy, ok := fields[FieldContentStrategy]; ok {
		if title := ExtractTitle(strategy); title != "" {
			rec.Title = title
		}
	}

	// Links are read by column position even when the header names them
	// differently; the name-keyed copies stay in Fields.
	rec.SetLinks(cell(row, colOriginalLink), cell(row, colFinalLink))
	return rec
}

func cell(row []string, idx int) *string {
	if idx >= len(row) {
		return nil
	}
	return &row[idx]
}

// ExtractTitle returns the trimmed text following TITLE: up to the first blank
// line, or an empty string when the label is missing.
func ExtractTitle(strategy string) string {
	m := titlePattern.FindStringSubmatch(strategy)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}

// ComputeStats derives the aggregate counters for a record set
func ComputeStats(records []types.ActivityRecord) types.Stats {
	stats := types.Stats{Total: len(records)}
	if stats.Total > 0 {
		stats.Success = 100
		stats.LastActivity = records[0].Timestamp
	}
	return stats
}

// Distribution tallies platform names across all records in first-seen order.
// Tokens that are empty after trimming are skipped.
func Distribution(records []types.ActivityRecord) []types.PlatformCount {
	dist := []types.PlatformCount{}
	index := make(map[string]int)

	for _, rec := range records {
		for _, name := range SplitPlatforms(rec.Platform) {
			if i, ok := index[name]; ok {
				dist[i].Value++
				continue
			}
			index[name] = len(dist)
			dist = append(dist, types.PlatformCount{Name: name, Value: 1})
		}
	}
	return dist
}

// SplitPlatforms splits a comma-separated platform cell into trimmed, non-empty names
func SplitPlatforms(platform string) []string {
	if platform == "" {
		return nil
	}
	parts := strings.Split(platform, ",")
	names := make([]string, 0, len(parts))
	for _, p := range parts {
		if name := strings.TrimSpace(p); name != "" {
			names = append(names, name)
		}
	}
	return names
}
