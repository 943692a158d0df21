// Package observability provides formatted terminal output for the dashboard CLI.
package observability

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jonathan/content-dashboard/internal/poller"
	"github.com/jonathan/content-dashboard/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 10
	// barWidth is the width of the longest distribution bar
	barWidth = 20
)

// clearScreen moves the cursor home and clears the terminal
const clearScreen = "\033[H\033[2J"

// Printer handles formatted output of dashboard data
type Printer struct {
	out   io.Writer
	clear bool
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// NewTerminalPrinter creates a Printer that clears the screen before each state
func NewTerminalPrinter(out io.Writer) *Printer {
	return &Printer{out: out, clear: true}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(title, boxWidth-4))
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// truncate shortens s to at most n runes
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

// PrintStats outputs the aggregate counters and engine status
func (p *Printer) PrintStats(resp *types.DashboardResponse) {
	if resp == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Total:          %d\n", resp.Stats.Total))
	sb.WriteString(fmt.Sprintf("Success:        %d%%\n", resp.Stats.Success))
	sb.WriteString(fmt.Sprintf("Processing:     %d\n", resp.Stats.Processing))
	sb.WriteString(fmt.Sprintf("Last activity:  %s\n", orDefault(resp.Stats.LastActivity, "Never")))
	sb.WriteString(fmt.Sprintf("Engine:         %s", orDefault(resp.EngineStatus, "Idle")))
	if resp.SpreadsheetID != "" {
		sb.WriteString(fmt.Sprintf("\nSheet:          %s", resp.SpreadsheetID))
	}

	p.printBox("CONTENT ENGINE", sb.String())
}

// PrintActivity outputs the recent activity list
func (p *Printer) PrintActivity(records []types.ActivityRecord) {
	if len(records) == 0 {
		p.printBox("RECENT ACTIVITY", "No activity yet")
		return
	}

	var sb strings.Builder
	count := min(len(records), maxItemsToShow)
	for i := 0; i < count; i++ {
		rec := records[i]
		sb.WriteString(fmt.Sprintf("%2d. %s\n", i+1, rec.Title))
		meta := []string{}
		if rec.Platform != "" {
			meta = append(meta, rec.Platform)
		}
		if rec.Timestamp != "" {
			meta = append(meta, rec.Timestamp)
		}
		if len(meta) > 0 {
			sb.WriteString(fmt.Sprintf("    %s\n", strings.Join(meta, " · ")))
		}
	}
	if len(records) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("... and %d more\n", len(records)-maxItemsToShow))
	}

	p.printBox("RECENT ACTIVITY", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintDistribution outputs the platform distribution as a bar chart
func (p *Printer) PrintDistribution(dist []types.PlatformCount) {
	if len(dist) == 0 {
		return
	}

	maxValue, nameWidth := 0, 0
	for _, pc := range dist {
		maxValue = max(maxValue, pc.Value)
		nameWidth = max(nameWidth, len([]rune(pc.Name)))
	}
	nameWidth = min(nameWidth, 18)

	var sb strings.Builder
	for _, pc := range dist {
		bar := max(1, pc.Value*barWidth/maxValue)
		sb.WriteString(fmt.Sprintf("%-*s %s %d\n", nameWidth, truncate(pc.Name, nameWidth), strings.Repeat("█", bar), pc.Value))
	}

	p.printBox("PLATFORM DISTRIBUTION", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintDashboard outputs all sections of a dashboard response
func (p *Printer) PrintDashboard(resp *types.DashboardResponse) {
	if resp == nil {
		return
	}
	p.PrintStats(resp)
	p.PrintActivity(resp.Activity)
	p.PrintDistribution(resp.PlatformDistribution)
}

// PrintActivityDetail outputs one record with its content strategy. Empty
// sections are shown with display placeholders.
func (p *Printer) PrintActivityDetail(detail *types.ActivityDetail) {
	if detail == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(orDefault(detail.Strategy.Title, "No Title Available"))
	sb.WriteString("\n\n")
	sb.WriteString(orDefault(detail.Strategy.Caption, "No Caption Available"))
	sb.WriteString("\n\n")
	sb.WriteString(orDefault(detail.Strategy.Hashtags, "#automation"))
	if detail.Record.OriginalLink != "" {
		sb.WriteString("\n\nOriginal: " + detail.Record.OriginalLink)
	}
	if detail.Record.FinalLink != "" {
		sb.WriteString("\nFinal:    " + detail.Record.FinalLink)
	}

	p.printBox(fmt.Sprintf("ACTIVITY #%d", detail.Index+1), sb.String())
}

// Render implements poller.Renderer
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) Render(st poller.State) {
	if p.clear {
		fmt.Fprint(p.out, clearScreen)
	}

	switch {
	case st.Loading():
		fmt.Fprintln(p.out, "Loading dashboard...")
		return
	case st.Err != "":
		fmt.Fprintf(p.out, "Error: %s\n", st.Err)
	}

	p.PrintDashboard(st.Snapshot)

	status := "Press Enter to refresh, Ctrl+C to quit"
	if st.Refreshing {
		status = "Refreshing..."
	}
	if !st.UpdatedAt.IsZero() {
		status = fmt.Sprintf("Updated %s · %s", st.UpdatedAt.Format(time.TimeOnly), status)
	}
	fmt.Fprintln(p.out, status)
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
