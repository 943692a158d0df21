package main

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jonathan/content-dashboard/internal/types"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var header = []string{"Timestamp", "Original Video Link", "Final Video Link", "Platform", "Status", "Original ID", "Content Strategy"}

// execute runs the root command in-process with fresh flag state
func execute(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	resetFlags(rootCmd)

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err = rootCmd.Execute()
	return out.String(), errOut.String(), err
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

func writeRows(t *testing.T, rows [][]string) string {
	t.Helper()
	data, err := json.Marshal(rows)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "rows.json")
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

func sampleRows() [][]string {
	return [][]string{
		header,
		{"2024-05-02", "https://o/2", "https://f/2", "TikTok, Instagram Reels", "Completed", "2", "TITLE: Launch day\n\nCAPTION: Big news\n\nHASHTAGS: #launch"},
		{"2024-05-01", "https://o/1", "https://f/1", "TikTok", "Completed", "1", ""},
	}
}

func TestSnapshotCommand_JSON(t *testing.T) {
	path := writeRows(t, sampleRows())

	stdout, _, err := execute(t, "snapshot", "--rows", path, "--json")
	require.NoError(t, err)

	var resp types.DashboardResponse
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
	assert.Equal(t, 2, resp.Stats.Total)
	assert.Equal(t, "2024-05-02", resp.Stats.LastActivity)
	assert.Equal(t, "Launch day", resp.Activity[0].Title)
	assert.Equal(t, "Video 1", resp.Activity[1].Title)
	assert.Equal(t, "Idle", resp.EngineStatus)
	assert.Equal(t, []types.PlatformCount{
		{Name: "TikTok", Value: 2},
		{Name: "Instagram Reels", Value: 1},
	}, resp.PlatformDistribution)
}

func TestSnapshotCommand_ZeroState(t *testing.T) {
	path := writeRows(t, [][]string{header})

	stdout, _, err := execute(t, "snapshot", "--rows", path, "--json")
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"stats":{"total":0,"success":100,"processing":0,"lastActivity":"Never"},"activity":[],"platformDistribution":[]}`,
		stdout)
}

func TestSnapshotCommand_Boxed(t *testing.T) {
	path := writeRows(t, sampleRows())

	stdout, _, err := execute(t, "snapshot", "--rows", path)
	require.NoError(t, err)
	assert.Contains(t, stdout, "CONTENT ENGINE")
	assert.Contains(t, stdout, "Launch day")
	assert.Contains(t, stdout, "PLATFORM DISTRIBUTION")
}

func TestSnapshotCommand_Detail(t *testing.T) {
	path := writeRows(t, sampleRows())

	stdout, _, err := execute(t, "snapshot", "--rows", path, "--index", "0")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Big news")
	assert.Contains(t, stdout, "#launch")

	stdout, _, err = execute(t, "snapshot", "--rows", path, "--index", "1")
	require.NoError(t, err)
	assert.Contains(t, stdout, "No Title Available")

	_, _, err = execute(t, "snapshot", "--rows", path, "--index", "7")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestSnapshotCommand_BadRowsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rows.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"not":"rows"}`), 0o600))

	_, _, err := execute(t, "snapshot", "--rows", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse rows file")
}

func TestValidateCommand(t *testing.T) {
	dir := t.TempDir()
	valid := filepath.Join(dir, "valid.json")
	require.NoError(t, os.WriteFile(valid,
		[]byte(`{"stats":{"total":0,"success":100,"processing":0,"lastActivity":"Never"},"activity":[],"platformDistribution":[]}`), 0o600))
	invalid := filepath.Join(dir, "invalid.json")
	require.NoError(t, os.WriteFile(invalid, []byte(`{"stats":{}}`), 0o600))

	t.Run("passes", func(t *testing.T) {
		stdout, _, err := execute(t, "validate", "--json", valid)
		require.NoError(t, err)
		assert.Contains(t, stdout, "Validation passed")
	})

	t.Run("fails", func(t *testing.T) {
		_, stderr, err := execute(t, "validate", "--json", invalid)
		require.Error(t, err)
		assert.Contains(t, stderr, "Validation failed")
	})

	t.Run("custom schema", func(t *testing.T) {
		schema := filepath.Join(dir, "schema.json")
		require.NoError(t, os.WriteFile(schema, []byte(`{"type":"object","required":["stats"]}`), 0o600))
		_, _, err := execute(t, "validate", "--json", invalid, "--schema", schema)
		assert.NoError(t, err)
	})

	t.Run("missing json flag", func(t *testing.T) {
		_, _, err := execute(t, "validate")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "required")
	})
}

func TestReadRefreshKeys(t *testing.T) {
	calls := 0
	readRefreshKeys(context.Background(), bufio.NewScanner(strings.NewReader("\n\nr\n")), func() { calls++ })
	assert.Equal(t, 3, calls)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	calls = 0
	readRefreshKeys(ctx, bufio.NewScanner(strings.NewReader("\n\n")), func() { calls++ })
	assert.Zero(t, calls)
}
