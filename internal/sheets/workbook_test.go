package sheets

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func writeWorkbook(t *testing.T, sheets map[string][][]any) string {
	t.Helper()
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	for name, rows := range sheets {
		_, err := f.NewSheet(name)
		require.NoError(t, err)
		for i, row := range rows {
			cell, err := excelize.CoordinatesToCellName(1, i+1)
			require.NoError(t, err)
			require.NoError(t, f.SetSheetRow(name, cell, &row))
		}
	}
	require.NoError(t, f.DeleteSheet("Sheet1"))

	path := filepath.Join(t.TempDir(), "activity.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestWorkbookSource_Fetch(t *testing.T) {
	path := writeWorkbook(t, map[string][][]any{
		"Content Engine": {
			{"Timestamp", "Original Video Link", "Final Video Link", "Platform", "Status", "Original ID", "Content Strategy", "Duration"},
			{"t2", "https://o2", "https://f2", "TikTok", "Completed", "id2", "TITLE: Two", "12"},
			{"t1", "https://o1"},
		},
		"Backend Monitoring": {
			{"Idle", "[10:00:00] Waiting for new files"},
		},
	})

	src, err := NewWorkbookSource(path, "'Content Engine'!A:G", "'Backend Monitoring'!A1:B1", nil)
	require.NoError(t, err)

	snap, err := src.Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, snap.Rows, 3)
	assert.Len(t, snap.Rows[0], 7, "column H is outside A:G")
	assert.Equal(t, "TITLE: Two", snap.Rows[1][6])
	assert.Equal(t, []string{"t1", "https://o1"}, snap.Rows[2])
	assert.Equal(t, "[10:00:00] Waiting for new files", snap.EngineStatus)
}

func TestWorkbookSource_MissingStatusSheet(t *testing.T) {
	path := writeWorkbook(t, map[string][][]any{
		"Content Engine": {{"Timestamp"}},
	})

	src, err := NewWorkbookSource(path, "'Content Engine'!A:G", "'Backend Monitoring'!A1:B1", nil)
	require.NoError(t, err)

	snap, err := src.Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, DefaultEngineStatus, snap.EngineStatus)
}

func TestWorkbookSource_MissingActivitySheet(t *testing.T) {
	path := writeWorkbook(t, map[string][][]any{
		"Other": {{"x"}},
	})

	src, err := NewWorkbookSource(path, "'Content Engine'!A:G", "", nil)
	require.NoError(t, err)

	_, err = src.Fetch(context.Background())
	var sErr *Error
	require.ErrorAs(t, err, &sErr)
	assert.Equal(t, "read", sErr.Op)
}

func TestWorkbookSource_MissingFile(t *testing.T) {
	src, err := NewWorkbookSource(filepath.Join(t.TempDir(), "nope.xlsx"), "'Content Engine'!A:G", "", nil)
	require.NoError(t, err)

	_, err = src.Fetch(context.Background())
	var sErr *Error
	require.ErrorAs(t, err, &sErr)
	assert.Equal(t, "connect", sErr.Op)
}

func TestNewWorkbookSource_InvalidRange(t *testing.T) {
	_, err := NewWorkbookSource("x.xlsx", "'Content Engine!A:G", "", nil)
	var rErr *RangeError
	assert.ErrorAs(t, err, &rErr)
}
