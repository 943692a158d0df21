package sheets

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticSource_Fetch(t *testing.T) {
	src := &StaticSource{Rows: [][]string{{"Timestamp"}, {"t1"}}}

	snap, err := src.Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"Timestamp"}, {"t1"}}, snap.Rows)
	assert.Equal(t, DefaultEngineStatus, snap.EngineStatus)

	// callers may mutate the snapshot freely
	snap.Rows[1][0] = "changed"
	again, err := src.Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "t1", again.Rows[1][0])
}

func TestStaticSource_Error(t *testing.T) {
	boom := errors.New("boom")
	_, err := (&StaticSource{Err: boom}).Fetch(context.Background())
	assert.ErrorIs(t, err, boom)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = (&StaticSource{}).Fetch(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestStatusText(t *testing.T) {
	tests := []struct {
		name     string
		row      []string
		expected string
	}{
		{"message wins", []string{"Processing", "[10:00] rendering"}, "[10:00] rendering"},
		{"state only", []string{"Processing"}, "Processing"},
		{"blank message", []string{"Idle", "  "}, "Idle"},
		{"empty row", nil, DefaultEngineStatus},
		{"blank cells", []string{"", ""}, DefaultEngineStatus},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, StatusText(tt.row))
		})
	}
}
