package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActivityRecord_MarshalJSON(t *testing.T) {
	original, final := "https://o/1", ""
	rec := ActivityRecord{
		Timestamp: "t1",
		Title:     "Derived",
		Fields: map[string]string{
			"timestamp":    "t1",
			"title":        "header value",
			"originallink": "named",
		},
	}
	rec.SetLinks(&original, &final)

	data, err := json.Marshal(rec)
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"timestamp":"t1","title":"Derived","originallink":"named","originalLink":"https://o/1","finalLink":""}`,
		string(data))
}

func TestActivityRecord_MarshalJSON_AbsentLinks(t *testing.T) {
	original := "https://o/1"
	rec := ActivityRecord{Title: "Video 1", Fields: map[string]string{"timestamp": "t"}}
	rec.SetLinks(&original, nil)

	data, err := json.Marshal(rec)
	require.NoError(t, err)
	assert.JSONEq(t, `{"timestamp":"t","title":"Video 1","originalLink":"https://o/1"}`, string(data))

	rec.SetLinks(nil, nil)
	data, err = json.Marshal(rec)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "originalLink")
}

func TestActivityRecord_UnmarshalJSON(t *testing.T) {
	var rec ActivityRecord
	require.NoError(t, json.Unmarshal(
		[]byte(`{"timestamp":"t1","platform":"TikTok","title":"Launch","finalLink":"f","views":12}`), &rec))

	assert.Equal(t, "Launch", rec.Title)
	assert.Equal(t, "t1", rec.Timestamp)
	assert.Equal(t, "TikTok", rec.Platform)
	assert.Equal(t, "f", rec.FinalLink)
	assert.Empty(t, rec.OriginalLink)

	_, ok := rec.Field("title")
	assert.False(t, ok, "derived keys are not header fields")
	_, ok = rec.Field("views")
	assert.False(t, ok, "non-string values are dropped")

	data, err := json.Marshal(rec)
	require.NoError(t, err)
	assert.JSONEq(t, `{"timestamp":"t1","platform":"TikTok","title":"Launch","finalLink":"f"}`, string(data))
}

func TestDashboardResponse_OmitsEmptyMetadata(t *testing.T) {
	data, err := json.Marshal(DashboardResponse{
		Activity:             []ActivityRecord{},
		PlatformDistribution: []PlatformCount{},
	})
	require.NoError(t, err)
	assert.NotContains(t, string(data), "spreadsheetId")
	assert.NotContains(t, string(data), "engineStatus")
}
