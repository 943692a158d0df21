// Package types provides type definitions for the dashboard view model shared by the server and the polling client.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"encoding/json"
	"maps"
)

// DashboardResponse is the JSON body served by GET /api/data
type DashboardResponse struct {
	Stats                Stats            `json:"stats"`
	Activity             []ActivityRecord `json:"activity"`
	PlatformDistribution []PlatformCount  `json:"platformDistribution"`
	SpreadsheetID        string           `json:"spreadsheetId,omitempty"`
	EngineStatus         string           `json:"engineStatus,omitempty"`
}

// Stats holds the aggregate counters shown at the top of the dashboard.
// Success and Processing are placeholders, not tracked execution state.
type Stats struct {
	Total        int    `json:"total"`
	Success      int    `json:"success"`
	Processing   int    `json:"processing"`
	LastActivity string `json:"lastActivity"`
}

// PlatformCount is one entry of the platform distribution
type PlatformCount struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// ContentStrategy holds the parsed sections of a content-strategy cell
type ContentStrategy struct {
	Title    string `json:"title"`
	Caption  string `json:"caption"`
	Hashtags string `json:"hashtags"`
}

// ActivityDetail is the response of the detail view for a single activity record
type ActivityDetail struct {
	Index    int             `json:"index"`
	Record   ActivityRecord  `json:"record"`
	Strategy ContentStrategy `json:"strategy"`
}

// ActivityRecord is one data row of the activity sheet.
//
// Fields carries every cell keyed by the lower-cased header name. Title,
// OriginalLink and FinalLink are derived and take precedence over same-named
// header fields when encoded.
type ActivityRecord struct {
	Timestamp    string
	Platform     string
	Title        string
	OriginalLink string
	FinalLink    string
	Fields       map[string]string

	hasOriginal bool
	hasFinal    bool
}

// SetLinks sets the positional link columns. A nil pointer marks the cell as absent.
func (r *ActivityRecord) SetLinks(original, final *string) {
	r.OriginalLink, r.hasOriginal = "", false
	r.FinalLink, r.hasFinal = "", false
	if original != nil {
		r.OriginalLink, r.hasOriginal = *original, true
	}
	if final != nil {
		r.FinalLink, r.hasFinal = *final, true
	}
}

// Field returns a header-keyed cell and whether it was present in the row
func (r ActivityRecord) Field(name string) (string, bool) {
	v, ok := r.Fields[name]
	return v, ok
}

// MarshalJSON flattens the header fields into the object and writes the derived
// keys over them. Absent link cells are omitted.
func (r ActivityRecord) MarshalJSON() ([]byte, error) {
	out := make(map[string]string, len(r.Fields)+3)
	maps.Copy(out, r.Fields)
	out["title"] = r.Title
	if r.hasOriginal {
		out["originalLink"] = r.OriginalLink
	}
	if r.hasFinal {
		out["finalLink"] = r.FinalLink
	}
	return json.Marshal(out)
}

// UnmarshalJSON restores a record encoded by MarshalJSON
func (r *ActivityRecord) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	fields := make(map[string]string, len(raw))
	for k, v := range raw {
		s, ok := v.(string)
		if !ok {
			continue
		}
		fields[k] = s
	}

	*r = ActivityRecord{}
	if v, ok := fields["title"]; ok {
		r.Title = v
		delete(fields, "title")
	}
	var original, final *string
	if v, ok := fields["originalLink"]; ok {
		original = &v
		delete(fields, "originalLink")
	}
	if v, ok := fields["finalLink"]; ok {
		final = &v
		delete(fields, "finalLink")
	}
	r.SetLinks(original, final)
	r.Timestamp = fields["timestamp"]
	r.Platform = fields["platform"]
	r.Fields = fields
	return nil
}
