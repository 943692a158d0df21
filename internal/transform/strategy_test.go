package transform

import (
	"testing"

	"github.com/jonathan/content-dashboard/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestParseContentStrategy(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected types.ContentStrategy
	}{
		{
			name:     "all sections",
			text:     "TITLE: Hello\n\nCAPTION: World\n\nHASHTAGS: #a #b",
			expected: types.ContentStrategy{Title: "Hello", Caption: "World", Hashtags: "#a #b"},
		},
		{
			name:     "sections out of order",
			text:     "HASHTAGS: #x\n\nTITLE: T",
			expected: types.ContentStrategy{Title: "T", Hashtags: "#x"},
		},
		{
			name:     "multi-line caption",
			text:     "TITLE: T\n\nCAPTION: line one\nline two\n\nHASHTAGS: #h",
			expected: types.ContentStrategy{Title: "T", Caption: "line one\nline two", Hashtags: "#h"},
		},
		{
			name:     "windows line endings",
			text:     "TITLE: T\r\n\r\nCAPTION: C",
			expected: types.ContentStrategy{Title: "T", Caption: "C"},
		},
		{
			name:     "unlabelled sections are positional",
			text:     "A title\n\nA caption\n\n#tag",
			expected: types.ContentStrategy{Title: "A title", Caption: "A caption", Hashtags: "#tag"},
		},
		{
			name:     "placeholder text",
			text:     "Started: clip.mp4",
			expected: types.ContentStrategy{Title: "Started: clip.mp4"},
		},
		{
			name:     "empty",
			text:     "",
			expected: types.ContentStrategy{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseContentStrategy(tt.text))
		})
	}
}

func TestExtractTitle(t *testing.T) {
	assert.Equal(t, "Hello", ExtractTitle("TITLE: Hello\n\nCAPTION: World"))
	assert.Equal(t, "Intro", ExtractTitle("preface\n\nTITLE: Intro"))
	assert.Equal(t, "", ExtractTitle("CAPTION: only"))
}
