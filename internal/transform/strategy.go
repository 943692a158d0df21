package transform

import (
	"strings"

	"github.com/jonathan/content-dashboard/internal/types"
)

// Section labels written by the content engine
const (
	LabelTitle    = "TITLE:"
	LabelCaption  = "CAPTION:"
	LabelHashtags = "HASHTAGS:"
)

const sectionSeparator = "\n\n"

// ParseContentStrategy splits a content-strategy cell into its title, caption
// and hashtags sections. Labelled sections are matched by label in any order;
// text without any label is read positionally. Missing sections are empty.
func ParseContentStrategy(text string) types.ContentStrategy {
	sections := splitSections(text)

	var out types.ContentStrategy
	labelled := false
	for _, sec := range sections {
		switch {
		case strings.HasPrefix(sec, LabelTitle):
			out.Title = strings.TrimSpace(strings.TrimPrefix(sec, LabelTitle))
			labelled = true
		case strings.HasPrefix(sec, LabelCaption):
			out.Caption = strings.TrimSpace(strings.TrimPrefix(sec, LabelCaption))
			labelled = true
		case strings.HasPrefix(sec, LabelHashtags):
			out.Hashtags = strings.TrimSpace(strings.TrimPrefix(sec, LabelHashtags))
			labelled = true
		}
	}
	if labelled {
		return out
	}

	positional := []*string{&out.Title, &out.Caption, &out.Hashtags}
	for i, sec := range sections {
		if i >= len(positional) {
			break
		}
		*positional[i] = sec
	}
	return out
}

func splitSections(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	raw := strings.Split(text, sectionSeparator)
	sections := make([]string, 0, len(raw))
	for _, s := range raw {
		if s = strings.TrimSpace(s); s != "" {
			sections = append(sections, s)
		}
	}
	return sections
}
