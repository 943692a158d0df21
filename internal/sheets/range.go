package sheets

import (
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// A1Range is a parsed A1-notation range such as 'Content Engine'!A:G.
// Columns and rows are 1-based; zero means unbounded.
type A1Range struct {
	Sheet    string
	StartCol int
	EndCol   int
	StartRow int
	EndRow   int
}

// ParseA1 parses "Sheet!A1:B2", "'Sheet name'!A:G" or a bare sheet name
func ParseA1(s string) (A1Range, error) {
	var r A1Range
	sheet, cells := s, ""
	if i := strings.LastIndex(s, "!"); i >= 0 {
		sheet, cells = s[:i], s[i+1:]
	}

	if strings.HasPrefix(sheet, "'") {
		if len(sheet) < 2 || !strings.HasSuffix(sheet, "'") {
			return r, &RangeError{Range: s, Message: "unterminated sheet quote"}
		}
		sheet = strings.ReplaceAll(sheet[1:len(sheet)-1], "''", "'")
	}
	if sheet == "" {
		return r, &RangeError{Range: s, Message: "missing sheet name"}
	}
	r.Sheet = sheet

	if cells == "" {
		return r, nil
	}

	start, end, found := strings.Cut(cells, ":")
	var err error
	if r.StartCol, r.StartRow, err = parseCellRef(start); err != nil {
		return r, &RangeError{Range: s, Message: err.Error()}
	}
	if !found {
		r.EndCol, r.EndRow = r.StartCol, r.StartRow
		return r, nil
	}
	if r.EndCol, r.EndRow, err = parseCellRef(end); err != nil {
		return r, &RangeError{Range: s, Message: err.Error()}
	}
	return r, nil
}

func parseCellRef(ref string) (col, row int, err error) {
	ref = strings.ToUpper(strings.TrimSpace(ref))
	split := strings.IndexFunc(ref, func(c rune) bool { return c >= '0' && c <= '9' })
	letters, digits := ref, ""
	if split >= 0 {
		letters, digits = ref[:split], ref[split:]
	}

	if letters != "" {
		if col, err = excelize.ColumnNameToNumber(letters); err != nil {
			return 0, 0, err
		}
	}
	if digits != "" {
		if row, err = strconv.Atoi(digits); err != nil || row < 1 {
			return 0, 0, &RangeError{Range: ref, Message: "bad row number"}
		}
	}
	if col == 0 && row == 0 {
		return 0, 0, &RangeError{Range: ref, Message: "empty cell reference"}
	}
	return col, row, nil
}

// Apply cuts rows down to the range. Rows keep their ragged trailing edge.
func (r A1Range) Apply(rows [][]string) [][]string {
	first, last := 0, len(rows)
	if r.StartRow > 0 {
		first = min(r.StartRow-1, len(rows))
	}
	if r.EndRow > 0 {
		last = min(r.EndRow, len(rows))
	}
	if first >= last {
		return [][]string{}
	}

	out := make([][]string, 0, last-first)
	for _, row := range rows[first:last] {
		out = append(out, r.columns(row))
	}
	return out
}

func (r A1Range) columns(row []string) []string {
	lo, hi := 0, len(row)
	if r.StartCol > 0 {
		lo = min(r.StartCol-1, len(row))
	}
	if r.EndCol > 0 {
		hi = min(r.EndCol, len(row))
	}
	if lo >= hi {
		return []string{}
	}
	return append([]string(nil), row[lo:hi]...)
}
