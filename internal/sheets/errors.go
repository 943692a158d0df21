package sheets

import (
	"errors"
	"fmt"
	"net/http"

	"google.golang.org/api/googleapi"
)

// Error represents a failed read from the spreadsheet
type Error struct {
	Op    string // "connect", "read"
	Range string
	Cause error
}

func (e *Error) Error() string {
	if e.Range != "" {
		return fmt.Sprintf("sheets %s %s: %v", e.Op, e.Range, e.Cause)
	}
	return fmt.Sprintf("sheets %s: %v", e.Op, e.Cause)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// StatusCode returns the HTTP status reported by the Sheets API, or 0 when the
// failure did not come from an API response.
func (e *Error) StatusCode() int {
	var apiErr *googleapi.Error
	if errors.As(e.Cause, &apiErr) {
		return apiErr.Code
	}
	return 0
}

// IsNotFound reports whether the spreadsheet or sheet does not exist
func (e *Error) IsNotFound() bool {
	return e.StatusCode() == http.StatusNotFound
}

// RangeError reports an A1 range that cannot be parsed
type RangeError struct {
	Range   string
	Message string
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("invalid range %q: %s", e.Range, e.Message)
}
