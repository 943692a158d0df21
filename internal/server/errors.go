package server

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/jonathan/content-dashboard/internal/dashboard"
)

// ErrorResponse is the body of every failed API request
type ErrorResponse struct {
	Error string `json:"error"`
}

// ErrInvalidIndex indicates a malformed activity index in the URL
type ErrInvalidIndex struct {
	Value string
}

func (e *ErrInvalidIndex) Error() string {
	return fmt.Sprintf("invalid activity index: %q", e.Value)
}

// RateLimitError indicates the client exceeded the API rate limit
type RateLimitError struct {
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	return "rate limit exceeded"
}

// HTTPStatus returns the appropriate HTTP status code for an error. Upstream
// failures and anything unrecognised are 500.
func HTTPStatus(err error) int {
	var (
		notFound *dashboard.NotFoundError
		badIndex *ErrInvalidIndex
		limited  *RateLimitError
	)
	switch {
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.As(err, &badIndex):
		return http.StatusBadRequest
	case errors.As(err, &limited):
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}
