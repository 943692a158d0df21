package poller

import (
	"context"
	"encoding/json"
	"fmt"
	"maps"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/content-dashboard/internal/fetch"
	"github.com/jonathan/content-dashboard/internal/schemas"
	"github.com/jonathan/content-dashboard/internal/types"
)

// HTTPFetcher reads the dashboard from GET /api/data and validates the body
// against the response schema before decoding it.
type HTTPFetcher struct {
	url       string
	opts      fetch.Options
	validator *schemas.Validator
}

// NewHTTPFetcher creates a fetcher for url. A zero timeout uses fetch.DefaultTimeout.
func NewHTTPFetcher(url string, timeout time.Duration) (*HTTPFetcher, error) {
	v, err := schemas.DashboardResponse()
	if err != nil {
		return nil, err
	}
	opts := fetch.DefaultOptions()
	if timeout > 0 {
		opts.Timeout = timeout
	}
	return &HTTPFetcher{url: url, opts: *opts, validator: v}, nil
}

// Fetch performs one request. Each attempt carries a fresh X-Request-Id so it
// can be found in the server log.
func (f *HTTPFetcher) Fetch(ctx context.Context) (*types.DashboardResponse, error) {
	opts := f.opts
	opts.Headers = maps.Clone(f.opts.Headers)
	if opts.Headers == nil {
		opts.Headers = make(map[string]string, 1)
	}
	opts.Headers["X-Request-Id"] = uuid.NewString()

	res, err := fetch.JSON(ctx, f.url, &opts)
	if err != nil {
		return nil, err
	}

	if err := f.validator.Validate(res.Body); err != nil {
		return nil, fmt.Errorf("invalid dashboard response: %w", err)
	}

	var resp types.DashboardResponse
	if err := json.Unmarshal(res.Body, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode dashboard response: %w", err)
	}
	return &resp, nil
}
