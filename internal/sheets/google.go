package sheets

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"google.golang.org/api/option"
	gsheets "google.golang.org/api/sheets/v4"
)

// GoogleOptions configures a GoogleSource
type GoogleOptions struct {
	SpreadsheetID string
	ActivityRange string
	StatusRange   string // empty disables the status read

	// CredentialsJSON takes precedence over CredentialsFile
	CredentialsJSON string
	CredentialsFile string

	// Timeout bounds a single Fetch. Zero means no extra deadline.
	Timeout time.Duration

	// ClientOptions replaces the credential options derived above
	ClientOptions []option.ClientOption

	Logger *slog.Logger
}

// CredentialOptions returns the client options for the configured credentials
func (o GoogleOptions) CredentialOptions() []option.ClientOption {
	opts := []option.ClientOption{option.WithScopes(gsheets.SpreadsheetsReadonlyScope)}
	switch {
	case o.CredentialsJSON != "":
		opts = append(opts, option.WithCredentialsJSON([]byte(o.CredentialsJSON)))
	case o.CredentialsFile != "":
		opts = append(opts, option.WithCredentialsFile(o.CredentialsFile))
	}
	return opts
}

// GoogleSource reads rows through the Google Sheets v4 API.
//
// The API client is created on first use so that credential problems are
// reported per request instead of preventing startup.
type GoogleSource struct {
	opts   GoogleOptions
	logger *slog.Logger

	mu      sync.Mutex
	service *gsheets.Service
}

// NewGoogleSource creates a GoogleSource. It does not contact the API.
func NewGoogleSource(opts GoogleOptions) (*GoogleSource, error) {
	if opts.SpreadsheetID == "" {
		return nil, fmt.Errorf("spreadsheet ID is required")
	}
	if opts.ActivityRange == "" {
		return nil, fmt.Errorf("activity range is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &GoogleSource{opts: opts, logger: logger.With("source", "sheets")}, nil
}

func (s *GoogleSource) client(ctx context.Context) (*gsheets.Service, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.service != nil {
		return s.service, nil
	}

	clientOpts := s.opts.ClientOptions
	if len(clientOpts) == 0 {
		clientOpts = s.opts.CredentialOptions()
	}

	// The service outlives the request that created it.
	svc, err := gsheets.NewService(context.WithoutCancel(ctx), clientOpts...)
	if err != nil {
		return nil, &Error{Op: "connect", Cause: err}
	}
	s.service = svc
	return svc, nil
}

// Fetch reads the activity and status ranges in parallel. A failed status read
// falls back to DefaultEngineStatus; a failed activity read fails the fetch.
func (s *GoogleSource) Fetch(ctx context.Context) (*Snapshot, error) {
	if s.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.opts.Timeout)
		defer cancel()
	}

	svc, err := s.client(ctx)
	if err != nil {
		return nil, err
	}

	snap := &Snapshot{EngineStatus: DefaultEngineStatus}
	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		rows, err := s.readRange(gCtx, svc, s.opts.ActivityRange)
		if err != nil {
			return &Error{Op: "read", Range: s.opts.ActivityRange, Cause: err}
		}
		snap.Rows = rows
		return nil
	})

	var status string
	if s.opts.StatusRange != "" {
		g.Go(func() error {
			rows, err := s.readRange(gCtx, svc, s.opts.StatusRange)
			if err != nil {
				s.logger.Warn("status range unavailable, using default",
					"range", s.opts.StatusRange, "error", err)
				return nil
			}
			if len(rows) > 0 {
				status = StatusText(rows[0])
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if status != "" {
		snap.EngineStatus = status
	}
	return snap, nil
}

func (s *GoogleSource) readRange(ctx context.Context, svc *gsheets.Service, a1 string) ([][]string, error) {
	resp, err := svc.Spreadsheets.Values.Get(s.opts.SpreadsheetID, a1).Context(ctx).Do()
	if err != nil {
		return nil, err
	}
	return stringRows(resp.Values), nil
}

func stringRows(values [][]interface{}) [][]string {
	rows := make([][]string, len(values))
	for i, row := range values {
		cells := make([]string, len(row))
		for j, v := range row {
			if v == nil {
				continue
			}
			cells[j] = fmt.Sprint(v)
		}
		rows[i] = cells
	}
	return rows
}
