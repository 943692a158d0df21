// Package poller implements the dashboard polling client: it fetches the
// dashboard periodically and on demand and publishes the result to a Renderer.
package poller

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/jonathan/content-dashboard/internal/fetch"
	"github.com/jonathan/content-dashboard/internal/types"
)

// DefaultInterval is the time between automatic fetches
const DefaultInterval = 60 * time.Second

// Fetcher loads one dashboard snapshot
type Fetcher interface {
	Fetch(ctx context.Context) (*types.DashboardResponse, error)
}

// Options configures a Client
type Options struct {
	Interval time.Duration
	Renderer Renderer
	Logger   *slog.Logger
}

// Client polls a Fetcher.
//
// Every trigger (start, tick, Refresh) starts a new fetch task and cancels the
// one in flight. Only the result of the latest task is applied.
type Client struct {
	fetcher  Fetcher
	interval time.Duration
	renderer Renderer
	logger   *slog.Logger
	now      func() time.Time

	refresh chan struct{}

	mu     sync.Mutex
	state  State
	gen    uint64
	cancel context.CancelFunc

	// held while rendering so renderers see states in update order
	renderMu sync.Mutex
	wg       sync.WaitGroup
}

// New creates a Client. It does nothing until Run is called.
func New(fetcher Fetcher, opts Options) *Client {
	interval := opts.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}
	renderer := opts.Renderer
	if renderer == nil {
		renderer = RendererFunc(func(State) {})
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		fetcher:  fetcher,
		interval: interval,
		renderer: renderer,
		logger:   logger.With("component", "poller"),
		now:      time.Now,
		refresh:  make(chan struct{}, 1),
	}
}

// State returns the current state
func (c *Client) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Refresh requests a manual fetch. It never blocks; requests made while one
// is still pending are coalesced.
func (c *Client) Refresh() {
	select {
	case c.refresh <- struct{}{}:
	default:
	}
}

// Run fetches immediately, then every interval and on Refresh, until ctx is
// cancelled. It returns after the in-flight fetch has stopped.
func (c *Client) Run(ctx context.Context) error {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	c.trigger(ctx, "start")
	for {
		select {
		case <-ctx.Done():
			c.teardown()
			return nil
		case <-ticker.C:
			c.trigger(ctx, "tick")
		case <-c.refresh:
			c.trigger(ctx, "refresh")
		}
	}
}

func (c *Client) trigger(ctx context.Context, reason string) {
	c.mu.Lock()
	if c.cancel != nil {
		c.cancel()
	}
	c.gen++
	gen := c.gen
	taskCtx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.state.Refreshing = true
	c.publishLocked()

	c.logger.Debug("fetch started", "generation", gen, "reason", reason)
	c.wg.Add(1)
	go c.runTask(taskCtx, gen)
}

func (c *Client) runTask(ctx context.Context, gen uint64) {
	defer c.wg.Done()

	start := c.now()
	resp, err := c.fetcher.Fetch(ctx)

	c.mu.Lock()
	// A cancelled task was either superseded or torn down. Teardown may not
	// have bumped the generation yet, so the context is checked as well.
	if gen != c.gen || ctx.Err() != nil {
		c.mu.Unlock()
		c.logger.Debug("dropping superseded fetch", "generation", gen)
		return
	}
	c.cancel()
	c.cancel = nil

	c.state.Refreshing = false
	if err != nil {
		c.state.Err = fetch.Message(err)
		c.logger.Warn("fetch failed", "generation", gen, "error", err)
	} else {
		c.state.Snapshot = resp
		c.state.Err = ""
		c.state.UpdatedAt = c.now()
		c.logger.Debug("fetch succeeded", "generation", gen,
			"total", resp.Stats.Total, "duration_ms", c.now().Sub(start).Milliseconds())
	}
	c.publishLocked()
}

// teardown cancels the in-flight task, invalidates its result and waits for it
func (c *Client) teardown() {
	c.mu.Lock()
	c.gen++
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.state.Refreshing = false
	c.state.Phase = c.state.phase()
	c.mu.Unlock()

	c.wg.Wait()
}

// publishLocked renders the current state and releases c.mu.
func (c *Client) publishLocked() {
	c.state.Phase = c.state.phase()
	st := c.state
	c.renderMu.Lock()
	c.mu.Unlock()

	defer c.renderMu.Unlock()
	c.renderer.Render(st)
}
