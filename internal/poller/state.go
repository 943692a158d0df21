package poller

import (
	"time"

	"github.com/jonathan/content-dashboard/internal/types"
)

// Phase is the coarse state of the client
type Phase int

const (
	// PhaseLoading means no fetch has completed yet
	PhaseLoading Phase = iota
	// PhaseReady means the last fetch succeeded
	PhaseReady
	// PhaseErrored means the last fetch failed. Snapshot may still hold
	// the data of an earlier success.
	PhaseErrored
)

func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhaseReady:
		return "ready"
	case PhaseErrored:
		return "errored"
	default:
		return "unknown"
	}
}

// State is what a Renderer receives on every change
type State struct {
	Phase      Phase
	Snapshot   *types.DashboardResponse
	Err        string
	Refreshing bool
	UpdatedAt  time.Time // time of the last successful fetch
}

// Loading reports whether nothing has been fetched yet and there is no error
func (s State) Loading() bool {
	return s.Snapshot == nil && s.Err == ""
}

func (s State) phase() Phase {
	switch {
	case s.Err != "":
		return PhaseErrored
	case s.Snapshot != nil:
		return PhaseReady
	default:
		return PhaseLoading
	}
}

// Renderer displays client state
type Renderer interface {
	Render(State)
}

// RendererFunc adapts a function to Renderer
type RendererFunc func(State)

// Render calls f(s)
func (f RendererFunc) Render(s State) { f(s) }
