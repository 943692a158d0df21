package server

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/jonathan/content-dashboard/internal/dashboard"
	"github.com/jonathan/content-dashboard/internal/logging"
)

// pageData is passed to static/index.html
type pageData struct {
	PollSeconds int
	DataURL     string
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	data := pageData{
		PollSeconds: int(s.pollInterval.Seconds()),
		DataURL:     "/api/data",
	}
	if err := s.page.Execute(w, data); err != nil {
		logging.FromContext(r.Context()).Error("failed to render page", "error", err)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleData returns the full dashboard view model
func (s *Server) handleData(w http.ResponseWriter, r *http.Request) {
	resp, err := s.dashboard.Build(r.Context())
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, resp)
}

// handleActivity returns one activity record with its parsed content strategy.
// The optional timestamp and originalLink query parameters pin the record the
// client saw, so a row added since its last poll does not shift the result.
func (s *Server) handleActivity(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "index")
	index, err := strconv.Atoi(raw)
	if err != nil || index < 0 {
		s.errorResponse(w, r, &ErrInvalidIndex{Value: raw})
		return
	}

	q := r.URL.Query()
	match := dashboard.Match{
		Timestamp:    q.Get("timestamp"),
		OriginalLink: q.Get("originalLink"),
	}
	detail, err := s.dashboard.Activity(r.Context(), index, match)
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, detail)
}
