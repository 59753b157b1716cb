package ops

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/jamesyinbaare/rmps-sub007/internal"
	"github.com/jamesyinbaare/rmps-sub007/internal/reporting"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jmoiron/sqlx"
)

// Server exposes operational endpoints on a separate listener: liveness,
// readiness (DB ping) and the report queue state.
type Server struct {
	router  *chi.Mux
	db      *sqlx.DB
	reports *reporting.Manager
	logger  *internal.Logger
}

// NewServer creates the ops server.
func NewServer(db *sqlx.DB, reports *reporting.Manager) *Server {
	s := &Server{
		router:  chi.NewRouter(),
		db:      db,
		reports: reports,
		logger:  internal.DefaultLogger,
	}
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.Recoverer)
	s.routes()
	return s
}

func (s *Server) routes() {
	s.router.Get("/healthz", s.handleHealth)
	s.router.Get("/readyz", s.handleReady)
	s.router.Get("/status/reports", s.handleReportQueue)
}

// Start blocks serving ops traffic on addr.
func (s *Server) Start(addr string) error {
	s.logger.Info("[Ops] listening on %s", addr)
	return http.ListenAndServe(addr, s.router)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := s.db.PingContext(ctx); err != nil {
		s.logger.Warn("[Ops] readiness ping failed: %v", err)
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable", "error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

func (s *Server) handleReportQueue(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.reports.Stats())
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
