package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/rumixist/erken-deprem-ikazi/internal/analysis"
)

// ReadinessChecker reports whether the service is ready to serve traffic.
type ReadinessChecker interface {
	CheckReadiness(ctx context.Context) error
}

// Refresher triggers an immediate fetch-and-analyze cycle.
type Refresher interface {
	Refresh(ctx context.Context) error
}

// RefreshFunc adapts a function to the Refresher interface.
type RefreshFunc func(ctx context.Context) error

func (f RefreshFunc) Refresh(ctx context.Context) error { return f(ctx) }

// Server exposes health, readiness, and metrics endpoints plus the analysis
// document API.
type Server struct {
	httpServer *http.Server
	logger     *slog.Logger
	latest     atomic.Pointer[analysis.Result]
	refresher  Refresher
}

// NewServer creates an HTTP server with /healthz, /readyz, /metrics, and the
// /api/v1 analysis routes. refresher may be nil to disable manual refresh.
func NewServer(addr string, ready ReadinessChecker, refresher Refresher, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		logger:    logger,
		refresher: refresher,
	}

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", handleReady(ready))
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("GET /api/v1/analysis", s.handleAnalysis)
	mux.HandleFunc("POST /api/v1/refresh", s.handleRefresh)

	return s
}

// SetAnalysis publishes the latest analysis document to API consumers.
func (s *Server) SetAnalysis(result analysis.Result) {
	s.latest.Store(&result)
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func handleReady(checker ReadinessChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := checker.CheckReadiness(ctx); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "not ready",
				"error":  err.Error(),
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}

func (s *Server) handleAnalysis(w http.ResponseWriter, _ *http.Request) {
	result := s.latest.Load()
	if result == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"error": "no analysis available yet",
		})
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	if s.refresher == nil {
		writeJSON(w, http.StatusNotImplemented, map[string]string{
			"error": "manual refresh is not enabled",
		})
		return
	}

	if err := s.refresher.Refresh(r.Context()); err != nil {
		s.logger.Error("manual refresh failed", "error", err)
		writeJSON(w, http.StatusBadGateway, map[string]string{
			"error": err.Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "refreshed"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response
}
