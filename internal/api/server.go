// Package api provides the HTTP server for digd. It exposes the
// runtime/telemetry query surface, the mode-change command, the
// mission catalog, and optionally Prometheus metrics.
package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dig-network/digd/internal/app/governor"
	"github.com/dig-network/digd/internal/health"
)

// Server is the digd HTTP API server.
type Server struct {
	gov            *governor.Governor
	store          *governor.Store
	session        string
	metricsEnabled bool
	health         *health.Checker // nil if not set
}

// NewServer creates an API server around a governor. Each server
// carries a per-process session id surfaced in /health.
func NewServer(gov *governor.Governor) *Server {
	return &Server{
		gov:     gov,
		store:   gov.Store(),
		session: uuid.New().String(),
	}
}

// EnableMetrics enables the /metrics Prometheus endpoint.
func (s *Server) EnableMetrics() { s.metricsEnabled = true }

// SetHealth mounts the health checker's statuses endpoint.
func (s *Server) SetHealth(c *health.Checker) { s.health = c }

// Handler returns the chi router with all routes mounted.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(corsMiddleware)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{
			"status":  "ok",
			"service": "digd",
			"session": s.session,
		})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/telemetry", s.handleTelemetry)
		r.Get("/runtime", s.handleRuntime)
		r.Post("/mode", s.handleSetMode)
		r.Get("/missions", s.handleMissions)
		if s.health != nil {
			r.Get("/health/checks", s.handleHealthChecks)
		}
	})

	if s.metricsEnabled {
		r.Handle("/metrics", promhttp.Handler())
	}

	return r
}

func (s *Server) handleHealthChecks(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"checks": s.health.Statuses(),
	})
}

// writeJSON writes v as a JSON response with the given status.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]interface{}{
		"error": map[string]interface{}{
			"message": msg,
			"type":    "error",
		},
	})
}

// corsMiddleware adds CORS headers so the UI shell can call the API
// from its own origin.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
