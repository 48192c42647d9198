// Package api provides the HTTP server for the EarthWise engine.
// It exposes the task/points/streak REST surface consumed by the web
// views, a live state-change SSE feed, and Prometheus metrics.
package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/abayate/earthwise/internal/app/engine"
	"github.com/abayate/earthwise/internal/app/notify"
	"github.com/abayate/earthwise/internal/infra/bus"
)

// Server is the EarthWise HTTP API server.
type Server struct {
	engine         *engine.Service
	notices        *notify.Service
	bus            *bus.Bus
	metricsEnabled bool
}

// NewServer creates a new API server.
func NewServer(eng *engine.Service, notices *notify.Service, b *bus.Bus) *Server {
	return &Server{engine: eng, notices: notices, bus: b}
}

// EnableMetrics enables the /metrics Prometheus endpoint.
func (s *Server) EnableMetrics() { s.metricsEnabled = true }

// Handler returns the chi router with all routes mounted.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(corsMiddleware)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{
			"status": "ok",
		})
	})

	r.Get("/api/version", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{
			"version": "0.1.0",
		})
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/summary", s.handleSummary)
		r.Get("/streak", s.handleStreak)
		r.Get("/aggregates", s.handleAggregates)
		r.Get("/milestone", s.handleMilestone)
		r.Get("/history", s.handleHistory)
		r.Get("/series", s.handleSeries)
		r.Get("/leaderboard", s.handleLeaderboard)

		r.Route("/tasks", func(r chi.Router) {
			r.Get("/{category}", s.handleListTasks)
			r.Get("/{category}/recent", s.handleRecents)
			r.Post("/{category}/{id}/toggle", s.handleToggle)
			r.Post("/{category}/reset", s.handleReset)
			r.Put("/{category}/mode", s.handleSetMode)
		})

		r.Get("/prefs", s.handleGetPrefs)
		r.Put("/prefs", s.handleSetPrefs)
		r.Get("/profile", s.handleGetProfile)
		r.Put("/profile", s.handleSetProfile)

		r.Get("/notices", s.handleNotices)
		r.Post("/notices/{id}/shown", s.handleNoticeShown)

		r.Get("/events", s.handleEvents)
	})

	// Prometheus metrics endpoint
	if s.metricsEnabled {
		r.Handle("/metrics", promhttp.Handler())
	}

	return r
}

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// decodeBody decodes a JSON request body into v.
func decodeBody(r *http.Request, v interface{}) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
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

// corsMiddleware adds CORS headers for local development.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}
