// Package server exposes the workout store and analytics over a local
// JSON HTTP API.
package server

import (
	"log/slog"
	"net/http"

	"github.com/akyro/liftlog/internal/ingest/alpha"
	"github.com/akyro/liftlog/internal/storage"
	"github.com/go-chi/chi/v5"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	store  storage.Store
	alpha  *alpha.Provider
	log    *slog.Logger
	apiKey string
	router chi.Router
}

// New creates a new Server with all routes configured. When apiKey is empty
// the mutating routes are open.
func New(store storage.Store, alphaProvider *alpha.Provider, apiKey string, log *slog.Logger) *Server {
	s := &Server{
		store:  store,
		alpha:  alphaProvider,
		log:    log,
		apiKey: apiKey,
		router: chi.NewRouter(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Use(RequestID)
	s.router.Use(RequestLogging(s.log))
	s.router.Use(CORS)

	s.router.Route("/api/v1", func(r chi.Router) {
		r.Get("/workouts", s.handleListWorkouts)
		r.Get("/workouts/{name}", s.handleGetWorkout)
		r.Get("/workouts/{name}/analytics", s.handleAnalyzeWorkout)
		r.Get("/workouts/{name}/export.xlsx", s.handleExportWorkout)
		r.Get("/compare", s.handleCompare)

		r.Group(func(r chi.Router) {
			if s.apiKey != "" {
				r.Use(APIKeyAuth(s.apiKey))
			}
			r.Put("/workouts/{name}", s.handlePutWorkout)
			r.Delete("/workouts/{name}", s.handleDeleteWorkout)
			r.Post("/import/alpha", s.handleAlphaImport)
		})
	})
}
