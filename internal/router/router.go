// Package router sets up all HTTP routes and middleware chains for the
// BadgePress server.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"badgepress/internal/handlers"
	"badgepress/internal/middleware"
)

// New creates and returns the configured Chi router with all middleware
// and route groups wired up.
func New(templates *handlers.Templates, render *handlers.Render) chi.Router {
	r := chi.NewRouter()

	// Global middleware, applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)

	// Health check.
	r.Get("/healthz", healthHandler)

	r.Route("/api", func(r chi.Router) {
		r.Get("/events/{eventID}/templates", templates.List)

		r.Route("/templates", func(r chi.Router) {
			r.Post("/", templates.Save)
			r.Post("/{id}/publish", templates.Publish)
			r.Delete("/{id}", templates.Delete)
			r.Get("/{id}/versions", templates.Versions)
			r.Get("/{id}/versions/{versionID}", templates.Version)
		})

		r.Route("/render", func(r chi.Router) {
			r.Post("/", render.Badge)
			r.Post("/batch", render.Batch)
		})
	})

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
