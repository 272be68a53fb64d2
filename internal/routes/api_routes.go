package routes

import (
	"airnav/groundcheck/internal/api"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

// RegisterAPIRoutes registers the read-only JSON API under /api/v1
func RegisterAPIRoutes(r chi.Router, handlers *api.Handlers, allowedOrigins []string) {
	r.Route("/api/v1", func(v1 chi.Router) {
		v1.Use(cors.Handler(cors.Options{
			AllowedOrigins:   allowedOrigins,
			AllowedMethods:   []string{"GET", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
			ExposedHeaders:   []string{"X-Request-ID"},
			AllowCredentials: false,
			MaxAge:           300, // Maximum value not ignored by any of major browsers
		}))

		v1.Get("/ground-checks", handlers.ListGroundChecks())
		v1.Get("/ground-checks/{id}", handlers.GetGroundCheck())
	})
}
