package routes

import (
	"net/http"

	"airnav/groundcheck/internal/middleware"
	"airnav/groundcheck/portal/ui"

	"github.com/go-chi/chi/v5"
)

// RegisterUIRoutes registers the server-rendered /llz pages. Form
// submissions go through the rate limiter; page views do not.
func RegisterUIRoutes(r chi.Router, h *ui.UIHandler, limiter *middleware.RateLimiter) {

	// Default route - the records list
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/llz/lihat_data", http.StatusFound)
	})

	r.Route("/llz", func(llz chi.Router) {
		llz.Get("/ground_check", h.NewGroundCheckView)
		llz.Get("/lihat_data", h.ListGroundChecksView)
		llz.Get("/detail/{id}", h.GroundCheckDetailView)
		llz.Get("/edit/{id}", h.EditGroundCheckView)
		llz.Get("/delete/{id}", h.ConfirmDeleteView)
		llz.Get("/export/{id}", h.ExportGroundCheckHandler)

		// Mutations
		llz.Group(func(mut chi.Router) {
			mut.Use(limiter.Middleware)
			mut.Post("/ground_check", h.CreateGroundCheckHandler)
			mut.Post("/edit/{id}", h.UpdateGroundCheckHandler)
			mut.Post("/delete/{id}", h.DeleteGroundCheckHandler)
		})
	})
}
