package routes

import (
	"net/http"
	"time"

	"airnav/groundcheck/internal/api"
	"airnav/groundcheck/internal/config"
	"airnav/groundcheck/internal/logging"
	"airnav/groundcheck/internal/middleware"
	"airnav/groundcheck/portal/ui"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes builds the chi router serving the LLZ forms, the JSON API
// and the health check.
func RegisterRoutes(cfg *config.Config, deps *api.Dependencies, healthChecks map[string]api.HealthChecker, upSince time.Time) http.Handler {

	// initialize Chi router
	r := chi.NewRouter()

	// global middleware
	r.Use(middleware.RequestIDMiddleware)
	r.Use(middleware.Recoverer)
	r.Use(middleware.MetricsMiddleware(deps.Metrics))

	logging.Info("Router initialized with metrics and logging middleware")

	// health check
	r.Get("/healthCheck", api.HealthCheckHandler(healthChecks, upSince))

	limiter := middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst, deps.Metrics)

	uiHandler := ui.NewUIHandler(deps.Services.GroundCheck, deps.Services.Export, deps.Services.DeleteTokens)
	RegisterUIRoutes(r, uiHandler, limiter)

	handlers := api.NewHandlers(deps)
	RegisterAPIRoutes(r, handlers, cfg.CORS.AllowedOrigins)

	return r
}
