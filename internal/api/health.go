package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"airnav/groundcheck/internal/models/entities"
)

// HealthChecker is any dependency that can report whether it is reachable.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// PingFunc adapts a plain function to HealthChecker.
type PingFunc func(ctx context.Context) error

func (f PingFunc) Ping(ctx context.Context) error {
	return f(ctx)
}

// HealthCheckHandler handles GET /healthCheck
//
// Every named checker is pinged with a short timeout. The overall status is
// "down" and the response 503 as soon as one of them fails.
func HealthCheckHandler(checks map[string]HealthChecker, upSince time.Time) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		services := make(map[string]entities.ServiceStatus, len(checks))

		for name, checker := range checks {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			status := "ok"
			details := "Connected"
			if err := checker.Ping(ctx); err != nil {
				status = "down"
				details = err.Error()
			}
			cancel()

			services[name] = entities.ServiceStatus{
				Status:  status,
				Details: details,
			}
		}

		overallStatus := "ok"
		for _, svc := range services {
			if svc.Status != "ok" {
				overallStatus = "down"
				break
			}
		}

		now := time.Now()
		uptime := now.Sub(upSince).Round(time.Second).String()

		resp := entities.HealthCheckResponse{
			Services: services,
			Status:   overallStatus,
			UpSince:  upSince,
			Uptime:   uptime,
		}

		code := http.StatusOK
		if overallStatus != "ok" {
			code = http.StatusServiceUnavailable
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		_ = json.NewEncoder(w).Encode(resp)
	}
}
