package api

import (
	"net/http"
)

type Handlers struct {
	deps *Dependencies
}

// NewHandlers creates a new handlers instance with injected dependencies
func NewHandlers(deps *Dependencies) *Handlers {
	return &Handlers{
		deps: deps,
	}
}

// ListGroundChecks returns every ground check header
func (h *Handlers) ListGroundChecks() http.HandlerFunc {
	return ListGroundChecksHandler(h.deps.Services.GroundCheck)
}

// GetGroundCheck returns one ground check with its rows
func (h *Handlers) GetGroundCheck() http.HandlerFunc {
	return GetGroundCheckHandler(h.deps.Services.GroundCheck)
}
