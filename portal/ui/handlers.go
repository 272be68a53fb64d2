package ui

import (
	"bytes"
	"context"
	"net/http"
	"strconv"

	"airnav/groundcheck/internal/common"
	"airnav/groundcheck/internal/constants"
	"airnav/groundcheck/internal/models/dtos"
	gormModels "airnav/groundcheck/internal/models/gorm"

	"github.com/go-chi/chi/v5"
)

// GroundCheckService is the part of services.GroundCheckService the UI uses.
type GroundCheckService interface {
	Create(ctx context.Context, in dtos.GroundCheckInput) (uint, error)
	Edit(ctx context.Context, id uint, in dtos.GroundCheckInput) error
	Delete(ctx context.Context, id uint) error
	Get(ctx context.Context, id uint) (*gormModels.GroundCheck, error)
	List(ctx context.Context) ([]dtos.GroundCheckSummary, error)
}

type GroundCheckExporter interface {
	Export(ctx context.Context, id uint) (*bytes.Buffer, string, error)
}

// UIHandler manages all /llz routes
type UIHandler struct {
	groundChecks GroundCheckService
	exporter     GroundCheckExporter
	deleteTokens *common.DeleteTokenSigner
}

// NewUIHandler creates a new UI handler
func NewUIHandler(
	groundChecks GroundCheckService,
	exporter GroundCheckExporter,
	deleteTokens *common.DeleteTokenSigner,
) *UIHandler {
	return &UIHandler{
		groundChecks: groundChecks,
		exporter:     exporter,
		deleteTokens: deleteTokens,
	}
}

// idParam reads the {id} URL parameter. Anything that is not a positive
// integer cannot name a record, so callers answer 404.
func idParam(r *http.Request) (uint, bool) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

func notFound(w http.ResponseWriter) {
	http.Error(w, constants.StatusNotFound, http.StatusNotFound)
}
