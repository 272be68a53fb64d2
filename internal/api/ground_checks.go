package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"airnav/groundcheck/internal/constants"
	"airnav/groundcheck/internal/logging"
	"airnav/groundcheck/internal/models/dtos"
	gormModels "airnav/groundcheck/internal/models/gorm"
	"airnav/groundcheck/internal/services"

	"github.com/go-chi/chi/v5"
)

// GroundCheckReader is the read side of services.GroundCheckService.
type GroundCheckReader interface {
	Get(ctx context.Context, id uint) (*gormModels.GroundCheck, error)
	List(ctx context.Context) ([]dtos.GroundCheckSummary, error)
}

// ListGroundChecksHandler handles GET /api/v1/ground-checks
func ListGroundChecksHandler(svc GroundCheckReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		summaries, err := svc.List(r.Context())
		if err != nil {
			logging.Error("Failed to list ground checks", "error", err)
			respondWithError(w, http.StatusInternalServerError, constants.StatusLoadFailed)
			return
		}

		respondWithSuccess(w, http.StatusOK, &summaries)
	}
}

// GetGroundCheckHandler handles GET /api/v1/ground-checks/{id}
func GetGroundCheckHandler(svc GroundCheckReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
		if err != nil || id == 0 {
			respondWithError(w, http.StatusNotFound, constants.StatusInvalidID)
			return
		}

		gc, err := svc.Get(r.Context(), uint(id))
		if err != nil {
			if errors.Is(err, services.ErrGroundCheckNotFound) {
				respondWithError(w, http.StatusNotFound, constants.StatusNotFound)
				return
			}
			logging.Error("Failed to load ground check", "id", id, "error", err)
			respondWithError(w, http.StatusInternalServerError, constants.StatusLoadFailed)
			return
		}

		resp := dtos.NewGroundCheckResponse(gc)
		respondWithSuccess(w, http.StatusOK, &resp)
	}
}
