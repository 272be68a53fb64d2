package ui

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"airnav/groundcheck/internal/common"
	"airnav/groundcheck/internal/constants"
	"airnav/groundcheck/internal/groundcheck"
	"airnav/groundcheck/internal/logging"
	"airnav/groundcheck/internal/models/dtos"
	"airnav/groundcheck/internal/services"
)

const (
	listPath = "/llz/lihat_data"

	formTemplate    = "llz/ground_check.html"
	listTemplate    = "llz/lihat_data.html"
	detailTemplate  = "llz/detail_data.html"
	confirmTemplate = "llz/confirm_delete.html"
)

// inputFromRequest maps the posted form onto a GroundCheckInput. Reading
// fields that are missing or not numeric come back as absent.
func inputFromRequest(r *http.Request) (dtos.GroundCheckInput, error) {
	if err := r.ParseForm(); err != nil {
		return dtos.GroundCheckInput{}, err
	}

	form := r.PostForm
	return dtos.GroundCheckInput{
		Location:    form.Get("lokasi"),
		Date:        form.Get("tanggal"),
		Technicians: form["teknisi[]"],
		SignOffs:    form["paraf[]"],
		Notes:       form.Get("catatan"),
		Readings:    groundcheck.SheetFromForm(form),
	}, nil
}

func (h *UIHandler) renderForm(w http.ResponseWriter, status int, title, action string, in dtos.GroundCheckInput, formErr string) {
	data := map[string]interface{}{
		"Title": title,
		"Form":  newGroundCheckForm(action, in),
		"Error": formErr,
	}
	RenderTemplateStatus(w, status, formTemplate, data)
}

// NewGroundCheckView renders a blank entry form.
func (h *UIHandler) NewGroundCheckView(w http.ResponseWriter, r *http.Request) {
	h.renderForm(w, http.StatusOK, "Ground Check LLZ", "/llz/ground_check", dtos.GroundCheckInput{}, "")
}

// CreateGroundCheckHandler stores a submitted sheet and shows it.
func (h *UIHandler) CreateGroundCheckHandler(w http.ResponseWriter, r *http.Request) {
	in, err := inputFromRequest(r)
	if err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}

	id, err := h.groundChecks.Create(r.Context(), in)
	if err != nil {
		var formatErr *services.FormatError
		if errors.As(err, &formatErr) {
			h.renderForm(w, http.StatusUnprocessableEntity, "Ground Check LLZ", "/llz/ground_check", in, constants.StatusInvalidDate)
			return
		}
		logging.Error("Failed to create ground check", "error", err)
		http.Error(w, constants.StatusSaveFailed, http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/llz/detail/"+strconv.FormatUint(uint64(id), 10), http.StatusSeeOther)
}

// ListGroundChecksView renders every stored header.
func (h *UIHandler) ListGroundChecksView(w http.ResponseWriter, r *http.Request) {
	summaries, err := h.groundChecks.List(r.Context())
	if err != nil {
		logging.Error("Failed to list ground checks", "error", err)
		http.Error(w, constants.StatusLoadFailed, http.StatusInternalServerError)
		return
	}

	data := map[string]interface{}{
		"Title":        "Data Ground Check LLZ",
		"GroundChecks": summaries,
		"MaxReadings":  groundcheck.RowCount * groundcheck.ReadingsPerRow,
	}
	RenderTemplate(w, listTemplate, data)
}

// EditGroundCheckView renders the edit form pre-filled from storage.
func (h *UIHandler) EditGroundCheckView(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		notFound(w)
		return
	}

	gc, err := h.groundChecks.Get(r.Context(), id)
	if err != nil {
		h.loadFailed(w, err, id)
		return
	}

	h.renderForm(w, http.StatusOK, "Edit Ground Check LLZ", editPath(id), dtos.NewGroundCheckInput(gc), "")
}

// UpdateGroundCheckHandler replaces a stored sheet with the submitted one.
func (h *UIHandler) UpdateGroundCheckHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		notFound(w)
		return
	}

	in, err := inputFromRequest(r)
	if err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}

	if err := h.groundChecks.Edit(r.Context(), id, in); err != nil {
		var formatErr *services.FormatError
		switch {
		case errors.Is(err, services.ErrGroundCheckNotFound):
			notFound(w)
		case errors.As(err, &formatErr):
			h.renderForm(w, http.StatusUnprocessableEntity, "Edit Ground Check LLZ", editPath(id), in, constants.StatusInvalidDate)
		default:
			logging.Error("Failed to update ground check", "id", id, "error", err)
			http.Error(w, constants.StatusSaveFailed, http.StatusInternalServerError)
		}
		return
	}

	http.Redirect(w, r, listPath, http.StatusSeeOther)
}

// ConfirmDeleteView shows what is about to be deleted, with a signed
// single-use token the confirming POST must carry.
func (h *UIHandler) ConfirmDeleteView(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		notFound(w)
		return
	}

	gc, err := h.groundChecks.Get(r.Context(), id)
	if err != nil {
		h.loadFailed(w, err, id)
		return
	}

	token, err := h.deleteTokens.Issue(id)
	if err != nil {
		logging.Error("Failed to issue delete token", "id", id, "error", err)
		http.Error(w, constants.StatusDeleteFailed, http.StatusInternalServerError)
		return
	}

	data := map[string]interface{}{
		"Title":       "Hapus Ground Check LLZ",
		"GroundCheck": dtos.NewGroundCheckResponse(gc),
		"Token":       token,
	}
	RenderTemplate(w, confirmTemplate, data)
}

// DeleteGroundCheckHandler deletes a sheet once its delete token checks out.
func (h *UIHandler) DeleteGroundCheckHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		notFound(w)
		return
	}

	if err := h.deleteTokens.Redeem(r.Context(), r.PostFormValue("token"), id); err != nil {
		if errors.Is(err, common.ErrInvalidDeleteToken) {
			logging.Warn("Rejected delete token", "id", id, "error", err)
			http.Error(w, constants.StatusInvalidToken, http.StatusForbidden)
			return
		}
		logging.Error("Failed to redeem delete token", "id", id, "error", err)
		http.Error(w, constants.StatusDeleteFailed, http.StatusInternalServerError)
		return
	}

	if err := h.groundChecks.Delete(r.Context(), id); err != nil {
		if errors.Is(err, services.ErrGroundCheckNotFound) {
			notFound(w)
			return
		}
		logging.Error("Failed to delete ground check", "id", id, "error", err)
		http.Error(w, constants.StatusDeleteFailed, http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, listPath, http.StatusSeeOther)
}

// GroundCheckDetailView renders one sheet read-only.
func (h *UIHandler) GroundCheckDetailView(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		notFound(w)
		return
	}

	gc, err := h.groundChecks.Get(r.Context(), id)
	if err != nil {
		h.loadFailed(w, err, id)
		return
	}

	resp := dtos.NewGroundCheckResponse(gc)
	data := map[string]interface{}{
		"Title":       "Detail Ground Check LLZ",
		"GroundCheck": resp,
		"Rows":        newDetailRows(resp),
	}
	RenderTemplate(w, detailTemplate, data)
}

// ExportGroundCheckHandler streams one sheet as an XLSX workbook.
func (h *UIHandler) ExportGroundCheckHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		notFound(w)
		return
	}

	buf, filename, err := h.exporter.Export(r.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrGroundCheckNotFound) {
			notFound(w)
			return
		}
		logging.Error("Failed to export ground check", "id", id, "error", err)
		http.Error(w, constants.StatusExportFailed, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", constants.XLSXContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	buf.WriteTo(w)
}

func (h *UIHandler) loadFailed(w http.ResponseWriter, err error, id uint) {
	if errors.Is(err, services.ErrGroundCheckNotFound) {
		notFound(w)
		return
	}
	logging.Error("Failed to load ground check", "id", id, "error", err)
	http.Error(w, constants.StatusLoadFailed, http.StatusInternalServerError)
}

func editPath(id uint) string {
	return "/llz/edit/" + strconv.FormatUint(uint64(id), 10)
}
