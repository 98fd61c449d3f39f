package handlers

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/francescacanali/ebl-wbf-system-cards/internal/app/cards"
	"github.com/francescacanali/ebl-wbf-system-cards/internal/http/requestutil"
	"github.com/francescacanali/ebl-wbf-system-cards/internal/logging"
)

// multipartOverhead leaves room for form fields around a full-size card.
const multipartOverhead = 64 << 10

// Upload accepts a multipart form with file, tournamentCode, teamName and fileName.
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	logger := loggerFromContext(r, h.logger)
	r.Body = http.MaxBytesReader(w, r.Body, cards.MaxUploadBytes+multipartOverhead)

	if err := r.ParseMultipartForm(cards.MaxUploadBytes + multipartOverhead); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, r, http.StatusBadRequest, cards.ErrTooLarge.Error(), logger)
			return
		}
		writeError(w, r, http.StatusBadRequest, "invalid multipart form", logger)
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	file, _, err := r.FormFile("file")
	if err != nil {
		writeError(w, r, http.StatusBadRequest, cards.ErrMissingFields.Error(), logger)
		return
	}
	defer file.Close()
	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "failed to read file", logger)
		return
	}

	tournament := r.FormValue("tournamentCode")
	if tournament == "" {
		tournament = h.defaultTournament
	}
	res, err := h.cards.Upload(r.Context(), cards.UploadRequest{
		Tournament: tournament,
		TeamName:   r.FormValue("teamName"),
		FileName:   r.FormValue("fileName"),
		Data:       data,
	})
	if err != nil {
		if cards.IsRejected(err) {
			writeError(w, r, http.StatusBadRequest, err.Error(), logger)
			return
		}
		logging.Error(logger, "card upload failed", err, slog.String(logging.FieldTournament, tournament))
		writeError(w, r, http.StatusInternalServerError, "Upload failed: "+err.Error(), logger)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"fileName": res.FileName,
		"url":      res.URL,
		"pages":    res.Pages,
	}, logger)
}

// Cards lists stored cards for ?tournament=.
func (h *Handler) Cards(w http.ResponseWriter, r *http.Request) {
	logger := loggerFromContext(r, h.logger)
	code := requestutil.Query(r, "tournament", h.defaultTournament)
	list, err := h.cards.List(r.Context(), code)
	if err != nil {
		logging.Error(logger, "card listing failed", err, slog.String(logging.FieldTournament, code))
		writeError(w, r, http.StatusInternalServerError, "Failed to list cards: "+err.Error(), logger)
		return
	}
	if list == nil {
		list = []cards.Card{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"cards": list}, logger)
}

// Validation returns the public validation map for ?tournament=&event=.
func (h *Handler) Validation(w http.ResponseWriter, r *http.Request) {
	code := requestutil.Query(r, "tournament", h.defaultTournament)
	event := requestutil.Query(r, "event", "")
	status := h.admin.PublicStatus(r.Context(), code, event)
	writeJSON(w, http.StatusOK, map[string]any{"status": status}, loggerFromContext(r, h.logger))
}
