package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/francescacanali/ebl-wbf-system-cards/internal/app/admin"
	"github.com/francescacanali/ebl-wbf-system-cards/internal/app/cards"
	"github.com/francescacanali/ebl-wbf-system-cards/internal/auth"
	"github.com/francescacanali/ebl-wbf-system-cards/internal/http/requestutil"
	"github.com/francescacanali/ebl-wbf-system-cards/internal/logging"
	"github.com/francescacanali/ebl-wbf-system-cards/internal/roster"
)

const maxJSONBodyBytes = 1 << 20

type claimsKey struct{}

type loginRequest struct {
	Tournament string `json:"tournament" validate:"required"`
	Event      string `json:"event" validate:"required"`
	Password   string `json:"password" validate:"required"`
}

type statusRequest struct {
	Tournament string `json:"tournament" validate:"required"`
	Event      string `json:"event" validate:"required"`
	FileName   string `json:"fileName" validate:"required"`
	Status     any    `json:"status"`
}

type deleteRequest struct {
	Tournament string `json:"tournament" validate:"required"`
	FileName   string `json:"fileName" validate:"required"`
}

type snapshotResult struct {
	Kind      string    `json:"kind"`
	Entities  int       `json:"entities"`
	FetchedAt time.Time `json:"fetchedAt"`
}

// RequireAdmin rejects requests without a valid bearer token and stores the
// token claims on the request context.
func (h *Handler) RequireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := loggerFromContext(r, h.logger)
		token, ok := auth.BearerToken(r.Header.Get("Authorization"))
		if !ok || h.tokens == nil {
			writeError(w, r, http.StatusUnauthorized, "Unauthorized", logger)
			return
		}
		claims, err := h.tokens.Verify(token)
		if err != nil {
			writeError(w, r, http.StatusUnauthorized, "Invalid or expired token", logger)
			return
		}
		next(w, r.WithContext(context.WithValue(r.Context(), claimsKey{}, claims)))
	}
}

func claimsFromContext(ctx context.Context) (auth.Claims, bool) {
	claims, ok := ctx.Value(claimsKey{}).(auth.Claims)
	return claims, ok
}

// Login exchanges an event password for an admin token.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	logger := loggerFromContext(r, h.logger)
	var req loginRequest
	if !h.decodeBody(w, r, &req) {
		return
	}
	token, err := h.admin.Login(r.Context(), req.Tournament, req.Event, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, admin.ErrMissingFields):
			writeFailure(w, r, http.StatusBadRequest, err.Error(), logger)
		case errors.Is(err, admin.ErrInvalidTournament), errors.Is(err, admin.ErrInvalidPassword):
			writeFailure(w, r, http.StatusUnauthorized, err.Error(), logger)
		default:
			logging.Error(logger, "admin login failed", err, slog.String(logging.FieldTournament, req.Tournament))
			writeFailure(w, r, http.StatusInternalServerError, "login failed", logger)
		}
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "token": token}, logger)
}

// Data returns the admin document. Tournament and event default to the token's.
func (h *Handler) Data(w http.ResponseWriter, r *http.Request) {
	logger := loggerFromContext(r, h.logger)
	claims, _ := claimsFromContext(r.Context())
	code := requestutil.Query(r, "tournament", claims.Tournament)
	event := requestutil.Query(r, "event", claims.Event)
	if !h.authorize(w, r, claims, code) {
		return
	}
	data, err := h.admin.Data(r.Context(), code, event)
	if err != nil {
		logging.Error(logger, "admin data load failed", err,
			slog.String(logging.FieldTournament, code),
			slog.String(logging.FieldEvent, event),
		)
		writeError(w, r, http.StatusInternalServerError, "Failed to load admin data: "+err.Error(), logger)
		return
	}
	writeJSON(w, http.StatusOK, data, logger)
}

// Validate records a validation status for one card.
func (h *Handler) Validate(w http.ResponseWriter, r *http.Request) {
	h.setStatus(w, r, h.admin.SetValidation)
}

// Complete records a completion status for one card.
func (h *Handler) Complete(w http.ResponseWriter, r *http.Request) {
	h.setStatus(w, r, h.admin.SetCompletion)
}

func (h *Handler) setStatus(w http.ResponseWriter, r *http.Request, set func(ctx context.Context, tournament, event, fileName string, status any) error) {
	logger := loggerFromContext(r, h.logger)
	var req statusRequest
	if !h.decodeBody(w, r, &req) {
		return
	}
	claims, _ := claimsFromContext(r.Context())
	if !h.authorize(w, r, claims, req.Tournament) {
		return
	}
	if err := set(r.Context(), req.Tournament, req.Event, req.FileName, req.Status); err != nil {
		if errors.Is(err, admin.ErrMissingFields) {
			writeError(w, r, http.StatusBadRequest, err.Error(), logger)
			return
		}
		logging.Error(logger, "admin status update failed", err,
			slog.String(logging.FieldTournament, req.Tournament),
			slog.String(logging.FieldEvent, req.Event),
		)
		writeError(w, r, http.StatusInternalServerError, "Failed to save status: "+err.Error(), logger)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true}, logger)
}

// Delete removes a stored card.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	logger := loggerFromContext(r, h.logger)
	var req deleteRequest
	if !h.decodeBody(w, r, &req) {
		return
	}
	claims, _ := claimsFromContext(r.Context())
	if !h.authorize(w, r, claims, req.Tournament) {
		return
	}
	if err := h.cards.Delete(r.Context(), req.Tournament, req.FileName); err != nil {
		if cards.IsRejected(err) {
			writeError(w, r, http.StatusBadRequest, err.Error(), logger)
			return
		}
		logging.Error(logger, "card delete failed", err, slog.String(logging.FieldTournament, req.Tournament))
		writeError(w, r, http.StatusInternalServerError, "Delete failed: "+err.Error(), logger)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "deleted": req.FileName}, logger)
}

// Snapshots refreshes stored rosters for ?tournament=. ?kind= is teams, pairs
// or all (the default).
func (h *Handler) Snapshots(w http.ResponseWriter, r *http.Request) {
	logger := loggerFromContext(r, h.logger)
	claims, _ := claimsFromContext(r.Context())
	code := requestutil.Query(r, "tournament", claims.Tournament)
	if !h.authorize(w, r, claims, code) {
		return
	}

	var modes []roster.Mode
	switch kind := requestutil.Query(r, "kind", "all"); kind {
	case "all":
		modes = []roster.Mode{roster.ModeTeams, roster.ModePairs}
	default:
		mode := roster.Mode(kind)
		if !mode.Valid() {
			writeError(w, r, http.StatusBadRequest, "kind must be teams, pairs or all", logger)
			return
		}
		modes = []roster.Mode{mode}
	}

	results := make([]snapshotResult, 0, len(modes))
	for _, mode := range modes {
		snap, err := h.rosters.Refresh(r.Context(), code, mode)
		if err != nil {
			logging.Error(logger, "snapshot refresh failed", err,
				slog.String(logging.FieldTournament, code),
				slog.String(logging.FieldKind, string(mode)),
			)
			writeError(w, r, http.StatusInternalServerError, "Failed to refresh "+string(mode)+": "+err.Error(), logger)
			return
		}
		results = append(results, snapshotResult{Kind: snap.Kind, Entities: len(snap.Entities), FetchedAt: snap.FetchedAt})
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "snapshots": results}, logger)
}

// authorize checks that the token was issued for tournament.
func (h *Handler) authorize(w http.ResponseWriter, r *http.Request, claims auth.Claims, tournament string) bool {
	if claims.Tournament != "" && tournament != claims.Tournament {
		writeError(w, r, http.StatusForbidden, "Forbidden", loggerFromContext(r, h.logger))
		return false
	}
	return true
}

// decodeBody reads a JSON body into dst and validates its tags. It writes the
// 400 response itself and reports whether the handler may continue.
func (h *Handler) decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	logger := loggerFromContext(r, h.logger)
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeFailure(w, r, http.StatusBadRequest, "invalid JSON body", logger)
		return false
	}
	if err := h.validate.StructCtx(r.Context(), dst); err != nil {
		writeFailure(w, r, http.StatusBadRequest, admin.ErrMissingFields.Error(), logger)
		return false
	}
	return true
}
