package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/francescacanali/ebl-wbf-system-cards/internal/http/middleware"
	"github.com/francescacanali/ebl-wbf-system-cards/internal/logging"
)

func writeJSON(w http.ResponseWriter, status int, payload any, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logging.Error(logger, "failed to encode response", err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, message string, logger *slog.Logger) {
	writeJSON(w, status, errorBody(r, map[string]any{"error": message}), logger)
}

// writeFailure is writeError with a success flag, the shape login clients expect.
func writeFailure(w http.ResponseWriter, r *http.Request, status int, message string, logger *slog.Logger) {
	writeJSON(w, status, errorBody(r, map[string]any{"success": false, "error": message}), logger)
}

func errorBody(r *http.Request, body map[string]any) map[string]any {
	if reqID := middleware.RequestIDFromContext(r.Context()); reqID != "" {
		body["requestId"] = reqID
	}
	return body
}

func loggerFromContext(r *http.Request, fallback *slog.Logger) *slog.Logger {
	if r == nil {
		return fallback
	}
	return logging.FromContext(r.Context(), fallback)
}
