package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/francescacanali/ebl-wbf-system-cards/internal/app/rosters"
	"github.com/francescacanali/ebl-wbf-system-cards/internal/http/requestutil"
	"github.com/francescacanali/ebl-wbf-system-cards/internal/logging"
	"github.com/francescacanali/ebl-wbf-system-cards/internal/roster"
	"github.com/francescacanali/ebl-wbf-system-cards/internal/snapshots"
)

// Teams returns {"teams": [...]} for ?tournament=, live unless ?source=snapshot.
func (h *Handler) Teams(w http.ResponseWriter, r *http.Request) {
	h.serveRoster(w, r, roster.ModeTeams, "teams")
}

// Pairs returns {"pairs": [...]} for ?tournament=, live unless ?source=snapshot.
func (h *Handler) Pairs(w http.ResponseWriter, r *http.Request) {
	h.serveRoster(w, r, roster.ModePairs, "pairs")
}

func (h *Handler) serveRoster(w http.ResponseWriter, r *http.Request, mode roster.Mode, field string) {
	logger := loggerFromContext(r, h.logger)
	code := requestutil.Query(r, "tournament", h.defaultTournament)

	if requestutil.Query(r, "source", "") == "snapshot" {
		listings, err := h.rosters.Snapshot(r.Context(), code, mode)
		if err != nil {
			if errors.Is(err, snapshots.ErrNoSnapshot) || errors.Is(err, rosters.ErrSnapshotsDisabled) {
				writeError(w, r, http.StatusNotFound, "snapshot unavailable", logger)
				return
			}
			logging.Error(logger, "snapshot load failed", err, slog.String(logging.FieldTournament, code))
			writeError(w, r, http.StatusInternalServerError, "Failed to fetch "+field+": "+err.Error(), logger)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{field: listings}, logger)
		return
	}

	var (
		listings []rosters.Listing
		err      error
	)
	if mode == roster.ModePairs {
		listings, err = h.rosters.Pairs(r.Context(), code)
	} else {
		listings, err = h.rosters.Teams(r.Context(), code)
	}
	if err != nil {
		logging.Error(logger, "roster fetch failed", err,
			slog.String(logging.FieldTournament, code),
			slog.String(logging.FieldKind, field),
		)
		writeError(w, r, http.StatusInternalServerError, "Failed to fetch "+field+": "+err.Error(), logger)
		return
	}
	logging.Info(logger, "served roster",
		slog.String(logging.FieldTournament, code),
		slog.String(logging.FieldKind, field),
		slog.Int(logging.FieldCount, len(listings)),
	)
	writeJSON(w, http.StatusOK, map[string]any{field: listings}, logger)
}
