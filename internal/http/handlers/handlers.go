package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/francescacanali/ebl-wbf-system-cards/internal/app/admin"
	"github.com/francescacanali/ebl-wbf-system-cards/internal/app/cards"
	"github.com/francescacanali/ebl-wbf-system-cards/internal/app/rosters"
	"github.com/francescacanali/ebl-wbf-system-cards/internal/auth"
	"github.com/francescacanali/ebl-wbf-system-cards/internal/poller"
	"github.com/francescacanali/ebl-wbf-system-cards/internal/roster"
	"github.com/francescacanali/ebl-wbf-system-cards/internal/snapshots"
)

// RosterService serves live and stored rosters.
type RosterService interface {
	Teams(ctx context.Context, code string) ([]rosters.Listing, error)
	Pairs(ctx context.Context, code string) ([]rosters.Listing, error)
	Snapshot(ctx context.Context, code string, mode roster.Mode) ([]rosters.Listing, error)
	Refresh(ctx context.Context, code string, mode roster.Mode) (snapshots.Snapshot, error)
}

// CardService stores convention cards.
type CardService interface {
	Upload(ctx context.Context, req cards.UploadRequest) (cards.UploadResult, error)
	List(ctx context.Context, tournament string) ([]cards.Card, error)
	Delete(ctx context.Context, tournament, fileName string) error
}

// AdminService manages admin login and review state.
type AdminService interface {
	Login(ctx context.Context, tournament, event, password string) (string, error)
	Data(ctx context.Context, tournament, event string) (admin.Data, error)
	SetValidation(ctx context.Context, tournament, event, fileName string, status any) error
	SetCompletion(ctx context.Context, tournament, event, fileName string, status any) error
	PublicStatus(ctx context.Context, tournament, event string) map[string]any
}

// TokenVerifier checks admin bearer tokens.
type TokenVerifier interface {
	Verify(token string) (auth.Claims, error)
}

// Deps are the collaborators of a Handler. StatusFn may be nil when no poller runs.
type Deps struct {
	Rosters           RosterService
	Cards             CardService
	Admin             AdminService
	Tokens            TokenVerifier
	DefaultTournament string
	Logger            *slog.Logger
	StatusFn          func() poller.Status
}

// Handler wires HTTP routes to the services.
type Handler struct {
	rosters           RosterService
	cards             CardService
	admin             AdminService
	tokens            TokenVerifier
	defaultTournament string
	logger            *slog.Logger
	statusFn          func() poller.Status
	validate          *validator.Validate
}

// NewHandler constructs a Handler with defaults.
func NewHandler(deps Deps) *Handler {
	return &Handler{
		rosters:           deps.Rosters,
		cards:             deps.Cards,
		admin:             deps.Admin,
		tokens:            deps.Tokens,
		defaultTournament: deps.DefaultTournament,
		logger:            deps.Logger,
		statusFn:          deps.StatusFn,
		validate:          validator.New(),
	}
}

// Health reports the service health.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if err := r.Context().Err(); err != nil {
		writeError(w, r, http.StatusServiceUnavailable, "shutting down", h.logger)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"}, h.logger)
}

// Ready reports readiness for traffic. Without a poller the service is always ready.
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	if h.statusFn == nil {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"}, h.logger)
		return
	}
	status := h.statusFn()
	if status.IsReady() {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"}, h.logger)
		return
	}
	msg := status.LastError
	if msg == "" {
		msg = "not ready"
	}
	writeError(w, r, http.StatusServiceUnavailable, msg, h.logger)
}

// NotFound answers unknown routes.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, r, http.StatusNotFound, "not found", h.logger)
}

// MethodNotAllowed answers known routes hit with the wrong method.
func (h *Handler) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeError(w, r, http.StatusMethodNotAllowed, "Method not allowed", h.logger)
}
