package http

import (
	"log/slog"
	nethttp "net/http"

	"github.com/gorilla/mux"

	"github.com/francescacanali/ebl-wbf-system-cards/internal/http/handlers"
	"github.com/francescacanali/ebl-wbf-system-cards/internal/http/middleware"
	"github.com/francescacanali/ebl-wbf-system-cards/internal/metrics"
)

// NewRouter registers the API routes. Admin routes require a bearer token.
func NewRouter(handler *handlers.Handler) *mux.Router {
	r := mux.NewRouter()
	r.NotFoundHandler = nethttp.HandlerFunc(handler.NotFound)
	r.MethodNotAllowedHandler = nethttp.HandlerFunc(handler.MethodNotAllowed)

	r.HandleFunc("/health", handler.Health).Methods(nethttp.MethodGet)
	r.HandleFunc("/ready", handler.Ready).Methods(nethttp.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/teams", handler.Teams).Methods(nethttp.MethodGet)
	api.HandleFunc("/pairs", handler.Pairs).Methods(nethttp.MethodGet)
	api.HandleFunc("/upload", handler.Upload).Methods(nethttp.MethodPost)
	api.HandleFunc("/cards", handler.Cards).Methods(nethttp.MethodGet)
	api.HandleFunc("/validation", handler.Validation).Methods(nethttp.MethodGet)

	adm := api.PathPrefix("/admin").Subrouter()
	adm.HandleFunc("/login", handler.Login).Methods(nethttp.MethodPost)
	adm.HandleFunc("/data", handler.RequireAdmin(handler.Data)).Methods(nethttp.MethodGet)
	adm.HandleFunc("/validate", handler.RequireAdmin(handler.Validate)).Methods(nethttp.MethodPost)
	adm.HandleFunc("/complete", handler.RequireAdmin(handler.Complete)).Methods(nethttp.MethodPost)
	adm.HandleFunc("/delete", handler.RequireAdmin(handler.Delete)).Methods(nethttp.MethodPost)
	adm.HandleFunc("/snapshots", handler.RequireAdmin(handler.Snapshots)).Methods(nethttp.MethodPost)

	return r
}

// NewHandler wraps the router with CORS, request logging and HTTP metrics.
// CORS runs first so preflight requests never reach the router.
func NewHandler(handler *handlers.Handler, logger *slog.Logger, recorder *metrics.Recorder) nethttp.Handler {
	return middleware.CORS(middleware.LoggingMiddleware(logger, recorder, NewRouter(handler)))
}
