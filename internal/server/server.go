package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/francescacanali/ebl-wbf-system-cards/internal/app/admin"
	"github.com/francescacanali/ebl-wbf-system-cards/internal/app/cards"
	"github.com/francescacanali/ebl-wbf-system-cards/internal/app/rosters"
	"github.com/francescacanali/ebl-wbf-system-cards/internal/auth"
	"github.com/francescacanali/ebl-wbf-system-cards/internal/config"
	httpserver "github.com/francescacanali/ebl-wbf-system-cards/internal/http"
	"github.com/francescacanali/ebl-wbf-system-cards/internal/http/handlers"
	"github.com/francescacanali/ebl-wbf-system-cards/internal/logging"
	"github.com/francescacanali/ebl-wbf-system-cards/internal/metrics"
	"github.com/francescacanali/ebl-wbf-system-cards/internal/poller"
	"github.com/francescacanali/ebl-wbf-system-cards/internal/providers"
	"github.com/francescacanali/ebl-wbf-system-cards/internal/roster"
	"github.com/francescacanali/ebl-wbf-system-cards/internal/snapshots"
	"github.com/francescacanali/ebl-wbf-system-cards/internal/storage"
	"github.com/francescacanali/ebl-wbf-system-cards/internal/tournaments"
)

var metricsSetup = metrics.Setup

type Server struct {
	cfg           config.Config
	logger        *slog.Logger
	metrics       *metrics.Recorder
	objects       storage.ObjectStore
	httpServer    httpServer
	metricsServer httpServer
	poller        Poller
	metricsStop   func(context.Context) error
}

// New constructs a server from configuration.
func New(cfg config.Config, logger *slog.Logger) (*Server, error) {
	if logger == nil {
		logger = logging.NewLogger(logging.Config{})
	}
	objects, err := buildObjectStore(cfg.Storage, logger)
	if err != nil {
		return nil, err
	}
	recorder, metricsSrv, metricsShutdown := buildMetrics(cfg, logger, nil)
	srv, err := newServerWithDeps(cfg, logger, objects, nil, recorder)
	if err != nil {
		if metricsShutdown != nil {
			_ = metricsShutdown(context.Background())
		}
		return nil, err
	}
	srv.metricsServer = metricsSrv
	srv.metricsStop = metricsShutdown
	return srv, nil
}

// newServerWithDeps wires services over objects. A nil fetcher is built from cfg.Upstream.
func newServerWithDeps(cfg config.Config, logger *slog.Logger, objects storage.ObjectStore, fetcher providers.Fetcher, recorder *metrics.Recorder) (*Server, error) {
	if fetcher == nil {
		fetcher = newFetcherFactory(logger, recorder).build(cfg.Upstream)
	}
	issuer, err := auth.NewIssuer(cfg.Auth.TokenSecret, cfg.Auth.TokenTTL)
	if err != nil {
		return nil, fmt.Errorf("build token issuer: %w", err)
	}
	if cfg.Auth.TokenSecret == "" {
		logging.Warn(logger, "admin token secret unset; tokens will not survive a restart", nil)
	}

	tourneys := tournaments.NewStore(objects, logger)
	rosterSvc := rosters.NewService(rosters.Deps{
		Tournaments: tourneys,
		Fetcher:     fetcher,
		Extractor:   roster.NewExtractor(selectScanner(cfg.Upstream.Scanner, logger)),
		Snapshots:   snapshots.NewStore(objects),
		Metrics:     recorder,
		Logger:      logger,
	})

	var (
		plr      Poller
		statusFn func() poller.Status
	)
	if p := buildPoller(cfg.Poller, rosterSvc, tourneys, logger, recorder); p != nil {
		plr = p
		statusFn = p.Status
	}

	handler := handlers.NewHandler(handlers.Deps{
		Rosters:           rosterSvc,
		Cards:             cards.NewService(objects, cfg.Storage.PublicURL, recorder, logger),
		Admin:             admin.NewService(objects, tourneys, issuer, logger),
		Tokens:            issuer,
		DefaultTournament: cfg.DefaultTournament,
		Logger:            logger,
		StatusFn:          statusFn,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      httpserver.NewHandler(handler, logger, recorder),
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}

	return &Server{
		cfg:        cfg,
		logger:     logger,
		metrics:    recorder,
		objects:    objects,
		httpServer: netHTTPServer{srv: srv},
		poller:     plr,
	}, nil
}

// Run starts the poller and HTTP server, then waits for context cancellation to shut down gracefully.
func (s *Server) Run(ctx context.Context, stop context.CancelFunc) {
	s.startMetrics()
	s.startServer(stop)
	if s.poller != nil {
		s.poller.Start(ctx)
	}

	<-ctx.Done()
	logging.Info(s.logger, "shutdown signal received")

	s.gracefulShutdown()
}

func (s *Server) startServer(stop context.CancelFunc) {
	logging.Info(s.logger, "http server starting", slog.String("addr", s.httpServer.Addr()))
	launchServer("http", s.httpServer, s.logger, func(err error) {
		if stop != nil {
			stop()
		}
	})
}

func (s *Server) startMetrics() {
	if s.metricsServer == nil {
		return
	}
	logging.Info(s.logger, "metrics server starting", slog.String("addr", s.metricsServer.Addr()))
	launchServer("metrics", s.metricsServer, s.logger, nil)
}

func (s *Server) gracefulShutdown() {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if s.poller != nil {
		if err := s.poller.Stop(shutdownCtx); err != nil {
			logging.Error(s.logger, "failed to stop poller", err)
		}
	}

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		logging.Error(s.logger, "graceful shutdown failed", err)
	}

	if s.metricsStop != nil {
		if err := s.metricsStop(shutdownCtx); err != nil {
			logging.Warn(s.logger, "metrics shutdown failed", err)
		}
	}

	if s.metricsServer != nil {
		if err := s.metricsServer.Shutdown(shutdownCtx); err != nil {
			logging.Warn(s.logger, "metrics server shutdown failed", err)
		}
	}

	logging.Info(s.logger, "shutdown complete")
}

func buildMetrics(cfg config.Config, logger *slog.Logger, recorder *metrics.Recorder) (*metrics.Recorder, httpServer, func(context.Context) error) {
	if recorder != nil {
		return recorder, nil, nil
	}

	recCfg := metrics.TelemetryConfig{
		Enabled:      cfg.Metrics.Enabled,
		Port:         cfg.Metrics.Port,
		ServiceName:  cfg.Metrics.ServiceName,
		OtlpEndpoint: cfg.Metrics.OtlpEndpoint,
		OtlpInsecure: cfg.Metrics.OtlpInsecure,
	}

	rec, handler, shutdown, err := metricsSetup(context.Background(), recCfg)
	if err != nil {
		logging.Warn(logger, "metrics setup failed, continuing without telemetry", err)
		return metrics.NewRecorder(), nil, nil
	}

	var metricsSrv httpServer
	if handler != nil && recCfg.Enabled {
		metricsSrv = netHTTPServer{
			srv: &http.Server{
				Addr:              ":" + recCfg.Port,
				Handler:           handler,
				ReadHeaderTimeout: readTimeout,
			},
		}
	}

	return rec, metricsSrv, shutdown
}

func launchServer(name string, srv httpServer, logger *slog.Logger, onError func(error)) {
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Warn(logger, name+" server failed", err)
			if onError != nil {
				onError(err)
			}
		}
	}()
}

// Handler exposes the HTTP handler (useful for tests).
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler()
}
