package server

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/francescacanali/ebl-wbf-system-cards/internal/config"
	"github.com/francescacanali/ebl-wbf-system-cards/internal/logging"
	"github.com/francescacanali/ebl-wbf-system-cards/internal/metrics"
	"github.com/francescacanali/ebl-wbf-system-cards/internal/providers"
	"github.com/francescacanali/ebl-wbf-system-cards/internal/providers/fixture"
	"github.com/francescacanali/ebl-wbf-system-cards/internal/providers/registration"
	"github.com/francescacanali/ebl-wbf-system-cards/internal/roster"
	"github.com/francescacanali/ebl-wbf-system-cards/internal/storage"
)

const (
	backendS3     = "s3"
	backendMemory = "memory"

	providerRegistration = "registration"
	providerFixture      = "fixture"

	scannerRegex = "regex"
	scannerDOM   = "dom"
)

// buildObjectStore selects the bucket backend.
func buildObjectStore(cfg config.StorageConfig, logger *slog.Logger) (storage.ObjectStore, error) {
	switch strings.ToLower(cfg.Backend) {
	case backendMemory:
		logging.Warn(logger, "using in-memory storage; data is lost on restart", nil)
		return storage.NewMemoryStore(), nil
	case backendS3, "":
		store, err := storage.NewS3Store(storage.S3Config{
			Endpoint:  cfg.Endpoint,
			AccessKey: cfg.AccessKey,
			SecretKey: cfg.SecretKey,
			Bucket:    cfg.Bucket,
		})
		if err != nil {
			return nil, fmt.Errorf("build s3 store: %w", err)
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}

// fetcherFactory assembles the upstream fetcher with shared wrappers (spacing + retry).
type fetcherFactory struct {
	logger  *slog.Logger
	metrics *metrics.Recorder
}

func newFetcherFactory(logger *slog.Logger, recorder *metrics.Recorder) fetcherFactory {
	return fetcherFactory{logger: logger, metrics: recorder}
}

func (f fetcherFactory) build(cfg config.UpstreamConfig) providers.Fetcher {
	name, fetcher := f.selectFetcher(cfg)
	if cfg.MinInterval > 0 {
		fetcher = providers.NewRateLimitedFetcher(fetcher, cfg.MinInterval, f.logger)
	}
	return providers.NewRetryingFetcher(fetcher, f.logger, f.metrics, name, cfg.Retries, cfg.Backoff)
}

func (f fetcherFactory) selectFetcher(cfg config.UpstreamConfig) (string, providers.Fetcher) {
	switch strings.ToLower(cfg.Provider) {
	case providerFixture:
		return providerFixture, fixture.New()
	case providerRegistration, "":
		return providerRegistration, registration.NewClient(registration.Config{Timeout: cfg.Timeout})
	default:
		logging.Warn(f.logger, "unknown provider, falling back to registration", nil, slog.String("provider", cfg.Provider))
		return providerRegistration, registration.NewClient(registration.Config{Timeout: cfg.Timeout})
	}
}

// selectScanner picks the row scanner used by the roster extractor.
func selectScanner(name string, logger *slog.Logger) roster.Scanner {
	switch strings.ToLower(name) {
	case scannerDOM:
		return roster.DOMScanner{}
	case scannerRegex, "":
		return roster.RegexScanner{}
	default:
		logging.Warn(logger, "unknown roster scanner, falling back to regex", nil, slog.String("scanner", name))
		return roster.RegexScanner{}
	}
}
