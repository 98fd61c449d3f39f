package server

import (
	"context"
	"log/slog"
	"sort"

	"github.com/francescacanali/ebl-wbf-system-cards/internal/config"
	"github.com/francescacanali/ebl-wbf-system-cards/internal/metrics"
	"github.com/francescacanali/ebl-wbf-system-cards/internal/poller"
	"github.com/francescacanali/ebl-wbf-system-cards/internal/tournaments"
)

// Poller defines the minimal poller behavior needed by the server.
type Poller interface {
	Start(ctx context.Context)
	Stop(ctx context.Context) error
	Status() poller.Status
}

// buildPoller returns nil when the refresher is disabled.
func buildPoller(cfg config.PollerConfig, refresher poller.Refresher, tourneys *tournaments.Store, logger *slog.Logger, recorder *metrics.Recorder) *poller.Poller {
	if cfg.Interval <= 0 {
		return nil
	}
	return poller.New(refresher, pollTournaments(cfg.Tournaments, tourneys), logger, recorder, cfg.Interval)
}

// pollTournaments refreshes the configured codes, or every tournament in the
// bucket config when none are configured.
func pollTournaments(codes []string, tourneys *tournaments.Store) poller.TournamentSource {
	if len(codes) > 0 {
		return poller.StaticTournaments(codes...)
	}
	return func(ctx context.Context) []string {
		doc := tourneys.Load(ctx)
		out := make([]string, 0, len(doc.Tournaments))
		for code := range doc.Tournaments {
			out = append(out, code)
		}
		sort.Strings(out)
		return out
	}
}

