// Package rosters serves team and pair listings for a tournament, either
// live from its registration page or from the last stored snapshot.
package rosters

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/francescacanali/ebl-wbf-system-cards/internal/logging"
	"github.com/francescacanali/ebl-wbf-system-cards/internal/metrics"
	"github.com/francescacanali/ebl-wbf-system-cards/internal/providers"
	"github.com/francescacanali/ebl-wbf-system-cards/internal/roster"
	"github.com/francescacanali/ebl-wbf-system-cards/internal/snapshots"
	"github.com/francescacanali/ebl-wbf-system-cards/internal/tournaments"
)

// ErrSnapshotsDisabled is returned when snapshot operations run without a store.
var ErrSnapshotsDisabled = errors.New("snapshots not configured")

// Listing is an entity as served to clients. UploadedCards is always an
// empty list; cards are looked up separately.
type Listing struct {
	roster.Entity
	UploadedCards []string `json:"uploadedCards"`
}

// TournamentLookup resolves a tournament code to its sources.
type TournamentLookup interface {
	Lookup(ctx context.Context, code string) (tournaments.Tournament, bool)
}

// Deps are the collaborators of a Service. Snapshots, Metrics and Logger may be nil.
type Deps struct {
	Tournaments TournamentLookup
	Fetcher     providers.Fetcher
	Extractor   *roster.Extractor
	Snapshots   *snapshots.Store
	Metrics     *metrics.Recorder
	Logger      *slog.Logger
}

// Service fetches and extracts rosters.
type Service struct {
	tournaments TournamentLookup
	fetcher     providers.Fetcher
	extractor   *roster.Extractor
	snapshots   *snapshots.Store
	metrics     *metrics.Recorder
	logger      *slog.Logger
}

// NewService constructs a Service. A nil Extractor uses the regex scanner.
func NewService(deps Deps) *Service {
	extractor := deps.Extractor
	if extractor == nil {
		extractor = roster.NewExtractor(nil)
	}
	return &Service{
		tournaments: deps.Tournaments,
		fetcher:     deps.Fetcher,
		extractor:   extractor,
		snapshots:   deps.Snapshots,
		metrics:     deps.Metrics,
		logger:      deps.Logger,
	}
}

// Teams returns the live team listing for code.
func (s *Service) Teams(ctx context.Context, code string) ([]Listing, error) {
	entities, err := s.Extract(ctx, code, roster.ModeTeams)
	if err != nil {
		return nil, err
	}
	return toListings(entities), nil
}

// Pairs returns the live pair listing for code.
func (s *Service) Pairs(ctx context.Context, code string) ([]Listing, error) {
	entities, err := s.Extract(ctx, code, roster.ModePairs)
	if err != nil {
		return nil, err
	}
	return toListings(entities), nil
}

// Extract fetches the registration page for code and mode and extracts its
// entities. A tournament without a source for mode yields an empty list.
func (s *Service) Extract(ctx context.Context, code string, mode roster.Mode) ([]roster.Entity, error) {
	if !mode.Valid() {
		return []roster.Entity{}, nil
	}
	var (
		t  tournaments.Tournament
		ok bool
	)
	if s.tournaments != nil {
		t, ok = s.tournaments.Lookup(ctx, code)
	}
	url := t.SourceURL(mode)
	if !ok || url == "" {
		return []roster.Entity{}, nil
	}
	if s.fetcher == nil {
		return nil, fmt.Errorf("fetch %s: %w", mode, providers.ErrProviderUnavailable)
	}

	logger := logging.FromContext(ctx, s.logger)
	start := time.Now()
	html, err := s.fetcher.FetchHTML(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", mode, err)
	}

	entities, shape := s.extractor.ExtractShape(html, mode)
	s.metrics.RecordRosterEntities(string(mode), len(entities))
	logging.Debug(logger, "roster extracted",
		slog.String(logging.FieldTournament, code),
		slog.String(logging.FieldKind, string(mode)),
		slog.String("shape", shape.String()),
		slog.Int(logging.FieldCount, len(entities)),
		slog.Int64(logging.FieldDurationMS, time.Since(start).Milliseconds()),
	)
	return entities, nil
}

// Refresh extracts code/mode live and stores the result as a snapshot.
func (s *Service) Refresh(ctx context.Context, code string, mode roster.Mode) (snapshots.Snapshot, error) {
	if s.snapshots == nil {
		return snapshots.Snapshot{}, ErrSnapshotsDisabled
	}
	entities, err := s.Extract(ctx, code, mode)
	if err != nil {
		return snapshots.Snapshot{}, err
	}
	return s.snapshots.Write(ctx, code, string(mode), entities)
}

// Snapshot returns the stored listing for code/mode.
func (s *Service) Snapshot(ctx context.Context, code string, mode roster.Mode) ([]Listing, error) {
	if s.snapshots == nil {
		return nil, ErrSnapshotsDisabled
	}
	snap, err := s.snapshots.Load(ctx, code, string(mode))
	if err != nil {
		return nil, err
	}
	return toListings(snap.Entities), nil
}

func toListings(entities []roster.Entity) []Listing {
	out := make([]Listing, 0, len(entities))
	for _, e := range entities {
		out = append(out, Listing{Entity: e, UploadedCards: []string{}})
	}
	return out
}
