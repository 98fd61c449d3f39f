// Package poller refreshes stored roster snapshots on an interval.
package poller

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/francescacanali/ebl-wbf-system-cards/internal/logging"
	"github.com/francescacanali/ebl-wbf-system-cards/internal/metrics"
	"github.com/francescacanali/ebl-wbf-system-cards/internal/roster"
	"github.com/francescacanali/ebl-wbf-system-cards/internal/snapshots"
)

const defaultInterval = 15 * time.Minute

// Refresher extracts one roster and stores it as a snapshot.
type Refresher interface {
	Refresh(ctx context.Context, code string, mode roster.Mode) (snapshots.Snapshot, error)
}

// TournamentSource lists the tournament codes to refresh on each cycle.
type TournamentSource func(ctx context.Context) []string

// Poller refreshes teams and pairs snapshots for every tournament on an interval.
type Poller struct {
	refresher   Refresher
	tournaments TournamentSource
	logger      *slog.Logger
	metrics     *metrics.Recorder
	interval    time.Duration

	ticker   *time.Ticker
	done     chan struct{}
	stopOnce sync.Once
	startMu  sync.Mutex
	started  bool

	statusMu sync.RWMutex
	status   Status
}

// Status describes the recent health of the poller loop.
type Status struct {
	ConsecutiveFailures int
	LastError           string
	LastAttempt         time.Time
	LastSuccess         time.Time
}

// IsReady reports whether the poller has had a recent success and is not failing repeatedly.
func (s Status) IsReady() bool {
	if s.LastSuccess.IsZero() {
		return false
	}
	return s.ConsecutiveFailures < 3
}

// StaticTournaments returns a TournamentSource that always yields codes.
func StaticTournaments(codes ...string) TournamentSource {
	return func(context.Context) []string { return codes }
}

// New constructs a Poller with sane defaults.
func New(refresher Refresher, tournaments TournamentSource, logger *slog.Logger, recorder *metrics.Recorder, interval time.Duration) *Poller {
	if interval <= 0 {
		interval = defaultInterval
	}
	if tournaments == nil {
		tournaments = StaticTournaments()
	}
	return &Poller{
		refresher:   refresher,
		tournaments: tournaments,
		logger:      logger,
		metrics:     recorder,
		interval:    interval,
		done:        make(chan struct{}),
	}
}

// Start begins polling until the context is cancelled or Stop is called.
func (p *Poller) Start(ctx context.Context) {
	p.startMu.Lock()
	if p.started {
		p.startMu.Unlock()
		return
	}
	p.started = true
	p.startMu.Unlock()

	p.ticker = time.NewTicker(p.interval)

	go func() {
		logging.Info(p.logger, "poller started", slog.Int64(logging.FieldDurationMS, p.interval.Milliseconds()))
		// Warm snapshots on boot.
		p.refreshOnce(ctx)

		for {
			select {
			case <-ctx.Done():
				p.stopTicker()
				logging.Info(p.logger, "poller stopped")
				return
			case <-p.done:
				p.stopTicker()
				logging.Info(p.logger, "poller stopped")
				return
			case <-p.ticker.C:
				p.refreshOnce(ctx)
			}
		}
	}()
}

// Stop halts the polling loop.
func (p *Poller) Stop(ctx context.Context) error {
	_ = ctx
	p.stopOnce.Do(func() {
		close(p.done)
		p.stopTicker()
	})
	return nil
}

// refreshOnce runs one cycle. A tournament without a page for a kind yields an
// empty snapshot, not a failure; the cycle fails only if some refresh errors.
func (p *Poller) refreshOnce(ctx context.Context) {
	start := time.Now()
	p.recordAttempt(start)

	var errs []error
	refreshed := 0
	for _, code := range p.tournaments(ctx) {
		for _, mode := range []roster.Mode{roster.ModeTeams, roster.ModePairs} {
			if ctx.Err() != nil {
				errs = append(errs, ctx.Err())
				break
			}
			snap, err := p.refresher.Refresh(ctx, code, mode)
			if err != nil {
				logging.Error(p.logger, "poller refresh failed", err,
					slog.String(logging.FieldTournament, code),
					slog.String(logging.FieldKind, string(mode)),
				)
				errs = append(errs, fmt.Errorf("%s %s: %w", code, mode, err))
				continue
			}
			refreshed++
			logging.Debug(p.logger, "poller refreshed snapshot",
				slog.String(logging.FieldTournament, code),
				slog.String(logging.FieldKind, string(mode)),
				slog.Int(logging.FieldCount, len(snap.Entities)),
			)
		}
	}

	err := errors.Join(errs...)
	p.metrics.RecordPollerCycle(time.Since(start), err)
	if err != nil {
		p.recordFailure(err, start)
		return
	}
	p.recordSuccess(start)
	logging.Info(p.logger, "poller refreshed rosters",
		logging.FieldCount, refreshed,
		logging.FieldDurationMS, time.Since(start).Milliseconds(),
	)
}

func (p *Poller) stopTicker() {
	if p.ticker != nil {
		p.ticker.Stop()
	}
}

func (p *Poller) recordAttempt(at time.Time) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.LastAttempt = at
}

func (p *Poller) recordSuccess(at time.Time) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.ConsecutiveFailures = 0
	p.status.LastError = ""
	p.status.LastSuccess = at
}

func (p *Poller) recordFailure(err error, at time.Time) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.ConsecutiveFailures++
	if err != nil {
		p.status.LastError = err.Error()
	}
	p.status.LastAttempt = at
}

// Status returns a snapshot of the poller's recent health.
func (p *Poller) Status() Status {
	p.statusMu.RLock()
	defer p.statusMu.RUnlock()
	return p.status
}
