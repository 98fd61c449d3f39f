package providers

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// RateLimitedFetcher spaces out upstream calls so a burst of roster requests
// does not hammer the registration site.
type RateLimitedFetcher struct {
	next     Fetcher
	interval time.Duration
	logger   *slog.Logger

	mu   sync.Mutex
	last time.Time
	now  func() time.Time
}

// NewRateLimitedFetcher returns a Fetcher that waits at least interval between calls.
func NewRateLimitedFetcher(next Fetcher, interval time.Duration, logger *slog.Logger) *RateLimitedFetcher {
	if interval <= 0 {
		interval = time.Second
	}
	return &RateLimitedFetcher{
		next:     next,
		interval: interval,
		logger:   logger,
		now:      time.Now,
	}
}

func (p *RateLimitedFetcher) FetchHTML(ctx context.Context, url string) (string, error) {
	if p == nil || p.next == nil {
		return "", ErrProviderUnavailable
	}
	if err := p.wait(ctx); err != nil {
		logWithSource(ctx, p.logger, slog.LevelWarn, "rate-limited", "rate-limited fetch canceled")
		return "", err
	}
	return p.next.FetchHTML(ctx, url)
}

// wait reserves the next slot and sleeps until it arrives.
func (p *RateLimitedFetcher) wait(ctx context.Context) error {
	p.mu.Lock()
	now := p.now()
	slot := p.last.Add(p.interval)
	if slot.Before(now) {
		slot = now
	}
	p.last = slot
	p.mu.Unlock()

	delay := slot.Sub(now)
	if delay <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
