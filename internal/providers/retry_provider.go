package providers

import (
	"context"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/francescacanali/ebl-wbf-system-cards/internal/logging"
	"github.com/francescacanali/ebl-wbf-system-cards/internal/metrics"
)

const (
	defaultRetryAttempts = 3
	defaultBackoff       = 200 * time.Millisecond
	maxBackoff           = 10 * time.Second
)

// RetryingFetcher wraps a Fetcher with exponential backoff. Permanent
// upstream errors (4xx other than 429) are returned immediately.
type RetryingFetcher struct {
	inner       Fetcher
	logger      *slog.Logger
	metrics     *metrics.Recorder
	source      string
	maxAttempts int
	newBackOff  func() backoff.BackOff
}

// NewRetryingFetcher wraps inner with retries. If maxAttempts/initial are <= 0, defaults are used.
func NewRetryingFetcher(inner Fetcher, logger *slog.Logger, recorder *metrics.Recorder, source string, maxAttempts int, initial time.Duration) *RetryingFetcher {
	if maxAttempts <= 0 {
		maxAttempts = defaultRetryAttempts
	}
	if initial <= 0 {
		initial = defaultBackoff
	}
	return &RetryingFetcher{
		inner:       inner,
		logger:      logger,
		metrics:     recorder,
		source:      source,
		maxAttempts: maxAttempts,
		newBackOff: func() backoff.BackOff {
			b := backoff.NewExponentialBackOff()
			b.InitialInterval = initial
			b.MaxInterval = maxBackoff
			b.MaxElapsedTime = 0
			return b
		},
	}
}

func (r *RetryingFetcher) FetchHTML(ctx context.Context, url string) (string, error) {
	if r == nil || r.inner == nil {
		return "", ErrProviderUnavailable
	}

	var (
		body    string
		attempt int
	)
	operation := func() error {
		attempt++
		start := time.Now()
		html, err := r.inner.FetchHTML(ctx, url)
		r.metrics.RecordFetchAttempt(r.source, time.Since(start), err)
		if err == nil {
			body = html
			return nil
		}
		if statusErr, ok := AsStatusError(err); ok {
			if statusErr.RateLimited() {
				r.metrics.RecordRateLimit(r.source, statusErr.RetryAfter)
			}
			if statusErr.Permanent() {
				return backoff.Permanent(err)
			}
		}
		return err
	}
	notify := func(err error, delay time.Duration) {
		logWithSource(ctx, r.logger, slog.LevelWarn, r.source, "fetch retry",
			"attempt", attempt,
			"max_attempts", r.maxAttempts,
			logging.FieldURL, url,
			"delay_ms", delay.Milliseconds(),
			"err", err,
		)
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(r.newBackOff(), uint64(r.maxAttempts-1)),
		ctx,
	)
	if err := backoff.RetryNotify(operation, policy, notify); err != nil {
		logWithSource(ctx, r.logger, slog.LevelWarn, r.source, "fetch failed",
			"attempts", attempt,
			logging.FieldURL, url,
			"err", err,
		)
		return "", err
	}
	return body, nil
}
