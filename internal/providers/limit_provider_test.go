package providers

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

type countingFetcher struct {
	calls atomic.Int32
}

func (c *countingFetcher) FetchHTML(ctx context.Context, url string) (string, error) {
	c.calls.Add(1)
	return "ok", nil
}

func TestRateLimitedFetcherSpacesCalls(t *testing.T) {
	inner := &countingFetcher{}
	rl := NewRateLimitedFetcher(inner, 20*time.Millisecond, nil)

	start := time.Now()
	for i := 0; i < 2; i++ {
		if _, err := rl.FetchHTML(context.Background(), "u"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
	}
	if elapsed := time.Since(start); elapsed < 20*time.Millisecond {
		t.Fatalf("expected second call to wait, elapsed %s", elapsed)
	}
	if inner.calls.Load() != 2 {
		t.Fatalf("expected inner fetcher called twice, got %d", inner.calls.Load())
	}
}

func TestRateLimitedFetcherRespectsCanceledContext(t *testing.T) {
	inner := &countingFetcher{}
	rl := NewRateLimitedFetcher(inner, time.Minute, nil)
	_, _ = rl.FetchHTML(context.Background(), "u")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := rl.FetchHTML(ctx, "u"); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context canceled error, got %v", err)
	}
	if inner.calls.Load() != 1 {
		t.Fatalf("expected inner fetcher not called on canceled context")
	}
}

func TestRateLimitedFetcherHandlesNilInner(t *testing.T) {
	rl := NewRateLimitedFetcher(nil, time.Millisecond, nil)
	if _, err := rl.FetchHTML(context.Background(), "u"); !errors.Is(err, ErrProviderUnavailable) {
		t.Fatalf("expected ErrProviderUnavailable, got %v", err)
	}
}

func TestRateLimitedFetcherDefaultsInterval(t *testing.T) {
	rl := NewRateLimitedFetcher(&countingFetcher{}, 0, nil)
	if rl.interval != time.Second {
		t.Fatalf("expected default interval 1s, got %s", rl.interval)
	}
}

func TestFetcherFuncAdapts(t *testing.T) {
	f := FetcherFunc(func(ctx context.Context, url string) (string, error) { return url, nil })
	if got, _ := f.FetchHTML(context.Background(), "x"); got != "x" {
		t.Fatalf("expected passthrough, got %q", got)
	}
}
