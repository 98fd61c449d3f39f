package testutil

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/francescacanali/ebl-wbf-system-cards/internal/providers"
)

// StubFetcher serves pages keyed by URL. Unknown URLs return Default.
type StubFetcher struct {
	Pages   map[string]string
	Default string
	Err     error

	mu    sync.Mutex
	urls  []string
	calls atomic.Int32
}

func (f *StubFetcher) FetchHTML(ctx context.Context, url string) (string, error) {
	f.calls.Add(1)
	f.mu.Lock()
	f.urls = append(f.urls, url)
	f.mu.Unlock()

	if f.Err != nil {
		return "", f.Err
	}
	if html, ok := f.Pages[url]; ok {
		return html, nil
	}
	return f.Default, nil
}

// Calls returns how many fetches were made.
func (f *StubFetcher) Calls() int {
	return int(f.calls.Load())
}

// URLs returns the fetched URLs in order.
func (f *StubFetcher) URLs() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.urls...)
}

// UnavailableFetcher returns ErrProviderUnavailable.
type UnavailableFetcher struct{}

func (UnavailableFetcher) FetchHTML(ctx context.Context, url string) (string, error) {
	return "", providers.ErrProviderUnavailable
}

// NotifyingFetcher returns HTML and closes Notify on first fetch.
type NotifyingFetcher struct {
	HTML   string
	Notify chan struct{}
	once   sync.Once
}

func (f *NotifyingFetcher) FetchHTML(ctx context.Context, url string) (string, error) {
	if f.Notify != nil {
		f.once.Do(func() { close(f.Notify) })
	}
	return f.HTML, nil
}
