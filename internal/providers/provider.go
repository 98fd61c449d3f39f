package providers

import (
	"context"
	"errors"
)

// ErrProviderUnavailable is returned when a decorator has no inner fetcher.
var ErrProviderUnavailable = errors.New("provider unavailable")

// Fetcher retrieves the raw HTML of a registration page.
type Fetcher interface {
	FetchHTML(ctx context.Context, url string) (string, error)
}

// FetcherFunc adapts a function to the Fetcher interface.
type FetcherFunc func(ctx context.Context, url string) (string, error)

func (f FetcherFunc) FetchHTML(ctx context.Context, url string) (string, error) {
	return f(ctx, url)
}
