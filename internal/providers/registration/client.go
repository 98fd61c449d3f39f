// Package registration fetches team and pair listings from tournament
// registration pages.
package registration

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/francescacanali/ebl-wbf-system-cards/internal/providers"
)

// ErrBodyTooLarge is returned when a page exceeds the read cap.
var ErrBodyTooLarge = errors.New("registration: response body too large")

// Config controls how the client reaches registration pages.
type Config struct {
	HTTPClient *http.Client
	Timeout    time.Duration
	UserAgent  string
}

// Client downloads registration pages as HTML.
type Client struct {
	httpClient httpDoer
	userAgent  string
}

// NewClient constructs a registration client with the provided configuration.
func NewClient(cfg Config) *Client {
	return &Client{
		httpClient: resolveHTTPClient(cfg.HTTPClient, cfg.Timeout),
		userAgent:  resolveUserAgent(cfg.UserAgent),
	}
}

// FetchHTML performs a GET on url and returns the page body.
func (c *Client) FetchHTML(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, errorSnippetBytes))
		return "", &providers.StatusError{
			Source:     sourceName,
			StatusCode: resp.StatusCode,
			RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After")),
			Message:    strings.TrimSpace(string(snippet)),
		}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes+1))
	if err != nil {
		return "", fmt.Errorf("registration: read body: %w", err)
	}
	if len(body) > maxBodyBytes {
		return "", ErrBodyTooLarge
	}
	return string(body), nil
}
