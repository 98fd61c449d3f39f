// Package fixture serves canned registration pages for offline development.
package fixture

import (
	"context"
	_ "embed"
	"strings"
)

var (
	//go:embed teams.html
	teamsHTML string
	//go:embed pairs.html
	pairsHTML string
)

// Fetcher returns embedded pages instead of hitting the network. URLs that
// mention "pair" get the pairs page, anything else gets the teams page.
type Fetcher struct{}

// New creates a fixture fetcher.
func New() *Fetcher {
	return &Fetcher{}
}

// FetchHTML returns the embedded page for url.
func (f *Fetcher) FetchHTML(ctx context.Context, url string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if strings.Contains(strings.ToLower(url), "pair") {
		return pairsHTML, nil
	}
	return teamsHTML, nil
}

// TeamsHTML exposes the embedded teams page.
func TeamsHTML() string { return teamsHTML }

// PairsHTML exposes the embedded pairs page.
func PairsHTML() string { return pairsHTML }
