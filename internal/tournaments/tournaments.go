// Package tournaments resolves per-tournament settings from the bucket.
package tournaments

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/francescacanali/ebl-wbf-system-cards/internal/logging"
	"github.com/francescacanali/ebl-wbf-system-cards/internal/roster"
	"github.com/francescacanali/ebl-wbf-system-cards/internal/storage"
)

// ConfigKey is where the tournaments document lives in the bucket.
const ConfigKey = "config/tournaments.json"

// Tournament holds the registration sources and admin passwords for one
// tournament code.
type Tournament struct {
	TeamsURL  string            `json:"teamsUrl,omitempty"`
	PairsURL  string            `json:"pairsUrl,omitempty"`
	Passwords map[string]string `json:"passwords,omitempty"`
}

// SourceURL returns the registration page for the given roster kind.
func (t Tournament) SourceURL(mode roster.Mode) string {
	switch mode {
	case roster.ModeTeams:
		return t.TeamsURL
	case roster.ModePairs:
		return t.PairsURL
	default:
		return ""
	}
}

// Document is the JSON shape of ConfigKey.
type Document struct {
	Tournaments map[string]Tournament `json:"tournaments"`
}

// Lookup returns the tournament registered under code.
func (d Document) Lookup(code string) (Tournament, bool) {
	t, ok := d.Tournaments[code]
	return t, ok
}

// Defaults is used whenever the bucket has no readable config.
func Defaults() Document {
	return Document{Tournaments: map[string]Tournament{
		"26prague": {
			TeamsURL: "https://db.eurobridge.org/repository/competitions/26prague/Reg/displayteamsparticipanalytical.asp",
			PairsURL: "https://db.eurobridge.org/repository/competitions/26Prague/Reg/displaypairsparticip.asp",
		},
		"26youthonline": {
			TeamsURL: "https://db.eurobridge.org/repository/competitions/26youthonline/Reg/displayteamsparticipanalytical.asp",
		},
		"womenonline26": {
			TeamsURL: "https://db.worldbridge.org/Repository/tourn/womenonline.26/Reg/fullentriesreview.asp",
		},
	}}
}

// Store loads the tournaments document on every call; it keeps no cache so
// edits in the bucket take effect immediately.
type Store struct {
	objects storage.ObjectStore
	logger  *slog.Logger
}

// NewStore constructs a Store over objects.
func NewStore(objects storage.ObjectStore, logger *slog.Logger) *Store {
	return &Store{objects: objects, logger: logger}
}

// Load returns the bucket config, or Defaults when it is missing or invalid.
func (s *Store) Load(ctx context.Context) Document {
	doc, err := s.read(ctx)
	if err != nil {
		if !storage.IsNotFound(err) {
			logging.Warn(logging.FromContext(ctx, s.logger), "tournament config unreadable, using defaults", err,
				slog.String(logging.FieldKey, ConfigKey))
		}
		return Defaults()
	}
	return doc
}

// Lookup loads the config and resolves code.
func (s *Store) Lookup(ctx context.Context, code string) (Tournament, bool) {
	return s.Load(ctx).Lookup(code)
}

// Save writes doc to the bucket.
func (s *Store) Save(ctx context.Context, doc Document) error {
	body, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode tournament config: %w", err)
	}
	return s.objects.Put(ctx, ConfigKey, body, storage.PutOptions{ContentType: "application/json"})
}

func (s *Store) read(ctx context.Context) (Document, error) {
	if s == nil || s.objects == nil {
		return Document{}, fmt.Errorf("tournament store not configured: %w", storage.ErrNotFound)
	}
	body, err := s.objects.Get(ctx, ConfigKey)
	if err != nil {
		return Document{}, err
	}
	var doc Document
	if err := json.Unmarshal(body, &doc); err != nil {
		return Document{}, fmt.Errorf("decode tournament config: %w", err)
	}
	if doc.Tournaments == nil {
		doc.Tournaments = map[string]Tournament{}
	}
	return doc, nil
}
