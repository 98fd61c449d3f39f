// Package snapshots persists extracted rosters so they can be served when the
// registration site is slow or down.
package snapshots

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/francescacanali/ebl-wbf-system-cards/internal/roster"
	"github.com/francescacanali/ebl-wbf-system-cards/internal/storage"
)

// ErrNoSnapshot is returned when no snapshot was written yet.
var ErrNoSnapshot = errors.New("snapshot not found")

// Snapshot is one stored roster extraction.
type Snapshot struct {
	Tournament string          `json:"tournament"`
	Kind       string          `json:"kind"`
	FetchedAt  time.Time       `json:"fetchedAt"`
	Entities   []roster.Entity `json:"entities"`
}

// Store reads and writes roster snapshots in an object store.
type Store struct {
	objects storage.ObjectStore
	now     func() time.Time
}

// NewStore constructs a snapshot store over objects.
func NewStore(objects storage.ObjectStore) *Store {
	return &Store{objects: objects, now: time.Now}
}

// Write stores entities as the current snapshot for tournament/kind and
// refreshes the manifest.
func (s *Store) Write(ctx context.Context, tournament, kind string, entities []roster.Entity) (Snapshot, error) {
	if s == nil || s.objects == nil {
		return Snapshot{}, errors.New("snapshot store not configured")
	}
	if tournament == "" || kind == "" {
		return Snapshot{}, errors.New("tournament and kind required")
	}
	if entities == nil {
		entities = []roster.Entity{}
	}

	now := s.now().UTC()
	snap := Snapshot{Tournament: tournament, Kind: kind, FetchedAt: now, Entities: entities}

	changed := true
	if prev, err := s.Load(ctx, tournament, kind); err == nil {
		changed = !sameEntities(prev.Entities, entities)
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return Snapshot{}, err
	}
	if err := s.objects.Put(ctx, Key(tournament, kind), data, storage.PutOptions{ContentType: "application/json"}); err != nil {
		return Snapshot{}, fmt.Errorf("write snapshot: %w", err)
	}
	if err := s.updateManifest(ctx, tournament, kind, len(entities), now, changed); err != nil {
		return Snapshot{}, err
	}
	return snap, nil
}

// Load returns the stored snapshot for tournament/kind.
func (s *Store) Load(ctx context.Context, tournament, kind string) (Snapshot, error) {
	if s == nil || s.objects == nil {
		return Snapshot{}, errors.New("snapshot store not configured")
	}
	var snap Snapshot
	if err := s.read(ctx, Key(tournament, kind), &snap); err != nil {
		return Snapshot{}, err
	}
	if snap.Entities == nil {
		snap.Entities = []roster.Entity{}
	}
	return snap, nil
}

// Manifest returns the manifest for tournament, or an empty one.
func (s *Store) Manifest(ctx context.Context, tournament string) (Manifest, error) {
	m := defaultManifest(tournament)
	if err := s.read(ctx, manifestKey(tournament), &m); err != nil {
		if errors.Is(err, ErrNoSnapshot) {
			return defaultManifest(tournament), nil
		}
		return defaultManifest(tournament), err
	}
	if m.Kinds == nil {
		m.Kinds = map[string]KindMeta{}
	}
	return m, nil
}

func (s *Store) updateManifest(ctx context.Context, tournament, kind string, count int, now time.Time, changed bool) error {
	m, _ := s.Manifest(ctx, tournament)
	meta := m.Kinds[kind]
	meta.Entities = count
	meta.LastRefreshed = now
	if changed || meta.LastChanged.IsZero() {
		meta.LastChanged = now
	}
	m.Kinds[kind] = meta
	m.GeneratedAt = now

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	if err := s.objects.Put(ctx, manifestKey(tournament), data, storage.PutOptions{ContentType: "application/json"}); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}
	return nil
}

func (s *Store) read(ctx context.Context, key string, dest any) error {
	data, err := s.objects.Get(ctx, key)
	if err != nil {
		if storage.IsNotFound(err) {
			return ErrNoSnapshot
		}
		return err
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("decode %s: %w", key, err)
	}
	return nil
}

func sameEntities(a, b []roster.Entity) bool {
	left, err := json.Marshal(a)
	if err != nil {
		return false
	}
	right, err := json.Marshal(b)
	if err != nil {
		return false
	}
	return bytes.Equal(left, right)
}
