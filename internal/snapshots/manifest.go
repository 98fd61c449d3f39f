package snapshots

import "time"

// Manifest tracks which roster snapshots exist for a tournament.
type Manifest struct {
	Version     int                 `json:"version"`
	Tournament  string              `json:"tournament"`
	GeneratedAt time.Time           `json:"generatedAt"`
	Kinds       map[string]KindMeta `json:"kinds"`
}

// KindMeta describes the latest snapshot of one roster kind.
type KindMeta struct {
	Entities      int       `json:"entities"`
	LastRefreshed time.Time `json:"lastRefreshed"`
	LastChanged   time.Time `json:"lastChanged"`
}

func defaultManifest(tournament string) Manifest {
	return Manifest{
		Version:    1,
		Tournament: tournament,
		Kinds:      map[string]KindMeta{},
	}
}
