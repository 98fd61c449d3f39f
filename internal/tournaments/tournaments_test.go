package tournaments

import (
	"context"
	"strings"
	"testing"

	"github.com/francescacanali/ebl-wbf-system-cards/internal/roster"
	"github.com/francescacanali/ebl-wbf-system-cards/internal/storage"
	"github.com/francescacanali/ebl-wbf-system-cards/internal/testutil"
)

func TestLoadFallsBackToDefaultsWhenMissing(t *testing.T) {
	s := NewStore(storage.NewMemoryStore(), nil)

	tour, ok := s.Lookup(context.Background(), "26prague")
	if !ok {
		t.Fatalf("expected default tournament")
	}
	if !strings.Contains(tour.SourceURL(roster.ModeTeams), "displayteamsparticipanalytical") {
		t.Fatalf("unexpected teams url %s", tour.TeamsURL)
	}
	if !strings.Contains(tour.SourceURL(roster.ModePairs), "displaypairsparticip") {
		t.Fatalf("unexpected pairs url %s", tour.PairsURL)
	}
}

func TestLoadFallsBackOnInvalidJSON(t *testing.T) {
	objects := storage.NewMemoryStore()
	_ = objects.Put(context.Background(), ConfigKey, []byte("{not json"), storage.PutOptions{})
	logger, buf := testutil.NewBufferLogger()

	doc := NewStore(objects, logger).Load(context.Background())

	if _, ok := doc.Lookup("womenonline26"); !ok {
		t.Fatalf("expected defaults on invalid config")
	}
	if !strings.Contains(buf.String(), "tournament config unreadable") {
		t.Fatalf("expected warning logged, got %s", buf.String())
	}
}

func TestLoadReadsBucketConfig(t *testing.T) {
	objects := storage.NewMemoryStore()
	s := NewStore(objects, nil)
	err := s.Save(context.Background(), Document{Tournaments: map[string]Tournament{
		"27test": {PairsURL: "https://example.com/pairs", Passwords: map[string]string{"Open Pairs": "pw"}},
	}})
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	tour, ok := s.Lookup(context.Background(), "27test")
	if !ok {
		t.Fatalf("expected configured tournament")
	}
	if tour.TeamsURL != "" || tour.PairsURL != "https://example.com/pairs" {
		t.Fatalf("unexpected tournament %+v", tour)
	}
	if tour.Passwords["Open Pairs"] != "pw" {
		t.Fatalf("expected passwords loaded, got %+v", tour.Passwords)
	}
	if _, ok := s.Lookup(context.Background(), "26prague"); ok {
		t.Fatalf("expected bucket config to replace defaults entirely")
	}
}

func TestSourceURLUnknownMode(t *testing.T) {
	if got := (Tournament{TeamsURL: "x"}).SourceURL(roster.Mode("other")); got != "" {
		t.Fatalf("expected empty url, got %s", got)
	}
}
