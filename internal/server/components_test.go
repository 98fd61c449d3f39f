package server

import (
	"context"
	"testing"
	"time"

	"github.com/francescacanali/ebl-wbf-system-cards/internal/config"
	"github.com/francescacanali/ebl-wbf-system-cards/internal/providers"
	"github.com/francescacanali/ebl-wbf-system-cards/internal/roster"
	"github.com/francescacanali/ebl-wbf-system-cards/internal/storage"
	"github.com/francescacanali/ebl-wbf-system-cards/internal/tournaments"
)

func TestBuildObjectStore(t *testing.T) {
	store, err := buildObjectStore(config.StorageConfig{Backend: "memory"}, nil)
	if err != nil {
		t.Fatalf("memory backend error = %v", err)
	}
	if _, ok := store.(*storage.MemoryStore); !ok {
		t.Fatalf("expected memory store, got %T", store)
	}

	store, err = buildObjectStore(config.StorageConfig{Backend: "S3", Bucket: "cards", Endpoint: "https://r2.test"}, nil)
	if err != nil {
		t.Fatalf("s3 backend error = %v", err)
	}
	if _, ok := store.(*storage.S3Store); !ok {
		t.Fatalf("expected s3 store, got %T", store)
	}

	if _, err := buildObjectStore(config.StorageConfig{Backend: "s3"}, nil); err == nil {
		t.Fatalf("expected error for s3 without bucket")
	}
}

func TestFetcherFactoryWrapsWithRetry(t *testing.T) {
	f := newFetcherFactory(nil, nil)
	fetcher := f.build(config.UpstreamConfig{Provider: "fixture", MinInterval: time.Millisecond})
	if _, ok := fetcher.(*providers.RetryingFetcher); !ok {
		t.Fatalf("expected retrying fetcher, got %T", fetcher)
	}
	html, err := fetcher.FetchHTML(context.Background(), "https://reg.test/pairs.asp")
	if err != nil || html == "" {
		t.Fatalf("expected fixture page, got %q (%v)", html, err)
	}
}

func TestSelectFetcher(t *testing.T) {
	f := newFetcherFactory(nil, nil)
	tests := []struct {
		provider string
		want     string
	}{
		{"fixture", providerFixture},
		{"Registration", providerRegistration},
		{"", providerRegistration},
		{"unknown", providerRegistration},
	}
	for _, tt := range tests {
		name, fetcher := f.selectFetcher(config.UpstreamConfig{Provider: tt.provider})
		if name != tt.want || fetcher == nil {
			t.Fatalf("provider %q: expected %s, got %s", tt.provider, tt.want, name)
		}
	}
}

func TestSelectScanner(t *testing.T) {
	if _, ok := selectScanner("dom", nil).(roster.DOMScanner); !ok {
		t.Fatalf("expected dom scanner")
	}
	if _, ok := selectScanner("", nil).(roster.RegexScanner); !ok {
		t.Fatalf("expected regex scanner by default")
	}
	if _, ok := selectScanner("xpath", nil).(roster.RegexScanner); !ok {
		t.Fatalf("expected regex fallback for unknown scanner")
	}
}

func TestPollTournaments(t *testing.T) {
	ctx := context.Background()
	if got := pollTournaments([]string{"a", "b"}, nil)(ctx); len(got) != 2 || got[0] != "a" {
		t.Fatalf("expected configured codes, got %v", got)
	}

	store := tournaments.NewStore(storage.NewMemoryStore(), nil)
	got := pollTournaments(nil, store)(ctx)
	want := []string{"26prague", "26youthonline", "womenonline26"}
	if len(got) != len(want) {
		t.Fatalf("expected default tournaments %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected sorted codes %v, got %v", want, got)
		}
	}
}

func TestBuildPollerDisabled(t *testing.T) {
	if p := buildPoller(config.PollerConfig{}, nil, nil, nil, nil); p != nil {
		t.Fatalf("expected nil poller for zero interval")
	}
}
