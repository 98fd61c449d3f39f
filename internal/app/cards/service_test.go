package cards

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/francescacanali/ebl-wbf-system-cards/internal/metrics"
	"github.com/francescacanali/ebl-wbf-system-cards/internal/storage"
	"github.com/francescacanali/ebl-wbf-system-cards/internal/testutil"
)

type recordingStore struct {
	*storage.MemoryStore
	opts    map[string]storage.PutOptions
	putErr  error
	listErr error
}

func newRecordingStore() *recordingStore {
	return &recordingStore{MemoryStore: storage.NewMemoryStore(), opts: map[string]storage.PutOptions{}}
}

func (r *recordingStore) Put(ctx context.Context, key string, body []byte, opts storage.PutOptions) error {
	if r.putErr != nil {
		return r.putErr
	}
	r.opts[key] = opts
	return r.MemoryStore.Put(ctx, key, body, opts)
}

func (r *recordingStore) List(ctx context.Context, prefix string) ([]storage.Object, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	return r.MemoryStore.List(ctx, prefix)
}

func validUpload() UploadRequest {
	return UploadRequest{
		Tournament: "26prague",
		TeamName:   "ROSSI",
		FileName:   "ROSSI_Open_Teams.pdf",
		Data:       []byte(testutil.MinimalPDF),
	}
}

func TestUploadStoresCard(t *testing.T) {
	store := newRecordingStore()
	rec := metrics.NewRecorder()
	svc := NewService(store, "https://cards.example.com/", rec, nil)

	res, err := svc.Upload(context.Background(), validUpload())
	if err != nil {
		t.Fatalf("Upload() error = %v", err)
	}
	if res.FileName != "ROSSI_OPEN_TEAMS.pdf" {
		t.Fatalf("unexpected file name %q", res.FileName)
	}
	if res.URL != "https://cards.example.com/26prague/CC/ROSSI_OPEN_TEAMS.pdf" {
		t.Fatalf("unexpected url %q", res.URL)
	}
	if res.Pages != 1 {
		t.Fatalf("expected 1 page, got %d", res.Pages)
	}

	opts := store.opts["26prague/CC/ROSSI_OPEN_TEAMS.pdf"]
	if opts.ContentType != "application/pdf" || opts.CacheControl != "public, max-age=31536000" {
		t.Fatalf("unexpected put options %+v", opts)
	}
	if rec.Uploads(metrics.OutcomeStored) != 1 {
		t.Fatalf("expected stored upload metric")
	}
}

func TestUploadRejectsBadInput(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*UploadRequest)
		want   error
	}{
		{"missing team", func(r *UploadRequest) { r.TeamName = " " }, ErrMissingFields},
		{"missing file name", func(r *UploadRequest) { r.FileName = "" }, ErrMissingFields},
		{"missing data", func(r *UploadRequest) { r.Data = nil }, ErrMissingFields},
		{"too large", func(r *UploadRequest) {
			r.Data = append([]byte("%PDF-"), make([]byte, MaxUploadBytes)...)
		}, ErrTooLarge},
		{"not a pdf", func(r *UploadRequest) { r.Data = []byte("hello world") }, ErrNotPDF},
		{"active content", func(r *UploadRequest) { r.Data = []byte("%PDF-1.7 /Launch") }, ErrSuspiciousPDF},
		{"unusable name", func(r *UploadRequest) { r.FileName = "...pdf" }, ErrInvalidFileName},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newRecordingStore()
			rec := metrics.NewRecorder()
			svc := NewService(store, "https://cards.example.com", rec, nil)

			req := validUpload()
			tt.mutate(&req)
			_, err := svc.Upload(context.Background(), req)
			if !errors.Is(err, tt.want) {
				t.Fatalf("Upload() error = %v, want %v", err, tt.want)
			}
			if !IsRejected(err) {
				t.Fatalf("expected %v to count as rejected", err)
			}
			if len(store.opts) != 0 {
				t.Fatalf("expected nothing stored, got %v", store.opts)
			}
			if rec.Uploads(metrics.OutcomeRejected) != 1 {
				t.Fatalf("expected rejected upload metric")
			}
		})
	}
}

func TestUploadAcceptsExactlyMaxSize(t *testing.T) {
	data := append([]byte("%PDF-"), make([]byte, MaxUploadBytes-5)...)
	svc := NewService(newRecordingStore(), "https://cards.example.com", nil, nil)

	req := validUpload()
	req.Data = data
	res, err := svc.Upload(context.Background(), req)
	if err != nil {
		t.Fatalf("expected 2 MiB upload accepted, got %v", err)
	}
	if res.Pages != 0 {
		t.Fatalf("expected unreadable page count 0, got %d", res.Pages)
	}
}

func TestUploadStorageFailure(t *testing.T) {
	store := newRecordingStore()
	store.putErr = errors.New("bucket offline")
	rec := metrics.NewRecorder()
	svc := NewService(store, "https://cards.example.com", rec, nil)

	_, err := svc.Upload(context.Background(), validUpload())
	if err == nil || IsRejected(err) || !strings.Contains(err.Error(), "bucket offline") {
		t.Fatalf("expected storage error, got %v", err)
	}
	if rec.Uploads(metrics.OutcomeFailed) != 1 {
		t.Fatalf("expected failed upload metric")
	}
}

func TestListCards(t *testing.T) {
	store := newRecordingStore()
	svc := NewService(store, "https://cards.example.com", nil, nil)
	ctx := context.Background()

	_, _ = svc.Upload(ctx, validUpload())
	other := validUpload()
	other.FileName = "DUPONT.pdf"
	_, _ = svc.Upload(ctx, other)
	elsewhere := validUpload()
	elsewhere.Tournament = "womenonline26"
	_, _ = svc.Upload(ctx, elsewhere)

	cards, err := svc.List(ctx, "26prague")
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(cards) != 2 {
		t.Fatalf("expected 2 cards, got %+v", cards)
	}
	if cards[0].FileName != "DUPONT.pdf" || cards[0].URL != "https://cards.example.com/26prague/CC/DUPONT.pdf" {
		t.Fatalf("unexpected card %+v", cards[0])
	}
	if cards[0].LastModified.IsZero() {
		t.Fatalf("expected last modified")
	}

	empty, err := svc.List(ctx, "nobody")
	if err != nil || empty == nil || len(empty) != 0 {
		t.Fatalf("expected empty non-nil list, got %#v %v", empty, err)
	}

	store.listErr = errors.New("boom")
	if _, err := svc.List(ctx, "26prague"); err == nil {
		t.Fatalf("expected list error")
	}
}

func TestDeleteCard(t *testing.T) {
	store := newRecordingStore()
	svc := NewService(store, "https://cards.example.com", nil, nil)
	ctx := context.Background()
	_, _ = svc.Upload(ctx, validUpload())

	if err := svc.Delete(ctx, "26prague", "CC/ROSSI_OPEN_TEAMS.pdf"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, ok := store.Head("26prague/CC/ROSSI_OPEN_TEAMS.pdf"); ok {
		t.Fatalf("expected card removed")
	}
}

func TestDeleteRejectsUnsafePaths(t *testing.T) {
	svc := NewService(newRecordingStore(), "", nil, nil)
	for _, name := range []string{"../other/CC/x.pdf", "/abs.pdf", "CC//x.pdf", `CC\x.pdf`, "CC/./x.pdf"} {
		if err := svc.Delete(context.Background(), "26prague", name); !errors.Is(err, ErrInvalidFileName) {
			t.Fatalf("Delete(%q) = %v, want ErrInvalidFileName", name, err)
		}
	}
	if err := svc.Delete(context.Background(), "", "x.pdf"); !errors.Is(err, ErrMissingFields) {
		t.Fatalf("expected ErrMissingFields, got %v", err)
	}
}
