// Package cards stores and lists convention card PDFs.
package cards

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path"
	"strings"
	"time"

	"github.com/francescacanali/ebl-wbf-system-cards/internal/logging"
	"github.com/francescacanali/ebl-wbf-system-cards/internal/metrics"
	"github.com/francescacanali/ebl-wbf-system-cards/internal/storage"
)

// MaxUploadBytes is the largest accepted card.
const MaxUploadBytes = 2 << 20

const cacheControl = "public, max-age=31536000"

var (
	ErrMissingFields   = errors.New("missing required fields")
	ErrTooLarge        = errors.New("file too large (max 2MB)")
	ErrInvalidFileName = errors.New("invalid file name")
)

// IsRejected reports whether err is a problem with the caller's input
// rather than with storage.
func IsRejected(err error) bool {
	for _, target := range []error{ErrMissingFields, ErrTooLarge, ErrInvalidFileName, ErrPDFTooSmall, ErrNotPDF, ErrSuspiciousPDF} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// UploadRequest is one card submitted for a team or pair.
type UploadRequest struct {
	Tournament string
	TeamName   string
	FileName   string
	Data       []byte
}

// UploadResult describes a stored card.
type UploadResult struct {
	FileName string `json:"fileName"`
	URL      string `json:"url"`
	Pages    int    `json:"pages"`
}

// Card is a stored card as listed to clients.
type Card struct {
	FileName     string    `json:"fileName"`
	URL          string    `json:"url"`
	LastModified time.Time `json:"lastModified"`
}

// Service uploads, lists and deletes cards under "<tournament>/CC/".
type Service struct {
	objects   storage.ObjectStore
	publicURL string
	metrics   *metrics.Recorder
	logger    *slog.Logger
}

// NewService constructs a Service. publicURL is the base that stored keys are served from.
func NewService(objects storage.ObjectStore, publicURL string, recorder *metrics.Recorder, logger *slog.Logger) *Service {
	return &Service{
		objects:   objects,
		publicURL: strings.TrimSuffix(publicURL, "/"),
		metrics:   recorder,
		logger:    logger,
	}
}

// Upload validates and stores req.
func (s *Service) Upload(ctx context.Context, req UploadRequest) (UploadResult, error) {
	result, err := s.upload(ctx, req)
	switch {
	case err == nil:
		s.metrics.RecordUpload(metrics.OutcomeStored, len(req.Data))
	case IsRejected(err):
		s.metrics.RecordUpload(metrics.OutcomeRejected, len(req.Data))
	default:
		s.metrics.RecordUpload(metrics.OutcomeFailed, len(req.Data))
	}
	return result, err
}

func (s *Service) upload(ctx context.Context, req UploadRequest) (UploadResult, error) {
	if len(req.Data) == 0 || strings.TrimSpace(req.TeamName) == "" || strings.TrimSpace(req.FileName) == "" {
		return UploadResult{}, ErrMissingFields
	}
	if len(req.Data) > MaxUploadBytes {
		return UploadResult{}, ErrTooLarge
	}
	if err := ValidatePDF(req.Data); err != nil {
		return UploadResult{}, err
	}
	fileName := CardFileName(req.FileName)
	if fileName == "" {
		return UploadResult{}, ErrInvalidFileName
	}

	key := cardsPrefix(req.Tournament) + fileName
	if err := s.objects.Put(ctx, key, req.Data, storage.PutOptions{
		ContentType:  "application/pdf",
		CacheControl: cacheControl,
	}); err != nil {
		return UploadResult{}, fmt.Errorf("store card: %w", err)
	}

	result := UploadResult{
		FileName: fileName,
		URL:      s.objectURL(key),
		Pages:    InspectPDF(req.Data),
	}
	logging.Info(logging.FromContext(ctx, s.logger), "card uploaded",
		slog.String(logging.FieldTournament, req.Tournament),
		slog.String(logging.FieldKey, key),
		slog.String("team", req.TeamName),
		slog.Int("pages", result.Pages),
	)
	return result, nil
}

// List returns the cards stored for tournament.
func (s *Service) List(ctx context.Context, tournament string) ([]Card, error) {
	objects, err := s.objects.List(ctx, cardsPrefix(tournament))
	if err != nil {
		return nil, fmt.Errorf("list cards: %w", err)
	}
	cards := make([]Card, 0, len(objects))
	for _, obj := range objects {
		cards = append(cards, Card{
			FileName:     path.Base(obj.Key),
			URL:          s.objectURL(obj.Key),
			LastModified: obj.LastModified,
		})
	}
	return cards, nil
}

// Delete removes "<tournament>/<fileName>". fileName is relative to the
// tournament root and may not escape it.
func (s *Service) Delete(ctx context.Context, tournament, fileName string) error {
	if tournament == "" || fileName == "" {
		return ErrMissingFields
	}
	if !safeRelativePath(fileName) {
		return ErrInvalidFileName
	}
	key := tournament + "/" + fileName
	if err := s.objects.Delete(ctx, key); err != nil {
		return fmt.Errorf("delete card: %w", err)
	}
	logging.Info(logging.FromContext(ctx, s.logger), "card deleted",
		slog.String(logging.FieldTournament, tournament),
		slog.String(logging.FieldKey, key),
	)
	return nil
}

func (s *Service) objectURL(key string) string {
	return s.publicURL + "/" + key
}

func cardsPrefix(tournament string) string {
	return tournament + "/CC/"
}

func safeRelativePath(p string) bool {
	if strings.HasPrefix(p, "/") || strings.Contains(p, "\\") {
		return false
	}
	for _, seg := range strings.Split(p, "/") {
		if seg == "" || seg == "." || seg == ".." {
			return false
		}
	}
	return true
}
