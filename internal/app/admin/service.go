// Package admin keeps per-event review state for uploaded cards and handles
// admin login.
package admin

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/francescacanali/ebl-wbf-system-cards/internal/auth"
	"github.com/francescacanali/ebl-wbf-system-cards/internal/logging"
	"github.com/francescacanali/ebl-wbf-system-cards/internal/storage"
	"github.com/francescacanali/ebl-wbf-system-cards/internal/tournaments"
)

var (
	ErrMissingFields     = errors.New("missing required fields")
	ErrInvalidTournament = errors.New("invalid tournament")
	ErrInvalidPassword   = errors.New("invalid password")
)

// Data is the admin document of one event. Values are whatever the admin
// client stores per file name.
type Data struct {
	ValidationStatus map[string]any `json:"validationStatus"`
	CompletionStatus map[string]any `json:"completionStatus"`
}

func emptyData() Data {
	return Data{ValidationStatus: map[string]any{}, CompletionStatus: map[string]any{}}
}

// TournamentLookup resolves a tournament code to its settings.
type TournamentLookup interface {
	Lookup(ctx context.Context, code string) (tournaments.Tournament, bool)
}

// TokenIssuer mints admin tokens.
type TokenIssuer interface {
	Issue(tournament, event string) (string, error)
}

// Service reads and updates admin documents.
type Service struct {
	objects     storage.ObjectStore
	tournaments TournamentLookup
	tokens      TokenIssuer
	logger      *slog.Logger
}

// NewService constructs a Service.
func NewService(objects storage.ObjectStore, lookup TournamentLookup, tokens TokenIssuer, logger *slog.Logger) *Service {
	return &Service{objects: objects, tournaments: lookup, tokens: tokens, logger: logger}
}

// Login checks password against the event's configured password and returns
// a signed token.
func (s *Service) Login(ctx context.Context, tournament, event, password string) (string, error) {
	if tournament == "" || event == "" || password == "" {
		return "", ErrMissingFields
	}
	var (
		t  tournaments.Tournament
		ok bool
	)
	if s.tournaments != nil {
		t, ok = s.tournaments.Lookup(ctx, tournament)
	}
	if !ok || len(t.Passwords) == 0 {
		return "", ErrInvalidTournament
	}
	if err := auth.CheckPassword(t.Passwords[event], password); err != nil {
		logging.Warn(logging.FromContext(ctx, s.logger), "admin login rejected", err,
			slog.String(logging.FieldTournament, tournament),
			slog.String(logging.FieldEvent, event),
		)
		return "", ErrInvalidPassword
	}
	if s.tokens == nil {
		return "", errors.New("token issuer not configured")
	}
	return s.tokens.Issue(tournament, event)
}

// Data returns the admin document for tournament/event. A missing or
// unreadable document is reported as empty.
func (s *Service) Data(ctx context.Context, tournament, event string) (Data, error) {
	body, err := s.objects.Get(ctx, DataKey(tournament, event))
	if err != nil {
		if storage.IsNotFound(err) {
			return emptyData(), nil
		}
		return Data{}, fmt.Errorf("load admin data: %w", err)
	}
	data := emptyData()
	if err := json.Unmarshal(body, &data); err != nil {
		logging.Warn(logging.FromContext(ctx, s.logger), "admin data corrupt, starting empty", err,
			slog.String(logging.FieldKey, DataKey(tournament, event)))
		return emptyData(), nil
	}
	if data.ValidationStatus == nil {
		data.ValidationStatus = map[string]any{}
	}
	if data.CompletionStatus == nil {
		data.CompletionStatus = map[string]any{}
	}
	return data, nil
}

// SetValidation records status for fileName in the validation map.
func (s *Service) SetValidation(ctx context.Context, tournament, event, fileName string, status any) error {
	return s.update(ctx, tournament, event, fileName, status, func(d *Data) map[string]any { return d.ValidationStatus })
}

// SetCompletion records status for fileName in the completion map.
func (s *Service) SetCompletion(ctx context.Context, tournament, event, fileName string, status any) error {
	return s.update(ctx, tournament, event, fileName, status, func(d *Data) map[string]any { return d.CompletionStatus })
}

// PublicStatus returns only the validation map. It never fails; errors
// yield an empty map.
func (s *Service) PublicStatus(ctx context.Context, tournament, event string) map[string]any {
	data, err := s.Data(ctx, tournament, event)
	if err != nil {
		logging.Warn(logging.FromContext(ctx, s.logger), "validation status unavailable", err,
			slog.String(logging.FieldTournament, tournament),
			slog.String(logging.FieldEvent, event),
		)
		return map[string]any{}
	}
	return data.ValidationStatus
}

func (s *Service) update(ctx context.Context, tournament, event, fileName string, status any, target func(*Data) map[string]any) error {
	if tournament == "" || event == "" || strings.TrimSpace(fileName) == "" || status == nil {
		return ErrMissingFields
	}
	data, err := s.Data(ctx, tournament, event)
	if err != nil {
		return err
	}
	target(&data)[fileName] = status

	body, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("encode admin data: %w", err)
	}
	if err := s.objects.Put(ctx, DataKey(tournament, event), body, storage.PutOptions{ContentType: "application/json"}); err != nil {
		return fmt.Errorf("save admin data: %w", err)
	}
	return nil
}
