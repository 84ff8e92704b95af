package audit

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Entry is one immutable audit trail row.
type Entry struct {
	ID        uuid.UUID       `json:"id"`
	Action    string          `json:"action"`
	Entity    string          `json:"entity"`
	EntityID  string          `json:"entityId"`
	Details   json.RawMessage `json:"details,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
}

// Store persists and lists audit entries.
type Store interface {
	InsertEntry(ctx context.Context, e Entry) error
	ListEntries(ctx context.Context, entity string, limit int) ([]Entry, error)
}

// Service records audit entries without ever failing the caller. Write
// failures are logged and swallowed; the business operation that triggered
// the entry must not be rolled back because the trail hiccuped.
type Service struct {
	Store Store
	Log   zerolog.Logger
	Now   func() time.Time
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now().UTC()
}

// Record writes one audit entry. Safe to call on a nil service.
func (s *Service) Record(ctx context.Context, action, entity, entityID string, details map[string]any) {
	if s == nil || s.Store == nil || action == "" {
		return
	}
	entry := Entry{
		ID:        uuid.New(),
		Action:    action,
		Entity:    entity,
		EntityID:  entityID,
		CreatedAt: s.now(),
	}
	if len(details) > 0 {
		encoded, err := json.Marshal(details)
		if err != nil {
			s.Log.Warn().Err(err).Str("action", action).Msg("audit details not serialisable")
		} else {
			entry.Details = encoded
		}
	}
	if err := s.Store.InsertEntry(ctx, entry); err != nil {
		s.Log.Warn().Err(err).Str("action", action).Str("entity", entity).Msg("audit write failed")
	}
}

// List returns recent entries, optionally filtered by entity.
func (s *Service) List(ctx context.Context, entity string, limit int) ([]Entry, error) {
	if s == nil || s.Store == nil {
		return nil, nil
	}
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return s.Store.ListEntries(ctx, entity, limit)
}
