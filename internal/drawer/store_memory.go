package drawer

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ruenthai/backend-pos/internal/pricing"
)

// MemoryStore is an in-memory Store used by tests and local development.
type MemoryStore struct {
	mu        sync.RWMutex
	shifts    map[uuid.UUID]Shift
	movements map[uuid.UUID][]Movement
}

// NewMemoryStore constructs an empty in-memory drawer store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		shifts:    map[uuid.UUID]Shift{},
		movements: map[uuid.UUID][]Movement{},
	}
}

func (s *MemoryStore) OpenShift(_ context.Context, shift Shift) (Shift, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.shifts {
		if existing.Terminal == shift.Terminal && !existing.Closed {
			return Shift{}, ErrShiftOpen
		}
	}
	s.shifts[shift.ID] = shift
	return shift, nil
}

func (s *MemoryStore) GetOpenShift(_ context.Context, terminal string) (Shift, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, shift := range s.shifts {
		if shift.Terminal == terminal && !shift.Closed {
			return shift, nil
		}
	}
	return Shift{}, ErrNoOpenShift
}

func (s *MemoryStore) AppendMovement(_ context.Context, m Movement) (Movement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	shift, ok := s.shifts[m.ShiftID]
	if !ok || shift.Closed {
		return Movement{}, ErrNoOpenShift
	}
	s.movements[m.ShiftID] = append(s.movements[m.ShiftID], m)
	return m, nil
}

func (s *MemoryStore) ListMovements(_ context.Context, shiftID uuid.UUID) ([]Movement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	src := s.movements[shiftID]
	out := make([]Movement, len(src))
	copy(out, src)
	return out, nil
}

func (s *MemoryStore) CloseShift(_ context.Context, shiftID uuid.UUID, countedCash, difference pricing.Money, at time.Time) (Shift, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	shift, ok := s.shifts[shiftID]
	if !ok || shift.Closed {
		return Shift{}, ErrNoOpenShift
	}
	shift.Closed = true
	closedAt := at
	shift.ClosedAt = &closedAt
	shift.CountedCash = countedCash
	shift.CashDifference = difference
	s.shifts[shiftID] = shift
	return shift, nil
}

func (s *MemoryStore) ListShifts(_ context.Context, terminal string, limit int) ([]Shift, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Shift
	for _, shift := range s.shifts {
		if shift.Terminal == terminal {
			out = append(out, shift)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].OpenedAt.After(out[j].OpenedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
