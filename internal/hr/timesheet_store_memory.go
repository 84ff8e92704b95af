package hr

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryTimeStore keeps time entries in memory for tests and dev mode.
type MemoryTimeStore struct {
	mu      sync.Mutex
	entries map[uuid.UUID]TimeEntry
}

func NewMemoryTimeStore() *MemoryTimeStore {
	return &MemoryTimeStore{entries: make(map[uuid.UUID]TimeEntry)}
}

func (s *MemoryTimeStore) OpenEntry(_ context.Context, e TimeEntry) (TimeEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[e.ID] = e
	return e, nil
}

func (s *MemoryTimeStore) OpenFor(_ context.Context, employeeID uuid.UUID) (TimeEntry, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.entries {
		if e.EmployeeID == employeeID && e.ClockOut == nil {
			return e, true, nil
		}
	}
	return TimeEntry{}, false, nil
}

func (s *MemoryTimeStore) CloseEntry(_ context.Context, id uuid.UUID, at time.Time) (TimeEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[id]
	if !ok || e.ClockOut != nil {
		return TimeEntry{}, ErrNotClockedIn
	}
	out := at
	e.ClockOut = &out
	s.entries[id] = e
	return e, nil
}

func (s *MemoryTimeStore) ListEntries(_ context.Context, employeeID uuid.UUID, from, to time.Time) ([]TimeEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []TimeEntry
	for _, e := range s.entries {
		if e.EmployeeID != employeeID {
			continue
		}
		if e.ClockIn.Before(from) || !e.ClockIn.Before(to) {
			continue
		}
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ClockIn.After(out[j].ClockIn) })
	return out, nil
}
