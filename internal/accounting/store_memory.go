package accounting

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore keeps expenses in memory for tests and dev mode.
type MemoryStore struct {
	mu       sync.Mutex
	expenses map[uuid.UUID]Expense
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{expenses: make(map[uuid.UUID]Expense)}
}

func (s *MemoryStore) InsertExpense(_ context.Context, e Expense) (Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.expenses[e.ID] = e
	return e, nil
}

func (s *MemoryStore) DeleteExpense(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.expenses[id]; !ok {
		return ErrNotFound
	}
	delete(s.expenses, id)
	return nil
}

func (s *MemoryStore) ListExpenses(_ context.Context, from, to time.Time) ([]Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []Expense
	for _, e := range s.expenses {
		if e.IncurredOn.Before(from) || !e.IncurredOn.Before(to) {
			continue
		}
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].IncurredOn.After(out[j].IncurredOn) })
	return out, nil
}
