package hr

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore keeps the roster in memory for tests and dev mode.
type MemoryStore struct {
	mu        sync.Mutex
	employees map[uuid.UUID]Employee
	Now       func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{employees: make(map[uuid.UUID]Employee)}
}

func (s *MemoryStore) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now().UTC()
}

func (s *MemoryStore) ListEmployees(_ context.Context, activeOnly bool) ([]Employee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []Employee
	for _, e := range s.employees {
		if activeOnly && !e.Active {
			continue
		}
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *MemoryStore) GetEmployee(_ context.Context, id uuid.UUID) (Employee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.employees[id]
	if !ok {
		return Employee{}, ErrNotFound
	}
	return e, nil
}

func (s *MemoryStore) CreateEmployee(_ context.Context, in Input) (Employee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	e := Employee{
		ID:        uuid.New(),
		Name:      in.Name,
		Role:      in.Role,
		Active:    in.Active,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.employees[e.ID] = e
	return e, nil
}

func (s *MemoryStore) UpdateEmployee(_ context.Context, id uuid.UUID, in Input) (Employee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.employees[id]
	if !ok {
		return Employee{}, ErrNotFound
	}
	e.Name = in.Name
	e.Role = in.Role
	e.Active = in.Active
	e.UpdatedAt = s.now()
	s.employees[id] = e
	return e, nil
}
