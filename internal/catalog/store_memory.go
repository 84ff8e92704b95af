package catalog

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore is an in-memory Store used by tests and local development.
type MemoryStore struct {
	mu         sync.RWMutex
	categories map[uuid.UUID]Category
	items      map[uuid.UUID]Item
	now        func() time.Time
}

// NewMemoryStore constructs an empty in-memory catalog store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		categories: map[uuid.UUID]Category{},
		items:      map[uuid.UUID]Item{},
		now:        time.Now,
	}
}

func (s *MemoryStore) ListCategories(_ context.Context) ([]Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Category, 0, len(s.categories))
	for _, c := range s.categories {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].SortOrder != out[j].SortOrder {
			return out[i].SortOrder < out[j].SortOrder
		}
		return out[i].NameEN < out[j].NameEN
	})
	return out, nil
}

func (s *MemoryStore) CreateCategory(_ context.Context, in CategoryInput) (Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	c := Category{
		ID:        uuid.New(),
		NameEN:    in.NameEN,
		NameTH:    in.NameTH,
		SortOrder: in.SortOrder,
		Active:    in.Active,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.categories[c.ID] = c
	return c, nil
}

func (s *MemoryStore) UpdateCategory(_ context.Context, id uuid.UUID, in CategoryInput) (Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.categories[id]
	if !ok {
		return Category{}, ErrNotFound
	}
	c.NameEN = in.NameEN
	c.NameTH = in.NameTH
	c.SortOrder = in.SortOrder
	c.Active = in.Active
	c.UpdatedAt = s.now()
	s.categories[id] = c
	return c, nil
}

func (s *MemoryStore) ListItems(_ context.Context, categoryID *uuid.UUID) ([]Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Item, 0, len(s.items))
	for _, it := range s.items {
		if categoryID != nil && it.CategoryID != *categoryID {
			continue
		}
		out = append(out, it)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].SortOrder != out[j].SortOrder {
			return out[i].SortOrder < out[j].SortOrder
		}
		return out[i].NameEN < out[j].NameEN
	})
	return out, nil
}

func (s *MemoryStore) GetItem(_ context.Context, id uuid.UUID) (Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	it, ok := s.items[id]
	if !ok {
		return Item{}, ErrNotFound
	}
	return it, nil
}

func (s *MemoryStore) CreateItem(_ context.Context, in ItemInput) (Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	it := Item{
		ID:         uuid.New(),
		CategoryID: in.CategoryID,
		NameEN:     in.NameEN,
		NameTH:     in.NameTH,
		Price:      in.Price,
		Available:  in.Available,
		SortOrder:  in.SortOrder,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	s.items[it.ID] = it
	return it, nil
}

func (s *MemoryStore) UpdateItem(_ context.Context, id uuid.UUID, in ItemInput) (Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	it, ok := s.items[id]
	if !ok {
		return Item{}, ErrNotFound
	}
	it.CategoryID = in.CategoryID
	it.NameEN = in.NameEN
	it.NameTH = in.NameTH
	it.Price = in.Price
	it.Available = in.Available
	it.SortOrder = in.SortOrder
	it.UpdatedAt = s.now()
	s.items[id] = it
	return it, nil
}

func (s *MemoryStore) DeleteItem(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[id]; !ok {
		return ErrNotFound
	}
	delete(s.items, id)
	return nil
}
