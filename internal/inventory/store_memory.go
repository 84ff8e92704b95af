package inventory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore keeps stock in memory for tests and dev mode.
type MemoryStore struct {
	mu        sync.Mutex
	stock     map[uuid.UUID]StockItem
	processed map[string]struct{}
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		stock:     make(map[uuid.UUID]StockItem),
		processed: make(map[string]struct{}),
	}
}

func (s *MemoryStore) UpsertStock(_ context.Context, item StockItem) (StockItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stock[item.ItemID] = item
	return item, nil
}

func (s *MemoryStore) GetStock(_ context.Context, itemID uuid.UUID) (StockItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	item, ok := s.stock[itemID]
	if !ok {
		return StockItem{}, ErrNotFound
	}
	return item, nil
}

func (s *MemoryStore) ListStock(_ context.Context) ([]StockItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]StockItem, 0, len(s.stock))
	for _, item := range s.stock {
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].NameEN < out[j].NameEN })
	return out, nil
}

func (s *MemoryStore) ApplyOrder(_ context.Context, orderNumber string, lines []Deduction, at time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, done := s.processed[orderNumber]; done {
		return false, nil
	}
	s.processed[orderNumber] = struct{}{}
	for _, line := range lines {
		item, ok := s.stock[line.ItemID]
		if !ok {
			continue
		}
		item.OnHand -= line.Qty
		if item.OnHand < 0 {
			item.OnHand = 0
		}
		item.UpdatedAt = at
		s.stock[line.ItemID] = item
	}
	return true, nil
}
