package audit

import (
	"context"
	"sync"
)

// MemoryStore keeps the trail in memory for tests and dev mode.
type MemoryStore struct {
	mu      sync.Mutex
	entries []Entry
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) InsertEntry(_ context.Context, e Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, e)
	return nil
}

func (s *MemoryStore) ListEntries(_ context.Context, entity string, limit int) ([]Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []Entry
	for i := len(s.entries) - 1; i >= 0 && len(out) < limit; i-- {
		if entity != "" && s.entries[i].Entity != entity {
			continue
		}
		out = append(out, s.entries[i])
	}
	return out, nil
}
