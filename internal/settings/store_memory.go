package settings

import (
	"context"
	"sync"
)

// MemoryStore keeps the profile in memory for tests and dev mode.
type MemoryStore struct {
	mu      sync.Mutex
	profile Profile
	saved   bool
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) GetProfile(_ context.Context) (Profile, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.profile, s.saved, nil
}

func (s *MemoryStore) SaveProfile(_ context.Context, p Profile) (Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profile = p
	s.saved = true
	return p, nil
}
