package history

import (
	"context"
	"sync"
)

// MemoryStore is an in-memory Store for tests and one-off runs. State is
// lost on process exit.
type MemoryStore struct {
	mu   sync.Mutex
	data PriceHistory

	// LoadErr and SaveErr, when set, are returned by the corresponding
	// method. Used by tests to exercise the cache's degraded paths.
	LoadErr error
	SaveErr error
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: PriceHistory{}}
}

// Load returns a copy of the stored mapping.
func (s *MemoryStore) Load(_ context.Context) (PriceHistory, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.LoadErr != nil {
		return nil, s.LoadErr
	}
	return s.data.Clone(), nil
}

// Save replaces the stored mapping with a copy of h.
func (s *MemoryStore) Save(_ context.Context, h PriceHistory) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.SaveErr != nil {
		return s.SaveErr
	}
	s.data = h.Clone()
	return nil
}

var _ Store = (*MemoryStore)(nil)
