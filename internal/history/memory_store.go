package history

import (
	"context"
	"sync"
)

// MemoryStore is a process-local Store, used by tests and dry runs.
type MemoryStore struct {
	mu      sync.RWMutex
	entries []Entry
}

// NewMemoryStore returns a MemoryStore seeded with entries.
func NewMemoryStore(entries ...Entry) *MemoryStore {
	return &MemoryStore{entries: copyEntries(entries)}
}

// Load returns a copy of the stored entries.
func (s *MemoryStore) Load(_ context.Context) []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyEntries(s.entries)
}

// Append adds e after the existing entries.
func (s *MemoryStore) Append(_ context.Context, e Entry) error {
	if err := validateEntry(e); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, e)
	return nil
}
