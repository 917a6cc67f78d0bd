package canvascache

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is an in-process implementation of [Store].
//
// The store is an explicit value held and passed by callers; there is no
// package-level instance. Entries are immutable snapshots, so concurrent
// use degrades gracefully: last writer wins on Set and no entry is ever
// observed partially updated.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]Entry
	ttl     time.Duration

	// now is swappable for TTL tests.
	now func() time.Time
}

// NewMemoryStore creates an in-memory store with the given TTL.
// A non-positive ttl falls back to [DefaultTTL].
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &MemoryStore{
		entries: make(map[string]Entry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Get returns the live entry for documentID, or nil, nil when the entry is
// missing or expired. Expired entries are purged on the way out.
func (s *MemoryStore) Get(_ context.Context, documentID string) (*Entry, error) {
	s.mu.RLock()
	entry, ok := s.entries[documentID]
	s.mu.RUnlock()
	if !ok {
		return nil, nil
	}

	if s.now().Sub(entry.Timestamp) > s.ttl {
		s.mu.Lock()
		// Re-check under the write lock; a fresher entry may have landed.
		if current, ok := s.entries[documentID]; ok && s.now().Sub(current.Timestamp) > s.ttl {
			delete(s.entries, documentID)
		}
		s.mu.Unlock()
		return nil, nil
	}

	out := entry
	return &out, nil
}

// Set stores entry under documentID, stamping it with the current time when
// the caller left Timestamp zero.
func (s *MemoryStore) Set(_ context.Context, documentID string, entry Entry) error {
	if entry.Timestamp.IsZero() {
		entry.Timestamp = s.now()
	}
	s.mu.Lock()
	s.entries[documentID] = entry
	s.mu.Unlock()
	return nil
}

// Invalidate removes the entry for documentID, expired or not.
func (s *MemoryStore) Invalidate(_ context.Context, documentID string) error {
	s.mu.Lock()
	delete(s.entries, documentID)
	s.mu.Unlock()
	return nil
}

// Close does nothing for the in-memory store.
func (s *MemoryStore) Close() error { return nil }

// Len reports the number of stored entries, including not-yet-purged
// expired ones. Intended for tests and diagnostics.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Ensure MemoryStore implements Store.
var _ Store = (*MemoryStore)(nil)
