package store

import (
	"context"
	"sync"

	"github.com/i474232898/mood-tracker/internal/mood"
)

// MemoryStore is a concurrency-safe in-memory implementation of mood.Store.
type MemoryStore struct {
	mu sync.RWMutex

	// newest first
	entries []mood.Entry

	maxEntries int
}

// NewMemoryStore creates a new MemoryStore. If maxEntries is <= 0,
// mood.DefaultMaxEntries is used.
func NewMemoryStore(maxEntries int) *MemoryStore {
	if maxEntries <= 0 {
		maxEntries = mood.DefaultMaxEntries
	}
	return &MemoryStore{
		maxEntries: maxEntries,
	}
}

// Append prepends an entry and enforces retention.
func (s *MemoryStore) Append(ctx context.Context, entry mood.Entry) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = prependCapped(s.entries, entry, s.maxEntries)
	return nil
}

// List returns a copy of the entries, newest first.
func (s *MemoryStore) List(ctx context.Context) ([]mood.Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]mood.Entry, len(s.entries))
	copy(out, s.entries)
	return out, nil
}

// prependCapped returns a new slice with entry in front of entries,
// truncated to max elements.
func prependCapped(entries []mood.Entry, entry mood.Entry, max int) []mood.Entry {
	n := len(entries) + 1
	if n > max {
		n = max
	}
	out := make([]mood.Entry, 0, n)
	out = append(out, entry)
	for _, e := range entries {
		if len(out) >= n {
			break
		}
		out = append(out, e)
	}
	return out
}
