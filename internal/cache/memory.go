package cache

import (
	"context"
	"sync"
	"time"
)

// memoryStore is the in-process Store used in tests and cache-less
// deployments. Expiry is checked lazily on read.
type memoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	tracked map[string]map[string]struct{}
}

type memoryEntry struct {
	value     []byte
	expiresAt time.Time
}

func NewMemoryStore() Store {
	return &memoryStore{
		entries: make(map[string]memoryEntry),
		tracked: make(map[string]map[string]struct{}),
	}
}

func (s *memoryStore) Get(ctx context.Context, key string) ([]byte, bool) {
	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if !e.expiresAt.IsZero() && time.Now().After(e.expiresAt) {
		s.Delete(ctx, key)
		return nil, false
	}
	out := make([]byte, len(e.value))
	copy(out, e.value)
	return out, true
}

func (s *memoryStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	stored := make([]byte, len(value))
	copy(stored, value)
	var expiresAt time.Time
	if ttl > 0 {
		expiresAt = time.Now().Add(ttl)
	}
	s.mu.Lock()
	s.entries[key] = memoryEntry{value: stored, expiresAt: expiresAt}
	s.mu.Unlock()
}

func (s *memoryStore) Delete(ctx context.Context, keys ...string) {
	s.mu.Lock()
	for _, key := range keys {
		delete(s.entries, key)
	}
	s.mu.Unlock()
}

func (s *memoryStore) Track(ctx context.Context, owner, key string) {
	s.mu.Lock()
	set, ok := s.tracked[owner]
	if !ok {
		set = make(map[string]struct{})
		s.tracked[owner] = set
	}
	set[key] = struct{}{}
	s.mu.Unlock()
}

func (s *memoryStore) Tracked(ctx context.Context, owner string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	set, ok := s.tracked[owner]
	if !ok {
		return nil
	}
	out := make([]string, 0, len(set))
	for key := range set {
		out = append(out, key)
	}
	return out
}

func (s *memoryStore) DropTracked(ctx context.Context, owner string) {
	s.mu.Lock()
	delete(s.tracked, owner)
	s.mu.Unlock()
}
