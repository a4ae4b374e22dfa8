package cache

import (
	"context"
	"encoding/json"
	"time"
)

// Store is the display-cache contract. Every operation is best-effort: backend
// failures are logged and swallowed by implementations, a failed Get reads as
// a miss and a failed Set/Delete is silent. Derived values cached here are
// disposable; the entity store stays authoritative.
//
// Track/Tracked/DropTracked form a secondary index mapping an owner (an entity
// identity) to the derived keys built from it, so invalidation can enumerate
// every dependent key instead of guessing at page ranges.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration)
	Delete(ctx context.Context, keys ...string)

	Track(ctx context.Context, owner, key string)
	Tracked(ctx context.Context, owner string) []string
	DropTracked(ctx context.Context, owner string)
}

// GetJSON reads key and unmarshals it into out. A corrupt entry reads as a
// miss.
func GetJSON(ctx context.Context, s Store, key string, out any) bool {
	raw, ok := s.Get(ctx, key)
	if !ok {
		return false
	}
	if err := json.Unmarshal(raw, out); err != nil {
		s.Delete(ctx, key)
		return false
	}
	return true
}

// SetJSON marshals v under key. Marshal failures are swallowed like any other
// cache failure.
func SetJSON(ctx context.Context, s Store, key string, v any, ttl time.Duration) {
	raw, err := json.Marshal(v)
	if err != nil {
		return
	}
	s.Set(ctx, key, raw, ttl)
}
