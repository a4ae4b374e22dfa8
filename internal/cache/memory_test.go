package cache

import (
	"context"
	"sort"
	"testing"
	"time"
)

func TestMemoryStoreSetGetDelete(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	s.Set(ctx, "k", []byte("v"), 0)
	got, ok := s.Get(ctx, "k")
	if !ok || string(got) != "v" {
		t.Fatalf("Get = %q, %v", got, ok)
	}

	// The stored copy must not alias the caller's slice.
	got[0] = 'x'
	again, _ := s.Get(ctx, "k")
	if string(again) != "v" {
		t.Fatalf("stored value mutated through returned slice: %q", again)
	}

	s.Delete(ctx, "k")
	if _, ok := s.Get(ctx, "k"); ok {
		t.Fatal("key survived delete")
	}
}

func TestMemoryStoreTTL(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	s.Set(ctx, "k", []byte("v"), time.Millisecond)
	time.Sleep(5 * time.Millisecond)
	if _, ok := s.Get(ctx, "k"); ok {
		t.Fatal("expired key still readable")
	}
}

func TestMemoryStoreTrackedIndex(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	s.Track(ctx, "owner:group:1", "page1")
	s.Track(ctx, "owner:group:1", "page2")
	s.Track(ctx, "owner:group:1", "page2")

	keys := s.Tracked(ctx, "owner:group:1")
	sort.Strings(keys)
	if len(keys) != 2 || keys[0] != "page1" || keys[1] != "page2" {
		t.Fatalf("tracked = %v, want [page1 page2]", keys)
	}

	s.DropTracked(ctx, "owner:group:1")
	if got := s.Tracked(ctx, "owner:group:1"); len(got) != 0 {
		t.Fatalf("tracked after drop = %v", got)
	}
}

func TestGetJSONCorruptEntryIsAMiss(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	s.Set(ctx, "k", []byte("{not json"), 0)
	var out []string
	if GetJSON(ctx, s, "k", &out) {
		t.Fatal("corrupt entry reported as hit")
	}
	if _, ok := s.Get(ctx, "k"); ok {
		t.Fatal("corrupt entry should be deleted on read")
	}
}
