package cache

import (
	"context"
	"testing"
	"time"
)

func TestMemoryStore_SetGet(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	if err := s.Set(ctx, "k", "v", time.Minute); err != nil {
		t.Fatalf("Set: %v", err)
	}
	val, ok, err := s.Get(ctx, "k")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !ok || val != "v" {
		t.Errorf("Get = (%q, %v), want (v, true)", val, ok)
	}
}

func TestMemoryStore_GetMissing(t *testing.T) {
	s := NewMemoryStore()
	_, ok, err := s.Get(context.Background(), "absent")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if ok {
		t.Error("absent key should not be found")
	}
}

func TestMemoryStore_OverwriteResetsTTL(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	now := time.Now().UTC()
	s.SetNow(func() time.Time { return now })

	s.Set(ctx, "k", "old", time.Minute)
	now = now.Add(50 * time.Second)
	s.Set(ctx, "k", "new", time.Minute)

	// Past the first entry's deadline but inside the second's.
	now = now.Add(30 * time.Second)
	val, ok, _ := s.Get(ctx, "k")
	if !ok || val != "new" {
		t.Errorf("Get = (%q, %v), want (new, true)", val, ok)
	}
}

func TestMemoryStore_Expiry(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	now := time.Now().UTC()
	s.SetNow(func() time.Time { return now })

	s.Set(ctx, "k", "v", time.Minute)
	now = now.Add(time.Minute)
	if _, ok, _ := s.Get(ctx, "k"); ok {
		t.Error("entry at its deadline should be expired")
	}
}

func TestMemoryStore_DeleteIdempotent(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	s.Set(ctx, "k", "v", time.Minute)
	existed, err := s.Delete(ctx, "k")
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if !existed {
		t.Error("first delete should report existing entry")
	}
	existed, err = s.Delete(ctx, "k")
	if err != nil {
		t.Fatalf("second Delete: %v", err)
	}
	if existed {
		t.Error("second delete should report no entry")
	}
	if _, err := s.Delete(ctx, "never-set"); err != nil {
		t.Errorf("Delete of never-set key: %v", err)
	}
}
