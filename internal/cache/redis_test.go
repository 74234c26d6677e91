package cache

import (
	"context"
	"os"
	"testing"
	"time"
)

func TestNewRedisStore_Unreachable(t *testing.T) {
	store, err := NewRedisStore("127.0.0.1:1", "")
	if err == nil {
		_ = store.Close()
		t.Fatal("NewRedisStore against an unreachable address should return error")
	}
	if store != nil {
		t.Error("store should be nil on connect failure")
	}
}

func TestRedisStore_RoundTrip(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set, skipping integration test")
	}

	store, err := NewRedisStore(addr, os.Getenv("REDIS_PASSWORD"))
	if err != nil {
		t.Skipf("redis connection failed: %v", err)
	}
	defer func() { _ = store.Close() }()

	ctx := context.Background()
	key := "cache-test:" + time.Now().UTC().Format("20060102150405.000000000")
	if err := store.Set(ctx, key, "v", time.Minute); err != nil {
		t.Fatalf("Set: %v", err)
	}
	val, ok, err := store.Get(ctx, key)
	if err != nil || !ok || val != "v" {
		t.Errorf("Get = (%q, %v, %v), want (v, true, nil)", val, ok, err)
	}
	existed, err := store.Delete(ctx, key)
	if err != nil || !existed {
		t.Errorf("Delete = (%v, %v), want (true, nil)", existed, err)
	}
}
