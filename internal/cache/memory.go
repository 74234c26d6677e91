package cache

import (
	"context"
	"sync"
	"time"
)

type entry struct {
	value     string
	expiresAt time.Time
}

// MemoryStore is an in-memory Store implementation. Entries are evicted
// lazily on read; there is no background sweep. Used in tests and when no
// Redis address is configured.
type MemoryStore struct {
	mu   sync.RWMutex
	m    map[string]entry
	nowF func() time.Time
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		m:    make(map[string]entry),
		nowF: func() time.Time { return time.Now().UTC() },
	}
}

// SetNow overrides the store's clock. Test-only.
func (s *MemoryStore) SetNow(nowF func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nowF = nowF
}

func (s *MemoryStore) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[key] = entry{value: value, expiresAt: s.nowF().Add(ttl)}
	return nil
}

func (s *MemoryStore) Get(ctx context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	e, ok := s.m[key]
	now := s.nowF()
	s.mu.RUnlock()
	if !ok {
		return "", false, nil
	}
	if !e.expiresAt.After(now) {
		s.mu.Lock()
		delete(s.m, key)
		s.mu.Unlock()
		return "", false, nil
	}
	return e.value, true, nil
}

func (s *MemoryStore) Delete(ctx context.Context, key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.m[key]
	delete(s.m, key)
	return ok, nil
}
