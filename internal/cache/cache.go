// Package cache defines the TTL-keyed string store used for authentication
// challenge state, with Redis and in-memory implementations. The store is
// the sole owner of challenge state; TTL eviction is the only expiry
// mechanism.
package cache

import (
	"context"
	"time"
)

// Store is a TTL-keyed string store. Set, Get, and Delete are atomic per
// key; no multi-key operations are offered.
type Store interface {
	// Set stores value under key, overwriting any existing entry and
	// resetting its TTL.
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	// Get returns the value for key. ok is false when the key is absent or
	// its TTL has elapsed.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	// Delete removes key and reports whether an entry existed. Deleting an
	// absent key is not an error.
	Delete(ctx context.Context, key string) (bool, error)
}
