// Package cache provides the caching contract used by the fetch engine
// together with a concurrency-safe in-memory implementation with per-entry
// TTL expiry.
package cache

import (
	"context"
	"time"
)

// Store defines the core interface for response caching.
// All implementations must be safe for concurrent use.
//
// Example usage:
//
//	store := cache.NewMemoryStore()
//	err := store.Set(ctx, fingerprint, payload, 5*time.Minute)
//	data, err := store.Get(ctx, fingerprint)
//	if errors.Is(err, cache.ErrNotFound) {
//	    // miss — fetch from origin
//	}
type Store interface {
	// Get retrieves a value by key. Returns ErrNotFound if the key does
	// not exist or has expired. Expired entries are evicted as a side
	// effect of the lookup (lazy expiry). The returned slice is a copy;
	// callers may freely mutate it.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a copy of value under key with the given TTL,
	// overwriting any existing entry. A zero TTL stores the value
	// without expiration; a negative TTL returns ErrInvalidTTL.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is a no-op.
	Delete(ctx context.Context, key string) error

	// Clear empties the entire store unconditionally.
	Clear(ctx context.Context) error

	// Stats returns store statistics for observability.
	// Keys include: entries, hits, misses, evictions.
	Stats() map[string]any
}
