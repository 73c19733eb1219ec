package cache

import (
	"context"
	"hash/fnv"
	"sync"
	"sync/atomic"
	"time"
)

// shardCount spreads keys over independent locks so fetches for unrelated
// fingerprints never contend on a single mutex.
const shardCount = 16

// entry holds cached bytes with an absolute expiration time.
// A zero expiresAt means the entry never expires.
type entry struct {
	payload   []byte
	expiresAt time.Time
}

func (e entry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && now.After(e.expiresAt)
}

type shard struct {
	mu      sync.RWMutex
	entries map[string]entry
}

// MemoryStore is an in-process Store implementation. Entries expire lazily:
// an expired entry is removed on the next lookup that touches it, so no
// background sweeper runs. There is no capacity bound beyond TTL; under
// heavy unique-key traffic the store grows without limit, which is a
// documented limitation rather than an accident.
type MemoryStore struct {
	shards [shardCount]shard

	hits      atomic.Int64
	misses    atomic.Int64
	evictions atomic.Int64

	// now is swapped out in tests to control expiry.
	now func() time.Time
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	s := &MemoryStore{now: time.Now}
	for i := range s.shards {
		s.shards[i].entries = make(map[string]entry)
	}
	return s
}

func (s *MemoryStore) shardFor(key string) *shard {
	h := fnv.New32a()
	h.Write([]byte(key))
	return &s.shards[h.Sum32()%shardCount]
}

// Get returns a copy of the payload stored under key, or ErrNotFound on a
// miss. Expired entries are evicted as a side effect and reported as misses.
func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, error) {
	sh := s.shardFor(key)
	now := s.now()

	sh.mu.RLock()
	e, ok := sh.entries[key]
	sh.mu.RUnlock()

	if !ok {
		s.misses.Add(1)
		return nil, ErrNotFound
	}

	if e.expired(now) {
		sh.mu.Lock()
		// Re-check under the write lock; a concurrent Set may have
		// refreshed the entry since the read above.
		if cur, ok := sh.entries[key]; ok && cur.expired(now) {
			delete(sh.entries, key)
			s.evictions.Add(1)
		}
		sh.mu.Unlock()
		s.misses.Add(1)
		return nil, ErrNotFound
	}

	s.hits.Add(1)
	out := make([]byte, len(e.payload))
	copy(out, e.payload)
	return out, nil
}

// Set stores a copy of value under key. The entry expires at now+ttl;
// a zero ttl stores it without expiration.
func (s *MemoryStore) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl < 0 {
		return ErrInvalidTTL
	}

	e := entry{payload: make([]byte, len(value))}
	copy(e.payload, value)
	if ttl > 0 {
		e.expiresAt = s.now().Add(ttl)
	}

	sh := s.shardFor(key)
	sh.mu.Lock()
	sh.entries[key] = e
	sh.mu.Unlock()
	return nil
}

// Delete removes key from the store. Missing keys are ignored.
func (s *MemoryStore) Delete(_ context.Context, key string) error {
	sh := s.shardFor(key)
	sh.mu.Lock()
	delete(sh.entries, key)
	sh.mu.Unlock()
	return nil
}

// Clear empties every shard. A Set racing with Clear lands either before
// the shard is swapped (and is dropped) or after (and survives); entries
// are never left half-written.
func (s *MemoryStore) Clear(_ context.Context) error {
	for i := range s.shards {
		sh := &s.shards[i]
		sh.mu.Lock()
		sh.entries = make(map[string]entry)
		sh.mu.Unlock()
	}
	return nil
}

// Len reports the number of stored entries, including any that have
// expired but not yet been evicted.
func (s *MemoryStore) Len() int {
	n := 0
	for i := range s.shards {
		sh := &s.shards[i]
		sh.mu.RLock()
		n += len(sh.entries)
		sh.mu.RUnlock()
	}
	return n
}

// Stats returns hit/miss/eviction counters and the current entry count.
func (s *MemoryStore) Stats() map[string]any {
	return map[string]any{
		"entries":   s.Len(),
		"hits":      s.hits.Load(),
		"misses":    s.misses.Load(),
		"evictions": s.evictions.Load(),
	}
}
