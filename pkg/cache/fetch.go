package cache

import (
	"sync"
	"time"
)

// Option configures FetchCache.
type Option func(*FetchCache)

type fetchEntry struct {
	v        any
	storedAt time.Time
}

// FetchCache is a get-or-compute cache with per-call TTL, keyed by string.
// It shields upstream data sources from redundant calls within a short
// window. Empty producer results are not stored, so the next call retries.
//
// There is no per-key locking: two callers racing on the same expired key
// may both invoke the producer. Producers are idempotent, so the duplicate
// fetch is accepted in exchange for a simpler cache.
type FetchCache struct {
	mu      sync.RWMutex
	entries map[string]fetchEntry
	clock   func() time.Time
}

// NewFetchCache creates an empty cache. The cache lives for the whole
// process; there is no invalidation beyond TTL expiry.
func NewFetchCache(opts ...Option) *FetchCache {
	c := &FetchCache{
		entries: make(map[string]fetchEntry),
		clock:   time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WithClock injects a clock, used by tests to control expiry.
func WithClock(clock func() time.Time) Option {
	return func(c *FetchCache) {
		c.clock = clock
	}
}

// GetOrFetch returns the cached value for key when it is younger than ttl.
// Otherwise it invokes produce once; when produce reports ok the result is
// stored wholesale, replacing any expired entry. The produced value is
// returned either way.
func (c *FetchCache) GetOrFetch(key string, ttl time.Duration, produce func() (any, bool)) any {
	now := c.clock()

	c.mu.RLock()
	e, found := c.entries[key]
	c.mu.RUnlock()
	if found && now.Sub(e.storedAt) < ttl {
		return e.v
	}

	v, ok := produce()
	if !ok {
		return v
	}

	c.mu.Lock()
	c.entries[key] = fetchEntry{v: v, storedAt: now}
	c.mu.Unlock()
	return v
}

// Peek returns the raw entry without TTL checks. Intended for diagnostics.
func (c *FetchCache) Peek(key string) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	return e.v, true
}

// Len returns the number of stored entries, expired or not.
func (c *FetchCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
