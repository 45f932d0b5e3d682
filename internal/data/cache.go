package data

import (
	"os"
	"sync"
	"time"
)

// CacheEntry is one stored run result.
type CacheEntry struct {
	Value     any
	CreatedAt time.Time
	ExpiresAt time.Time
}

// RunCache keeps finished run results in memory for a TTL so clients can
// fetch them again by id. Results are never persisted.
//
// A nil *RunCache is a disabled cache: Set is a no-op and Get misses.
type RunCache struct {
	mu    sync.RWMutex
	store map[string]*CacheEntry
	ttl   time.Duration
	now   func() time.Time
	done  chan struct{}
	once  sync.Once
}

// DefaultRunCacheTTL applies when RUN_CACHE_TTL is unset or unparsable.
const DefaultRunCacheTTL = 1 * time.Hour

// NewRunCache creates a cache and starts its cleanup goroutine. Call Close
// to stop it.
func NewRunCache(ttl time.Duration) *RunCache {
	if ttl <= 0 {
		ttl = DefaultRunCacheTTL
	}
	c := &RunCache{
		store: make(map[string]*CacheEntry),
		ttl:   ttl,
		now:   time.Now,
		done:  make(chan struct{}),
	}
	go c.cleanup(5 * time.Minute)
	return c
}

// RunCacheTTLFromEnv reads RUN_CACHE_TTL as a Go duration.
func RunCacheTTLFromEnv() time.Duration {
	if s := os.Getenv("RUN_CACHE_TTL"); s != "" {
		if d, err := time.ParseDuration(s); err == nil && d > 0 {
			return d
		}
	}
	return DefaultRunCacheTTL
}

// Get retrieves a stored run if present and not expired.
func (c *RunCache) Get(id string) (any, bool) {
	if c == nil {
		return nil, false
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.store[id]
	if !ok {
		return nil, false
	}
	if c.now().After(entry.ExpiresAt) {
		return nil, false
	}
	return entry.Value, true
}

func (c *RunCache) Set(id string, v any) {
	if c == nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	c.store[id] = &CacheEntry{
		Value:     v,
		CreatedAt: now,
		ExpiresAt: now.Add(c.ttl),
	}
}

func (c *RunCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.store)
}

// Clear removes all entries.
func (c *RunCache) Clear() {
	if c == nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.store = make(map[string]*CacheEntry)
}

func (c *RunCache) Close() {
	c.once.Do(func() { close(c.done) })
}

func (c *RunCache) cleanup(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-c.done:
			return
		case <-ticker.C:
			c.evictExpired()
		}
	}
}

func (c *RunCache) evictExpired() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	for id, entry := range c.store {
		if now.After(entry.ExpiresAt) {
			delete(c.store, id)
		}
	}
}
