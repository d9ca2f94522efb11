package gate

import (
	"context"
	"sync"
	"time"
)

// CachedResolver wraps another Resolver and memoizes profiles for a TTL so a
// DB-backed resolver is not hit on every request.
type CachedResolver[U comparable] struct {
	inner Resolver[U]
	ttl   time.Duration

	mu      sync.RWMutex
	entries map[U]cacheEntry
}

type cacheEntry struct {
	profile Profile
	expires time.Time
}

func NewCachedResolver[U comparable](inner Resolver[U], ttl time.Duration) *CachedResolver[U] {
	return &CachedResolver[U]{inner: inner, ttl: ttl, entries: make(map[U]cacheEntry)}
}

func (c *CachedResolver[U]) Resolve(ctx context.Context, subject U) (Profile, error) {
	c.mu.RLock()
	e, ok := c.entries[subject]
	c.mu.RUnlock()
	if ok && time.Now().Before(e.expires) {
		return e.profile, nil
	}
	profile, err := c.inner.Resolve(ctx, subject)
	if err != nil {
		return nil, err
	}
	c.mu.Lock()
	c.entries[subject] = cacheEntry{profile: profile, expires: time.Now().Add(c.ttl)}
	c.mu.Unlock()
	return profile, nil
}

// Invalidate drops the cached profile for one subject (e.g. after a role change).
func (c *CachedResolver[U]) Invalidate(subject U) {
	c.mu.Lock()
	delete(c.entries, subject)
	c.mu.Unlock()
}

// InvalidateAll clears the whole cache.
func (c *CachedResolver[U]) InvalidateAll() {
	c.mu.Lock()
	c.entries = make(map[U]cacheEntry)
	c.mu.Unlock()
}
