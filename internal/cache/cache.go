// Package cache provides a small generic memo with TTL expiry and a size bound
package cache

import (
	"sync"
	"time"
)

// item wraps a cached value with its insertion and expiration times
type item[T any] struct {
	value     T
	storedAt  time.Time
	expiresAt time.Time
}

// Cache is a thread-safe memo. Expired entries are dropped lazily on access
// and on insert; when full, the oldest entry is evicted.
type Cache[T any] struct {
	items      map[string]item[T]
	mu         sync.RWMutex
	ttl        time.Duration
	maxEntries int
	now        func() time.Time
}

// New creates a cache. A ttl of 0 disables expiry and a maxEntries of 0
// disables storing altogether.
func New[T any](ttl time.Duration, maxEntries int) *Cache[T] {
	return &Cache[T]{
		items:      make(map[string]item[T]),
		ttl:        ttl,
		maxEntries: maxEntries,
		now:        time.Now,
	}
}

// Get retrieves a value, returning (value, true) if found and not expired
func (c *Cache[T]) Get(key string) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	it, exists := c.items[key]
	if !exists || c.expired(it, c.now()) {
		var zero T
		return zero, false
	}
	return it.value, true
}

// Set stores a value with the cache's TTL
func (c *Cache[T]) Set(key string, value T) {
	if c.maxEntries <= 0 {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	c.removeExpired(now)

	if _, exists := c.items[key]; !exists && len(c.items) >= c.maxEntries {
		c.evictOldest()
	}

	it := item[T]{value: value, storedAt: now}
	if c.ttl > 0 {
		it.expiresAt = now.Add(c.ttl)
	}
	c.items[key] = it
}

// GetOrCompute returns the cached value for key, calling compute and storing
// its result on a miss. hit reports whether the value came from the cache.
func (c *Cache[T]) GetOrCompute(key string, compute func() T) (value T, hit bool) {
	if v, ok := c.Get(key); ok {
		return v, true
	}
	v := compute()
	c.Set(key, v)
	return v, false
}

// Clear removes all items from the cache
func (c *Cache[T]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = make(map[string]item[T])
}

// Size returns the number of items (including expired)
func (c *Cache[T]) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

func (c *Cache[T]) expired(it item[T], now time.Time) bool {
	return !it.expiresAt.IsZero() && now.After(it.expiresAt)
}

func (c *Cache[T]) removeExpired(now time.Time) {
	for key, it := range c.items {
		if c.expired(it, now) {
			delete(c.items, key)
		}
	}
}

func (c *Cache[T]) evictOldest() {
	var (
		oldestKey string
		oldest    time.Time
		found     bool
	)
	for key, it := range c.items {
		if !found || it.storedAt.Before(oldest) {
			oldestKey, oldest, found = key, it.storedAt, true
		}
	}
	if found {
		delete(c.items, oldestKey)
	}
}
