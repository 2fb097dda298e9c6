// Package cache is a small in-process TTL cache. The console uses it to keep
// the server list warm for a few seconds between reads.
package cache

import (
	"context"
	"strings"
	"sync"
	"time"
)

type entry struct {
	value   interface{}
	expires time.Time
}

func (e entry) expired(now time.Time) bool {
	return now.After(e.expires)
}

// Cache maps string keys to values with a per-entry deadline. Safe for
// concurrent use. Stop must be called to release the janitor goroutine.
type Cache struct {
	mu         sync.RWMutex
	entries    map[string]entry
	defaultTTL time.Duration

	stop     chan struct{}
	stopOnce sync.Once
}

func New(defaultTTL time.Duration) *Cache {
	c := &Cache{
		entries:    make(map[string]entry),
		defaultTTL: defaultTTL,
		stop:       make(chan struct{}),
	}
	go c.janitor(defaultTTL / 2)
	return c
}

// Get returns the live value for key. Expired entries read as absent; the
// janitor reclaims them later.
func (c *Cache) Get(key string) (interface{}, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[key]
	if !ok || e.expired(time.Now()) {
		return nil, false
	}
	return e.value, true
}

// Set stores value under key with the cache's default TTL.
func (c *Cache) Set(key string, value interface{}) {
	c.SetWithTTL(key, value, c.defaultTTL)
}

func (c *Cache) SetWithTTL(key string, value interface{}, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry{value: value, expires: time.Now().Add(ttl)}
}

func (c *Cache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

// Invalidate drops every entry whose key starts with prefix. An empty prefix
// sweeps only expired entries.
func (c *Cache) Invalidate(prefix string) {
	now := time.Now()

	c.mu.Lock()
	defer c.mu.Unlock()
	for key, e := range c.entries {
		if prefix == "" {
			if e.expired(now) {
				delete(c.entries, key)
			}
			continue
		}
		if strings.HasPrefix(key, prefix) {
			delete(c.entries, key)
		}
	}
}

func (c *Cache) janitor(every time.Duration) {
	if every <= 0 {
		every = time.Second
	}
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			c.Invalidate("")
		case <-c.stop:
			return
		}
	}
}

// Stop ends the janitor goroutine. Idempotent.
func (c *Cache) Stop() {
	c.stopOnce.Do(func() { close(c.stop) })
}

// WithFallback pairs a Cache with a loader: reads go through the cache and
// fall back to the loader on miss, caching the loaded value.
type WithFallback struct {
	cache *Cache
}

func NewWithFallback(defaultTTL time.Duration) *WithFallback {
	return &WithFallback{cache: New(defaultTTL)}
}

// GetOrSet returns the cached value for key, or invokes loader and caches
// its result for ttl (the default TTL when ttl <= 0). Loader errors are
// returned as-is and nothing is cached.
func (c *WithFallback) GetOrSet(ctx context.Context, key string, loader func(context.Context) (interface{}, error), ttl time.Duration) (interface{}, error) {
	if v, ok := c.cache.Get(key); ok {
		return v, nil
	}

	v, err := loader(ctx)
	if err != nil {
		return nil, err
	}
	if ttl > 0 {
		c.cache.SetWithTTL(key, v, ttl)
	} else {
		c.cache.Set(key, v)
	}
	return v, nil
}

func (c *WithFallback) Invalidate(prefix string) {
	c.cache.Invalidate(prefix)
}

func (c *WithFallback) Stop() {
	c.cache.Stop()
}
