// Package cache is a bounded, TTL-aware in-memory cache.
package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

const defaultMaxEntries = 4096

type entry[V any] struct {
	value     V
	expiresAt time.Time // zero means no expiry
}

func (e entry[V]) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && !now.Before(e.expiresAt)
}

// Cache stores values with a per-entry TTL. When full, the least recently
// used entry is evicted. Safe for concurrent use.
type Cache[K comparable, V any] struct {
	entries *lru.Cache[K, entry[V]]
	now     func() time.Time

	stop      chan struct{}
	done      chan struct{}
	closeOnce sync.Once
}

// Option configures a Cache.
type Option func(*options)

type options struct {
	maxEntries int
	now        func() time.Time
}

// WithMaxEntries bounds the cache size.
func WithMaxEntries(n int) Option {
	return func(o *options) { o.maxEntries = n }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// New creates a cache that drops expired entries every cleanupInterval.
// A non-positive interval disables the background sweep; expired entries
// are then only dropped when read.
func New[K comparable, V any](cleanupInterval time.Duration, opts ...Option) *Cache[K, V] {
	o := options{maxEntries: defaultMaxEntries, now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	if o.maxEntries <= 0 {
		o.maxEntries = defaultMaxEntries
	}

	entries, err := lru.New[K, entry[V]](o.maxEntries)
	if err != nil {
		panic(fmt.Sprintf("cache: %v", err))
	}

	c := &Cache[K, V]{
		entries: entries,
		now:     o.now,
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
	if cleanupInterval > 0 {
		go c.sweepEvery(cleanupInterval)
	} else {
		close(c.done)
	}
	return c
}

// Get returns the value for key if present and not expired.
func (c *Cache[K, V]) Get(ctx context.Context, key K) (V, bool) {
	e, ok := c.entries.Get(key)
	if !ok {
		var zero V
		return zero, false
	}
	if e.expired(c.now()) {
		c.entries.Remove(key)
		var zero V
		return zero, false
	}
	return e.value, true
}

// Set stores value for ttl. A non-positive ttl never expires.
func (c *Cache[K, V]) Set(ctx context.Context, key K, value V, ttl time.Duration) {
	e := entry[V]{value: value}
	if ttl > 0 {
		e.expiresAt = c.now().Add(ttl)
	}
	c.entries.Add(key, e)
}

func (c *Cache[K, V]) Delete(ctx context.Context, key K) {
	c.entries.Remove(key)
}

// Len counts stored entries, including expired ones not yet swept.
func (c *Cache[K, V]) Len() int {
	return c.entries.Len()
}

// Purge drops expired entries and returns how many were removed.
func (c *Cache[K, V]) Purge() int {
	now := c.now()
	removed := 0
	for _, k := range c.entries.Keys() {
		if e, ok := c.entries.Peek(k); ok && e.expired(now) {
			c.entries.Remove(k)
			removed++
		}
	}
	return removed
}

// Close stops the background sweep. The cache stays usable.
func (c *Cache[K, V]) Close() {
	c.closeOnce.Do(func() { close(c.stop) })
	<-c.done
}

func (c *Cache[K, V]) sweepEvery(interval time.Duration) {
	defer close(c.done)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-c.stop:
			return
		case <-ticker.C:
			c.Purge()
		}
	}
}
