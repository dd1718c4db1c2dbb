// Package cache memoizes scoring engine output keyed by prospect
// fingerprints, with TTL freshness and LRU bounding.
package cache

import (
	"sync"
	"time"

	"github.com/hooplens/prospectrank/internal/domain/model"
	"github.com/hooplens/prospectrank/pkg/metrics"
)

// Default cache configuration constants.
const (
	defaultTTL        = 30 * time.Minute
	defaultMaxEntries = 10_000
)

// entry is a node in both the fingerprint map and the recency list.
type entry struct {
	fingerprint string
	evaluation  model.Evaluation
	storedAt    time.Time

	prev, next *entry
}

// Cache is a fingerprint-keyed evaluation cache. An entry is served only
// while now-storedAt < TTL; expired or unknown fingerprints recompute.
// Entries are bounded: inserting past capacity evicts the least recently
// used entry, so memory stays bounded under sustained use.
//
// The cache is shared across evaluator goroutines and guards its state
// with a mutex; callers inject it explicitly rather than reaching for a
// process global.
type Cache struct {
	mu sync.Mutex

	entries    map[string]*entry
	head, tail *entry // recency list, head = most recently used

	ttl        time.Duration
	maxEntries int
	now        func() time.Time
}

// Option applies a configuration option to the Cache.
type Option func(*Cache)

// WithTTL sets the freshness window for cached evaluations.
func WithTTL(ttl time.Duration) Option {
	return func(c *Cache) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// WithMaxEntries bounds the number of cached evaluations.
func WithMaxEntries(n int) Option {
	return func(c *Cache) {
		if n > 0 {
			c.maxEntries = n
		}
	}
}

// WithClock replaces the time source. Tests use this to age entries
// without sleeping.
func WithClock(now func() time.Time) Option {
	return func(c *Cache) {
		if now != nil {
			c.now = now
		}
	}
}

// New creates an evaluation cache with configuration options.
func New(opts ...Option) *Cache {
	c := &Cache{
		entries:    make(map[string]*entry),
		ttl:        defaultTTL,
		maxEntries: defaultMaxEntries,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GetOrCompute returns the cached evaluation for fingerprint when one
// exists and is still fresh; otherwise it calls compute, stores the
// result, and returns it. The second return reports whether the value
// came from the cache.
func (c *Cache) GetOrCompute(fingerprint string, compute func() model.Evaluation) (model.Evaluation, bool) {
	c.mu.Lock()
	if e, ok := c.entries[fingerprint]; ok {
		if c.now().Sub(e.storedAt) < c.ttl {
			c.moveToFront(e)
			ev := e.evaluation
			c.mu.Unlock()
			metrics.RecordCacheHit()
			return ev, true
		}
		// Stale entries must never be returned; drop and recompute.
		c.remove(e)
	}
	c.mu.Unlock()

	metrics.RecordCacheMiss()
	evaluation := compute()

	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.entries[fingerprint]; !ok {
		if len(c.entries) >= c.maxEntries {
			c.evictLRU()
		}
		e := &entry{fingerprint: fingerprint, evaluation: evaluation, storedAt: c.now()}
		c.entries[fingerprint] = e
		c.pushFront(e)
		metrics.UpdateCacheSize(len(c.entries))
	}
	return evaluation, false
}

// Len returns the current number of cached evaluations.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Purge drops every entry. The service calls this when a new scoring
// table is applied; the version change alone already misses, so this is
// purely to release memory held by dead fingerprints.
func (c *Cache) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*entry)
	c.head, c.tail = nil, nil
	metrics.UpdateCacheSize(0)
}

// Sweep removes expired entries opportunistically and reports how many
// it dropped. A periodic sweep keeps the map from carrying dead entries
// between evictions.
func (c *Cache) Sweep() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	now := c.now()
	for e := c.tail; e != nil; {
		prev := e.prev
		if now.Sub(e.storedAt) >= c.ttl {
			c.remove(e)
			removed++
		}
		e = prev
	}
	if removed > 0 {
		metrics.UpdateCacheSize(len(c.entries))
	}
	return removed
}

// recency list maintenance; all callers hold c.mu.

func (c *Cache) pushFront(e *entry) {
	e.prev = nil
	e.next = c.head
	if c.head != nil {
		c.head.prev = e
	}
	c.head = e
	if c.tail == nil {
		c.tail = e
	}
}

func (c *Cache) moveToFront(e *entry) {
	if c.head == e {
		return
	}
	c.unlink(e)
	c.pushFront(e)
}

func (c *Cache) unlink(e *entry) {
	if e.prev != nil {
		e.prev.next = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	}
	if c.head == e {
		c.head = e.next
	}
	if c.tail == e {
		c.tail = e.prev
	}
	e.prev, e.next = nil, nil
}

func (c *Cache) remove(e *entry) {
	c.unlink(e)
	delete(c.entries, e.fingerprint)
}

func (c *Cache) evictLRU() {
	if c.tail == nil {
		return
	}
	c.remove(c.tail)
	metrics.RecordCacheEviction()
}
