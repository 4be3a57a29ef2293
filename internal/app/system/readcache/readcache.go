// Package readcache is the short-lived read cache fronting the list
// endpoints. It is an explicit component instance injected into
// handlers, with a TTL policy and an injectable clock so tests can
// advance time without sleeping.
//
// Policy: a cached value is served while now - lastFetch < TTL
// (default five minutes). Every mutating handler invalidates eagerly;
// there is no lazy re-validation, so callers must tolerate the brief
// window where a stale read precedes a just-issued mutation.
package readcache

import (
	"strings"
	"sync"
	"time"
)

// Well-known cache keys. Role-scoped request lists use KeyRequests plus
// a scope suffix (see Scoped) so one mutation clears every scope.
const (
	KeyRequests   = "requests"
	KeyCategories = "categories"
	KeyUsers      = "users"
	KeyShortlists = "shortlists"
)

// DefaultTTL is how long a fetched value stays valid.
const DefaultTTL = 5 * time.Minute

// Clock returns the current time; swap it out in tests.
type Clock func() time.Time

// Policy configures a Cache.
type Policy struct {
	TTL   time.Duration
	Clock Clock
}

type entry struct {
	value     any
	lastFetch time.Time
}

// Cache is a keyed TTL cache safe for concurrent use.
type Cache struct {
	mu      sync.Mutex
	policy  Policy
	entries map[string]entry
}

// New builds a Cache. Zero policy fields fall back to DefaultTTL and
// time.Now.
func New(p Policy) *Cache {
	if p.TTL <= 0 {
		p.TTL = DefaultTTL
	}
	if p.Clock == nil {
		p.Clock = time.Now
	}
	return &Cache{policy: p, entries: make(map[string]entry)}
}

// Scoped derives a per-scope key under a base key, e.g. request lists
// cached separately per role scope.
func Scoped(base, scope string) string {
	if scope == "" {
		return base
	}
	return base + ":" + scope
}

// Get returns the cached value for key if it is still valid.
func (c *Cache) Get(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if c.policy.Clock().Sub(e.lastFetch) >= c.policy.TTL {
		delete(c.entries, key)
		return nil, false
	}
	return e.value, true
}

// Put stores a value under key, stamping it with the current clock.
func (c *Cache) Put(key string, v any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry{value: v, lastFetch: c.policy.Clock()}
}

// Invalidate clears the given base keys and any scoped entries under
// them. Called by every mutating handler.
func (c *Cache) Invalidate(keys ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, key := range keys {
		delete(c.entries, key)
		prefix := key + ":"
		for k := range c.entries {
			if strings.HasPrefix(k, prefix) {
				delete(c.entries, k)
			}
		}
	}
}

// InvalidateAll clears the whole cache.
func (c *Cache) InvalidateAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]entry)
}
