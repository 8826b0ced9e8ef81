package query

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"sync"
	"time"

	"github.com/Schnee111/intrasearch/internal/model"
)

// Cache maps a normalized (query terms, domain filter) key to a
// previously computed ranked result set with an expiry.
//
// Design decision: Cache entries are keyed by query, not by crawled
// document, so cache locking is completely independent of crawl-time
// locking. A disabled cache turns every lookup into a forced miss and
// every put into a no-op, which lets the configuration switch live
// outside this component.
type Cache struct {
	// mu guards entries. Get and Put are atomic with respect to each
	// other across concurrent search requests.
	mu sync.Mutex

	// entries maps cache key to its entry. Expired entries are
	// logically absent even while still physically stored; Get evicts
	// them lazily.
	entries map[string]*cacheEntry

	// ttl is the lifetime applied to new entries.
	ttl time.Duration

	// enabled gates the whole cache.
	enabled bool

	// now returns the current time; replaceable in tests.
	now func() time.Time
}

// cacheEntry is one stored result set.
type cacheEntry struct {
	results   []model.SearchResult
	createdAt time.Time
	ttl       time.Duration
}

// expired reports whether the entry is no longer servable at t.
// An entry is servable iff t < createdAt + ttl.
func (e *cacheEntry) expired(t time.Time) bool {
	return !t.Before(e.createdAt.Add(e.ttl))
}

// CacheOption configures a Cache.
type CacheOption func(*Cache)

// WithClock replaces the cache's time source. Tests use this to step
// through TTL boundaries without sleeping.
func WithClock(now func() time.Time) CacheOption {
	return func(c *Cache) {
		c.now = now
	}
}

// NewCache creates a result cache with the given TTL. When enabled is
// false the cache stores nothing and hits nothing.
func NewCache(ttl time.Duration, enabled bool, opts ...CacheOption) *Cache {
	c := &Cache{
		entries: make(map[string]*cacheEntry),
		ttl:     ttl,
		enabled: enabled,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Key derives the cache key from normalized query terms and the domain
// filter. Queries that normalize identically share one entry regardless
// of raw spelling.
func Key(terms []string, domainFilter string) string {
	h := sha256.New()
	h.Write([]byte(strings.Join(terms, " ")))
	h.Write([]byte{0})
	h.Write([]byte(domainFilter))
	return hex.EncodeToString(h.Sum(nil))
}

// Get returns the cached result set for key, or a miss when the cache
// is disabled, the key is unknown, or the entry has expired. Expired
// entries are evicted on the way out.
func (c *Cache) Get(key string) ([]model.SearchResult, bool) {
	if !c.enabled {
		return nil, false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if entry.expired(c.now()) {
		delete(c.entries, key)
		return nil, false
	}
	return entry.results, true
}

// Put stores a result set under key with the cache TTL. No-op when the
// cache is disabled.
func (c *Cache) Put(key string, results []model.SearchResult) {
	if !c.enabled {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = &cacheEntry{
		results:   results,
		createdAt: c.now(),
		ttl:       c.ttl,
	}
}

// Clear empties the cache regardless of TTLs. This is the explicit
// operator action behind the clear-cache command.
func (c *Cache) Clear() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := len(c.entries)
	c.entries = make(map[string]*cacheEntry)
	return n
}

// Len returns the number of live (unexpired) entries.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	t := c.now()
	n := 0
	for _, entry := range c.entries {
		if !entry.expired(t) {
			n++
		}
	}
	return n
}
