package usgs

import (
	"context"
	"sync"

	"github.com/couchcryptid/quake-feed/internal/domain"
	"github.com/couchcryptid/quake-feed/internal/observability"
)

// CachedTransport wraps a Transport with an in-memory LRU response cache
// keyed by the encoded query. Identical queries within a process reuse the
// raw response instead of hitting the feed again; callers treat the returned
// bytes as read-only.
type CachedTransport struct {
	inner   domain.Transport
	cache   *lruCache
	metrics *observability.Metrics
}

// NewCachedTransport creates a cache decorator around a transport.
func NewCachedTransport(inner domain.Transport, maxEntries int, metrics *observability.Metrics) *CachedTransport {
	return &CachedTransport{
		inner:   inner,
		cache:   newLRUCache(maxEntries),
		metrics: metrics,
	}
}

func (c *CachedTransport) Send(ctx context.Context, query string) ([]byte, error) {
	if raw, ok := c.cache.get(query); ok {
		c.metrics.CacheLookups.WithLabelValues("hit").Inc()
		return raw, nil
	}
	c.metrics.CacheLookups.WithLabelValues("miss").Inc()

	raw, err := c.inner.Send(ctx, query)
	if err != nil {
		return nil, err
	}
	c.cache.put(query, raw)
	return raw, nil
}

// lruCache is a simple thread-safe LRU cache for raw responses.
type lruCache struct {
	maxEntries int
	mu         sync.Mutex
	entries    map[string]*entry
	head       *entry // most recently used
	tail       *entry // least recently used
}

type entry struct {
	key   string
	value []byte
	prev  *entry
	next  *entry
}

func newLRUCache(maxEntries int) *lruCache {
	return &lruCache{
		maxEntries: maxEntries,
		entries:    make(map[string]*entry),
	}
}

func (c *lruCache) get(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	c.moveToFront(e)
	return e.value, true
}

func (c *lruCache) put(key string, value []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[key]; ok {
		e.value = value
		c.moveToFront(e)
		return
	}

	e := &entry{key: key, value: value}
	c.entries[key] = e
	c.addToFront(e)

	if len(c.entries) > c.maxEntries {
		c.evictTail()
	}
}

func (c *lruCache) moveToFront(e *entry) {
	if e == c.head {
		return
	}
	c.remove(e)
	c.addToFront(e)
}

func (c *lruCache) addToFront(e *entry) {
	e.next = c.head
	e.prev = nil
	if c.head != nil {
		c.head.prev = e
	}
	c.head = e
	if c.tail == nil {
		c.tail = e
	}
}

func (c *lruCache) remove(e *entry) {
	if e.prev != nil {
		e.prev.next = e.next
	} else {
		c.head = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	} else {
		c.tail = e.prev
	}
}

func (c *lruCache) evictTail() {
	if c.tail == nil {
		return
	}
	delete(c.entries, c.tail.key)
	c.remove(c.tail)
}
