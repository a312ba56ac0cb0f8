package usgs

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- mock for cache tests ---

type countingTransport struct {
	calls int
	body  []byte
	err   error
}

func (m *countingTransport) Send(_ context.Context, _ string) ([]byte, error) {
	m.calls++
	return m.body, m.err
}

// --- CachedTransport tests ---

func TestCachedTransport_CacheHit(t *testing.T) {
	inner := &countingTransport{body: []byte(`{"type":"FeatureCollection"}`)}
	cached := NewCachedTransport(inner, 10, testMetrics())

	r1, err := cached.Send(context.Background(), "minmagnitude=5")
	require.NoError(t, err)
	assert.Contains(t, string(r1), "FeatureCollection")

	r2, err := cached.Send(context.Background(), "minmagnitude=5")
	require.NoError(t, err)
	assert.Equal(t, r1, r2)

	assert.Equal(t, 1, inner.calls, "should only call inner once")
}

func TestCachedTransport_DifferentQueriesMiss(t *testing.T) {
	inner := &countingTransport{body: []byte(`{}`)}
	cached := NewCachedTransport(inner, 10, testMetrics())

	_, _ = cached.Send(context.Background(), "minmagnitude=5")
	_, _ = cached.Send(context.Background(), "minmagnitude=6")

	assert.Equal(t, 2, inner.calls)
}

func TestCachedTransport_ErrorsNotCached(t *testing.T) {
	inner := &countingTransport{err: errors.New("boom")}
	cached := NewCachedTransport(inner, 10, testMetrics())

	_, err := cached.Send(context.Background(), "minmagnitude=5")
	require.Error(t, err)

	inner.err = nil
	inner.body = []byte(`{}`)
	_, err = cached.Send(context.Background(), "minmagnitude=5")
	require.NoError(t, err)

	assert.Equal(t, 2, inner.calls, "failed lookup should not populate the cache")
}

// --- LRU cache unit tests ---

func TestLRUCache_BasicGetPut(t *testing.T) {
	c := newLRUCache(3)

	c.put("a", []byte("A"))
	c.put("b", []byte("B"))

	value, ok := c.get("a")
	assert.True(t, ok)
	assert.Equal(t, []byte("A"), value)

	_, ok = c.get("missing")
	assert.False(t, ok)
}

func TestLRUCache_Eviction(t *testing.T) {
	c := newLRUCache(2)

	c.put("a", []byte("A"))
	c.put("b", []byte("B"))
	c.put("c", []byte("C")) // evicts "a"

	_, ok := c.get("a")
	assert.False(t, ok, "a should have been evicted")

	value, ok := c.get("b")
	assert.True(t, ok)
	assert.Equal(t, []byte("B"), value)

	value, ok = c.get("c")
	assert.True(t, ok)
	assert.Equal(t, []byte("C"), value)
}

func TestLRUCache_AccessPromotesEntry(t *testing.T) {
	c := newLRUCache(2)

	c.put("a", []byte("A"))
	c.put("b", []byte("B"))

	// Access "a" to promote it
	c.get("a")

	// Insert "c" — should evict "b" (LRU), not "a"
	c.put("c", []byte("C"))

	_, ok := c.get("a")
	assert.True(t, ok, "a was accessed recently, should not be evicted")

	_, ok = c.get("b")
	assert.False(t, ok, "b should have been evicted")
}

func TestLRUCache_UpdateExisting(t *testing.T) {
	c := newLRUCache(2)

	c.put("a", []byte("A1"))
	c.put("a", []byte("A2"))

	value, ok := c.get("a")
	assert.True(t, ok)
	assert.Equal(t, []byte("A2"), value)
}
