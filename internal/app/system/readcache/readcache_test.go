package readcache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock advances only when told to, so TTL expiry is deterministic.
type fakeClock struct {
	now time.Time
}

func (f *fakeClock) Now() time.Time          { return f.now }
func (f *fakeClock) Advance(d time.Duration) { f.now = f.now.Add(d) }

func newTestCache(ttl time.Duration) (*Cache, *fakeClock) {
	clk := &fakeClock{now: time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)}
	return New(Policy{TTL: ttl, Clock: clk.Now}), clk
}

func TestGet_Miss(t *testing.T) {
	c, _ := newTestCache(5 * time.Minute)

	_, ok := c.Get("requests")
	assert.False(t, ok)
}

func TestPutGet(t *testing.T) {
	c, _ := newTestCache(5 * time.Minute)

	c.Put("requests", []int{1, 2, 3})
	v, ok := c.Get("requests")
	require.True(t, ok)
	assert.Equal(t, []int{1, 2, 3}, v)
}

func TestGet_ServedUntilTTL(t *testing.T) {
	c, clk := newTestCache(5 * time.Minute)

	c.Put("requests", "v")

	clk.Advance(5*time.Minute - time.Second)
	_, ok := c.Get("requests")
	assert.True(t, ok, "value one second before TTL should be served")
}

func TestGet_ExpiredAtTTL(t *testing.T) {
	c, clk := newTestCache(5 * time.Minute)

	c.Put("requests", "v")

	clk.Advance(5 * time.Minute)
	_, ok := c.Get("requests")
	assert.False(t, ok, "value exactly at TTL should be refetched")
}

func TestPut_RestampsExpiry(t *testing.T) {
	c, clk := newTestCache(5 * time.Minute)

	c.Put("requests", "old")
	clk.Advance(4 * time.Minute)
	c.Put("requests", "new")
	clk.Advance(4 * time.Minute)

	v, ok := c.Get("requests")
	require.True(t, ok)
	assert.Equal(t, "new", v)
}

func TestInvalidate(t *testing.T) {
	c, _ := newTestCache(5 * time.Minute)

	c.Put("requests", "v")
	c.Put("categories", "w")

	c.Invalidate("requests")

	_, ok := c.Get("requests")
	assert.False(t, ok)
	_, ok = c.Get("categories")
	assert.True(t, ok, "other keys survive invalidation")
}

func TestInvalidate_ClearsScopedEntries(t *testing.T) {
	c, _ := newTestCache(5 * time.Minute)

	c.Put(Scoped("requests", "csr"), "a")
	c.Put(Scoped("requests", "admin"), "b")
	c.Put("shortlists", "c")

	c.Invalidate("requests")

	_, ok := c.Get(Scoped("requests", "csr"))
	assert.False(t, ok)
	_, ok = c.Get(Scoped("requests", "admin"))
	assert.False(t, ok)
	_, ok = c.Get("shortlists")
	assert.True(t, ok)
}

func TestInvalidateAll(t *testing.T) {
	c, _ := newTestCache(5 * time.Minute)

	c.Put("requests", "a")
	c.Put("categories", "b")

	c.InvalidateAll()

	_, ok := c.Get("requests")
	assert.False(t, ok)
	_, ok = c.Get("categories")
	assert.False(t, ok)
}

func TestScoped(t *testing.T) {
	assert.Equal(t, "requests:csr", Scoped("requests", "csr"))
	assert.Equal(t, "requests", Scoped("requests", ""))
}
