package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestInMemoryResponseCache_GetSet(t *testing.T) {
	ctx := context.Background()
	metrics := NewMetrics()
	c := NewInMemoryResponseCache(metrics)

	_, ok := c.Get(ctx, "products:all:page:1:limit:10")
	assert.False(t, ok)

	c.Set(ctx, "products:all:page:1:limit:10", []byte(`{"products":[]}`), time.Hour)

	payload, ok := c.Get(ctx, "products:all:page:1:limit:10")
	assert.True(t, ok)
	assert.Equal(t, []byte(`{"products":[]}`), payload)

	snap := metrics.Snapshot()
	assert.Equal(t, int64(1), snap.Hits)
	assert.Equal(t, int64(1), snap.Misses)
	assert.InDelta(t, 50.0, snap.HitRatePct, 0.01)
}

func TestInMemoryResponseCache_Expiry(t *testing.T) {
	ctx := context.Background()
	c := NewInMemoryResponseCache(NewMetrics())

	c.Set(ctx, "product:abc", []byte("payload"), -time.Second)

	_, ok := c.Get(ctx, "product:abc")
	assert.False(t, ok)
}

func TestInMemoryResponseCache_InvalidatePrefix(t *testing.T) {
	ctx := context.Background()
	c := NewInMemoryResponseCache(NewMetrics())

	c.Set(ctx, "products:all:page:1:limit:10", []byte("a"), time.Hour)
	c.Set(ctx, "products:search:mug:page:1:limit:10", []byte("b"), time.Hour)
	c.Set(ctx, "product:abc", []byte("c"), time.Hour)

	c.InvalidatePrefix(ctx, "products:")

	_, ok := c.Get(ctx, "products:all:page:1:limit:10")
	assert.False(t, ok)
	_, ok = c.Get(ctx, "products:search:mug:page:1:limit:10")
	assert.False(t, ok)

	// Detail key uses a different prefix and must survive listing invalidation
	payload, ok := c.Get(ctx, "product:abc")
	assert.True(t, ok)
	assert.Equal(t, []byte("c"), payload)
}

func TestInMemoryResponseCache_Invalidate(t *testing.T) {
	ctx := context.Background()
	c := NewInMemoryResponseCache(NewMetrics())

	c.Set(ctx, "product:abc", []byte("a"), time.Hour)
	c.Set(ctx, "product:def", []byte("b"), time.Hour)

	c.Invalidate(ctx, "product:abc")

	_, ok := c.Get(ctx, "product:abc")
	assert.False(t, ok)
	_, ok = c.Get(ctx, "product:def")
	assert.True(t, ok)
	assert.Equal(t, 1, c.Len())
}

func TestMetrics_SnapshotEmpty(t *testing.T) {
	snap := NewMetrics().Snapshot()
	assert.Equal(t, int64(0), snap.Hits)
	assert.Equal(t, int64(0), snap.Misses)
	assert.Equal(t, 0.0, snap.HitRatePct)
}
