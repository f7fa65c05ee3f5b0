package cache

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/storefront/backend/internal/domain/catalog"
)

// InMemoryResponseCache implements catalog.ResponseCache with a local map.
// Suitable for tests and single-instance development runs; deployments
// with more than one instance should use RedisResponseCache.
type InMemoryResponseCache struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	metrics *Metrics
}

type memoryEntry struct {
	payload   []byte
	expiresAt time.Time
}

// NewInMemoryResponseCache creates an empty in-memory cache
func NewInMemoryResponseCache(metrics *Metrics) *InMemoryResponseCache {
	return &InMemoryResponseCache{
		entries: make(map[string]memoryEntry),
		metrics: metrics,
	}
}

// Get returns the cached payload for key, recording a hit or miss
func (c *InMemoryResponseCache) Get(_ context.Context, key string) ([]byte, bool) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok || time.Now().After(entry.expiresAt) {
		c.metrics.Miss()
		return nil, false
	}

	c.metrics.Hit()
	return entry.payload, true
}

// Set stores a payload under key with the given TTL
func (c *InMemoryResponseCache) Set(_ context.Context, key string, payload []byte, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = memoryEntry{
		payload:   payload,
		expiresAt: time.Now().Add(ttl),
	}
}

// Invalidate removes the given keys
func (c *InMemoryResponseCache) Invalidate(_ context.Context, keys ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, key := range keys {
		delete(c.entries, key)
	}
}

// InvalidatePrefix removes every key starting with prefix
func (c *InMemoryResponseCache) InvalidatePrefix(_ context.Context, prefix string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for key := range c.entries {
		if strings.HasPrefix(key, prefix) {
			delete(c.entries, key)
		}
	}
}

// Len returns the number of stored entries, including expired ones
func (c *InMemoryResponseCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Ensure InMemoryResponseCache implements catalog.ResponseCache
var _ catalog.ResponseCache = (*InMemoryResponseCache)(nil)
