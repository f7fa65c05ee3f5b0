package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// CacheTTL is how long cached catalog responses live before expiring.
const CacheTTL = time.Hour

// ListingCachePrefix covers every listing/search cache key. Product writes
// invalidate the whole prefix: listings can be filtered and paginated
// arbitrarily, so precise invalidation is not tractable with this key scheme.
const ListingCachePrefix = "products:"

// ResponseCache is a read-through cache for serialized catalog responses.
// Implementations must never fail the surrounding request: a failed read
// behaves as a miss, failed writes and invalidations are logged and dropped.
type ResponseCache interface {
	// Get returns the cached payload for key, or ok=false on miss
	Get(ctx context.Context, key string) (payload []byte, ok bool)

	// Set stores payload under key with the given TTL
	Set(ctx context.Context, key string, payload []byte, ttl time.Duration)

	// Invalidate removes the given keys
	Invalidate(ctx context.Context, keys ...string)

	// InvalidatePrefix removes every key starting with prefix
	InvalidatePrefix(ctx context.Context, prefix string)
}

// ListingCacheKey builds the deterministic cache key for a product
// listing or search page.
func ListingCacheKey(search string, page, limit int) string {
	if search != "" {
		return fmt.Sprintf("%ssearch:%s:page:%d:limit:%d", ListingCachePrefix, search, page, limit)
	}
	return fmt.Sprintf("%sall:page:%d:limit:%d", ListingCachePrefix, page, limit)
}

// DetailCacheKey builds the cache key for a single product's detail view
func DetailCacheKey(productID uuid.UUID) string {
	return "product:" + productID.String()
}
