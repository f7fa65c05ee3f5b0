package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// RedisResponseCache implements catalog.ResponseCache backed by Redis.
// The cache is best-effort: any Redis failure is logged and reported
// as a miss, so catalog reads keep working when Redis is down.
type RedisResponseCache struct {
	client  *redis.Client
	metrics *Metrics
	logger  *zap.Logger
}

// NewRedisClient creates a Redis client and verifies the connection
func NewRedisClient(cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return client, nil
}

// NewRedisResponseCache creates a response cache with an existing Redis client
func NewRedisResponseCache(client *redis.Client, metrics *Metrics, logger *zap.Logger) *RedisResponseCache {
	return &RedisResponseCache{
		client:  client,
		metrics: metrics,
		logger:  logger,
	}
}

// Get returns the cached payload for key, recording a hit or miss
func (c *RedisResponseCache) Get(ctx context.Context, key string) ([]byte, bool) {
	payload, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("cache get failed", zap.String("key", key), zap.Error(err))
		}
		c.metrics.Miss()
		return nil, false
	}

	c.metrics.Hit()
	return payload, true
}

// Set stores a payload under key with the given TTL
func (c *RedisResponseCache) Set(ctx context.Context, key string, payload []byte, ttl time.Duration) {
	if err := c.client.Set(ctx, key, payload, ttl).Err(); err != nil {
		c.logger.Warn("cache set failed", zap.String("key", key), zap.Error(err))
	}
}

// Invalidate removes the given keys
func (c *RedisResponseCache) Invalidate(ctx context.Context, keys ...string) {
	if len(keys) == 0 {
		return
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		c.logger.Warn("cache invalidate failed", zap.Strings("keys", keys), zap.Error(err))
	}
}

// InvalidatePrefix removes every key starting with prefix.
// Uses SCAN instead of KEYS so a large keyspace does not block Redis.
func (c *RedisResponseCache) InvalidatePrefix(ctx context.Context, prefix string) {
	var cursor uint64
	pattern := prefix + "*"

	for {
		keys, next, err := c.client.Scan(ctx, cursor, pattern, 100).Result()
		if err != nil {
			c.logger.Warn("cache prefix scan failed", zap.String("prefix", prefix), zap.Error(err))
			return
		}

		if len(keys) > 0 {
			if err := c.client.Del(ctx, keys...).Err(); err != nil {
				c.logger.Warn("cache prefix delete failed", zap.String("prefix", prefix), zap.Error(err))
				return
			}
		}

		cursor = next
		if cursor == 0 {
			return
		}
	}
}

// Close closes the underlying Redis client
func (c *RedisResponseCache) Close() error {
	return c.client.Close()
}

// Ensure RedisResponseCache implements catalog.ResponseCache
var _ catalog.ResponseCache = (*RedisResponseCache)(nil)
