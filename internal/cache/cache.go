// Package cache wraps Redis for the read-heavy browse surfaces. Cached
// values are JSON documents keyed by entity; writers invalidate by key
// prefix after every mutation. A nil client degrades to a pass-through so
// the platform runs without Redis in development.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"evercraft/internal/common/logger"

	"github.com/redis/go-redis/v9"
)

const defaultTTL = 5 * time.Minute

type Cache struct {
	client *redis.Client
	logger logger.Logger
	ttl    time.Duration
}

func New(client *redis.Client, log logger.Logger) *Cache {
	return &Cache{
		client: client,
		logger: log.WithFields(map[string]interface{}{"component": "cache"}),
		ttl:    defaultTTL,
	}
}

// Get unmarshals the cached document into dest. The bool reports a hit;
// cache failures are logged and treated as misses.
func (c *Cache) Get(ctx context.Context, key string, dest interface{}) bool {
	if c == nil || c.client == nil {
		return false
	}
	val, err := c.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return false
	}
	if err != nil {
		c.logger.WithError(err).Warn("cache read failed", map[string]interface{}{"key": key})
		return false
	}
	if err := json.Unmarshal([]byte(val), dest); err != nil {
		c.logger.WithError(err).Warn("cache entry corrupt", map[string]interface{}{"key": key})
		return false
	}
	return true
}

func (c *Cache) Set(ctx context.Context, key string, value interface{}) {
	if c == nil || c.client == nil {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		c.logger.WithError(err).Warn("cache marshal failed", map[string]interface{}{"key": key})
		return
	}
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.logger.WithError(err).Warn("cache write failed", map[string]interface{}{"key": key})
	}
}

// Invalidate deletes every key under the given prefixes. Mutations call
// this after commit so stale reads age out at most once.
func (c *Cache) Invalidate(ctx context.Context, prefixes ...string) {
	if c == nil || c.client == nil {
		return
	}
	for _, prefix := range prefixes {
		iter := c.client.Scan(ctx, 0, prefix+"*", 100).Iterator()
		var keys []string
		for iter.Next(ctx) {
			keys = append(keys, iter.Val())
		}
		if err := iter.Err(); err != nil {
			c.logger.WithError(err).Warn("cache scan failed", map[string]interface{}{"prefix": prefix})
			continue
		}
		if len(keys) > 0 {
			if err := c.client.Del(ctx, keys...).Err(); err != nil {
				c.logger.WithError(err).Warn("cache invalidation failed", map[string]interface{}{"prefix": prefix})
			}
		}
	}
}

// Key builders keep the namespace in one place.

func ShopKey(shopID string) string {
	return fmt.Sprintf("shop:%s", shopID)
}

func ShopProductsKey(shopID string) string {
	return fmt.Sprintf("shop:%s:products", shopID)
}

func ProductKey(productID string) string {
	return fmt.Sprintf("product:%s", productID)
}

func CategoriesKey() string {
	return "categories"
}
