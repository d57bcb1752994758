package http

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/lamnguyen/folio/pkg/logger"
)

// Cache keys for the public read endpoints. The worker drops these on
// portfolio events so replicas converge without restarting.
const (
	CacheKeyProfile     = "folio:cache:profile"
	CacheKeySkills      = "folio:cache:skills"
	CacheKeyExperiences = "folio:cache:experiences"
	CacheKeyProjects    = "folio:cache:projects"
)

const cacheTTL = 60 * time.Second

// CacheKeyForEntity maps an event entity name onto its cache key. Empty
// when the entity has no cached view.
func CacheKeyForEntity(entity string) string {
	switch entity {
	case "profile":
		return CacheKeyProfile
	case "skill":
		return CacheKeySkills
	case "experience":
		return CacheKeyExperiences
	case "project":
		return CacheKeyProjects
	}
	return ""
}

// Cache is a thin pass-through wrapper: a nil Redis client disables caching
// entirely, which is the default for single-instance deployments.
type Cache struct {
	rdb    *redis.Client
	logger logger.Logger
}

func NewCache(rdb *redis.Client, log logger.Logger) *Cache {
	return &Cache{rdb: rdb, logger: log}
}

func (c *Cache) Get(ctx context.Context, key string) ([]byte, bool) {
	if c == nil || c.rdb == nil {
		return nil, false
	}
	data, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("Cache read failed", zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}
	return data, true
}

func (c *Cache) Set(ctx context.Context, key string, value []byte) {
	if c == nil || c.rdb == nil {
		return
	}
	if err := c.rdb.Set(ctx, key, value, cacheTTL).Err(); err != nil {
		c.logger.Warn("Cache write failed", zap.String("key", key), zap.Error(err))
	}
}

func (c *Cache) Invalidate(ctx context.Context, keys ...string) {
	if c == nil || c.rdb == nil || len(keys) == 0 {
		return
	}
	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		c.logger.Warn("Cache invalidation failed", zap.Strings("keys", keys), zap.Error(err))
	}
}
