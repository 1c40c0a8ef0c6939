package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"document-viewer/internal/domain"

	"github.com/redis/go-redis/v9"
)

// redisKV is the subset of the go-redis client the cache uses.
type redisKV interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// RedisConfig addresses the cache server.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// NewRedisClient creates a go-redis client for cfg
func NewRedisClient(cfg RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

// RedisProgressCache is a write-through cache in front of a progress
// store. Cache errors are logged and fall through to the store.
type RedisProgressCache struct {
	rdb    redisKV
	next   domain.ProgressStore
	ttl    time.Duration
	logger domain.Logger
}

// NewRedisProgressCache wraps next with a cache entry per user and document
func NewRedisProgressCache(rdb redisKV, next domain.ProgressStore, ttl time.Duration, logger domain.Logger) *RedisProgressCache {
	return &RedisProgressCache{
		rdb:    rdb,
		next:   next,
		ttl:    ttl,
		logger: logger,
	}
}

func progressKey(userID, documentID string) string {
	return fmt.Sprintf("progress:%s:%s", userID, documentID)
}

// Save writes the cache first so the newest position is readable even if
// the store write is slow, then writes the store.
func (c *RedisProgressCache) Save(ctx context.Context, p domain.Principal, documentID string, loc domain.DocumentLocation) error {
	key := progressKey(p.UserID, documentID)
	if b, err := json.Marshal(loc); err == nil {
		if err := c.rdb.Set(ctx, key, b, c.ttl).Err(); err != nil {
			c.logger.Warn("Progress cache write failed", "key", key, "error", err)
		}
	}
	return c.next.Save(ctx, p, documentID, loc)
}

// Load serves from the cache and falls back to the store on a miss.
func (c *RedisProgressCache) Load(ctx context.Context, p domain.Principal, documentID string) (*domain.DocumentLocation, error) {
	key := progressKey(p.UserID, documentID)

	b, err := c.rdb.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var loc domain.DocumentLocation
		if err := json.Unmarshal(b, &loc); err == nil {
			c.logger.Debug("Progress cache hit", "key", key)
			return &loc, nil
		}
		c.logger.Warn("Dropping corrupt progress cache entry", "key", key)
		_ = c.rdb.Del(ctx, key).Err()
	case errors.Is(err, redis.Nil):
	default:
		c.logger.Warn("Progress cache read failed", "key", key, "error", err)
	}

	loc, err := c.next.Load(ctx, p, documentID)
	if err != nil || loc == nil {
		return loc, err
	}
	if b, err := json.Marshal(loc); err == nil {
		if err := c.rdb.Set(ctx, key, b, c.ttl).Err(); err != nil {
			c.logger.Warn("Progress cache fill failed", "key", key, "error", err)
		}
	}
	return loc, nil
}

// SaveFavorite is not cached.
func (c *RedisProgressCache) SaveFavorite(ctx context.Context, p domain.Principal, documentID string, favorite bool) error {
	return c.next.SaveFavorite(ctx, p, documentID, favorite)
}
