// Package cache provides the short-lived article preview cache backed by Redis.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/wikiroam/randomarticle/internal/logger"
	"github.com/wikiroam/randomarticle/internal/models"
)

const connectionTimeout = 2 * time.Second

// NewClient creates a new Redis client with connection testing
func NewClient(addr, password string, db int) (*redis.Client, error) {
	redisClient := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	pingCtx, cancel := context.WithTimeout(context.Background(), connectionTimeout)
	defer cancel()

	if pingErr := redisClient.Ping(pingCtx).Err(); pingErr != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", pingErr)
	}

	return redisClient, nil
}

// PreviewCache stores article previews with a staleness TTL. Entries expire
// on their own; the cache never evicts explicitly.
type PreviewCache struct {
	client redis.UniversalClient
	ttl    time.Duration
	logger logger.Logger
}

// NewPreviewCache creates a preview cache on a shared Redis client.
func NewPreviewCache(client redis.UniversalClient, ttl time.Duration, log logger.Logger) *PreviewCache {
	return &PreviewCache{
		client: client,
		ttl:    ttl,
		logger: log,
	}
}

func (c *PreviewCache) key(key models.ArticleKey) string {
	return fmt.Sprintf("preview:%s:%s", key.Site.Host(), key.Title)
}

// Get returns the cached preview for a key, or models.ErrNotFound on a miss.
// Expired entries are indistinguishable from misses.
func (c *PreviewCache) Get(ctx context.Context, key models.ArticleKey) (*models.ArticlePreview, error) {
	redisKey := c.key(key)

	data, err := c.client.Get(ctx, redisKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, models.ErrNotFound
		}
		c.logger.Error("Redis error reading preview",
			logger.String("redis_key", redisKey),
			logger.Error(err),
		)
		return nil, fmt.Errorf("get preview: %w", err)
	}

	var preview models.ArticlePreview
	if err := json.Unmarshal(data, &preview); err != nil {
		// A corrupt entry is treated as a miss so the caller refetches.
		c.logger.Warn("Discarding corrupt preview entry",
			logger.String("redis_key", redisKey),
			logger.Error(err),
		)
		return nil, models.ErrNotFound
	}
	preview.Key = key

	c.logger.Debug("Preview cache hit",
		logger.String("redis_key", redisKey),
	)

	return &preview, nil
}

// Put stores a preview under its key with the configured TTL.
func (c *PreviewCache) Put(ctx context.Context, preview *models.ArticlePreview) error {
	redisKey := c.key(preview.Key)

	data, err := json.Marshal(preview)
	if err != nil {
		return fmt.Errorf("marshal preview: %w", err)
	}

	if err := c.client.Set(ctx, redisKey, data, c.ttl).Err(); err != nil {
		c.logger.Error("Redis error storing preview",
			logger.String("redis_key", redisKey),
			logger.Duration("ttl", c.ttl),
			logger.Error(err),
		)
		return fmt.Errorf("put preview: %w", err)
	}

	c.logger.Debug("Preview cached",
		logger.String("redis_key", redisKey),
		logger.Duration("ttl", c.ttl),
	)

	return nil
}
