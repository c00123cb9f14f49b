// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package bootstrap

import (
	"context"
	"fmt"

	"github.com/AccelByte/extend-mission-control/internal/config"
	"github.com/AccelByte/extend-mission-control/pkg/cache"
	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
)

// InitQueryCache creates the query cache on the configured backend. The
// returned Redis client is nil for the memory backend and must be closed by
// the caller otherwise.
//
// ============================================================
// DEVELOPER: Cache backend selection
// ============================================================
// CACHE_BACKEND=memory keeps section responses in a per-process
// LRU. CACHE_BACKEND=redis shares them between agents running
// for the same learner, so a second agent starts warm.
//
// Invalidation marks always stay in-process: a realtime delta
// received by one agent does not force the others to refetch.
// ============================================================
func InitQueryCache(ctx context.Context, cfg *config.Config) (*cache.QueryCache, cache.Backend, *redis.Client, error) {
	var (
		backend cache.Backend
		client  *redis.Client
	)

	switch cfg.CacheBackend {
	case config.CacheRedis:
		var err error
		client, err = cache.InitRedisClient(ctx, cache.RedisOptions{
			Addr:       cfg.RedisAddr(),
			Password:   cfg.RedisPassword,
			DB:         cfg.RedisDB,
			MaxRetries: uint64(cfg.RedisMaxRetries),
			RetryDelay: cfg.RedisRetryDelay(),
		})
		if err != nil {
			return nil, nil, nil, fmt.Errorf("failed to init Redis: %w", err)
		}
		backend = cache.NewRedisBackend(client, cfg.RedisKeyPrefix)
	default:
		mem, err := cache.NewMemoryBackend(cfg.CacheSize)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("failed to create memory cache: %w", err)
		}
		backend = mem
	}

	logrus.Infof("initialized %s query cache (retention %v)", cfg.CacheBackend, cfg.CacheRetention)
	return cache.New(backend, cache.WithRetention(cfg.CacheRetention)), backend, client, nil
}
