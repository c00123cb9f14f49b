// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
)

const (
	// DefaultKeyPrefix is the prefix for all section response keys
	DefaultKeyPrefix = "mission_control:query:"

	clearScanCount = 100
)

// RedisOptions configures the Redis connection.
type RedisOptions struct {
	Addr       string
	Password   string
	DB         int
	MaxRetries uint64
	RetryDelay time.Duration
}

// InitRedisClient initializes and returns a Redis client, retrying the first
// ping with exponential backoff.
func InitRedisClient(ctx context.Context, opts RedisOptions) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         opts.Addr,
		Password:     opts.Password,
		DB:           opts.DB,
		MaxRetries:   3,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	b := backoff.NewExponentialBackOff()
	if opts.RetryDelay > 0 {
		b.InitialInterval = opts.RetryDelay
	}
	attempt := 0
	operation := func() error {
		attempt++
		_, err := client.Ping(ctx).Result()
		if err != nil {
			logrus.Warnf("Redis connection failed (attempt %d/%d): %v", attempt, opts.MaxRetries+1, err)
		}
		return err
	}

	if err := backoff.Retry(operation, backoff.WithContext(backoff.WithMaxRetries(b, opts.MaxRetries), ctx)); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis at %s after %d attempts: %w", opts.Addr, attempt, err)
	}

	logrus.Infof("connected to Redis at %s (attempt %d)", opts.Addr, attempt)
	return client, nil
}

// RedisBackend shares section responses between agents through Redis.
type RedisBackend struct {
	client *redis.Client
	prefix string
}

// NewRedisBackend creates a backend storing entries under prefix.
func NewRedisBackend(client *redis.Client, prefix string) *RedisBackend {
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	return &RedisBackend{client: client, prefix: prefix}
}

// Ping checks the Redis connection.
func (r *RedisBackend) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *RedisBackend) makeKey(key string) string {
	return r.prefix + key
}

func (r *RedisBackend) Get(ctx context.Context, key string) (*Entry, error) {
	data, err := r.client.Get(ctx, r.makeKey(key)).Bytes()
	if err == redis.Nil {
		return nil, ErrNotFound
	}
	if err != nil {
		logrus.Errorf("failed to get cache entry %s: %v", key, err)
		return nil, fmt.Errorf("failed to get cache entry: %w", err)
	}

	var entry Entry
	if err := json.Unmarshal(data, &entry); err != nil {
		logrus.Errorf("failed to unmarshal cache entry %s: %v", key, err)
		return nil, fmt.Errorf("failed to unmarshal cache entry: %w", err)
	}

	return &entry, nil
}

func (r *RedisBackend) Set(ctx context.Context, key string, entry *Entry, ttl time.Duration) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal cache entry: %w", err)
	}

	if err := r.client.Set(ctx, r.makeKey(key), data, ttl).Err(); err != nil {
		logrus.Errorf("failed to set cache entry %s: %v", key, err)
		return fmt.Errorf("failed to set cache entry: %w", err)
	}

	logrus.Debugf("stored cache entry %s with TTL %v", key, ttl)
	return nil
}

func (r *RedisBackend) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, r.makeKey(key)).Err(); err != nil {
		logrus.Errorf("failed to delete cache entry %s: %v", key, err)
		return fmt.Errorf("failed to delete cache entry: %w", err)
	}
	return nil
}

// Clear removes every key under the backend prefix.
func (r *RedisBackend) Clear(ctx context.Context) error {
	var cursor uint64
	for {
		keys, next, err := r.client.Scan(ctx, cursor, r.prefix+"*", clearScanCount).Result()
		if err != nil {
			return fmt.Errorf("failed to scan cache keys: %w", err)
		}
		if len(keys) > 0 {
			if err := r.client.Del(ctx, keys...).Err(); err != nil {
				return fmt.Errorf("failed to delete cache keys: %w", err)
			}
		}
		cursor = next
		if cursor == 0 {
			return nil
		}
	}
}
