// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

// Package cache is the request-keyed query cache sitting between section
// fetches and the REST gateway.
package cache

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/AccelByte/extend-mission-control/pkg/metrics"
	"github.com/cenkalti/backoff/v4"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"
)

const (
	// DefaultRetention is how long a backend keeps an entry after it goes stale.
	DefaultRetention = 10 * time.Minute

	defaultRetryInitial = time.Second
	defaultRetryMax     = 30 * time.Second
)

// FetchFunc loads the raw response for a key.
type FetchFunc func(ctx context.Context) ([]byte, error)

// Options are the per-query cache settings.
type Options struct {
	// StaleTime is how long a stored response counts as fresh.
	StaleTime time.Duration
	// Retry is the number of extra attempts after a failed fetch.
	Retry int
	// ShouldRetry classifies fetch errors. Nil retries every error.
	ShouldRetry func(error) bool
}

// QueryCache serves fresh responses from a backend and refreshes stale ones,
// deduplicating concurrent refreshes of the same key.
type QueryCache struct {
	backend    Backend
	retention  time.Duration
	group      singleflight.Group
	now        func() time.Time
	newBackOff func() backoff.BackOff

	mu          sync.Mutex
	generation  map[string]uint64
	fetchedGen  map[string]uint64
	pending     map[string]struct{}
	invalidated chan struct{}
}

// Option customizes a QueryCache.
type Option func(*QueryCache)

// WithRetention sets the backend retention of entries.
func WithRetention(d time.Duration) Option {
	return func(c *QueryCache) {
		if d > 0 {
			c.retention = d
		}
	}
}

// WithBackOff replaces the retry backoff policy.
func WithBackOff(fn func() backoff.BackOff) Option {
	return func(c *QueryCache) {
		c.newBackOff = fn
	}
}

// WithClock replaces the time source.
func WithClock(now func() time.Time) Option {
	return func(c *QueryCache) {
		c.now = now
	}
}

// New creates a query cache over backend.
func New(backend Backend, opts ...Option) *QueryCache {
	c := &QueryCache{
		backend:   backend,
		retention: DefaultRetention,
		now:       time.Now,
		newBackOff: func() backoff.BackOff {
			b := backoff.NewExponentialBackOff()
			b.InitialInterval = defaultRetryInitial
			b.MaxInterval = defaultRetryMax
			return b
		},
		generation:  make(map[string]uint64),
		fetchedGen:  make(map[string]uint64),
		pending:     make(map[string]struct{}),
		invalidated: make(chan struct{}, 1),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Fetch returns the cached response for key while it is fresh and not
// invalidated. Otherwise it runs fn with retry and stores the result.
func (c *QueryCache) Fetch(ctx context.Context, key string, opts Options, fn FetchFunc) ([]byte, error) {
	if data, ok := c.lookup(ctx, key, opts.StaleTime); ok {
		metrics.CacheRequestsTotal.WithLabelValues("hit").Inc()
		return data, nil
	}

	v, err, shared := c.group.Do(key, func() (interface{}, error) {
		return c.refresh(ctx, key, opts, fn)
	})
	if shared {
		logrus.Debugf("cache fetch for %s shared with an in-flight request", key)
	}
	if err != nil {
		return nil, err
	}

	data, ok := v.([]byte)
	if !ok {
		return nil, fmt.Errorf("unexpected type from singleflight group for %s: got %T", key, v)
	}
	return data, nil
}

func (c *QueryCache) lookup(ctx context.Context, key string, staleTime time.Duration) ([]byte, bool) {
	if c.isInvalidated(key) {
		metrics.CacheRequestsTotal.WithLabelValues("stale").Inc()
		return nil, false
	}

	entry, err := c.backend.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			logrus.Warnf("cache lookup for %s failed, fetching: %v", key, err)
		}
		metrics.CacheRequestsTotal.WithLabelValues("miss").Inc()
		return nil, false
	}

	if entry.Age(c.now()) >= staleTime {
		metrics.CacheRequestsTotal.WithLabelValues("stale").Inc()
		return nil, false
	}
	return entry.Data, true
}

func (c *QueryCache) refresh(ctx context.Context, key string, opts Options, fn FetchFunc) ([]byte, error) {
	c.mu.Lock()
	startGen := c.generation[key]
	c.mu.Unlock()
	startedAt := c.now()

	var data []byte
	attempt := 0
	operation := func() error {
		attempt++
		var err error
		data, err = fn(ctx)
		if err == nil {
			return nil
		}
		if opts.ShouldRetry != nil && !opts.ShouldRetry(err) {
			return backoff.Permanent(err)
		}
		if attempt <= opts.Retry {
			logrus.Debugf("fetch %s failed (attempt %d/%d): %v", key, attempt, opts.Retry+1, err)
		}
		return err
	}

	retries := opts.Retry
	if retries < 0 {
		retries = 0
	}
	policy := backoff.WithContext(backoff.WithMaxRetries(c.newBackOff(), uint64(retries)), ctx)
	if err := backoff.Retry(operation, policy); err != nil {
		return nil, fmt.Errorf("fetch %s failed after %d attempts: %w", key, attempt, err)
	}

	if !c.superseded(key, startGen) {
		if err := c.backend.Set(ctx, key, &Entry{Data: data, StoredAt: startedAt}, c.retention); err != nil {
			logrus.Warnf("failed to store %s in cache: %v", key, err)
		}
	}

	// A response that predates an invalidation leaves the key stale and
	// pending so the owner refetches it.
	c.mu.Lock()
	requeued := c.generation[key] != startGen
	if requeued {
		c.pending[key] = struct{}{}
	} else {
		if startGen > c.fetchedGen[key] {
			c.fetchedGen[key] = startGen
		}
		delete(c.pending, key)
	}
	c.mu.Unlock()

	if requeued {
		logrus.Debugf("cache key %s invalidated during fetch, requeued", key)
		c.signal()
	}
	return data, nil
}

func (c *QueryCache) superseded(key string, startGen uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.generation[key] != startGen
}

func (c *QueryCache) isInvalidated(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	gen := c.generation[key]
	return gen > 0 && c.fetchedGen[key] < gen
}

// Invalidate marks keys stale so the next Fetch reloads them, and signals
// Invalidations. A Fetch after Invalidate never joins a refresh that
// started before it.
func (c *QueryCache) Invalidate(keys ...string) {
	if len(keys) == 0 {
		return
	}

	c.mu.Lock()
	for _, key := range keys {
		c.generation[key]++
		c.pending[key] = struct{}{}
		c.group.Forget(key)
		metrics.CacheInvalidationsTotal.WithLabelValues(key).Inc()
	}
	c.mu.Unlock()

	logrus.Debugf("invalidated cache keys %v", keys)
	c.signal()
}

func (c *QueryCache) signal() {
	select {
	case c.invalidated <- struct{}{}:
	default:
	}
}

// IsInvalidated reports whether key was invalidated after its last fetch.
func (c *QueryCache) IsInvalidated(key string) bool {
	return c.isInvalidated(key)
}

// IsStale reports whether the next Fetch of key would reload it.
func (c *QueryCache) IsStale(ctx context.Context, key string, staleTime time.Duration) bool {
	if c.isInvalidated(key) {
		return true
	}
	entry, err := c.backend.Get(ctx, key)
	if err != nil {
		return true
	}
	return entry.Age(c.now()) >= staleTime
}

// Invalidations is signalled after keys are invalidated. Signals coalesce;
// read the keys with PendingInvalidations.
func (c *QueryCache) Invalidations() <-chan struct{} {
	return c.invalidated
}

// PendingInvalidations returns and clears the keys invalidated since the last
// call, sorted.
func (c *QueryCache) PendingInvalidations() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	keys := make([]string, 0, len(c.pending))
	for key := range c.pending {
		keys = append(keys, key)
	}
	c.pending = make(map[string]struct{})
	sort.Strings(keys)
	return keys
}

// Remove drops key from the backend and forgets its invalidation state.
func (c *QueryCache) Remove(ctx context.Context, key string) error {
	c.mu.Lock()
	delete(c.generation, key)
	delete(c.fetchedGen, key)
	delete(c.pending, key)
	c.mu.Unlock()

	return c.backend.Delete(ctx, key)
}

// Clear drops every entry, e.g. on logout.
func (c *QueryCache) Clear(ctx context.Context) error {
	c.mu.Lock()
	c.generation = make(map[string]uint64)
	c.fetchedGen = make(map[string]uint64)
	c.pending = make(map[string]struct{})
	c.mu.Unlock()

	return c.backend.Clear(ctx)
}
