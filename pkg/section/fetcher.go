// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package section

import (
	"context"
	"fmt"
	"time"

	"github.com/AccelByte/extend-mission-control/pkg/cache"
	"github.com/AccelByte/extend-mission-control/pkg/common"
	"github.com/AccelByte/extend-mission-control/pkg/dashboard"
	"github.com/AccelByte/extend-mission-control/pkg/gateway"
	"github.com/AccelByte/extend-mission-control/pkg/metrics"
	"github.com/AccelByte/extend-mission-control/pkg/store"
)

// DefaultFallbackDelay is the pause before fallback data is written.
const DefaultFallbackDelay = 500 * time.Millisecond

// Fetcher runs section fetches through the query cache and writes the
// outcome to the store.
type Fetcher struct {
	gateway       gateway.Gateway
	cache         *cache.QueryCache
	store         *store.Store
	fallbacks     *dashboard.FallbackSet
	fallbackDelay time.Duration
	now           func() time.Time
}

// NewFetcher creates a fetcher. A nil fallback set disables substitution.
func NewFetcher(gw gateway.Gateway, qc *cache.QueryCache, st *store.Store, fallbacks *dashboard.FallbackSet, fallbackDelay time.Duration) *Fetcher {
	if fallbackDelay < 0 {
		fallbackDelay = 0
	}
	return &Fetcher{
		gateway:       gw,
		cache:         qc,
		store:         st,
		fallbacks:     fallbacks,
		fallbackDelay: fallbackDelay,
		now:           time.Now,
	}
}

// Fetch resolves one section. It never returns an error; failures are
// reported through the Result source.
func (f *Fetcher) Fetch(ctx context.Context, s Section) Result {
	scope := common.StartScope(ctx, "section.fetch", map[string]string{"section": s.ID()})
	defer scope.Finish()

	start := f.now()
	result := f.fetch(scope, s)
	result.SectionID = s.ID()
	result.FetchedAt = f.now()
	result.Duration = result.FetchedAt.Sub(start)

	scope.TraceTag("source", string(result.Source))
	if result.Err != nil {
		scope.TraceError(result.Err)
	}
	metrics.SectionFetchTotal.WithLabelValues(s.ID(), string(result.Source)).Inc()
	metrics.SectionFetchDuration.WithLabelValues(s.ID()).Observe(result.Duration.Seconds())

	return result
}

func (f *Fetcher) fetch(scope *common.Scope, s Section) Result {
	cfg := s.Config()
	opts := cache.Options{
		StaleTime:   cfg.GetStaleTime(),
		Retry:       cfg.GetRetry(),
		ShouldRetry: gateway.IsRetryable,
	}

	raw, err := f.cache.Fetch(scope.Ctx, s.CacheKey(), opts, func(ctx context.Context) ([]byte, error) {
		return s.Load(ctx, f.gateway)
	})
	if err == nil {
		data, applyErr := s.Apply(f.store, raw)
		if applyErr == nil {
			return Result{Source: SourceLive, Data: data}
		}
		// Do not keep serving an undecodable response.
		if rmErr := f.cache.Remove(scope.Ctx, s.CacheKey()); rmErr != nil {
			scope.Log.Warnf("failed to drop cached %s response: %v", s.ID(), rmErr)
		}
		err = applyErr
	}

	if scope.Ctx.Err() != nil {
		scope.Log.Debugf("section %s fetch cancelled: %v", s.ID(), err)
		return Result{Source: SourceError, Err: err}
	}
	if f.fallbacks == nil {
		scope.Log.Warnf("section %s failed with no fallback available: %v", s.ID(), err)
		return Result{Source: SourceError, Err: fmt.Errorf("%w: %v", ErrNoFallback, err)}
	}

	scope.Log.Warnf("section %s failed, substituting fallback data: %v", s.ID(), err)
	if f.fallbackDelay > 0 {
		timer := time.NewTimer(f.fallbackDelay)
		select {
		case <-timer.C:
		case <-scope.Ctx.Done():
			timer.Stop()
			return Result{Source: SourceError, Err: err}
		}
	}

	data := s.ApplyFallback(f.store, f.fallbacks)
	return Result{Source: SourceFallback, Data: data, Err: err}
}
