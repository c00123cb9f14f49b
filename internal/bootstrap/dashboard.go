// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package bootstrap

import (
	"context"
	"fmt"

	"github.com/AccelByte/extend-mission-control/internal/config"
	"github.com/AccelByte/extend-mission-control/pkg/auth"
	"github.com/AccelByte/extend-mission-control/pkg/cache"
	"github.com/AccelByte/extend-mission-control/pkg/coordinator"
	"github.com/AccelByte/extend-mission-control/pkg/gateway"
	"github.com/AccelByte/extend-mission-control/pkg/manifest"
	"github.com/AccelByte/extend-mission-control/pkg/realtime"
	"github.com/AccelByte/extend-mission-control/pkg/store"
	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

// Dashboard holds every component of one mounted dashboard.
type Dashboard struct {
	Coordinator *coordinator.Coordinator
	Store       *store.Store
	Cache       *cache.QueryCache
	Health      *cache.HealthChecker
	Channel     *realtime.Channel
	RedisClient *redis.Client
}

// Close releases the Redis connection, if any.
func (d *Dashboard) Close() error {
	if d.RedisClient == nil {
		return nil
	}
	return d.RedisClient.Close()
}

// InitDashboard builds the dashboard components in dependency order. The
// returned dashboard is not mounted yet.
//
// ============================================================
// DEVELOPER: Component initialization order
// ============================================================
// 1. Manifest (config/sections.yaml)
// 2. Token source and hub gateway
// 3. Store and query cache
// 4. Sections and fetcher
// 5. Delta processor and realtime channel
// 6. Action executor
// 7. Wiring validation
// 8. Coordinator
// ============================================================
func InitDashboard(ctx context.Context, cfg *config.Config) (*Dashboard, error) {
	m, err := manifest.Load(cfg.ManifestPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load manifest from %s: %w", cfg.ManifestPath, err)
	}

	tokens := auth.NewTokenSource(cfg.AuthToken, cfg.AuthTokenFile)
	auth.LogTokenInfo(ctx, tokens)
	gw := gateway.NewClient(cfg.HubBaseURL, tokens, gateway.WithTimeout(cfg.RequestTimeout))

	st := store.New()
	qc, backend, redisClient, err := InitQueryCache(ctx, cfg)
	if err != nil {
		return nil, err
	}
	d := &Dashboard{
		Store:       st,
		Cache:       qc,
		Health:      cache.NewHealthChecker(backend),
		RedisClient: redisClient,
	}

	fail := func(err error) (*Dashboard, error) {
		if cerr := d.Close(); cerr != nil {
			logrus.Errorf("Redis close error: %v", cerr)
		}
		return nil, err
	}

	sections, err := InitSections(m)
	if err != nil {
		return fail(err)
	}
	fetcher, err := InitFetcher(gw, qc, st, cfg.FallbackPath, cfg.FallbackDelay)
	if err != nil {
		return fail(err)
	}

	processor := InitDeltaProcessor(st, qc, m)
	d.Channel, err = InitRealtimeChannel(cfg, tokens, processor.HandleMessage)
	if err != nil {
		return fail(err)
	}

	executor, actions, err := InitActionExecutor(m, gw, st, qc)
	if err != nil {
		return fail(err)
	}

	if err := manifest.ValidateWiring(sections, actions, processor.GetHandlerRegistry(), m); err != nil {
		return fail(fmt.Errorf("manifest wiring validation failed: %w", err))
	}
	logrus.Info("manifest wiring validation passed")

	opts := []coordinator.Option{
		coordinator.WithRefetchLimit(rate.Limit(cfg.RefetchRate), cfg.RefetchBurst),
	}
	if d.Channel != nil {
		opts = append(opts, coordinator.WithRealtime(d.Channel))
	}
	d.Coordinator = coordinator.New(sections, fetcher, qc, st, executor, opts...)

	return d, nil
}
