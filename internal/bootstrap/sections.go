// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package bootstrap

import (
	"fmt"
	"time"

	"github.com/AccelByte/extend-mission-control/pkg/cache"
	"github.com/AccelByte/extend-mission-control/pkg/dashboard"
	"github.com/AccelByte/extend-mission-control/pkg/gateway"
	"github.com/AccelByte/extend-mission-control/pkg/manifest"
	"github.com/AccelByte/extend-mission-control/pkg/section"
	"github.com/AccelByte/extend-mission-control/pkg/store"
	"github.com/sirupsen/logrus"

	// registers the builtin section types
	_ "github.com/AccelByte/extend-mission-control/pkg/section/builtin"
)

// InitSections creates the section registry from the manifest.
//
// ============================================================
// DEVELOPER: Register custom section types here.
// ============================================================
// A section owns one hub endpoint, one cache key and the store
// slices its response feeds.
//
// Steps to add a new section:
// 1. Create the section in pkg/section/builtin/ with section.NewTyped
// 2. Register the type in pkg/section/builtin/init.go
// 3. Add the section to config/sections.yaml
// ============================================================
func InitSections(m *manifest.Manifest) (*section.Registry, error) {
	registry := section.NewRegistry()
	if err := section.RegisterSections(registry, m.Sections); err != nil {
		return nil, fmt.Errorf("failed to register sections: %w", err)
	}

	logrus.Infof("registered %d sections (%d enabled)", registry.Count(), len(registry.GetAllEnabled()))
	return registry, nil
}

// InitFetcher creates the section fetcher. A non-empty fallbackPath overlays
// the builtin fallback dataset.
func InitFetcher(gw gateway.Gateway, qc *cache.QueryCache, st *store.Store, fallbackPath string, fallbackDelay time.Duration) (*section.Fetcher, error) {
	fallbacks := dashboard.DefaultFallbacks()
	if fallbackPath != "" {
		loaded, err := dashboard.LoadFallbacks(fallbackPath)
		if err != nil {
			return nil, err
		}
		fallbacks = loaded
		logrus.Infof("loaded fallback dataset from %s", fallbackPath)
	}

	return section.NewFetcher(gw, qc, st, fallbacks, fallbackDelay), nil
}
