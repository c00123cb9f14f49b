// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package bootstrap

import (
	"github.com/AccelByte/extend-mission-control/pkg/delta"
	deltaBuiltin "github.com/AccelByte/extend-mission-control/pkg/delta/builtin"
	"github.com/AccelByte/extend-mission-control/pkg/manifest"
	"github.com/AccelByte/extend-mission-control/pkg/store"
	"github.com/sirupsen/logrus"
)

// InitDeltaProcessor creates the realtime delta processor with the builtin
// handlers and the manifest's route overrides.
//
// ============================================================
// DEVELOPER: Register custom delta handlers here.
// ============================================================
// A delta handler patches the store for one top-level key of a
// realtime message and names the sections it makes stale.
//
// To only change which sections a key invalidates, add a
// delta_routes entry to config/sections.yaml instead.
//
// Example:
// processor.GetHandlerRegistry().Register(
//     delta.NewHandler("badges", []string{dashboard.SectionMetrics}, nil))
// ============================================================
func InitDeltaProcessor(st *store.Store, invalidator delta.Invalidator, m *manifest.Manifest) *delta.Processor {
	processor := delta.NewProcessor(st, invalidator)
	deltaBuiltin.RegisterHandlers(processor)

	for _, route := range m.DeltaRoutes {
		processor.SetRoute(route.Key, route.Invalidates)
	}

	logrus.Infof("initialized delta processor with %d handlers and %d route overrides",
		processor.GetHandlerRegistry().Count(), len(m.DeltaRoutes))
	return processor
}
