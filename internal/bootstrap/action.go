// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package bootstrap

import (
	"fmt"

	"github.com/AccelByte/extend-mission-control/pkg/action"
	"github.com/AccelByte/extend-mission-control/pkg/gateway"
	"github.com/AccelByte/extend-mission-control/pkg/manifest"
	"github.com/AccelByte/extend-mission-control/pkg/store"
	"github.com/sirupsen/logrus"

	// registers the builtin action types
	_ "github.com/AccelByte/extend-mission-control/pkg/action/builtin"
)

// InitActionExecutor creates the mutation executor with the actions from the
// manifest.
//
// ============================================================
// DEVELOPER: Register custom action types here.
// ============================================================
// Actions are user mutations posted to the hub. Each applies an
// optimistic store update when the hub fails and invalidates the
// sections its result touches.
//
// Steps to add a new action:
// 1. Create your action in pkg/action/builtin/
// 2. Implement the Action interface
// 3. Register the action type in pkg/action/builtin/init.go
// 4. Add the action to config/sections.yaml
// ============================================================
func InitActionExecutor(m *manifest.Manifest, gw gateway.Gateway, st *store.Store, invalidator action.Invalidator) (*action.Executor, *action.Registry, error) {
	registry := action.NewRegistry()
	if err := action.RegisterActions(registry, m.Actions); err != nil {
		return nil, nil, fmt.Errorf("failed to register actions: %w", err)
	}

	logrus.Infof("registered %d actions", registry.Count())

	executor := action.NewExecutor(registry, gw, st, invalidator)
	logrus.Infof("initialized action executor")

	return executor, registry, nil
}
