// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package action

import (
	"context"
	"fmt"

	"github.com/AccelByte/extend-mission-control/pkg/common"
	"github.com/AccelByte/extend-mission-control/pkg/dashboard"
	"github.com/AccelByte/extend-mission-control/pkg/gateway"
	"github.com/AccelByte/extend-mission-control/pkg/metrics"
	"github.com/AccelByte/extend-mission-control/pkg/store"
)

// Invalidator marks cache keys stale.
type Invalidator interface {
	Invalidate(keys ...string)
}

// Executor executes mutations and reconciles the store with their result.
type Executor struct {
	registry    *Registry
	gateway     gateway.Gateway
	store       *store.Store
	invalidator Invalidator
}

// NewExecutor creates a new action executor.
func NewExecutor(registry *Registry, gw gateway.Gateway, st *store.Store, invalidator Invalidator) *Executor {
	return &Executor{
		registry:    registry,
		gateway:     gw,
		store:       st,
		invalidator: invalidator,
	}
}

// Execute runs one mutation.
//
// A hub failure is not returned as an error: the optimistic patch is applied
// and the result carries the failure with OutcomeOptimistic. Errors are
// returned only for unknown or disabled actions and invalid requests, which leave the
// store untouched.
func (e *Executor) Execute(ctx context.Context, actionID string, req Request) (*ActionResult, error) {
	action := e.registry.Get(actionID)
	if action == nil {
		if e.registry.IsDisabled(actionID) {
			return nil, fmt.Errorf("%w: %s", ErrActionDisabled, actionID)
		}
		return nil, fmt.Errorf("%w: %s", ErrActionNotFound, actionID)
	}
	if err := action.Validate(req); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidRequest, actionID, err)
	}

	scope := common.StartScope(ctx, "action.execute", map[string]string{
		"action": actionID,
		"target": req.TargetID,
	})
	defer scope.Finish()

	scope.Log.Infof("executing action %s on %s", actionID, req.TargetID)

	var result *ActionResult
	resp, err := action.Execute(scope.Ctx, e.gateway, req)
	if err != nil {
		scope.TraceError(err)
		result = NewActionError(actionID, err)
		cfg := action.Config()
		if cfg.GetParameterBool(ParamOptimistic, true) {
			scope.Log.Warnf("action %s failed, applying optimistic update: %v", actionID, err)
			action.Optimistic(e.store, req)
		} else {
			scope.Log.Warnf("action %s failed: %v", actionID, err)
			result.Outcome = OutcomeFailed
		}
	} else {
		if cerr := action.Confirm(e.store, req, resp); cerr != nil {
			scope.Log.Warnf("action %s response not applied, using local patch: %v", actionID, cerr)
			action.Optimistic(e.store, req)
			result = NewActionResult(actionID).WithMetadata("confirm_error", cerr.Error())
		} else {
			result = NewActionResult(actionID)
		}
		scope.Log.Infof("action %s completed successfully", actionID)
	}

	result.Invalidated = e.invalidate(action.Invalidates())
	metrics.MutationsTotal.WithLabelValues(actionID, string(result.Outcome)).Inc()

	return result, nil
}

func (e *Executor) invalidate(sectionIDs []string) []string {
	if len(sectionIDs) == 0 {
		return nil
	}
	keys := make([]string, 0, len(sectionIDs))
	for _, id := range sectionIDs {
		keys = append(keys, dashboard.CacheKey(id))
	}
	if e.invalidator != nil {
		e.invalidator.Invalidate(keys...)
	}
	return keys
}

// GetRegistry returns the action registry used by this executor.
func (e *Executor) GetRegistry() *Registry {
	return e.registry
}
