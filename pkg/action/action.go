// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

// Package action runs dashboard mutations against the hub and reconciles the
// store with the result.
package action

import (
	"context"

	"github.com/AccelByte/extend-mission-control/pkg/gateway"
	"github.com/AccelByte/extend-mission-control/pkg/store"
)

// Request identifies the target of a mutation and carries its payload.
type Request struct {
	// TargetID is the habit or event ID.
	TargetID string `json:"targetId"`
	// Completed is used by habit logs.
	Completed bool `json:"completed"`
	// Status is used by event RSVPs.
	Status string `json:"status,omitempty"`
}

// Action is one kind of mutation.
// Actions are registered in a Registry and executed by the Executor.
type Action interface {
	// ID returns unique action identifier.
	ID() string

	// Name returns human-readable action name.
	Name() string

	// Validate rejects a request before anything is sent.
	Validate(req Request) error

	// Execute sends the mutation and returns the raw server response.
	Execute(ctx context.Context, gw gateway.Gateway, req Request) ([]byte, error)

	// Confirm patches the store from a successful server response.
	Confirm(st *store.Store, req Request, resp []byte) error

	// Optimistic applies the local patch used when the server call fails.
	Optimistic(st *store.Store, req Request)

	// Invalidates returns the section IDs refetched after the mutation.
	Invalidates() []string

	// Config returns the action's configuration.
	Config() ActionConfig
}

// Outcome tells how a mutation reached the store.
type Outcome string

const (
	// OutcomeConfirmed means the hub accepted the mutation.
	OutcomeConfirmed Outcome = "confirmed"
	// OutcomeOptimistic means the hub call failed and only the local
	// patch was applied. The next fetch of the owning section reconciles.
	OutcomeOptimistic Outcome = "optimistic"
	// OutcomeFailed means the hub call failed and the action is configured
	// with optimistic: false, so the store was not touched.
	OutcomeFailed Outcome = "failed"
)

// ParamOptimistic is the action parameter switching the local patch on hub
// failure. It defaults to true.
const ParamOptimistic = "optimistic"

// ActionResult represents the outcome of an action execution.
type ActionResult struct {
	ActionID    string
	Outcome     Outcome
	Error       error
	Invalidated []string
	Metadata    map[string]interface{}
}

// NewActionResult creates a confirmed action result.
func NewActionResult(actionID string) *ActionResult {
	return &ActionResult{
		ActionID: actionID,
		Outcome:  OutcomeConfirmed,
		Metadata: make(map[string]interface{}),
	}
}

// NewActionError creates an optimistic action result with the server error.
func NewActionError(actionID string, err error) *ActionResult {
	return &ActionResult{
		ActionID: actionID,
		Outcome:  OutcomeOptimistic,
		Error:    err,
		Metadata: make(map[string]interface{}),
	}
}

// WithMetadata adds metadata to the result and returns it for chaining.
func (r *ActionResult) WithMetadata(key string, value interface{}) *ActionResult {
	r.Metadata[key] = value
	return r
}

// Confirmed reports whether the hub accepted the mutation.
func (r *ActionResult) Confirmed() bool {
	return r.Outcome == OutcomeConfirmed
}
