// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package action

import (
	"context"
	"errors"
	"sort"
	"testing"

	"github.com/AccelByte/extend-mission-control/pkg/dashboard"
	"github.com/AccelByte/extend-mission-control/pkg/gateway"
	"github.com/AccelByte/extend-mission-control/pkg/gateway/mock"
	"github.com/AccelByte/extend-mission-control/pkg/store"
)

// testAction is a simple action for testing
type testAction struct {
	id              string
	config          ActionConfig
	invalidates     []string
	validateErr     error
	executeErr      error
	confirmErr      error
	executeCalled   bool
	confirmCalled   bool
	optimisticCalls int
}

func (a *testAction) ID() string             { return a.id }
func (a *testAction) Name() string           { return "Test Action" }
func (a *testAction) Config() ActionConfig   { return a.config }
func (a *testAction) Invalidates() []string  { return a.invalidates }
func (a *testAction) Validate(Request) error { return a.validateErr }

func (a *testAction) Execute(ctx context.Context, gw gateway.Gateway, req Request) ([]byte, error) {
	a.executeCalled = true
	if a.executeErr != nil {
		return nil, a.executeErr
	}
	return []byte(`{}`), nil
}

func (a *testAction) Confirm(st *store.Store, req Request, resp []byte) error {
	a.confirmCalled = true
	return a.confirmErr
}

func (a *testAction) Optimistic(st *store.Store, req Request) {
	a.optimisticCalls++
}

type recordingInvalidator struct {
	keys []string
}

func (r *recordingInvalidator) Invalidate(keys ...string) {
	r.keys = append(r.keys, keys...)
}

func newTestExecutor(actions ...Action) (*Executor, *recordingInvalidator) {
	registry := NewRegistry()
	for _, a := range actions {
		registry.Register(a)
	}
	inv := &recordingInvalidator{}
	return NewExecutor(registry, mock.NewGateway(), store.New(), inv), inv
}

func TestNewExecutor(t *testing.T) {
	registry := NewRegistry()
	executor := NewExecutor(registry, mock.NewGateway(), store.New(), nil)

	if executor.GetRegistry() != registry {
		t.Error("Expected executor to use provided registry")
	}
}

func TestExecutor_Execute_Confirmed(t *testing.T) {
	action := &testAction{
		id:          "test_action",
		config:      ActionConfig{ID: "test_action", Enabled: true},
		invalidates: []string{dashboard.SectionHabits},
	}
	executor, inv := newTestExecutor(action)

	result, err := executor.Execute(context.Background(), "test_action", Request{TargetID: "learn"})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if !result.Confirmed() {
		t.Errorf("Expected confirmed outcome, got %s", result.Outcome)
	}
	if !action.executeCalled || !action.confirmCalled {
		t.Error("Expected Execute and Confirm to be called")
	}
	if action.optimisticCalls != 0 {
		t.Error("Did not expect an optimistic patch")
	}
	if len(inv.keys) != 1 || inv.keys[0] != dashboard.CacheKey(dashboard.SectionHabits) {
		t.Errorf("Expected habits to be invalidated, got %v", inv.keys)
	}
}

func TestExecutor_Execute_ActionNotFound(t *testing.T) {
	executor, inv := newTestExecutor()

	result, err := executor.Execute(context.Background(), "nonexistent_action", Request{})
	if !errors.Is(err, ErrActionNotFound) {
		t.Errorf("Expected ErrActionNotFound, got %v", err)
	}
	if result != nil {
		t.Error("Expected nil result for nonexistent action")
	}
	if len(inv.keys) != 0 {
		t.Error("Did not expect invalidation")
	}
}

func TestExecutor_Execute_ActionDisabled(t *testing.T) {
	executor, _ := newTestExecutor()
	executor.GetRegistry().MarkDisabled("rsvp_event")

	_, err := executor.Execute(context.Background(), "rsvp_event", Request{TargetID: "e1"})
	if !errors.Is(err, ErrActionDisabled) {
		t.Errorf("Expected ErrActionDisabled, got %v", err)
	}
}

func TestExecutor_Execute_InvalidRequest(t *testing.T) {
	action := &testAction{id: "test_action", validateErr: errors.New("missing id")}
	executor, _ := newTestExecutor(action)

	_, err := executor.Execute(context.Background(), "test_action", Request{})
	if !errors.Is(err, ErrInvalidRequest) {
		t.Errorf("Expected ErrInvalidRequest, got %v", err)
	}
	if action.executeCalled || action.optimisticCalls != 0 {
		t.Error("Invalid requests must not reach the hub or the store")
	}
}

func TestExecutor_Execute_FailureIsOptimistic(t *testing.T) {
	expectedError := errors.New("hub unreachable")
	action := &testAction{
		id:          "failing_action",
		executeErr:  expectedError,
		invalidates: []string{dashboard.SectionEvents, dashboard.SectionMetrics},
	}
	executor, inv := newTestExecutor(action)

	result, err := executor.Execute(context.Background(), "failing_action", Request{TargetID: "e1"})
	if err != nil {
		t.Fatalf("Hub failures are reported in the result, got error %v", err)
	}

	if result.Outcome != OutcomeOptimistic {
		t.Errorf("Expected optimistic outcome, got %s", result.Outcome)
	}
	if !errors.Is(result.Error, expectedError) {
		t.Errorf("Expected error %v, got %v", expectedError, result.Error)
	}
	if action.optimisticCalls != 1 {
		t.Errorf("Expected one optimistic patch, got %d", action.optimisticCalls)
	}

	sort.Strings(inv.keys)
	want := []string{dashboard.CacheKey(dashboard.SectionEvents), dashboard.CacheKey(dashboard.SectionMetrics)}
	if len(inv.keys) != 2 || inv.keys[0] != want[0] || inv.keys[1] != want[1] {
		t.Errorf("Expected %v to be invalidated, got %v", want, inv.keys)
	}
}

func TestExecutor_Execute_UndecodableResponse(t *testing.T) {
	action := &testAction{id: "test_action", confirmErr: errors.New("bad json")}
	executor, _ := newTestExecutor(action)

	result, err := executor.Execute(context.Background(), "test_action", Request{TargetID: "x"})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !result.Confirmed() {
		t.Error("The hub accepted the mutation, expected confirmed")
	}
	if action.optimisticCalls != 1 {
		t.Error("Expected the local patch to stand in for the response")
	}
	if result.Metadata["confirm_error"] != "bad json" {
		t.Errorf("Expected confirm_error metadata, got %v", result.Metadata)
	}
}
