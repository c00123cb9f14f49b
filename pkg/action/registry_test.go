// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package action

import (
	"testing"
)

func TestNewRegistry(t *testing.T) {
	registry := NewRegistry()

	if registry.Count() != 0 {
		t.Errorf("Expected empty registry, got count %d", registry.Count())
	}
}

func TestRegistry_Register(t *testing.T) {
	registry := NewRegistry()
	action := &testAction{id: "test_action", config: ActionConfig{ID: "test_action", Enabled: true}}

	if err := registry.Register(action); err != nil {
		t.Fatalf("Failed to register action: %v", err)
	}

	if registry.Count() != 1 {
		t.Errorf("Expected count 1, got %d", registry.Count())
	}

	// Try to register same action again
	if err := registry.Register(action); err == nil {
		t.Error("Expected error when registering duplicate action")
	}
}

func TestRegistry_Get(t *testing.T) {
	registry := NewRegistry()
	registry.Register(&testAction{id: "b"})
	registry.Register(&testAction{id: "a"})

	if registry.Get("a") == nil {
		t.Error("Expected to find action a")
	}
	if registry.Get("missing") != nil {
		t.Error("Expected nil for missing action")
	}

	ids := registry.IDs()
	if len(ids) != 2 || ids[0] != "a" || ids[1] != "b" {
		t.Errorf("Expected sorted ids [a b], got %v", ids)
	}

}

func TestRegistry_Disabled(t *testing.T) {
	registry := NewRegistry()
	registry.MarkDisabled("rsvp_event")

	if !registry.IsDisabled("rsvp_event") {
		t.Error("Expected rsvp_event to be disabled")
	}
	if registry.Get("rsvp_event") != nil {
		t.Error("Expected no action for a disabled ID")
	}
	if err := registry.Register(&testAction{id: "rsvp_event"}); err == nil {
		t.Error("Expected error when registering a disabled ID")
	}
	if registry.Count() != 0 {
		t.Errorf("Expected count 0, got %d", registry.Count())
	}

	registry.Register(&testAction{id: "log_habit"})
	registry.MarkDisabled("log_habit")
	if registry.IsDisabled("log_habit") {
		t.Error("Expected enabled action to stay enabled")
	}
}

func TestActionConfig_GetInvalidates(t *testing.T) {
	cfg := ActionConfig{}
	got := cfg.GetInvalidates([]string{"habits"})
	if len(got) != 1 || got[0] != "habits" {
		t.Errorf("Expected defaults, got %v", got)
	}

	cfg.Invalidates = []string{"events", "metrics"}
	got = cfg.GetInvalidates([]string{"habits"})
	if len(got) != 2 || got[0] != "events" {
		t.Errorf("Expected configured sections, got %v", got)
	}
}
