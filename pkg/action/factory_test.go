// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package action_test

import (
	"errors"
	"testing"

	"github.com/AccelByte/extend-mission-control/pkg/action"
	actionBuiltin "github.com/AccelByte/extend-mission-control/pkg/action/builtin"
)

func TestCreateAction_LogHabit(t *testing.T) {
	config := action.ActionConfig{
		ID:      "test_log",
		Type:    actionBuiltin.TypeLogHabit,
		Enabled: true,
	}

	act, err := action.CreateAction(config)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if act == nil {
		t.Fatal("Expected non-nil action")
	}

	if act.ID() != config.ID {
		t.Errorf("Expected action ID '%s', got '%s'", config.ID, act.ID())
	}

	if act.Name() != "Log Habit" {
		t.Errorf("Expected action name 'Log Habit', got '%s'", act.Name())
	}
}

func TestCreateAction_Disabled(t *testing.T) {
	config := action.ActionConfig{
		ID:      "disabled_action",
		Type:    actionBuiltin.TypeRSVPEvent,
		Enabled: false,
	}

	act, err := action.CreateAction(config)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if act != nil {
		t.Error("Expected nil action for disabled config")
	}
}

func TestCreateAction_UnknownType(t *testing.T) {
	config := action.ActionConfig{
		ID:      "unknown",
		Type:    "builtin.teleport",
		Enabled: true,
	}

	_, err := action.CreateAction(config)
	if !errors.Is(err, action.ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig, got %v", err)
	}
}

func TestRegisterActions(t *testing.T) {
	registry := action.NewRegistry()
	configs := append(actionBuiltin.DefaultConfigs(), action.ActionConfig{ID: "bad", Type: "nope", Enabled: true})

	if err := action.RegisterActions(registry, configs); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if registry.Count() != 2 {
		t.Errorf("Expected 2 registered actions, got %d", registry.Count())
	}
	if !action.IsRegisteredType(actionBuiltin.TypeLogHabit) {
		t.Error("Expected log habit type to be registered")
	}
}
