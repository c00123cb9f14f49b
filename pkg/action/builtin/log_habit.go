// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package builtin

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/AccelByte/extend-mission-control/pkg/action"
	"github.com/AccelByte/extend-mission-control/pkg/dashboard"
	"github.com/AccelByte/extend-mission-control/pkg/gateway"
	"github.com/AccelByte/extend-mission-control/pkg/store"
	"github.com/sirupsen/logrus"
)

// LogHabitAction records today's completion of one habit.
type LogHabitAction struct {
	config      action.ActionConfig
	invalidates []string
}

// NewLogHabitAction creates a new log habit action.
func NewLogHabitAction(config action.ActionConfig) *LogHabitAction {
	invalidates := config.GetInvalidates([]string{dashboard.SectionHabits})
	logrus.Debugf("creating log habit action: invalidates=%v", invalidates)

	return &LogHabitAction{
		config:      config,
		invalidates: invalidates,
	}
}

// ID returns the action identifier.
func (a *LogHabitAction) ID() string {
	return a.config.ID
}

// Name returns the action name.
func (a *LogHabitAction) Name() string {
	return "Log Habit"
}

// Config returns the action configuration.
func (a *LogHabitAction) Config() action.ActionConfig {
	return a.config
}

func (a *LogHabitAction) Invalidates() []string {
	return a.invalidates
}

func (a *LogHabitAction) Validate(req action.Request) error {
	return validate.Var(req.TargetID, "required")
}

// Execute posts the habit log.
func (a *LogHabitAction) Execute(ctx context.Context, gw gateway.Gateway, req action.Request) ([]byte, error) {
	resp, err := gw.Post(ctx, gateway.HabitLogPath(req.TargetID), gateway.HabitLogRequest{Completed: req.Completed})
	if err != nil {
		return nil, fmt.Errorf("failed to log habit %s: %w", req.TargetID, err)
	}
	return resp, nil
}

// Confirm stores the habit returned by the hub. An empty body falls back to
// the local patch.
func (a *LogHabitAction) Confirm(st *store.Store, req action.Request, resp []byte) error {
	if len(resp) == 0 || string(resp) == "null" {
		st.LogHabit(req.TargetID, req.Completed)
		return nil
	}

	var habit dashboard.HabitStatus
	if err := json.Unmarshal(resp, &habit); err != nil {
		return fmt.Errorf("failed to decode habit response: %w", err)
	}
	if habit.ID == "" {
		st.LogHabit(req.TargetID, req.Completed)
		return nil
	}
	st.PatchHabit(habit)
	return nil
}

// Optimistic marks the habit as logged locally.
func (a *LogHabitAction) Optimistic(st *store.Store, req action.Request) {
	st.LogHabit(req.TargetID, req.Completed)
}
