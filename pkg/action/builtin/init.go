// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package builtin

import (
	"github.com/AccelByte/extend-mission-control/pkg/action"
	"github.com/go-playground/validator/v10"
)

// Action types provided by this package.
const (
	TypeLogHabit  = "builtin.log_habit"
	TypeRSVPEvent = "builtin.rsvp_event"
)

// Action IDs used by the default configuration.
const (
	LogHabitActionID  = "log_habit"
	RSVPEventActionID = "rsvp_event"
)

var validate = validator.New()

// init registers all built-in action types with the factory
func init() {
	action.RegisterActionType(TypeLogHabit, func(config action.ActionConfig) (action.Action, error) {
		return NewLogHabitAction(config), nil
	})
	action.RegisterActionType(TypeRSVPEvent, func(config action.ActionConfig) (action.Action, error) {
		return NewRSVPEventAction(config), nil
	})
}

// DefaultConfigs returns both dashboard mutations, used when no manifest is
// present.
func DefaultConfigs() []action.ActionConfig {
	return []action.ActionConfig{
		{ID: LogHabitActionID, Name: "Log Habit", Type: TypeLogHabit, Enabled: true},
		{ID: RSVPEventActionID, Name: "RSVP To Event", Type: TypeRSVPEvent, Enabled: true},
	}
}
