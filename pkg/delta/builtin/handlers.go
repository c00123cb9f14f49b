// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package builtin

import (
	"encoding/json"

	"github.com/AccelByte/extend-mission-control/pkg/dashboard"
	"github.com/AccelByte/extend-mission-control/pkg/delta"
	"github.com/AccelByte/extend-mission-control/pkg/store"
)

// Delta keys pushed by the hub.
const (
	KeyPoints           = "points"
	KeyReadiness        = "readiness"
	KeyNewEvents        = "new_events"
	KeyMissionsInReview = "missions_in_review"
	KeyHabitStreak      = "habit_streak"
)

// NewPointsHandler applies a points delta to both point counters.
func NewPointsHandler() delta.Handler {
	return delta.NewHandler(KeyPoints,
		[]string{dashboard.SectionMetrics, dashboard.SectionLeaderboard},
		func(st *store.Store, value json.RawMessage) error {
			n, err := delta.DecodeInt(value)
			if err != nil {
				return err
			}
			st.UpdatePoints(n)
			return nil
		})
}

// NewReadinessHandler applies a bounded readiness delta.
func NewReadinessHandler() delta.Handler {
	return delta.NewHandler(KeyReadiness,
		[]string{dashboard.SectionOverview},
		func(st *store.Store, value json.RawMessage) error {
			n, err := delta.DecodeInt(value)
			if err != nil {
				return err
			}
			st.UpdateReadiness(n)
			return nil
		})
}

// NewEventsHandler only refetches the event list; the value is a count or
// a list the store cannot merge.
func NewEventsHandler() delta.Handler {
	return delta.NewHandler(KeyNewEvents, []string{dashboard.SectionEvents}, nil)
}

// NewMissionsInReviewHandler sets the quick stats review count.
func NewMissionsInReviewHandler() delta.Handler {
	return delta.NewHandler(KeyMissionsInReview,
		[]string{dashboard.SectionMetrics},
		func(st *store.Store, value json.RawMessage) error {
			n, err := delta.DecodeInt(value)
			if err != nil {
				return err
			}
			st.SetMissionsInReview(n)
			return nil
		})
}

// NewHabitStreakHandler refetches habits. No store field carries the
// aggregate streak.
func NewHabitStreakHandler() delta.Handler {
	return delta.NewHandler(KeyHabitStreak, []string{dashboard.SectionHabits}, nil)
}

// RegisterHandlers registers every builtin handler with the processor.
func RegisterHandlers(p *delta.Processor) {
	registry := p.GetHandlerRegistry()
	registry.Register(NewPointsHandler())
	registry.Register(NewReadinessHandler())
	registry.Register(NewEventsHandler())
	registry.Register(NewMissionsInReviewHandler())
	registry.Register(NewHabitStreakHandler())
}
