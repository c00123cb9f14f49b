// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package store

import (
	"math"
	"testing"

	"github.com/AccelByte/extend-mission-control/pkg/dashboard"
)

func TestClampScore(t *testing.T) {
	tests := []struct {
		name     string
		score    int
		expected int
	}{
		{name: "within bounds", score: 42, expected: 42},
		{name: "above max", score: 145, expected: 100},
		{name: "below min", score: -20, expected: 0},
		{name: "exactly max", score: 100, expected: 100},
		{name: "exactly min", score: 0, expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClampScore(tt.score, 0, 100); got != tt.expected {
				t.Errorf("ClampScore(%d) = %d, expected %d", tt.score, got, tt.expected)
			}
		})
	}
}

func TestApplyCounterDelta(t *testing.T) {
	tests := []struct {
		name     string
		current  int
		delta    int
		expected int
	}{
		{name: "positive delta", current: 10, delta: 5, expected: 15},
		{name: "negative delta within range", current: 10, delta: -4, expected: 6},
		{name: "negative delta floors at zero", current: 10, delta: -50, expected: 0},
		{name: "zero delta", current: 7, delta: 0, expected: 7},
		{name: "max delta saturates", current: 10, delta: math.MaxInt, expected: math.MaxInt},
		{name: "min delta floors at zero", current: 10, delta: math.MinInt, expected: 0},
		{name: "negative current with min delta", current: -5, delta: math.MinInt, expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ApplyCounterDelta(tt.current, tt.delta); got != tt.expected {
				t.Errorf("ApplyCounterDelta(%d, %d) = %d, expected %d", tt.current, tt.delta, got, tt.expected)
			}
		})
	}
}

func TestApplyScoreDelta(t *testing.T) {
	tests := []struct {
		name     string
		score    int
		delta    int
		expected int
	}{
		{name: "within bounds", score: 40, delta: 15, expected: 55},
		{name: "clamps to max", score: 95, delta: 50, expected: 100},
		{name: "clamps to min", score: 10, delta: -30, expected: 0},
		{name: "max int delta", score: 95, delta: math.MaxInt, expected: 100},
		{name: "min int delta", score: 95, delta: math.MinInt, expected: 0},
		{name: "out of range score is clamped first", score: 250, delta: -10, expected: 90},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ApplyScoreDelta(tt.score, tt.delta, 0, 100); got != tt.expected {
				t.Errorf("ApplyScoreDelta(%d, %d) = %d, expected %d", tt.score, tt.delta, got, tt.expected)
			}
		})
	}
}

func TestTrendFromDelta(t *testing.T) {
	if got := TrendFromDelta(3); got != dashboard.TrendUp {
		t.Errorf("TrendFromDelta(3) = %s, expected %s", got, dashboard.TrendUp)
	}
	if got := TrendFromDelta(-1); got != dashboard.TrendDown {
		t.Errorf("TrendFromDelta(-1) = %s, expected %s", got, dashboard.TrendDown)
	}
	if got := TrendFromDelta(0); got != dashboard.TrendStable {
		t.Errorf("TrendFromDelta(0) = %s, expected %s", got, dashboard.TrendStable)
	}
}

func TestApplyHabitLog(t *testing.T) {
	tests := []struct {
		name           string
		habit          dashboard.HabitStatus
		completed      bool
		expectedStreak int
	}{
		{
			name:           "first completion today advances streak",
			habit:          dashboard.HabitStatus{ID: "learn", Streak: 3},
			completed:      true,
			expectedStreak: 4,
		},
		{
			name:           "second completion today keeps streak",
			habit:          dashboard.HabitStatus{ID: "learn", Streak: 4, Completed: true, TodayLogged: true},
			completed:      true,
			expectedStreak: 4,
		},
		{
			name:           "uncompleting today's log rolls streak back",
			habit:          dashboard.HabitStatus{ID: "learn", Streak: 4, Completed: true, TodayLogged: true},
			completed:      false,
			expectedStreak: 3,
		},
		{
			name:           "logging not completed on a fresh day keeps streak",
			habit:          dashboard.HabitStatus{ID: "learn", Streak: 2},
			completed:      false,
			expectedStreak: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ApplyHabitLog(tt.habit, tt.completed)
			if got.Streak != tt.expectedStreak {
				t.Errorf("Streak = %d, expected %d", got.Streak, tt.expectedStreak)
			}
			if got.Completed != tt.completed {
				t.Errorf("Completed = %v, expected %v", got.Completed, tt.completed)
			}
			if !got.TodayLogged {
				t.Error("TodayLogged should be true after logging")
			}
		})
	}
}
