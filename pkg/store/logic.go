// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package store

import (
	"math"

	"github.com/AccelByte/extend-mission-control/pkg/dashboard"
	"github.com/sirupsen/logrus"
)

// ClampScore bounds a score to [min, max].
func ClampScore(score, min, max int) int {
	if score < min {
		return min
	}
	if score > max {
		return max
	}
	return score
}

// ApplyScoreDelta adds delta to score and bounds the result to [min, max].
// Deltas of any magnitude saturate instead of overflowing.
func ApplyScoreDelta(score, delta, min, max int) int {
	score = ClampScore(score, min, max)
	if delta > 0 && delta > max-score {
		return max
	}
	if delta < 0 && delta < min-score {
		return min
	}
	return score + delta
}

// ApplyCounterDelta adds delta to a counter, flooring the result at zero and
// saturating at math.MaxInt.
func ApplyCounterDelta(current, delta int) int {
	if delta > 0 && current > math.MaxInt-delta {
		return math.MaxInt
	}
	if delta < 0 && current < math.MinInt-delta {
		return 0
	}
	next := current + delta
	if next < 0 {
		logrus.Debugf("counter delta %d would take %d below zero, flooring at 0", delta, current)
		return 0
	}
	return next
}

// TrendFromDelta maps the sign of a readiness delta to a trend direction.
func TrendFromDelta(delta int) string {
	switch {
	case delta > 0:
		return dashboard.TrendUp
	case delta < 0:
		return dashboard.TrendDown
	default:
		return dashboard.TrendStable
	}
}

// ApplyHabitLog returns the habit as it looks after the student logs it.
// The streak only advances on the first completion of the day.
func ApplyHabitLog(habit dashboard.HabitStatus, completed bool) dashboard.HabitStatus {
	if completed && !(habit.Completed && habit.TodayLogged) {
		habit.Streak++
	}
	if !completed && habit.Completed && habit.TodayLogged && habit.Streak > 0 {
		habit.Streak--
	}
	habit.Completed = completed
	habit.TodayLogged = true
	return habit
}

// portfolioPercentage derives the approved share of a portfolio.
func portfolioPercentage(p dashboard.PortfolioMetrics) float64 {
	if p.Total <= 0 {
		return 0
	}
	return float64(p.Approved) / float64(p.Total) * 100
}
