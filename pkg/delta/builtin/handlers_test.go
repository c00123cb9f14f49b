// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package builtin

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/AccelByte/extend-mission-control/pkg/cache"
	"github.com/AccelByte/extend-mission-control/pkg/dashboard"
	"github.com/AccelByte/extend-mission-control/pkg/delta"
	"github.com/AccelByte/extend-mission-control/pkg/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProcessor(t *testing.T) (*delta.Processor, *store.Store, *cache.QueryCache) {
	t.Helper()
	backend, err := cache.NewMemoryBackend(16)
	require.NoError(t, err)
	qc := cache.New(backend)
	st := store.New()
	p := delta.NewProcessor(st, qc)
	RegisterHandlers(p)
	return p, st, qc
}

func TestHabitStreak_InvalidatesHabits(t *testing.T) {
	p, st, qc := newProcessor(t)
	before := st.Snapshot()

	outcome, err := p.Process([]byte(`{"habit_streak": 5}`))
	require.NoError(t, err)

	habitsKey := dashboard.CacheKey(dashboard.SectionHabits)
	assert.True(t, qc.IsInvalidated(habitsKey))
	assert.True(t, qc.IsStale(context.Background(), habitsKey, time.Hour))
	assert.Equal(t, []string{habitsKey}, outcome.Invalidated)
	assert.Equal(t, before, st.Snapshot(), "habit_streak must not patch the store")
}

func TestPoints_PatchesAndInvalidates(t *testing.T) {
	p, st, qc := newProcessor(t)
	st.SetGamification(dashboard.GamificationData{Points: 100})
	st.SetQuickStats(dashboard.QuickStats{Points: 100})

	_, err := p.Process([]byte(`{"points": 25}`))
	require.NoError(t, err)

	snap := st.Snapshot()
	assert.Equal(t, 125, snap.Gamification.Points)
	assert.Equal(t, 125, snap.QuickStats.Points)
	assert.True(t, qc.IsInvalidated(dashboard.CacheKey(dashboard.SectionMetrics)))
	assert.True(t, qc.IsInvalidated(dashboard.CacheKey(dashboard.SectionLeaderboard)))
}

func TestReadiness_Clamped(t *testing.T) {
	p, st, qc := newProcessor(t)
	st.SetReadiness(dashboard.ReadinessData{Score: 95, MaxScore: 100})

	_, err := p.Process([]byte(`{"readiness": 50}`))
	require.NoError(t, err)

	assert.Equal(t, 100, st.Snapshot().Readiness.Score)
	assert.True(t, qc.IsInvalidated(dashboard.CacheKey(dashboard.SectionOverview)))
}

func TestBoundedDeltas_ExtremeMagnitudes(t *testing.T) {
	tests := []struct {
		name              string
		message           string
		expectedReadiness int
		expectedPoints    int
	}{
		{name: "huge readiness", message: `{"readiness": 1e20}`, expectedReadiness: 100, expectedPoints: 10},
		{name: "max int readiness", message: `{"readiness": 9223372036854775807}`, expectedReadiness: 100, expectedPoints: 10},
		{name: "huge negative readiness", message: `{"readiness": -1e20}`, expectedReadiness: 0, expectedPoints: 10},
		{name: "huge points", message: `{"points": 1e20}`, expectedReadiness: 95, expectedPoints: 10 + math.MaxInt32},
		{name: "huge negative points", message: `{"points": -1e20}`, expectedReadiness: 95, expectedPoints: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, st, _ := newProcessor(t)
			st.SetReadiness(dashboard.ReadinessData{Score: 95, MaxScore: 100})
			st.SetQuickStats(dashboard.QuickStats{Readiness: 95, Points: 10})
			st.SetGamification(dashboard.GamificationData{Points: 10})

			_, err := p.Process([]byte(tt.message))
			require.NoError(t, err)

			snap := st.Snapshot()
			assert.Equal(t, tt.expectedReadiness, snap.Readiness.Score)
			assert.Equal(t, tt.expectedReadiness, snap.QuickStats.Readiness)
			assert.Equal(t, tt.expectedPoints, snap.Gamification.Points)
			assert.Equal(t, tt.expectedPoints, snap.QuickStats.Points)
		})
	}
}

func TestMultipleKeys(t *testing.T) {
	p, st, qc := newProcessor(t)

	outcome, err := p.Process([]byte(`{"missions_in_review": 3, "new_events": [{"id":"e1"}], "points": -10, "mystery": true}`))
	require.NoError(t, err)

	assert.Equal(t, []string{KeyMissionsInReview, KeyNewEvents, KeyPoints}, outcome.Applied)
	assert.Equal(t, []string{"mystery"}, outcome.Ignored)
	assert.Equal(t, 3, st.Snapshot().QuickStats.MissionsInReview)
	assert.Equal(t, 0, st.Snapshot().Gamification.Points)
	assert.True(t, qc.IsInvalidated(dashboard.CacheKey(dashboard.SectionEvents)))

	// metrics is named by two keys but invalidated once
	count := 0
	for _, k := range outcome.Invalidated {
		if k == dashboard.CacheKey(dashboard.SectionMetrics) {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestBadValueStillInvalidates(t *testing.T) {
	p, st, qc := newProcessor(t)

	outcome, err := p.Process([]byte(`{"points": "lots"}`))
	require.NoError(t, err)

	assert.Equal(t, []string{KeyPoints}, outcome.Failed)
	assert.Equal(t, 0, st.Snapshot().Gamification.Points)
	assert.True(t, qc.IsInvalidated(dashboard.CacheKey(dashboard.SectionMetrics)))
}

func TestMalformedMessage(t *testing.T) {
	p, _, qc := newProcessor(t)

	for _, payload := range []string{`not json`, `[1,2]`, `null`, `42`} {
		_, err := p.Process([]byte(payload))
		assert.ErrorIs(t, err, delta.ErrMalformedMessage, payload)
	}
	assert.Empty(t, qc.PendingInvalidations())

	// HandleMessage swallows the error
	p.HandleMessage([]byte(`{{`))
}

func TestSetRoute_OverridesInvalidation(t *testing.T) {
	p, _, qc := newProcessor(t)
	p.SetRoute(KeyHabitStreak, []string{dashboard.SectionHabits, dashboard.SectionAICoachNudge})

	_, err := p.Process([]byte(`{"habit_streak": 1}`))
	require.NoError(t, err)

	assert.True(t, qc.IsInvalidated(dashboard.CacheKey(dashboard.SectionAICoachNudge)))
}

func TestDecodeInt(t *testing.T) {
	n, err := delta.DecodeInt([]byte("4.6"))
	require.NoError(t, err)
	assert.Equal(t, 5, n)

	n, err = delta.DecodeInt([]byte("-3"))
	require.NoError(t, err)
	assert.Equal(t, -3, n)

	n, err = delta.DecodeInt([]byte("1e20"))
	require.NoError(t, err)
	assert.Equal(t, math.MaxInt32, n)

	n, err = delta.DecodeInt([]byte("-1e20"))
	require.NoError(t, err)
	assert.Equal(t, math.MinInt32, n)

	_, err = delta.DecodeInt([]byte(`"x"`))
	assert.Error(t, err)
}

func TestRegisterHandlers(t *testing.T) {
	p, _, _ := newProcessor(t)
	assert.Equal(t, []string{KeyHabitStreak, KeyMissionsInReview, KeyNewEvents, KeyPoints, KeyReadiness},
		p.GetHandlerRegistry().Keys())
}
