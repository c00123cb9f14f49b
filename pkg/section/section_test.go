// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package section

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/AccelByte/extend-mission-control/pkg/cache"
	"github.com/AccelByte/extend-mission-control/pkg/dashboard"
	"github.com/AccelByte/extend-mission-control/pkg/gateway"
	"github.com/AccelByte/extend-mission-control/pkg/gateway/mock"
	"github.com/AccelByte/extend-mission-control/pkg/store"
	"github.com/cenkalti/backoff/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func habitsSection(t *testing.T, retry int) Section {
	t.Helper()
	s, err := NewTyped(SectionConfig{ID: dashboard.SectionHabits, Enabled: true, StaleTime: time.Minute, Retry: &retry},
		Spec[[]dashboard.HabitStatus]{
			Path:     func(SectionConfig) string { return gateway.PathHabits },
			Write:    (*store.Store).SetHabits,
			Fallback: func(fb *dashboard.FallbackSet) []dashboard.HabitStatus { return fb.Habits },
		})
	require.NoError(t, err)
	return s
}

func newTestFetcher(t *testing.T, gw gateway.Gateway, fallbacks *dashboard.FallbackSet) (*Fetcher, *store.Store, *cache.QueryCache) {
	t.Helper()
	backend, err := cache.NewMemoryBackend(16)
	require.NoError(t, err)
	qc := cache.New(backend, cache.WithBackOff(func() backoff.BackOff { return &backoff.ZeroBackOff{} }))
	st := store.New()
	return NewFetcher(gw, qc, st, fallbacks, time.Millisecond), st, qc
}

func TestFetcher_Live(t *testing.T) {
	gw := mock.NewGateway().WithJSON(gateway.PathHabits, []dashboard.HabitStatus{{ID: "learn", Streak: 9}})
	f, st, _ := newTestFetcher(t, gw, dashboard.DefaultFallbacks())

	res := f.Fetch(context.Background(), habitsSection(t, 2))

	assert.Equal(t, SourceLive, res.Source)
	assert.True(t, res.OK())
	assert.NoError(t, res.Err)
	assert.Equal(t, dashboard.SectionHabits, res.SectionID)
	assert.Equal(t, []dashboard.HabitStatus{{ID: "learn", Streak: 9}}, res.Data)
	assert.Equal(t, 9, st.Snapshot().Habits[0].Streak)
}

func TestFetcher_ServesCacheWithinStaleTime(t *testing.T) {
	gw := mock.NewGateway().WithJSON(gateway.PathHabits, []dashboard.HabitStatus{{ID: "learn"}})
	f, _, _ := newTestFetcher(t, gw, dashboard.DefaultFallbacks())
	s := habitsSection(t, 2)

	f.Fetch(context.Background(), s)
	f.Fetch(context.Background(), s)

	assert.Equal(t, 1, gw.CallCount(gateway.PathHabits))
}

func TestFetcher_FallbackOnFailure(t *testing.T) {
	gw := mock.NewGateway().WithError(&gateway.StatusError{StatusCode: http.StatusServiceUnavailable})
	fallbacks := dashboard.DefaultFallbacks()
	f, st, _ := newTestFetcher(t, gw, fallbacks)

	res := f.Fetch(context.Background(), habitsSection(t, 2))

	assert.Equal(t, SourceFallback, res.Source)
	assert.Error(t, res.Err)
	assert.Equal(t, fallbacks.Habits, res.Data)
	assert.Equal(t, fallbacks.Habits, st.Snapshot().Habits)
	assert.Equal(t, 3, gw.CallCount(gateway.PathHabits), "one attempt plus two retries")
}

func TestFetcher_NonRetryableFailsFast(t *testing.T) {
	gw := mock.NewGateway().WithPathError(gateway.PathHabits, &gateway.StatusError{StatusCode: http.StatusNotFound})
	f, _, _ := newTestFetcher(t, gw, dashboard.DefaultFallbacks())

	res := f.Fetch(context.Background(), habitsSection(t, 2))

	assert.Equal(t, SourceFallback, res.Source)
	assert.Equal(t, 1, gw.CallCount(gateway.PathHabits))
}

func TestFetcher_NoFallback(t *testing.T) {
	gw := mock.NewGateway().WithError(errors.New("down"))
	f, st, _ := newTestFetcher(t, gw, nil)

	res := f.Fetch(context.Background(), habitsSection(t, 0))

	assert.Equal(t, SourceError, res.Source)
	assert.ErrorIs(t, res.Err, ErrNoFallback)
	assert.Empty(t, st.Snapshot().Habits)
}

func TestFetcher_CancelledContext(t *testing.T) {
	gw := mock.NewGateway()
	gw.GetFunc = func(ctx context.Context, _ string) ([]byte, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	f, st, _ := newTestFetcher(t, gw, dashboard.DefaultFallbacks())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res := f.Fetch(ctx, habitsSection(t, 0))

	assert.Equal(t, SourceError, res.Source)
	assert.Empty(t, st.Snapshot().Habits, "cancelled fetch must not write fallback data")
}

func TestFetcher_UndecodableResponse(t *testing.T) {
	gw := mock.NewGateway().WithResponse(gateway.PathHabits, []byte(`{"not":"a list"`))
	fallbacks := dashboard.DefaultFallbacks()
	f, st, qc := newTestFetcher(t, gw, fallbacks)

	res := f.Fetch(context.Background(), habitsSection(t, 0))

	assert.Equal(t, SourceFallback, res.Source)
	assert.Equal(t, fallbacks.Habits, st.Snapshot().Habits)
	assert.True(t, qc.IsStale(context.Background(), dashboard.CacheKey(dashboard.SectionHabits), time.Minute))
}

func TestNewTyped_InvalidSpec(t *testing.T) {
	_, err := NewTyped(SectionConfig{ID: "x"}, Spec[int]{})
	assert.ErrorIs(t, err, ErrInvalidSpec)
}

func TestSectionConfig_Defaults(t *testing.T) {
	cfg := SectionConfig{Parameters: map[string]interface{}{"limit": 10, "ratio": 2.0, "name": "x"}}
	assert.Equal(t, DefaultRetry, cfg.GetRetry())
	assert.Equal(t, DefaultStaleTime, cfg.GetStaleTime())
	assert.Equal(t, 10, cfg.GetParameterInt("limit", 5))
	assert.Equal(t, 2, cfg.GetParameterInt("ratio", 5))
	assert.Equal(t, 5, cfg.GetParameterInt("missing", 5))
	assert.Equal(t, "x", cfg.GetParameterString("name", ""))

	zero := 0
	cfg.Retry = &zero
	assert.Equal(t, 0, cfg.GetRetry())
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	habits := habitsSection(t, 2)
	require.NoError(t, r.Register(habits))
	assert.Error(t, r.Register(habits))

	assert.Equal(t, habits, r.Get(dashboard.SectionHabits))
	assert.Equal(t, habits, r.GetByCacheKey(dashboard.CacheKey(dashboard.SectionHabits)))
	assert.Nil(t, r.Get("missing"))
	assert.Len(t, r.GetAllEnabled(), 1)
	assert.Equal(t, 1, r.Count())
}

func TestFactory(t *testing.T) {
	RegisterSectionType("test.habits", func(config SectionConfig) (Section, error) {
		return habitsSection(t, 2), nil
	})
	assert.True(t, IsRegisteredType("test.habits"))

	s, err := CreateSection(SectionConfig{ID: "habits", Type: "test.habits", Enabled: true})
	require.NoError(t, err)
	assert.NotNil(t, s)

	s, err = CreateSection(SectionConfig{ID: "habits", Type: "test.habits", Enabled: false})
	require.NoError(t, err)
	assert.Nil(t, s)

	_, err = CreateSection(SectionConfig{ID: "x", Type: "unknown", Enabled: true})
	assert.Error(t, err)

	r := NewRegistry()
	require.NoError(t, RegisterSections(r, []SectionConfig{
		{ID: "habits", Type: "test.habits", Enabled: true},
		{ID: "bad", Type: "unknown", Enabled: true},
	}))
	assert.Equal(t, 1, r.Count())
}
