// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/AccelByte/extend-mission-control/pkg/action"
	"github.com/AccelByte/extend-mission-control/pkg/coordinator"
	"github.com/AccelByte/extend-mission-control/pkg/dashboard"
	"github.com/AccelByte/extend-mission-control/pkg/realtime"
	"github.com/AccelByte/extend-mission-control/pkg/section"
	"github.com/AccelByte/extend-mission-control/pkg/store"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/health/grpc_health_v1"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeDashboard struct {
	st        *store.Store
	dismissed int
	habitID   string
	completed bool
	rsvp      string
	result    *action.ActionResult
	err       error
}

func newFakeDashboard() *fakeDashboard {
	return &fakeDashboard{st: store.New(), result: action.NewActionResult("log_habit")}
}

func (f *fakeDashboard) Snapshot() *store.State { return f.st.Snapshot() }

func (f *fakeDashboard) Status() coordinator.Status {
	return coordinator.Status{Realtime: "open", Sections: []coordinator.SectionStatus{{ID: dashboard.SectionOverview}}}
}

func (f *fakeDashboard) RefetchAll(ctx context.Context) map[string]section.Result {
	return map[string]section.Result{
		dashboard.SectionMetrics:  {SectionID: dashboard.SectionMetrics, Source: section.SourceLive},
		dashboard.SectionOverview: {SectionID: dashboard.SectionOverview, Source: section.SourceFallback, Err: errors.New("hub down")},
	}
}

func (f *fakeDashboard) Refetch(ctx context.Context, id string) (section.Result, error) {
	if id != dashboard.SectionHabits {
		return section.Result{}, fmt.Errorf("%w: %s", section.ErrSectionNotFound, id)
	}
	return section.Result{SectionID: id, Source: section.SourceLive}, nil
}

func (f *fakeDashboard) LogHabit(ctx context.Context, habitID string, completed bool) (*action.ActionResult, error) {
	f.habitID, f.completed = habitID, completed
	return f.result, f.err
}

func (f *fakeDashboard) RSVPToEvent(ctx context.Context, eventID, status string) (*action.ActionResult, error) {
	f.rsvp = eventID + ":" + status
	return f.result, f.err
}

func (f *fakeDashboard) DismissNudge() { f.dismissed++ }

func serve(t *testing.T, srv *HTTPServer, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)
	return w
}

func TestHealthz(t *testing.T) {
	srv := NewHTTPServer(0, newFakeDashboard(), nil)
	w := serve(t, srv, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok","realtime":"open"}`, w.Body.String())

	srv = NewHTTPServer(0, newFakeDashboard(), func(context.Context) error { return errors.New("redis down") })
	w = serve(t, srv, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "redis down")
}

func TestGetSnapshotAndStatus(t *testing.T) {
	fake := newFakeDashboard()
	fake.st.SetGamification(dashboard.GamificationData{Points: 42})
	srv := NewHTTPServer(0, fake, nil)

	w := serve(t, srv, http.MethodGet, "/v1/dashboard", "")
	require.Equal(t, http.StatusOK, w.Code)
	var snap map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &snap))
	assert.Contains(t, string(snap["gamification"]), `"points":42`)

	w = serve(t, srv, http.MethodGet, "/v1/dashboard/status", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"realtime":"open"`)
}

func TestRefetch(t *testing.T) {
	srv := NewHTTPServer(0, newFakeDashboard(), nil)

	w := serve(t, srv, http.MethodPost, "/v1/dashboard/refetch", "")
	require.Equal(t, http.StatusOK, w.Code)
	var all []resultResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &all))
	require.Len(t, all, 2)
	assert.Equal(t, dashboard.SectionMetrics, all[0].Section)
	assert.Equal(t, section.SourceFallback, all[1].Source)
	assert.Equal(t, "hub down", all[1].Error)

	w = serve(t, srv, http.MethodPost, "/v1/dashboard/refetch?section=habits", "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = serve(t, srv, http.MethodPost, "/v1/dashboard/refetch?section=nope", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestLogHabit(t *testing.T) {
	fake := newFakeDashboard()
	srv := NewHTTPServer(0, fake, nil)

	w := serve(t, srv, http.MethodPost, "/v1/habits/h1/log", `{"completed": true}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "h1", fake.habitID)
	assert.True(t, fake.completed)

	w = serve(t, srv, http.MethodPost, "/v1/habits/h1/log", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	fake.result = action.NewActionError("log_habit", errors.New("hub 503"))
	w = serve(t, srv, http.MethodPost, "/v1/habits/h1/log", `{"completed": false}`)
	assert.Equal(t, http.StatusAccepted, w.Code)
	assert.Contains(t, w.Body.String(), "hub 503")
	assert.False(t, fake.completed)
}

func TestRSVPEvent(t *testing.T) {
	fake := newFakeDashboard()
	srv := NewHTTPServer(0, fake, nil)

	w := serve(t, srv, http.MethodPost, "/v1/events/e1/rsvp", `{"status":"going"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "e1:going", fake.rsvp)

	w = serve(t, srv, http.MethodPost, "/v1/events/e1/rsvp", `{"status":"perhaps"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	fake.err = fmt.Errorf("%w: bad", action.ErrInvalidRequest)
	w = serve(t, srv, http.MethodPost, "/v1/events/e1/rsvp", `{"status":"maybe"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	fake.err = fmt.Errorf("%w: rsvp_event", action.ErrActionNotFound)
	w = serve(t, srv, http.MethodPost, "/v1/events/e1/rsvp", `{"status":"maybe"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDismissNudge(t *testing.T) {
	fake := newFakeDashboard()
	srv := NewHTTPServer(0, fake, nil)

	w := serve(t, srv, http.MethodPost, "/v1/nudge/dismiss", "")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, 1, fake.dismissed)
}

func TestRealtimeServingStatus(t *testing.T) {
	assert.Equal(t, grpc_health_v1.HealthCheckResponse_SERVING, realtimeServingStatus(realtime.StateOpen))
	assert.Equal(t, grpc_health_v1.HealthCheckResponse_NOT_SERVING, realtimeServingStatus(realtime.StateFailed))
	assert.Equal(t, grpc_health_v1.HealthCheckResponse_SERVICE_UNKNOWN, realtimeServingStatus(realtime.StateConnecting))
}

func TestGRPCServer_WatchRealtimeDisabled(t *testing.T) {
	s := NewGRPCServer(0)
	require.NoError(t, s.Setup())
	s.WatchRealtime(nil)

	resp, err := s.Health().Check(context.Background(), &grpc_health_v1.HealthCheckRequest{Service: RealtimeHealthService})
	require.NoError(t, err)
	assert.Equal(t, grpc_health_v1.HealthCheckResponse_SERVING, resp.Status)
}

func TestMetricsServer_Setup(t *testing.T) {
	m := NewMetricsServer(0, "/metrics")
	require.NoError(t, m.Setup())

	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "go_goroutines")
}
