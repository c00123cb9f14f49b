// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/AccelByte/extend-mission-control/pkg/action"
	"github.com/AccelByte/extend-mission-control/pkg/coordinator"
	"github.com/AccelByte/extend-mission-control/pkg/section"
	"github.com/AccelByte/extend-mission-control/pkg/store"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Dashboard is the part of the coordinator served over HTTP.
type Dashboard interface {
	Snapshot() *store.State
	Status() coordinator.Status
	RefetchAll(ctx context.Context) map[string]section.Result
	Refetch(ctx context.Context, sectionID string) (section.Result, error)
	LogHabit(ctx context.Context, habitID string, completed bool) (*action.ActionResult, error)
	RSVPToEvent(ctx context.Context, eventID, status string) (*action.ActionResult, error)
	DismissNudge()
}

// HealthFunc reports an unhealthy dependency.
type HealthFunc func(ctx context.Context) error

// HTTPServer serves the local dashboard API.
type HTTPServer struct {
	server    *http.Server
	port      int
	dashboard Dashboard
	health    HealthFunc
}

// NewHTTPServer creates a new HTTP API server. health may be nil.
func NewHTTPServer(port int, dashboard Dashboard, health HealthFunc) *HTTPServer {
	return &HTTPServer{
		port:      port,
		dashboard: dashboard,
		health:    health,
	}
}

// Setup builds the routes.
//
// ============================================================
// DEVELOPER: Local API routes
// ============================================================
// GET  /healthz
// GET  /v1/dashboard            store snapshot
// GET  /v1/dashboard/status     per-section sync status
// POST /v1/dashboard/refetch    ?section=<id> limits it to one
// POST /v1/habits/:id/log       {"completed": bool}
// POST /v1/events/:id/rsvp      {"status": "going|maybe|declined"}
// POST /v1/nudge/dismiss
// ============================================================
func (s *HTTPServer) Setup() error {
	s.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", s.port),
		Handler:           otelhttp.NewHandler(s.Router(), "mission-control-api"),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return nil
}

// Router returns the gin engine with all routes registered.
func (s *HTTPServer) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger())

	r.GET("/healthz", s.healthz)

	v1 := r.Group("/v1")
	v1.GET("/dashboard", s.getSnapshot)
	v1.GET("/dashboard/status", s.getStatus)
	v1.POST("/dashboard/refetch", s.refetch)
	v1.POST("/habits/:id/log", s.logHabit)
	v1.POST("/events/:id/rsvp", s.rsvpEvent)
	v1.POST("/nudge/dismiss", s.dismissNudge)

	return r
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logrus.WithFields(logrus.Fields{
			"method":   c.Request.Method,
			"path":     c.FullPath(),
			"status":   c.Writer.Status(),
			"duration": time.Since(start).String(),
		}).Debug("http request")
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

type resultResponse struct {
	Section   string         `json:"section"`
	Source    section.Source `json:"source"`
	Error     string         `json:"error,omitempty"`
	FetchedAt time.Time      `json:"fetchedAt"`
}

type actionResponse struct {
	Action      string                 `json:"action"`
	Outcome     action.Outcome         `json:"outcome"`
	Error       string                 `json:"error,omitempty"`
	Invalidated []string               `json:"invalidated,omitempty"`
	Metadata    map[string]interface{} `json:"metadata,omitempty"`
}

type logHabitRequest struct {
	Completed *bool `json:"completed" binding:"required"`
}

type rsvpRequest struct {
	Status string `json:"status" binding:"required,oneof=going maybe declined"`
}

func toResultResponse(r section.Result) resultResponse {
	resp := resultResponse{Section: r.SectionID, Source: r.Source, FetchedAt: r.FetchedAt}
	if r.Err != nil {
		resp.Error = r.Err.Error()
	}
	return resp
}

func toActionResponse(r *action.ActionResult) actionResponse {
	resp := actionResponse{
		Action:      r.ActionID,
		Outcome:     r.Outcome,
		Invalidated: r.Invalidated,
		Metadata:    r.Metadata,
	}
	if r.Error != nil {
		resp.Error = r.Error.Error()
	}
	return resp
}

func (s *HTTPServer) healthz(c *gin.Context) {
	if s.health != nil {
		if err := s.health(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "error": err.Error()})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "realtime": s.dashboard.Status().Realtime})
}

func (s *HTTPServer) getSnapshot(c *gin.Context) {
	c.JSON(http.StatusOK, s.dashboard.Snapshot())
}

func (s *HTTPServer) getStatus(c *gin.Context) {
	c.JSON(http.StatusOK, s.dashboard.Status())
}

func (s *HTTPServer) refetch(c *gin.Context) {
	if id := c.Query("section"); id != "" {
		result, err := s.dashboard.Refetch(c.Request.Context(), id)
		if errors.Is(err, section.ErrSectionNotFound) {
			c.JSON(http.StatusNotFound, errorResponse{Error: err.Error()})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, errorResponse{Error: err.Error()})
			return
		}
		c.JSON(http.StatusOK, []resultResponse{toResultResponse(result)})
		return
	}

	results := s.dashboard.RefetchAll(c.Request.Context())
	resp := make([]resultResponse, 0, len(results))
	for _, r := range results {
		resp = append(resp, toResultResponse(r))
	}
	sort.Slice(resp, func(i, j int) bool { return resp[i].Section < resp[j].Section })
	c.JSON(http.StatusOK, resp)
}

func (s *HTTPServer) logHabit(c *gin.Context) {
	var req logHabitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	result, err := s.dashboard.LogHabit(c.Request.Context(), c.Param("id"), *req.Completed)
	s.writeActionResult(c, result, err)
}

func (s *HTTPServer) rsvpEvent(c *gin.Context) {
	var req rsvpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	result, err := s.dashboard.RSVPToEvent(c.Request.Context(), c.Param("id"), req.Status)
	s.writeActionResult(c, result, err)
}

// writeActionResult maps executor errors to status codes. A hub failure
// answered by a local patch is reported with 202.
func (s *HTTPServer) writeActionResult(c *gin.Context, result *action.ActionResult, err error) {
	switch {
	case errors.Is(err, action.ErrInvalidRequest):
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.Is(err, action.ErrActionNotFound), errors.Is(err, action.ErrActionDisabled):
		c.JSON(http.StatusNotFound, errorResponse{Error: err.Error()})
	case err != nil:
		c.JSON(http.StatusInternalServerError, errorResponse{Error: err.Error()})
	case result.Confirmed():
		c.JSON(http.StatusOK, toActionResponse(result))
	case result.Outcome == action.OutcomeFailed:
		c.JSON(http.StatusBadGateway, toActionResponse(result))
	default:
		c.JSON(http.StatusAccepted, toActionResponse(result))
	}
}

func (s *HTTPServer) dismissNudge(c *gin.Context) {
	s.dashboard.DismissNudge()
	c.Status(http.StatusNoContent)
}

// Start begins serving the API on the configured port.
func (s *HTTPServer) Start(ctx context.Context) error {
	go func() {
		logrus.Infof("HTTP API listening on port %d", s.port)
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("HTTP API server failed: %v", err)
		}
	}()
	return nil
}

// Shutdown gracefully stops the HTTP API server.
func (s *HTTPServer) Shutdown(ctx context.Context) error {
	logrus.Info("shutting down HTTP API server...")
	if err := s.server.Shutdown(ctx); err != nil {
		return err
	}
	logrus.Info("HTTP API server stopped")
	return nil
}
