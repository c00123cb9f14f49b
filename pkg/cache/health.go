// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package cache

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

const healthCheckTimeout = 2 * time.Second

// Pinger is implemented by backends that depend on a remote server.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthChecker reports whether the cache backend is reachable. Backends that
// do not implement Pinger are always healthy.
type HealthChecker struct {
	backend Backend
}

// NewHealthChecker creates a health checker for backend.
func NewHealthChecker(backend Backend) *HealthChecker {
	return &HealthChecker{backend: backend}
}

// Check performs a backend health check
func (h *HealthChecker) Check(ctx context.Context) error {
	pinger, ok := h.backend.(Pinger)
	if !ok {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, healthCheckTimeout)
	defer cancel()

	if err := pinger.Ping(ctx); err != nil {
		logrus.Errorf("cache backend health check failed: %v", err)
		return err
	}

	logrus.Debugf("cache backend health check passed")
	return nil
}

// IsHealthy returns true if the backend is accessible
func (h *HealthChecker) IsHealthy(ctx context.Context) bool {
	return h.Check(ctx) == nil
}
