// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package app

import (
	"context"
	"fmt"

	"github.com/AccelByte/extend-mission-control/internal/bootstrap"
	"github.com/AccelByte/extend-mission-control/internal/config"
	"github.com/AccelByte/extend-mission-control/internal/server"
	"github.com/sirupsen/logrus"
)

// App holds all application dependencies and manages the application lifecycle.
type App struct {
	cfg               *config.Config
	dashboard         *bootstrap.Dashboard
	grpcServer        *server.GRPCServer
	httpServer        *server.HTTPServer
	metricsServer     *server.MetricsServer
	shutdownTelemetry func(context.Context) error
}

// New creates and initializes a new application instance.
//
// ============================================================
// DEVELOPER: Application initialization order
// ============================================================
// Components are initialized in dependency order:
// 1. Telemetry (so the gateway transport picks up the provider)
// 2. Dashboard components (see bootstrap.InitDashboard)
// 3. Servers (gRPC health, HTTP API, metrics)
//
// The dashboard is mounted by Run, not here.
// ============================================================
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	logrus.Info("initializing application...")

	app := &App{cfg: cfg}

	// ============================================================
	// Step 1: Setup telemetry
	// ============================================================
	if cfg.OtelEnabled {
		shutdownTelemetry, err := server.SetupTelemetry(ctx, cfg.ServiceName, cfg.Environment, 0)
		if err != nil {
			return nil, fmt.Errorf("failed to setup telemetry: %w", err)
		}
		app.shutdownTelemetry = shutdownTelemetry
	}

	// ============================================================
	// Step 2: Dashboard components
	// ============================================================
	dashboard, err := bootstrap.InitDashboard(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to init dashboard: %w", err)
	}
	app.dashboard = dashboard

	// ============================================================
	// Step 3: Setup servers
	// ============================================================
	app.grpcServer = server.NewGRPCServer(cfg.GRPCPort)
	if err := app.grpcServer.Setup(); err != nil {
		return nil, fmt.Errorf("failed to setup gRPC server: %w", err)
	}
	app.grpcServer.WatchRealtime(dashboard.Channel)

	app.httpServer = server.NewHTTPServer(cfg.HTTPPort, dashboard.Coordinator, dashboard.Health.Check)
	if err := app.httpServer.Setup(); err != nil {
		return nil, fmt.Errorf("failed to setup HTTP server: %w", err)
	}

	app.metricsServer = server.NewMetricsServer(cfg.MetricsPort, "/metrics")
	if err := app.metricsServer.Setup(); err != nil {
		return nil, fmt.Errorf("failed to setup metrics server: %w", err)
	}

	logrus.Info("application initialized successfully")

	return app, nil
}
