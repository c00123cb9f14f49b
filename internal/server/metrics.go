// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/AccelByte/extend-mission-control/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

// MetricsServer exposes the sync metrics for Prometheus scraping.
type MetricsServer struct {
	server   *http.Server
	port     int
	endpoint string
}

// NewMetricsServer creates a metrics server serving endpoint on port.
func NewMetricsServer(port int, endpoint string) *MetricsServer {
	return &MetricsServer{port: port, endpoint: endpoint}
}

// Setup builds a dedicated registry so nothing registered on the global
// default registry leaks into the scrape.
//
// ============================================================
// DEVELOPER: Register custom Prometheus metrics here
// ============================================================
// Runtime, process and build info collectors are exposed next
// to the sync metrics. To add a metric, define it in
// pkg/metrics and append it to metrics.Collectors().
// ============================================================
func (m *MetricsServer) Setup() error {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewBuildInfoCollector(),
	)
	if err := registerAll(registry, metrics.Collectors()); err != nil {
		return err
	}

	mux := http.NewServeMux()
	mux.Handle(m.endpoint, promhttp.HandlerFor(registry, promhttp.HandlerOpts{
		Registry:          registry,
		EnableOpenMetrics: true,
	}))

	m.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", m.port),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return nil
}

func registerAll(registry *prometheus.Registry, cs []prometheus.Collector) error {
	for _, c := range cs {
		if err := registry.Register(c); err != nil {
			return fmt.Errorf("failed to register collector: %w", err)
		}
	}
	return nil
}

// Handler returns the metrics HTTP handler. Nil before Setup.
func (m *MetricsServer) Handler() http.Handler {
	if m.server == nil {
		return nil
	}
	return m.server.Handler
}

// Start serves metrics in the background.
func (m *MetricsServer) Start(ctx context.Context) error {
	go func() {
		logrus.Infof("serving prometheus metrics at :%d%s", m.port, m.endpoint)
		if err := m.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("metrics server failed: %v", err)
		}
	}()
	return nil
}

// Shutdown stops the metrics server.
func (m *MetricsServer) Shutdown(ctx context.Context) error {
	if err := m.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("metrics server shutdown: %w", err)
	}
	logrus.Info("metrics server stopped")
	return nil
}
