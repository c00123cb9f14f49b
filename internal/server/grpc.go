// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package server

import (
	"context"
	"fmt"
	"net"

	"github.com/AccelByte/extend-mission-control/pkg/common"
	"github.com/AccelByte/extend-mission-control/pkg/realtime"

	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/logging"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

// RealtimeHealthService is the health check service name that follows the
// realtime channel.
const RealtimeHealthService = "mission-control.realtime"

// GRPCServer manages the gRPC health server lifecycle.
type GRPCServer struct {
	server *grpc.Server
	health *health.Server
	port   int
}

// NewGRPCServer creates a new gRPC server instance.
func NewGRPCServer(port int) *GRPCServer {
	return &GRPCServer{port: port}
}

// Setup configures the gRPC server with interceptors and registers the
// health and reflection services.
//
// ============================================================
// DEVELOPER: gRPC server configuration
// ============================================================
// The agent exposes no gRPC API of its own. The server exists
// for Kubernetes liveness/readiness probes and grpcurl:
// - "" reports the process itself
// - RealtimeHealthService follows the realtime channel
// ============================================================
func (s *GRPCServer) Setup() error {
	unaryInterceptors := []grpc.UnaryServerInterceptor{
		logging.UnaryServerInterceptor(common.InterceptorLogger(logrus.StandardLogger())),
	}
	streamInterceptors := []grpc.StreamServerInterceptor{
		logging.StreamServerInterceptor(common.InterceptorLogger(logrus.StandardLogger())),
	}

	// Create server with OpenTelemetry instrumentation
	s.server = grpc.NewServer(
		grpc.StatsHandler(otelgrpc.NewServerHandler()),
		grpc.ChainUnaryInterceptor(unaryInterceptors...),
		grpc.ChainStreamInterceptor(streamInterceptors...),
	)

	s.health = health.NewServer()
	s.health.SetServingStatus(RealtimeHealthService, grpc_health_v1.HealthCheckResponse_SERVICE_UNKNOWN)

	reflection.Register(s.server)
	grpc_health_v1.RegisterHealthServer(s.server, s.health)

	logrus.Infof("gRPC reflection and health check enabled")

	return nil
}

// Health returns the health server. Nil before Setup.
func (s *GRPCServer) Health() *health.Server {
	return s.health
}

// WatchRealtime reports the realtime channel state under
// RealtimeHealthService. A nil channel reports serving since realtime is
// optional.
func (s *GRPCServer) WatchRealtime(ch *realtime.Channel) {
	if ch == nil {
		s.health.SetServingStatus(RealtimeHealthService, grpc_health_v1.HealthCheckResponse_SERVING)
		return
	}
	ch.OnStateChange(func(state realtime.State) {
		s.health.SetServingStatus(RealtimeHealthService, realtimeServingStatus(state))
	})
}

func realtimeServingStatus(state realtime.State) grpc_health_v1.HealthCheckResponse_ServingStatus {
	switch state {
	case realtime.StateOpen:
		return grpc_health_v1.HealthCheckResponse_SERVING
	case realtime.StateFailed:
		return grpc_health_v1.HealthCheckResponse_NOT_SERVING
	default:
		// reconnecting still counts as unknown, not broken
		return grpc_health_v1.HealthCheckResponse_SERVICE_UNKNOWN
	}
}

// Start begins listening and serving gRPC requests.
func (s *GRPCServer) Start(ctx context.Context) error {
	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", s.port))
	if err != nil {
		return fmt.Errorf("failed to listen on port %d: %w", s.port, err)
	}

	go func() {
		logrus.Infof("gRPC server listening on port %d", s.port)
		if err := s.server.Serve(lis); err != nil {
			logrus.Fatalf("gRPC server failed: %v", err)
		}
	}()

	return nil
}

// Shutdown gracefully stops the gRPC server.
func (s *GRPCServer) Shutdown(ctx context.Context) error {
	logrus.Info("shutting down gRPC server...")
	s.health.Shutdown()
	s.server.GracefulStop()
	logrus.Info("gRPC server stopped")
	return nil
}
