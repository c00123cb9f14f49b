// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package config

import (
	"fmt"
	"net/url"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Realtime transports.
const (
	TransportSSE       = "sse"
	TransportWebSocket = "websocket"
)

// Cache backends.
const (
	CacheMemory = "memory"
	CacheRedis  = "redis"
)

// Load reads configuration from environment variables.
// It attempts to load from .env file first (for local development),
// then parses environment variables into the Config struct.
func Load() (*Config, error) {
	// In production (Docker/K8s), environment variables are injected directly
	if err := godotenv.Load(); err != nil {
		logrus.Debugf("no .env file loaded: %v", err)
	} else {
		logrus.Infof("loaded environment variables from .env file")
	}

	return Parse()
}

// Parse reads configuration from the process environment only.
func Parse() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config from environment: %w", err)
	}

	return cfg, nil
}

// Validate performs custom validation on the configuration.
//
// ============================================================
// DEVELOPER: Add custom validation logic here.
// ============================================================
// This function is called after environment variables are parsed.
// Add validation for value ranges, cross-field constraints and formats.
// ============================================================
func (c *Config) Validate() error {
	for name, port := range map[string]int{"GRPC_PORT": c.GRPCPort, "METRICS_PORT": c.MetricsPort, "HTTP_PORT": c.HTTPPort} {
		if port < 1 || port > 65535 {
			return fmt.Errorf("invalid %s: %d (must be 1-65535)", name, port)
		}
	}

	if u, err := url.Parse(c.HubBaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid HUB_BASE_URL: %q", c.HubBaseURL)
	}

	if c.RealtimeURL != "" {
		if _, err := url.Parse(c.RealtimeURL); err != nil {
			return fmt.Errorf("invalid REALTIME_URL: %w", err)
		}
		if c.RealtimeTransport != TransportSSE && c.RealtimeTransport != TransportWebSocket {
			return fmt.Errorf("invalid REALTIME_TRANSPORT: %q (must be %s or %s)", c.RealtimeTransport, TransportSSE, TransportWebSocket)
		}
	}
	if c.ReconnectDelay <= 0 {
		return fmt.Errorf("REALTIME_RECONNECT_DELAY must be positive")
	}
	if c.MaxReconnects < 0 {
		return fmt.Errorf("REALTIME_MAX_RECONNECTS must be non-negative")
	}

	if c.FallbackDelay < 0 {
		return fmt.Errorf("FALLBACK_DELAY must be non-negative")
	}
	if c.RefetchRate <= 0 || c.RefetchBurst < 1 {
		return fmt.Errorf("REFETCH_RATE must be positive and REFETCH_BURST at least 1")
	}

	switch c.CacheBackend {
	case CacheMemory:
		if c.CacheSize < 1 {
			return fmt.Errorf("CACHE_SIZE must be at least 1")
		}
	case CacheRedis:
		if c.RedisHost == "" {
			return fmt.Errorf("REDIS_HOST is required for the redis cache backend")
		}
	default:
		return fmt.Errorf("invalid CACHE_BACKEND: %q (must be %s or %s)", c.CacheBackend, CacheMemory, CacheRedis)
	}

	return nil
}
