// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package config

import "time"

// Config holds all application configuration loaded from environment variables.
// This struct uses github.com/caarlos0/env for automatic environment variable parsing.
//
// ============================================================
// DEVELOPER: Add new configuration fields here.
// ============================================================
// Use struct tags to define:
// - `env:"VAR_NAME"` - the environment variable name
// - `env:",required"` - make it required
// - `envDefault:"value"` - set a default value
//
// After adding fields here, update loader.go Validate() if custom
// validation is needed.
// ============================================================
type Config struct {
	// ============================================================
	// Server configuration
	// ============================================================
	GRPCPort    int    `env:"GRPC_PORT" envDefault:"6565"`
	MetricsPort int    `env:"METRICS_PORT" envDefault:"8080"`
	HTTPPort    int    `env:"HTTP_PORT" envDefault:"8000"`
	Environment string `env:"ENVIRONMENT" envDefault:"dev"`
	ServiceName string `env:"SERVICE_NAME" envDefault:"MissionControl"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
	LogJSON     bool   `env:"LOG_JSON" envDefault:"true"`

	// ============================================================
	// Hub gateway configuration (REQUIRED)
	// ============================================================
	HubBaseURL     string        `env:"HUB_BASE_URL,required,notEmpty"`
	RequestTimeout time.Duration `env:"HUB_REQUEST_TIMEOUT" envDefault:"15s"`

	// ============================================================
	// Auth configuration
	// ============================================================
	// AUTH_TOKEN_FILE wins over AUTH_TOKEN and is re-read on every request.
	AuthToken     string `env:"AUTH_TOKEN"`
	AuthTokenFile string `env:"AUTH_TOKEN_FILE"`

	// ============================================================
	// Realtime configuration
	// ============================================================
	// An empty REALTIME_URL disables the realtime channel.
	RealtimeURL          string        `env:"REALTIME_URL"`
	RealtimeTransport    string        `env:"REALTIME_TRANSPORT" envDefault:"sse"`
	RealtimeTokenInQuery bool          `env:"REALTIME_TOKEN_IN_QUERY" envDefault:"false"`
	ReconnectDelay       time.Duration `env:"REALTIME_RECONNECT_DELAY" envDefault:"5s"`
	MaxReconnectDelay    time.Duration `env:"REALTIME_MAX_RECONNECT_DELAY" envDefault:"60s"`
	MaxReconnects        int           `env:"REALTIME_MAX_RECONNECTS" envDefault:"10"`

	// ============================================================
	// Sync configuration
	// ============================================================
	ManifestPath  string        `env:"MANIFEST_PATH" envDefault:"config/sections.yaml"`
	FallbackPath  string        `env:"FALLBACK_PATH"`
	FallbackDelay time.Duration `env:"FALLBACK_DELAY" envDefault:"500ms"`
	RefetchRate   float64       `env:"REFETCH_RATE" envDefault:"2"`
	RefetchBurst  int           `env:"REFETCH_BURST" envDefault:"9"`

	// ============================================================
	// Cache configuration
	// ============================================================
	CacheBackend   string        `env:"CACHE_BACKEND" envDefault:"memory"`
	CacheSize      int           `env:"CACHE_SIZE" envDefault:"256"`
	CacheRetention time.Duration `env:"CACHE_RETENTION" envDefault:"10m"`

	// ============================================================
	// Redis configuration (CACHE_BACKEND=redis)
	// ============================================================
	RedisHost         string `env:"REDIS_HOST" envDefault:"localhost"`
	RedisPort         string `env:"REDIS_PORT" envDefault:"6379"`
	RedisPassword     string `env:"REDIS_PASSWORD"`
	RedisDB           int    `env:"REDIS_DB" envDefault:"0"`
	RedisKeyPrefix    string `env:"REDIS_KEY_PREFIX" envDefault:"mission_control:query:"`
	RedisMaxRetries   int    `env:"REDIS_MAX_RETRIES" envDefault:"5"`
	RedisRetryDelayMs int    `env:"REDIS_RETRY_DELAY_MS" envDefault:"1000"`

	// ============================================================
	// Telemetry configuration
	// ============================================================
	OtelEnabled bool `env:"OTEL_ENABLED" envDefault:"true"`
}

// RedisAddr returns host:port of the Redis server.
func (c *Config) RedisAddr() string {
	return c.RedisHost + ":" + c.RedisPort
}

// RedisRetryDelay returns the Redis connect retry delay.
func (c *Config) RedisRetryDelay() time.Duration {
	return time.Duration(c.RedisRetryDelayMs) * time.Millisecond
}
