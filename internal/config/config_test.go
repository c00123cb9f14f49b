// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package config

import (
	"strings"
	"testing"
	"time"
)

func TestParse_Defaults(t *testing.T) {
	t.Setenv("HUB_BASE_URL", "https://hub.example.com/api")

	cfg, err := Parse()
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if cfg.GRPCPort != 6565 || cfg.MetricsPort != 8080 || cfg.HTTPPort != 8000 {
		t.Errorf("unexpected ports: %d %d %d", cfg.GRPCPort, cfg.MetricsPort, cfg.HTTPPort)
	}
	if cfg.FallbackDelay != 500*time.Millisecond {
		t.Errorf("expected 500ms fallback delay, got %v", cfg.FallbackDelay)
	}
	if cfg.ReconnectDelay != 5*time.Second || cfg.MaxReconnects != 10 {
		t.Errorf("unexpected reconnect defaults: %v %d", cfg.ReconnectDelay, cfg.MaxReconnects)
	}
	if cfg.CacheBackend != CacheMemory {
		t.Errorf("expected memory cache, got %s", cfg.CacheBackend)
	}
	if cfg.RedisAddr() != "localhost:6379" {
		t.Errorf("unexpected redis addr %s", cfg.RedisAddr())
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestParse_RequiresHubURL(t *testing.T) {
	t.Setenv("HUB_BASE_URL", "")
	if _, err := Parse(); err == nil {
		t.Error("expected error without HUB_BASE_URL")
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		t.Setenv("HUB_BASE_URL", "https://hub.example.com/api")
		cfg, err := Parse()
		if err != nil {
			t.Fatalf("Parse failed: %v", err)
		}
		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"bad port", func(c *Config) { c.HTTPPort = 0 }, "HTTP_PORT"},
		{"relative hub url", func(c *Config) { c.HubBaseURL = "/api" }, "HUB_BASE_URL"},
		{"unknown transport", func(c *Config) {
			c.RealtimeURL = "https://hub.example.com/stream"
			c.RealtimeTransport = "carrier-pigeon"
		}, "REALTIME_TRANSPORT"},
		{"negative reconnects", func(c *Config) { c.MaxReconnects = -1 }, "REALTIME_MAX_RECONNECTS"},
		{"zero refetch rate", func(c *Config) { c.RefetchRate = 0 }, "REFETCH_RATE"},
		{"unknown cache", func(c *Config) { c.CacheBackend = "disk" }, "CACHE_BACKEND"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}
