// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

//go:build integration
// +build integration

package cache

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"
)

// Requires a Redis server, REDIS_ADDR defaults to localhost:6379.
// Run with: go test -tags integration ./pkg/cache/...
func TestRedisIntegration(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}

	ctx := context.Background()
	client, err := InitRedisClient(ctx, RedisOptions{Addr: addr, MaxRetries: 2})
	if err != nil {
		t.Skipf("redis not available at %s: %v", addr, err)
	}
	defer client.Close()

	prefix := fmt.Sprintf("mission_control:it:%d:", time.Now().UnixNano())
	backend := NewRedisBackend(client, prefix)
	defer func() { _ = backend.Clear(ctx) }()

	c := New(backend)
	opts := Options{StaleTime: time.Minute, Retry: 1}

	calls := 0
	fetch := func(context.Context) ([]byte, error) {
		calls++
		return []byte(fmt.Sprintf(`{"call":%d}`, calls)), nil
	}

	if _, err := c.Fetch(ctx, "dashboard:overview", opts, fetch); err != nil {
		t.Fatalf("first Fetch() error = %v", err)
	}
	if _, err := c.Fetch(ctx, "dashboard:overview", opts, fetch); err != nil {
		t.Fatalf("second Fetch() error = %v", err)
	}
	if calls != 1 {
		t.Errorf("fetch calls = %d, expected 1", calls)
	}

	c.Invalidate("dashboard:overview")
	data, err := c.Fetch(ctx, "dashboard:overview", opts, fetch)
	if err != nil {
		t.Fatalf("Fetch() after invalidate error = %v", err)
	}
	if string(data) != `{"call":2}` {
		t.Errorf("Fetch() = %s, expected {\"call\":2}", data)
	}

	if err := c.Clear(ctx); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	if _, err := backend.Get(ctx, "dashboard:overview"); err != ErrNotFound {
		t.Errorf("Get() after Clear error = %v, expected ErrNotFound", err)
	}
}
