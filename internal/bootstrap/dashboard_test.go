// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package bootstrap

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/AccelByte/extend-mission-control/internal/config"
	"github.com/AccelByte/extend-mission-control/pkg/dashboard"
	"github.com/AccelByte/extend-mission-control/pkg/realtime"
	"github.com/AccelByte/extend-mission-control/pkg/section"
	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(hubURL string) *config.Config {
	return &config.Config{
		HubBaseURL:        hubURL,
		RequestTimeout:    time.Second,
		RealtimeTransport: config.TransportSSE,
		ReconnectDelay:    10 * time.Millisecond,
		MaxReconnectDelay: 20 * time.Millisecond,
		MaxReconnects:     1,
		ManifestPath:      filepath.Join("testdata", "missing.yaml"),
		FallbackDelay:     time.Millisecond,
		RefetchRate:       100,
		RefetchBurst:      9,
		CacheBackend:      config.CacheMemory,
		CacheSize:         32,
		CacheRetention:    time.Minute,
	}
}

func notFoundHub(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.NotFoundHandler())
	t.Cleanup(srv.Close)
	return srv
}

func TestInitDashboard_FallsBackWhenHubMissing(t *testing.T) {
	cfg := testConfig(notFoundHub(t).URL)

	d, err := InitDashboard(context.Background(), cfg)
	require.NoError(t, err)
	defer d.Close()

	assert.Nil(t, d.Channel)
	assert.Nil(t, d.RedisClient)

	require.NoError(t, d.Coordinator.Mount(context.Background()))
	defer d.Coordinator.Unmount()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, d.Coordinator.WaitLoaded(ctx))

	results := d.Coordinator.Results()
	assert.Len(t, results, len(dashboard.AllSections()))
	for id, r := range results {
		assert.Equal(t, section.SourceFallback, r.Source, id)
	}
	status := d.Coordinator.Status()
	assert.False(t, status.IsLoading)
	assert.True(t, status.HasError)
	assert.Equal(t, "disabled", status.Realtime)
}

func TestInitDashboard_RealtimeTransports(t *testing.T) {
	for _, transport := range []string{config.TransportSSE, config.TransportWebSocket} {
		t.Run(transport, func(t *testing.T) {
			cfg := testConfig(notFoundHub(t).URL)
			cfg.RealtimeURL = "http://127.0.0.1:1/stream"
			cfg.RealtimeTransport = transport

			d, err := InitDashboard(context.Background(), cfg)
			require.NoError(t, err)
			defer d.Close()

			require.NotNil(t, d.Channel)
			assert.Equal(t, realtime.StateDisconnected, d.Channel.State())
		})
	}
}

func TestInitDashboard_RedisBackend(t *testing.T) {
	mr := miniredis.RunT(t)

	cfg := testConfig(notFoundHub(t).URL)
	cfg.CacheBackend = config.CacheRedis
	cfg.RedisHost = mr.Host()
	cfg.RedisPort = mr.Port()
	cfg.RedisKeyPrefix = "test:"

	d, err := InitDashboard(context.Background(), cfg)
	require.NoError(t, err)
	require.NotNil(t, d.RedisClient)
	assert.NoError(t, d.Health.Check(context.Background()))
	assert.NoError(t, d.Close())
}

func TestInitDashboard_RejectsBadManifest(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sections.yaml")
	require.NoError(t, os.WriteFile(path, []byte("sections:\n  - id: overview\n    type: builtin.overview\n    enabled: true\n  - id: overview\n    type: builtin.overview\n    enabled: true\n"), 0o600))

	cfg := testConfig(notFoundHub(t).URL)
	cfg.ManifestPath = path

	_, err := InitDashboard(context.Background(), cfg)
	assert.Error(t, err)
}

func TestInitFetcher_MissingFallbackFile(t *testing.T) {
	_, err := InitFetcher(nil, nil, nil, filepath.Join(t.TempDir(), "nope.yaml"), 0)
	assert.Error(t, err)
}
