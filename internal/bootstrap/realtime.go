// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package bootstrap

import (
	"fmt"

	"github.com/AccelByte/extend-mission-control/internal/config"
	"github.com/AccelByte/extend-mission-control/pkg/auth"
	"github.com/AccelByte/extend-mission-control/pkg/realtime"
	"github.com/sirupsen/logrus"
)

// InitRealtimeChannel creates the realtime channel feeding handler. It returns
// nil when no realtime URL is configured.
func InitRealtimeChannel(cfg *config.Config, tokens auth.TokenSource, handler func([]byte)) (*realtime.Channel, error) {
	if cfg.RealtimeURL == "" {
		logrus.Info("REALTIME_URL not set, realtime updates disabled")
		return nil, nil
	}

	var dialer realtime.Dialer
	switch cfg.RealtimeTransport {
	case config.TransportSSE:
		dialer = realtime.NewSSEDialer(cfg.RealtimeURL, tokens, cfg.RealtimeTokenInQuery)
	case config.TransportWebSocket:
		dialer = realtime.NewWebSocketDialer(cfg.RealtimeURL, tokens, cfg.RealtimeTokenInQuery)
	default:
		return nil, fmt.Errorf("unsupported realtime transport %q", cfg.RealtimeTransport)
	}

	ch := realtime.NewChannel(dialer, handler, realtime.Config{
		ReconnectDelay:    cfg.ReconnectDelay,
		MaxReconnectDelay: cfg.MaxReconnectDelay,
		MaxReconnects:     cfg.MaxReconnects,
	})

	logrus.Infof("initialized %s realtime channel for %s", cfg.RealtimeTransport, cfg.RealtimeURL)
	return ch, nil
}
