// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package realtime

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/AccelByte/extend-mission-control/pkg/auth"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

const wsHandshakeTimeout = 10 * time.Second

// WebSocketDialer opens WebSocket connections carrying one JSON delta per
// text frame.
type WebSocketDialer struct {
	URL          string
	Tokens       auth.TokenSource
	TokenInQuery bool
	Dialer       *websocket.Dialer
}

// NewWebSocketDialer creates a WebSocket dialer.
func NewWebSocketDialer(rawURL string, tokens auth.TokenSource, tokenInQuery bool) *WebSocketDialer {
	return &WebSocketDialer{
		URL:          rawURL,
		Tokens:       tokens,
		TokenInQuery: tokenInQuery,
		Dialer: &websocket.Dialer{
			Proxy:            http.ProxyFromEnvironment,
			HandshakeTimeout: wsHandshakeTimeout,
		},
	}
}

func (d *WebSocketDialer) Dial(ctx context.Context) (Stream, error) {
	target, header, err := authorize(ctx, d.URL, d.Tokens, d.TokenInQuery)
	if err != nil {
		return nil, err
	}

	dialer := d.Dialer
	if dialer == nil {
		dialer = websocket.DefaultDialer
	}
	conn, resp, err := dialer.DialContext(ctx, target, header)
	if err != nil {
		if resp != nil {
			return nil, fmt.Errorf("websocket handshake failed with status %d: %w", resp.StatusCode, err)
		}
		return nil, fmt.Errorf("failed to open websocket: %w", err)
	}
	return &wsStream{conn: conn}, nil
}

type wsStream struct {
	conn *websocket.Conn
}

// Next blocks on the connection until a text frame arrives. Cancelling ctx
// closes the connection to unblock the read.
func (s *wsStream) Next(ctx context.Context) ([]byte, error) {
	stop := context.AfterFunc(ctx, func() {
		_ = s.conn.Close()
	})
	defer stop()

	for {
		msgType, data, err := s.conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			return nil, err
		}
		if msgType != websocket.TextMessage {
			logrus.Debugf("ignoring websocket frame of type %d", msgType)
			continue
		}
		return data, nil
	}
}

func (s *wsStream) Close() error {
	_ = s.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(time.Second))
	return s.conn.Close()
}
