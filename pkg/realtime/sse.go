// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package realtime

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/AccelByte/extend-mission-control/pkg/auth"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const maxSSELineBytes = 1 << 20

// SSEDialer opens text/event-stream connections.
type SSEDialer struct {
	URL    string
	Tokens auth.TokenSource
	// TokenInQuery sends the token as a "token" query parameter instead of
	// an Authorization header, for endpoints built for browser EventSource.
	TokenInQuery bool
	Client       *http.Client
}

// NewSSEDialer creates an SSE dialer with a traced, timeout-free client.
func NewSSEDialer(rawURL string, tokens auth.TokenSource, tokenInQuery bool) *SSEDialer {
	return &SSEDialer{
		URL:          rawURL,
		Tokens:       tokens,
		TokenInQuery: tokenInQuery,
		Client:       &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)},
	}
}

func (d *SSEDialer) Dial(ctx context.Context) (Stream, error) {
	target, header, err := authorize(ctx, d.URL, d.Tokens, d.TokenInQuery)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build realtime request: %w", err)
	}
	for k, v := range header {
		req.Header[k] = v
	}
	req.Header.Set("Accept", "text/event-stream")
	req.Header.Set("Cache-Control", "no-cache")

	client := d.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to open realtime stream: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		resp.Body.Close()
		return nil, fmt.Errorf("realtime stream rejected with status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 4096), maxSSELineBytes)
	return &sseStream{body: resp.Body, scanner: scanner}, nil
}

type sseStream struct {
	body    io.ReadCloser
	scanner *bufio.Scanner
}

// Next returns the data of the next event. Multi-line data is joined with
// "\n"; comments and non-data fields are skipped.
func (s *sseStream) Next(ctx context.Context) ([]byte, error) {
	var data bytes.Buffer
	hasData := false

	for s.scanner.Scan() {
		line := strings.TrimSuffix(s.scanner.Text(), "\r")

		if line == "" {
			if hasData {
				return data.Bytes(), nil
			}
			continue
		}
		if strings.HasPrefix(line, ":") {
			continue
		}

		field, value, found := strings.Cut(line, ":")
		if !found {
			value = ""
		}
		value = strings.TrimPrefix(value, " ")
		if field != "data" {
			continue
		}
		if hasData {
			data.WriteByte('\n')
		}
		data.WriteString(value)
		hasData = true
	}

	if err := s.scanner.Err(); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, err
	}
	return nil, io.EOF
}

func (s *sseStream) Close() error {
	return s.body.Close()
}

// authorize attaches the bearer token either as a header or a query parameter.
// Without a configured token the request goes out anonymous.
func authorize(ctx context.Context, rawURL string, tokens auth.TokenSource, inQuery bool) (string, http.Header, error) {
	header := http.Header{}
	if tokens == nil {
		return rawURL, header, nil
	}

	token, err := tokens.Token(ctx)
	if errors.Is(err, auth.ErrNoToken) {
		return rawURL, header, nil
	}
	if err != nil {
		return "", nil, fmt.Errorf("failed to get auth token: %w", err)
	}

	if !inQuery {
		header.Set("Authorization", "Bearer "+token)
		return rawURL, header, nil
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return "", nil, fmt.Errorf("invalid realtime url %q: %w", rawURL, err)
	}
	q := u.Query()
	q.Set("token", token)
	u.RawQuery = q.Encode()
	return u.String(), header, nil
}
