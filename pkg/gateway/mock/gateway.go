// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package mock

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"github.com/AccelByte/extend-mission-control/pkg/gateway"
)

// Call records one request made against the mock.
type Call struct {
	Method string
	Path   string
	Body   interface{}
}

// Gateway is a mock implementation of gateway.Gateway for testing
type Gateway struct {
	// Function fields for custom behavior
	GetFunc  func(ctx context.Context, path string) ([]byte, error)
	PostFunc func(ctx context.Context, path string, body interface{}) ([]byte, error)

	// Simple fields for common scenarios
	Responses map[string][]byte
	Errors    map[string]error
	Error     error

	mu    sync.Mutex
	calls []Call
}

// NewGateway creates a new mock gateway. Unknown paths answer 404.
func NewGateway() *Gateway {
	return &Gateway{
		Responses: make(map[string][]byte),
		Errors:    make(map[string]error),
	}
}

// Get returns the mocked response for path
func (m *Gateway) Get(ctx context.Context, path string) ([]byte, error) {
	m.record(http.MethodGet, path, nil)
	if m.GetFunc != nil {
		return m.GetFunc(ctx, path)
	}
	return m.respond(http.MethodGet, path)
}

// Post returns the mocked response for path
func (m *Gateway) Post(ctx context.Context, path string, body interface{}) ([]byte, error) {
	m.record(http.MethodPost, path, body)
	if m.PostFunc != nil {
		return m.PostFunc(ctx, path, body)
	}
	return m.respond(http.MethodPost, path)
}

func (m *Gateway) respond(method, path string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Error != nil {
		return nil, m.Error
	}
	if err, ok := m.Errors[path]; ok {
		return nil, err
	}
	if body, ok := m.Responses[path]; ok {
		return body, nil
	}
	return nil, &gateway.StatusError{Method: method, Path: path, StatusCode: http.StatusNotFound}
}

func (m *Gateway) record(method, path string, body interface{}) {
	m.mu.Lock()
	m.calls = append(m.calls, Call{Method: method, Path: path, Body: body})
	m.mu.Unlock()
}

// Calls returns a copy of the recorded requests
func (m *Gateway) Calls() []Call {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Call, len(m.calls))
	copy(out, m.calls)
	return out
}

// CallCount counts recorded requests to path
func (m *Gateway) CallCount(path string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, c := range m.calls {
		if c.Path == path {
			n++
		}
	}
	return n
}

// WithResponse sets the raw body returned for path
func (m *Gateway) WithResponse(path string, body []byte) *Gateway {
	m.mu.Lock()
	m.Responses[path] = body
	m.mu.Unlock()
	return m
}

// WithJSON marshals v as the body returned for path
func (m *Gateway) WithJSON(path string, v interface{}) *Gateway {
	body, err := json.Marshal(v)
	if err != nil {
		panic(fmt.Sprintf("mock gateway: cannot marshal response for %s: %v", path, err))
	}
	return m.WithResponse(path, body)
}

// WithPathError sets an error returned for path
func (m *Gateway) WithPathError(path string, err error) *Gateway {
	m.mu.Lock()
	m.Errors[path] = err
	m.mu.Unlock()
	return m
}

// WithError sets an error returned for every path
func (m *Gateway) WithError(err error) *Gateway {
	m.mu.Lock()
	m.Error = err
	m.mu.Unlock()
	return m
}
