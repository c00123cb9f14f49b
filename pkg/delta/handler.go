// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package delta

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/AccelByte/extend-mission-control/pkg/store"
)

// Handler applies one top-level key of a delta message.
// This allows extending the processor with new delta keys.
type Handler interface {
	// Key returns the message key this handler handles (e.g., "points").
	Key() string

	// Apply patches the store from the key's value. Handlers that only
	// trigger a refetch leave the store untouched.
	Apply(st *store.Store, value json.RawMessage) error

	// Invalidates returns the section IDs whose cache keys go stale.
	Invalidates() []string
}

// ApplyFunc is the store patch of a FuncHandler.
type ApplyFunc func(st *store.Store, value json.RawMessage) error

// FuncHandler is a Handler built from a function.
type FuncHandler struct {
	key         string
	invalidates []string
	apply       ApplyFunc
}

// NewHandler creates a handler. A nil apply only invalidates.
func NewHandler(key string, invalidates []string, apply ApplyFunc) *FuncHandler {
	return &FuncHandler{key: key, invalidates: append([]string(nil), invalidates...), apply: apply}
}

func (h *FuncHandler) Key() string {
	return h.key
}

func (h *FuncHandler) Apply(st *store.Store, value json.RawMessage) error {
	if h.apply == nil {
		return nil
	}
	return h.apply(st, value)
}

func (h *FuncHandler) Invalidates() []string {
	return append([]string(nil), h.invalidates...)
}

// DecodeInt reads a JSON number as an int, rounding fractional values and
// saturating at the int32 range.
func DecodeInt(value json.RawMessage) (int, error) {
	var f float64
	if err := json.Unmarshal(value, &f); err != nil {
		return 0, fmt.Errorf("expected a number, got %s: %w", string(value), err)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("expected a finite number, got %s", string(value))
	}
	f = math.Max(math.MinInt32, math.Min(math.MaxInt32, math.Round(f)))
	return int(f), nil
}

// HandlerRegistry manages registered delta handlers.
// It provides thread-safe registration and lookup of handlers.
type HandlerRegistry struct {
	handlers map[string]Handler
	mu       sync.RWMutex
}

// NewHandlerRegistry creates a new empty handler registry.
func NewHandlerRegistry() *HandlerRegistry {
	return &HandlerRegistry{
		handlers: make(map[string]Handler),
	}
}

// Register adds a handler to the registry.
// If a handler for the same key already exists, it will be replaced.
func (r *HandlerRegistry) Register(h Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers[h.Key()] = h
}

// Get returns the handler for key, or nil.
func (r *HandlerRegistry) Get(key string) Handler {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.handlers[key]
}

// Keys returns the registered keys, sorted.
func (r *HandlerRegistry) Keys() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	keys := make([]string, 0, len(r.handlers))
	for k := range r.handlers {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Count returns the number of registered handlers.
func (r *HandlerRegistry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.handlers)
}
