// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

// Package section loads one dashboard section from the hub into the store,
// substituting its fallback dataset when the hub cannot be reached.
package section

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/AccelByte/extend-mission-control/pkg/dashboard"
	"github.com/AccelByte/extend-mission-control/pkg/gateway"
	"github.com/AccelByte/extend-mission-control/pkg/store"
)

// Section owns one gateway endpoint, one cache key and the store slices its
// response populates.
type Section interface {
	// ID returns the section identifier, e.g. "habits".
	ID() string

	// CacheKey returns the cache key of the section response.
	CacheKey() string

	// Load calls the gateway and returns the raw response.
	Load(ctx context.Context, gw gateway.Gateway) ([]byte, error)

	// Apply decodes a raw response and writes it to the store.
	Apply(st *store.Store, raw []byte) (interface{}, error)

	// ApplyFallback writes the fallback dataset of the section to the store.
	ApplyFallback(st *store.Store, fallbacks *dashboard.FallbackSet) interface{}

	// Config returns the section's configuration.
	Config() SectionConfig
}

// Source tags where the data of a Result came from.
type Source string

const (
	SourceLive     Source = "live"
	SourceFallback Source = "fallback"
	SourceError    Source = "error"
)

// Result is the outcome of one section fetch. Err is set for fallback and
// error results.
type Result struct {
	SectionID string
	Source    Source
	Data      interface{}
	Err       error
	FetchedAt time.Time
	Duration  time.Duration
}

// OK reports whether the result carries live data.
func (r Result) OK() bool {
	return r.Source == SourceLive
}

// Spec describes a section whose response decodes into T.
type Spec[T any] struct {
	// Method is GET unless set.
	Method string
	// Path returns the gateway path for the configured section.
	Path func(cfg SectionConfig) string
	// Write stores a decoded response.
	Write func(st *store.Store, v T)
	// Fallback selects the fallback value from the dataset.
	Fallback func(fallbacks *dashboard.FallbackSet) T
}

type typed[T any] struct {
	config SectionConfig
	spec   Spec[T]
}

// NewTyped creates a Section from a typed spec.
func NewTyped[T any](config SectionConfig, spec Spec[T]) (Section, error) {
	if spec.Path == nil || spec.Write == nil || spec.Fallback == nil {
		return nil, fmt.Errorf("section %s: %w", config.ID, ErrInvalidSpec)
	}
	if spec.Method == "" {
		spec.Method = http.MethodGet
	}
	return &typed[T]{config: config, spec: spec}, nil
}

func (s *typed[T]) ID() string {
	return s.config.ID
}

func (s *typed[T]) CacheKey() string {
	return dashboard.CacheKey(s.config.ID)
}

func (s *typed[T]) Config() SectionConfig {
	return s.config
}

func (s *typed[T]) Load(ctx context.Context, gw gateway.Gateway) ([]byte, error) {
	path := s.spec.Path(s.config)
	if s.spec.Method == http.MethodPost {
		return gw.Post(ctx, path, nil)
	}
	return gw.Get(ctx, path)
}

func (s *typed[T]) Apply(st *store.Store, raw []byte) (interface{}, error) {
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, fmt.Errorf("failed to decode %s response: %w", s.config.ID, err)
	}
	s.spec.Write(st, v)
	return v, nil
}

func (s *typed[T]) ApplyFallback(st *store.Store, fallbacks *dashboard.FallbackSet) interface{} {
	v := s.spec.Fallback(fallbacks)
	s.spec.Write(st, v)
	return v
}
