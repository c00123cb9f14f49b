// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

// Package delta turns realtime delta messages into store patches and cache
// invalidations.
package delta

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/AccelByte/extend-mission-control/pkg/dashboard"
	"github.com/AccelByte/extend-mission-control/pkg/metrics"
	"github.com/AccelByte/extend-mission-control/pkg/store"
	"github.com/sirupsen/logrus"
)

// ErrMalformedMessage is returned for messages that are not JSON objects.
var ErrMalformedMessage = errors.New("malformed delta message")

// Invalidator marks cache keys stale.
type Invalidator interface {
	Invalidate(keys ...string)
}

// Outcome summarizes one processed message.
type Outcome struct {
	Applied     []string
	Failed      []string
	Ignored     []string
	Invalidated []string
}

// Processor dispatches delta keys to their handlers.
type Processor struct {
	store       *store.Store
	invalidator Invalidator
	registry    *HandlerRegistry

	mu     sync.RWMutex
	routes map[string][]string
}

// NewProcessor creates a processor with an empty handler registry.
func NewProcessor(st *store.Store, invalidator Invalidator) *Processor {
	return &Processor{
		store:       st,
		invalidator: invalidator,
		registry:    NewHandlerRegistry(),
		routes:      make(map[string][]string),
	}
}

// GetHandlerRegistry returns the handler registry for this processor.
func (p *Processor) GetHandlerRegistry() *HandlerRegistry {
	return p.registry
}

// SetRoute overrides the sections invalidated by key.
func (p *Processor) SetRoute(key string, sections []string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.routes[key] = append([]string(nil), sections...)
}

func (p *Processor) invalidationTargets(h Handler) []string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if sections, ok := p.routes[h.Key()]; ok {
		return sections
	}
	return h.Invalidates()
}

// Process applies one message. Keys are handled in sorted order; unknown keys
// are ignored. A value a handler cannot apply still invalidates its sections.
func (p *Processor) Process(payload []byte) (*Outcome, error) {
	var message map[string]json.RawMessage
	if err := json.Unmarshal(payload, &message); err != nil || message == nil {
		metrics.DeltaParseErrorsTotal.Inc()
		if err == nil {
			err = errors.New("message is null")
		}
		return nil, fmt.Errorf("%w: %v", ErrMalformedMessage, err)
	}

	keys := make([]string, 0, len(message))
	for k := range message {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	outcome := &Outcome{}
	seen := make(map[string]struct{})
	var cacheKeys []string

	for _, key := range keys {
		h := p.registry.Get(key)
		if h == nil {
			logrus.Debugf("ignoring unknown delta key %q", key)
			outcome.Ignored = append(outcome.Ignored, key)
			continue
		}

		if err := h.Apply(p.store, message[key]); err != nil {
			logrus.Warnf("failed to apply delta key %q: %v", key, err)
			outcome.Failed = append(outcome.Failed, key)
		} else {
			outcome.Applied = append(outcome.Applied, key)
			metrics.DeltasAppliedTotal.WithLabelValues(key).Inc()
		}

		for _, sectionID := range p.invalidationTargets(h) {
			ck := dashboard.CacheKey(sectionID)
			if _, dup := seen[ck]; dup {
				continue
			}
			seen[ck] = struct{}{}
			cacheKeys = append(cacheKeys, ck)
		}
	}

	if len(cacheKeys) > 0 && p.invalidator != nil {
		p.invalidator.Invalidate(cacheKeys...)
	}
	outcome.Invalidated = cacheKeys

	return outcome, nil
}

// HandleMessage processes a message, logging instead of returning failures.
// It is the realtime channel callback.
func (p *Processor) HandleMessage(payload []byte) {
	outcome, err := p.Process(payload)
	if err != nil {
		logrus.Warnf("dropping realtime message: %v", err)
		return
	}
	logrus.Debugf("applied delta keys %v, invalidated %v", outcome.Applied, outcome.Invalidated)
}
