// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package section

import (
	"fmt"
	"sync"
)

// Registry manages the configured sections.
// It provides thread-safe registration and lookup, preserving registration order.
type Registry struct {
	sections map[string]Section
	byKey    map[string]Section
	order    []string
	mu       sync.RWMutex
}

// NewRegistry creates a new empty section registry.
func NewRegistry() *Registry {
	return &Registry{
		sections: make(map[string]Section),
		byKey:    make(map[string]Section),
	}
}

// Register adds a section to the registry.
// Returns an error if a section with the same ID already exists.
func (r *Registry) Register(s Section) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.sections[s.ID()]; exists {
		return fmt.Errorf("section %s already registered", s.ID())
	}

	r.sections[s.ID()] = s
	r.byKey[s.CacheKey()] = s
	r.order = append(r.order, s.ID())
	return nil
}

// Get returns a section by ID, or nil.
func (r *Registry) Get(id string) Section {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.sections[id]
}

// GetByCacheKey returns the section owning a cache key, or nil.
func (r *Registry) GetByCacheKey(key string) Section {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.byKey[key]
}

// GetAll returns all registered sections in registration order.
func (r *Registry) GetAll() []Section {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Section, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.sections[id])
	}
	return out
}

// GetAllEnabled returns all enabled sections in registration order.
func (r *Registry) GetAllEnabled() []Section {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []Section
	for _, id := range r.order {
		if s := r.sections[id]; s.Config().Enabled {
			out = append(out, s)
		}
	}
	return out
}

// Count returns the number of registered sections.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.sections)
}
