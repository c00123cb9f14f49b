// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package action

import (
	"fmt"
	"sort"
	"sync"
)

// Registry holds the mutations offered by the dashboard, keyed by ID. IDs of
// actions switched off in the manifest are remembered so a request for one
// can be told apart from a typo.
type Registry struct {
	mu       sync.RWMutex
	actions  map[string]Action
	disabled map[string]bool
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		actions:  make(map[string]Action),
		disabled: make(map[string]bool),
	}
}

// Register adds an action. IDs are unique across enabled and disabled
// actions.
func (r *Registry) Register(action Action) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := action.ID()
	if _, exists := r.actions[id]; exists || r.disabled[id] {
		return fmt.Errorf("action %s already registered", id)
	}
	r.actions[id] = action
	return nil
}

// MarkDisabled records an action ID configured but switched off.
func (r *Registry) MarkDisabled(actionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.actions[actionID]; !exists {
		r.disabled[actionID] = true
	}
}

// IsDisabled reports whether actionID was configured but switched off.
func (r *Registry) IsDisabled(actionID string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.disabled[actionID]
}

// Get returns the enabled action with the given ID, or nil.
func (r *Registry) Get(actionID string) Action {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.actions[actionID]
}

// IDs returns the enabled action IDs in sorted order.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0, len(r.actions))
	for id := range r.actions {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Count returns the number of enabled actions.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.actions)
}
