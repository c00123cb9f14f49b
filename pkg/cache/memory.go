// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package cache

import (
	"context"
	"fmt"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

const defaultMemorySize = 128

type memoryEntry struct {
	entry     Entry
	expiresAt time.Time
}

// MemoryBackend keeps entries in a bounded in-process LRU.
type MemoryBackend struct {
	lru *lru.Cache[string, memoryEntry]
	now func() time.Time
}

// NewMemoryBackend creates an LRU backend holding at most size entries.
func NewMemoryBackend(size int) (*MemoryBackend, error) {
	if size <= 0 {
		size = defaultMemorySize
	}
	c, err := lru.New[string, memoryEntry](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create lru cache: %w", err)
	}
	return &MemoryBackend{lru: c, now: time.Now}, nil
}

func (m *MemoryBackend) Get(_ context.Context, key string) (*Entry, error) {
	item, ok := m.lru.Get(key)
	if !ok {
		return nil, ErrNotFound
	}
	if !item.expiresAt.IsZero() && !m.now().Before(item.expiresAt) {
		m.lru.Remove(key)
		return nil, ErrNotFound
	}
	entry := item.entry
	entry.Data = append([]byte(nil), item.entry.Data...)
	return &entry, nil
}

func (m *MemoryBackend) Set(_ context.Context, key string, entry *Entry, ttl time.Duration) error {
	item := memoryEntry{
		entry: Entry{
			Data:     append([]byte(nil), entry.Data...),
			StoredAt: entry.StoredAt,
		},
	}
	if ttl > 0 {
		item.expiresAt = m.now().Add(ttl)
	}
	m.lru.Add(key, item)
	return nil
}

func (m *MemoryBackend) Delete(_ context.Context, key string) error {
	m.lru.Remove(key)
	return nil
}

func (m *MemoryBackend) Clear(_ context.Context) error {
	m.lru.Purge()
	return nil
}

// Len reports the number of entries held, expired ones included.
func (m *MemoryBackend) Len() int {
	return m.lru.Len()
}
