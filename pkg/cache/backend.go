// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package cache

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned by a backend when a key holds no live entry.
var ErrNotFound = errors.New("cache entry not found")

// Entry is one cached section response.
type Entry struct {
	Data     []byte    `json:"data"`
	StoredAt time.Time `json:"storedAt"`
}

// Age returns how long ago the entry was fetched.
func (e *Entry) Age(now time.Time) time.Duration {
	return now.Sub(e.StoredAt)
}

// Backend stores raw entries. ttl is the retention of an entry, not its
// freshness; staleness is decided by the QueryCache.
type Backend interface {
	Get(ctx context.Context, key string) (*Entry, error)
	Set(ctx context.Context, key string, entry *Entry, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}
