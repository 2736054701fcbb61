// Package storage is the local key/value persistence used by the session
// store: one SQLite table of opaque values with an optional expiry.
package storage

import (
	"context"
	"time"
)

// Entry is a stored value. ExpiresAt is nil for entries that never expire.
type Entry struct {
	Key       string
	Value     []byte
	ExpiresAt *time.Time
}

// Repository persists entries. Get returns (nil, nil) for a missing key.
type Repository interface {
	Get(ctx context.Context, key string) (*Entry, error)
	Set(ctx context.Context, e Entry) error
	Delete(ctx context.Context, key string) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
