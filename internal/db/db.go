// Package db defines the key-value store contract used by the intent cache.
package db

import (
	"context"
	"time"
)

// Store is a minimal key-value store with TTL support.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Ping(ctx context.Context) error
	WaitForReady(ctx context.Context, timeout time.Duration) error
	Close()
}
