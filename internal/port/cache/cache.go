// Package cache defines the port interface for the session key-value store.
package cache

import (
	"context"
	"errors"
	"time"
)

// ErrRejected is returned when the store declines to keep a value.
var ErrRejected = errors.New("cache: value rejected")

// Cache is a byte-oriented key-value store with per-entry TTL.
// A successful Set is visible to the next Get.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
