// Package cache stores rendered frames between benchmark runs.
//
// Three backends implement [Cache]: [NullCache] for disabled caching,
// [FileCache] for the CLI and [RedisCache] for shared use by the HTTP
// server. Keys come from a [Keyer] so every caller derives the same key for
// the same render.
package cache

import (
	"context"
	"time"
)

// DefaultTTL is how long rendered frames are kept.
const DefaultTTL = 7 * 24 * time.Hour

// Cache is a byte store with per entry expiry.
type Cache interface {
	// Get returns the data for key. A miss is (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A zero ttl never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}
