// Package cache provides the read-through cache used for report snapshots.
package cache

import (
	"context"
	"time"
)

// Cache stores opaque values by key. A miss is reported as (nil, false, nil).
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}
