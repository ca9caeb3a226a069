package repository

import (
	"context"
	"time"
)

// KVStore abstracts keyed state with metered lifetime.
// Implementations: Redis (production) or in-memory (local dev / tests).
//
// Get returns (nil, nil) for a missing or expired key. Set always applies
// ttl as the new retention window. ExtendTTL bumps the key's remaining
// lifetime to target, but only when it dropped below min; keys without a
// TTL or already gone are left alone.
type KVStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	ExtendTTL(ctx context.Context, key string, min, target time.Duration) error
	Exists(ctx context.Context, key string) (bool, error)
}
