// Package sessioncache is a Redis cache-aside layer for session resolution.
// Keys are token hashes, values are the serialized resolved identity. The
// database stays authoritative. Revocation writes a tombstone rather than
// deleting the key, and Put never overwrites an existing value, so a
// resolution that read the row just before it was revoked cannot re-cache
// the dead identity.
package sessioncache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/casamia/boardinghouse-api/internal/domain"
)

type SessionCache struct {
	redis *redis.Client
	ttl   time.Duration
}

func New(redisClient *redis.Client, ttl time.Duration) *SessionCache {
	return &SessionCache{redis: redisClient, ttl: ttl}
}

// tombstone marks a revoked token hash. Tokens are 256-bit random values
// and never reissued, so the tombstone only has to outlive the entry it
// replaces; it carries the same TTL.
const tombstone = "revoked"

func key(tokenHash string) string {
	return fmt.Sprintf("session:%s", tokenHash)
}

// Get returns the cached identity for a token hash, or (nil, nil) on miss.
func (c *SessionCache) Get(ctx context.Context, tokenHash string) (*domain.Identity, error) {
	raw, err := c.redis.Get(ctx, key(tokenHash)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read session cache: %w", err)
	}
	if string(raw) == tombstone {
		// Revoked hash; the store will refuse it.
		return nil, nil
	}

	var identity domain.Identity
	if err := json.Unmarshal(raw, &identity); err != nil {
		// Treat a corrupt entry as a miss and drop it.
		_ = c.redis.Del(ctx, key(tokenHash)).Err()
		return nil, nil
	}
	return &identity, nil
}

// Put stores a resolved identity under its token hash for the session TTL.
// The write is SETNX: if a revocation tombstoned the hash after the caller
// read the row, the stale identity must not replace it.
func (c *SessionCache) Put(ctx context.Context, tokenHash string, identity domain.Identity) error {
	raw, err := json.Marshal(identity)
	if err != nil {
		return fmt.Errorf("failed to encode identity: %w", err)
	}
	if err := c.redis.SetNX(ctx, key(tokenHash), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write session cache: %w", err)
	}
	return nil
}

// Invalidate tombstones a token hash. An unconditional SET, so it wins
// against any concurrent Put regardless of ordering.
func (c *SessionCache) Invalidate(ctx context.Context, tokenHash string) error {
	if err := c.redis.Set(ctx, key(tokenHash), tombstone, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to invalidate session cache: %w", err)
	}
	return nil
}
