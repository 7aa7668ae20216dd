package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/careerconnect/jobboard/internal/core/domain"
)

const defaultIdentityTTL = time.Minute

// IdentityCache stores resolved identities so the auth middleware does not
// hit MongoDB on every request.
// Key format: identity:<user_id>
type IdentityCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewIdentityCache wraps client. A non-positive ttl falls back to one minute.
func NewIdentityCache(client *redis.Client, ttl time.Duration) *IdentityCache {
	if ttl <= 0 {
		ttl = defaultIdentityTTL
	}
	return &IdentityCache{client: client, ttl: ttl}
}

// Get returns the cached identity, or nil on a miss.
func (c *IdentityCache) Get(ctx context.Context, userID string) (*domain.Identity, error) {
	raw, err := c.client.Get(ctx, identityKey(userID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("identity cache get: %w", err)
	}

	var ident domain.Identity
	if err := json.Unmarshal(raw, &ident); err != nil {
		// unreadable entry; drop it and report a miss
		_ = c.client.Del(ctx, identityKey(userID)).Err()
		return nil, nil
	}
	return &ident, nil
}

func (c *IdentityCache) Set(ctx context.Context, ident *domain.Identity) error {
	raw, err := json.Marshal(ident)
	if err != nil {
		return fmt.Errorf("identity cache encode: %w", err)
	}
	return c.client.Set(ctx, identityKey(ident.ID), raw, c.ttl).Err()
}

func (c *IdentityCache) Invalidate(ctx context.Context, userID string) error {
	return c.client.Del(ctx, identityKey(userID)).Err()
}

func identityKey(userID string) string {
	return "identity:" + userID
}
