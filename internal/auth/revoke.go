package auth

import (
	"context"
	"github.com/redis/go-redis/v9"
	"github.com/shopfront/shopfront-api/internal/redisx"
	"time"
)

// Revoker keeps logged-out token ids until the token would have expired anyway.
type Revoker struct {
	Redis redis.Cmdable
}

func (r *Revoker) Revoke(ctx context.Context, c *Claims) error {
	ttl := time.Minute
	if c.ExpiresAt != nil {
		if left := time.Until(c.ExpiresAt.Time); left > 0 {
			ttl = left
		}
	}
	return r.Redis.Set(ctx, redisx.RevokedTokenKey(c.ID), "1", ttl).Err()
}

func (r *Revoker) Revoked(ctx context.Context, jti string) (bool, error) {
	return redisx.Exists(ctx, r.Redis, redisx.RevokedTokenKey(jti))
}
