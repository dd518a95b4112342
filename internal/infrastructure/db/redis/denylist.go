package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/akti/portal-api/internal/api/metrics"
)

// Denylist tracks revoked session tokens by their jti until the token
// would have expired anyway. Key format: revoked:<jti>
type Denylist struct {
	client *redis.Client
}

// NewDenylist creates a Denylist wrapping the given Redis client.
func NewDenylist(client *redis.Client) *Denylist {
	return &Denylist{client: client}
}

// Revoke marks the token id as revoked for ttl. Tokens past their
// lifetime need no entry; callers pass the remaining validity.
func (d *Denylist) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	if err := d.client.Set(ctx, d.key(jti), "1", ttl).Err(); err != nil {
		return fmt.Errorf("denylist revoke: %w", err)
	}
	metrics.TokensRevokedTotal.Inc()
	return nil
}

// IsRevoked reports whether the token id has been denylisted.
func (d *Denylist) IsRevoked(ctx context.Context, jti string) (bool, error) {
	n, err := d.client.Exists(ctx, d.key(jti)).Result()
	if err != nil {
		return false, fmt.Errorf("denylist check: %w", err)
	}
	return n > 0, nil
}

func (d *Denylist) key(jti string) string {
	return fmt.Sprintf("revoked:%s", jti)
}
