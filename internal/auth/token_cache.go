package auth

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"

	"ms-parcels/internal/models"
)

const verifiedTokenKeyPrefix = "verified_token:"

// CachingVerifier memoizes successful verifications in Redis, keyed by
// a hash of the raw token. Failed verifications are never cached. A
// Redis outage degrades to verifying every request.
type CachingVerifier struct {
	Next   TokenVerifier
	Client *redis.Client
	TTL    time.Duration
}

func NewCachingVerifier(next TokenVerifier, client *redis.Client, ttl time.Duration) *CachingVerifier {
	return &CachingVerifier{Next: next, Client: client, TTL: ttl}
}

func (c *CachingVerifier) Verify(ctx context.Context, rawToken string) (*models.Principal, error) {
	key := cacheKey(rawToken)

	if c.Client != nil {
		cached, err := c.Client.Get(ctx, key).Result()
		if err == nil {
			var principal models.Principal
			if err := json.Unmarshal([]byte(cached), &principal); err == nil {
				return &principal, nil
			}
		}
	}

	principal, err := c.Next.Verify(ctx, rawToken)
	if err != nil {
		return nil, err
	}

	if c.Client != nil {
		if payload, err := json.Marshal(principal); err == nil {
			_ = c.Client.Set(ctx, key, payload, c.TTL).Err()
		}
	}

	return principal, nil
}

func cacheKey(rawToken string) string {
	sum := sha256.Sum256([]byte(rawToken))
	return verifiedTokenKeyPrefix + hex.EncodeToString(sum[:])
}
