package service

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
)

// TokenBlacklist remembers logged-out token ids until the tokens expire.
type TokenBlacklist struct {
	Redis *redis.Client
}

func NewTokenBlacklist(rdb *redis.Client) *TokenBlacklist {
	return &TokenBlacklist{Redis: rdb}
}

func blacklistKey(jti string) string {
	return "cbt:revoked:" + jti
}

func (b *TokenBlacklist) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return b.Redis.Set(ctx, blacklistKey(jti), 1, ttl).Err()
}

func (b *TokenBlacklist) IsRevoked(ctx context.Context, jti string) (bool, error) {
	n, err := b.Redis.Exists(ctx, blacklistKey(jti)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
