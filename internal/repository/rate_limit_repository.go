package repository

import (
	"context"
	"crypto/sha256"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type RateLimitRepository interface {
	// CheckRateLimit counts one hit against key and reports whether the caller is still within requests per window.
	CheckRateLimit(ctx context.Context, key string, requests int, window time.Duration) (bool, error)
}

type redisRateLimitRepository struct {
	client *redis.Client
	prefix string
}

func NewRedisRateLimitRepository(client *redis.Client) RateLimitRepository {
	return &redisRateLimitRepository{client: client, prefix: "menupage:rl:"}
}

// CheckRateLimit uses a fixed window: the first hit creates the counter and starts its TTL.
func (r *redisRateLimitRepository) CheckRateLimit(ctx context.Context, key string, requests int, window time.Duration) (bool, error) {
	hashedKey := r.prefix + fmt.Sprintf("%x", sha256.Sum256([]byte(key)))

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	count, err := r.client.Incr(ctx, hashedKey).Result()
	if err != nil {
		return true, err
	}
	if count == 1 {
		if err := r.client.Expire(ctx, hashedKey, window).Err(); err != nil {
			return true, err
		}
	}
	return count <= int64(requests), nil
}
