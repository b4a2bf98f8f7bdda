package redis

import (
	"context"

	"github.com/c14220110/poliklinik-analytics/config"
	"github.com/go-redis/redis/v8"
)

// Client is an alias so callers don't need to import go-redis directly.
type Client = redis.Client

func NewRedisClient(cfg *config.Config) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
}

func Ping(ctx context.Context, client *redis.Client) error {
	return client.Ping(ctx).Err()
}
