package kv

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// Redis backs the session store with a Redis instance. Values are
// stored without TTL: the session record lives until overwritten.
type Redis struct {
	client *redis.Client
}

// NewRedis parses a REDIS_URL style URI and returns a connected store.
func NewRedis(redisURL string) (*Redis, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}
	return &Redis{client: redis.NewClient(opt)}, nil
}

func (r *Redis) Get(ctx context.Context, key string) (string, error) {
	v, err := r.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", nil
	}
	return v, err
}

func (r *Redis) Set(ctx context.Context, key, value string) error {
	return r.client.Set(ctx, key, value, 0).Err()
}

func (r *Redis) Close() error {
	return r.client.Close()
}
