package storage

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// redisKeyPrefix namespaces slice keys in a shared Redis instance.
	redisKeyPrefix = "slice:"
	redisOpTimeout = 3 * time.Second
)

// Redis is a Backend storing each slice as one Redis string key.
type Redis struct {
	client *redis.Client
}

// OpenRedis connects to Redis and verifies the connection with a ping.
func OpenRedis(redisURI string) (*Redis, error) {
	opt, err := redis.ParseURL(redisURI)
	if err != nil {
		return nil, err
	}

	// Pool and timeout settings for better resilience
	opt.PoolSize = 10
	opt.MinIdleConns = 5
	opt.MaxRetries = 3
	opt.DialTimeout = 5 * time.Second
	opt.ReadTimeout = 3 * time.Second
	opt.WriteTimeout = 3 * time.Second
	opt.ConnMaxIdleTime = 5 * time.Minute

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Redis{client: client}, nil
}

func (r *Redis) Get(key string) (string, bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()

	val, err := r.client.Get(ctx, redisKeyPrefix+key).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return val, true, nil
}

func (r *Redis) Set(key, value string) error {
	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()
	return r.client.Set(ctx, redisKeyPrefix+key, value, 0).Err()
}

func (r *Redis) Delete(key string) error {
	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()
	return r.client.Del(ctx, redisKeyPrefix+key).Err()
}

func (r *Redis) Close() error { return r.client.Close() }

// Client exposes the underlying connection for collaborators that share it
// (e.g. the Redis-backed rate limiter).
func (r *Redis) Client() *redis.Client { return r.client }
