package cache

import (
	"context"
	"encoding/json"
	"time"

	"feedthread/internal/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// Redis shares cached pages between instances. Every error is treated as
// a miss so a Redis outage only costs extra store reads.
type Redis struct {
	client *redis.Client
	prefix string
}

func NewRedis(client *redis.Client, prefix string) *Redis {
	return &Redis{client: client, prefix: prefix}
}

// DialRedis connects and pings. Callers fall back to the LRU on error.
func DialRedis(ctx context.Context, addr, password string, db int) (*Redis, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return NewRedis(client, "feedthread:"), nil
}

func (c *Redis) Get(ctx context.Context, key string, dst any) bool {
	data, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if err != nil {
		if err != redis.Nil {
			logger.Warn("redis get failed", zap.String("key", key), zap.Error(err))
		}
		return false
	}
	return json.Unmarshal(data, dst) == nil
}

func (c *Redis) Set(ctx context.Context, key string, v any, ttl time.Duration) {
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, c.prefix+key, data, ttl).Err(); err != nil {
		logger.Warn("redis set failed", zap.String("key", key), zap.Error(err))
	}
}

func (c *Redis) Delete(ctx context.Context, keys ...string) {
	if len(keys) == 0 {
		return
	}
	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = c.prefix + k
	}
	if err := c.client.Del(ctx, full...).Err(); err != nil {
		logger.Warn("redis delete failed", zap.Strings("keys", keys), zap.Error(err))
	}
}

func (c *Redis) Close() error {
	return c.client.Close()
}
