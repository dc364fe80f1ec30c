package services

import (
	"context"
	"time"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
)

// Cache helpers used by the list endpoints. All of them tolerate a nil
// client so a missing Redis degrades to plain database reads.

func GetFromRedis(ctx context.Context, rdb *redis.Client, key string, dest interface{}) error {
	if rdb == nil {
		return redis.Nil
	}
	val, err := rdb.Get(ctx, key).Result()
	if err != nil {
		return err
	}
	return json.Unmarshal([]byte(val), dest)
}

func SetToRedis(ctx context.Context, rdb *redis.Client, key string, value []byte, ttl time.Duration) error {
	if rdb == nil {
		return nil
	}
	return rdb.Set(ctx, key, value, ttl).Err()
}

func DeleteFromRedis(ctx context.Context, rdb *redis.Client, keys ...string) error {
	if rdb == nil || len(keys) == 0 {
		return nil
	}
	return rdb.Del(ctx, keys...).Err()
}
