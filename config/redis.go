package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/redis/go-redis/v9"
)

var redisClient *redis.Client

// ConnectRedis returns a shared Redis client, creating it on first use.
func ConnectRedis() (*redis.Client, error) {
	if redisClient != nil {
		return redisClient, nil
	}

	db := 0
	if v := os.Getenv("REDIS_DB"); v != "" {
		db, _ = strconv.Atoi(v)
	}

	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", envOr("REDIS_HOST", "localhost"), envOr("REDIS_PORT", "6379")),
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       db,
	})

	if err := client.Ping(Ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	redisClient = client
	return redisClient, nil
}
