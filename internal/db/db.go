package db

import (
	"context"

	"github.com/go-redis/redis/v8"

	"github.com/marketlens/bhavview/internal/config"
)

// ConnectRedis establishes a connection to Redis
func ConnectRedis(config config.RedisConfig) (*redis.Client, error) {
	opt, err := redis.ParseURL(config.URL)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opt)
	ctx := context.Background()

	// Test the connection
	_, err = client.Ping(ctx).Result()
	if err != nil {
		return nil, err
	}

	return client, nil
}
