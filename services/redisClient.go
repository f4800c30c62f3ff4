package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	RedisClient *redis.Client
	oneRedis    sync.Once
)

// ConnectRedis returns a singleton Redis client and checks it answers a ping.
func ConnectRedis(host string) (*redis.Client, error) {
	oneRedis.Do(func() {
		RedisClient = redis.NewClient(&redis.Options{
			Addr: host,
			DB:   0,
		})
	})
	return RedisClient, PingRedis()
}

func PingRedis() error {
	if RedisClient == nil {
		return errors.New("redis client not configured")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return RedisClient.Ping(ctx).Err()
}
