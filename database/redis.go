package database

import (
	"context"
	"log"
	"parking_manager/config"

	"github.com/redis/go-redis/v9"
)

// Redis backs the lot-availability pub/sub fan-out and the token blacklist.
// It stays nil when ConnectRedis is not called (tests), and callers treat
// that as "feature off".
var Redis *redis.Client

func ConnectRedis() {
	addr := config.ConfigDefault("REDIS_ADDR", "localhost:6379")
	Redis = redis.NewClient(&redis.Options{Addr: addr})

	if err := Redis.Ping(context.Background()).Err(); err != nil {
		log.Printf("redis not reachable at %s: %v", addr, err)
	}
}
