package helper

import (
	"context"
	"log"
	"parking_manager/database"
	"time"
)

const blacklistPrefix = "token:blacklist:"

// BlacklistToken voids an access token until it would have expired anyway.
func BlacklistToken(token string, ttl time.Duration) {
	if database.Redis == nil || token == "" {
		return
	}
	if ttl <= 0 {
		ttl = time.Minute
	}
	if err := database.Redis.Set(context.Background(), blacklistPrefix+token, "1", ttl).Err(); err != nil {
		log.Printf("failed to blacklist token: %v", err)
	}
}

// IsTokenBlacklisted is best effort: if redis is unavailable the token is
// treated as live, matching the stateless-JWT fallback.
func IsTokenBlacklisted(token string) bool {
	if database.Redis == nil || token == "" {
		return false
	}
	n, err := database.Redis.Exists(context.Background(), blacklistPrefix+token).Result()
	if err != nil {
		return false
	}
	return n > 0
}
