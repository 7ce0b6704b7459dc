package utils

import (
	"context"
	"log"
	"time"

	"citylinker/config"

	"github.com/go-redis/redis/v8"
)

// AuthCacheClient is the dedicated client for sessions and token revocation.
var AuthCacheClient *redis.Client

// InitAuthCache initializes the Redis client for auth state (sessions, token
// denylist, OAuth state nonces).
func InitAuthCache() {
	AuthCacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisAuthDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err := AuthCacheClient.Ping(ctx).Result()
	if err != nil {
		log.Fatalf("Failed to connect to Redis (Auth Cache): %v", err)
	}
}

// GetAuthCacheClient returns the Redis client for auth state.
func GetAuthCacheClient() *redis.Client {
	if AuthCacheClient == nil {
		InitAuthCache()
	}
	return AuthCacheClient
}
