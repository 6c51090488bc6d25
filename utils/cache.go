package utils

import (
	"context"
	"log"
	"time"

	"github.com/go-redis/redis/v8"

	"dockplan/config"
)

// AuthCacheClient is the dedicated client for authorization caching. Session
// token hashes live here; the purge queue uses its own Redis DB via asynq.
var AuthCacheClient *redis.Client

// InitAuthCache initializes the Redis client for authorization caching
// (using the auth DB from AppConfig).
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

// GetAuthCacheClient returns the Redis client for authorization caching.
func GetAuthCacheClient() *redis.Client {
	if AuthCacheClient == nil {
		InitAuthCache()
	}
	return AuthCacheClient
}
