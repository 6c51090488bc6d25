package user

import (
	"context"
	"time"

	"dockplan/utils"
)

// RedisTokenCache keeps session token hashes in the auth cache, keyed per user.
type RedisTokenCache struct{}

// NewRedisTokenCache returns a TokenCache backed by the shared auth cache client.
func NewRedisTokenCache() *RedisTokenCache {
	return &RedisTokenCache{}
}

func (RedisTokenCache) Store(userID, tokenHash string, ttl time.Duration) error {
	cacheKey := utils.AuthCachePrefix + userID
	return utils.GetAuthCacheClient().Set(context.Background(), cacheKey, tokenHash, ttl).Err()
}

func (RedisTokenCache) Drop(userID string) error {
	cacheKey := utils.AuthCachePrefix + userID
	return utils.GetAuthCacheClient().Del(context.Background(), cacheKey).Err()
}
