package config

import (
	"fmt"
)

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// UserSessionKey returns the cache key holding a user's active session jti.
func (r *CacheKeyStruct) UserSessionKey(userID int) string {
	return fmt.Sprintf("login:%d", userID)
}

// UserNotifyChannel returns the Redis PubSub channel for a user's
// in-app notification stream.
func (r *CacheKeyStruct) UserNotifyChannel(userID int) string {
	return fmt.Sprintf("user:%d:notify", userID)
}

var CacheKey = NewCacheKeyStruct()
