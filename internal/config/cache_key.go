package config

import (
	"fmt"
)

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// SessionKey returns the cache key holding a user's active session JTI.
func (r *CacheKeyStruct) SessionKey(userID string) string {
	return fmt.Sprintf("login:%s", userID)
}

// PublicGuidesKey returns the cache key for the public guide listing.
func (r *CacheKeyStruct) PublicGuidesKey() string {
	return "guides:public"
}

var CacheKey = NewCacheKeyStruct()
