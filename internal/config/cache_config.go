package config

import "time"

const redisAddrVar = "REDIS_ADDR"

type CacheConfig interface {
	GetRedisAddr() string
	GetDirectoryCacheTTL() time.Duration
}

type Cache struct{}

var _ CacheConfig = Cache{}

// GetRedisAddr returns the Redis address for the shared directory cache.
// Empty means no Redis; the in-process cache is used instead.
func (Cache) GetRedisAddr() string {
	return GetEnv(redisAddrVar, "")
}

func (Cache) GetDirectoryCacheTTL() time.Duration {
	return 5 * time.Minute
}
