// File: utils/cache.go
package utils

import (
	"context"
	"fmt"
	"time"

	"hussboss/config"

	"github.com/go-redis/redis/v8"
)

// SessionCacheClient is the redis client backing the session slots.
var SessionCacheClient *redis.Client

// InitSessionCache connects the session slot client (DB index REDIS_SESSION_DB).
func InitSessionCache() error {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisSessionDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := client.Ping(ctx).Result(); err != nil {
		return fmt.Errorf("failed to connect to Redis (Session): %w", err)
	}
	SessionCacheClient = client
	return nil
}

// GetSessionCacheClient returns the session slot client, connecting on first use.
func GetSessionCacheClient() (*redis.Client, error) {
	if SessionCacheClient == nil {
		if err := InitSessionCache(); err != nil {
			return nil, err
		}
	}
	return SessionCacheClient, nil
}
