// File: utils/cache.go
package utils

import (
	"context"
	"fmt"
	"time"

	"admitdesk/config"

	"github.com/go-redis/redis/v8"
)

var (
	// CacheClient backs the employee contact cache.
	CacheClient *redis.Client
	// PubSubClient carries realtime events between instances.
	PubSubClient *redis.Client
)

// NewRedisClient returns a client for the given logical DB of the configured server.
func NewRedisClient(db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       db,
	})
}

// InitRedis connects the cache and pub/sub clients and pings both.
func InitRedis() error {
	CacheClient = NewRedisClient(config.AppConfig.RedisCacheDB)
	PubSubClient = NewRedisClient(config.AppConfig.RedisPubSubDB)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := CacheClient.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("failed to connect to Redis (cache): %w", err)
	}
	if err := PubSubClient.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("failed to connect to Redis (pubsub): %w", err)
	}
	return nil
}

// RedisClients lists the initialised clients, for health checks and shutdown.
func RedisClients() []*redis.Client {
	var clients []*redis.Client
	for _, c := range []*redis.Client{CacheClient, PubSubClient} {
		if c != nil {
			clients = append(clients, c)
		}
	}
	return clients
}
