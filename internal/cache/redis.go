package cache

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/viewtube/backend/internal/logger"
	"go.uber.org/zap"
)

// Client wraps the Redis connection used for rate limiting and hot counters
type Client struct {
	rdb *redis.Client
}

var client *Client

// Initialize connects to Redis. A missing REDIS_URL is not fatal: callers
// fall back to letting requests through unlimited.
func Initialize() error {
	addr := os.Getenv("REDIS_URL")
	if addr == "" {
		addr = "localhost:6379"
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}

	client = &Client{rdb: rdb}
	logger.Info("Redis connected", zap.String("addr", addr))
	return nil
}

// Get returns the global client, or nil when Redis is unavailable
func Get() *Client {
	return client
}

// Close shuts the connection down
func Close() error {
	if client == nil {
		return nil
	}
	return client.rdb.Close()
}

// IncrWithWindow increments key and sets its expiry when the key is new.
// Returns the post-increment count.
func (c *Client) IncrWithWindow(ctx context.Context, key string, window time.Duration) (int64, error) {
	pipe := c.rdb.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.ExpireNX(ctx, key, window)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, err
	}
	return incr.Val(), nil
}
