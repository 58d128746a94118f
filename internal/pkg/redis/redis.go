package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Client wraps go-redis for the application.
type Client struct {
	rdb *redis.Client
}

// Connect creates a Redis client and verifies connectivity.
func Connect(url string) (*Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}

	rdb := redis.NewClient(opts)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return &Client{rdb: rdb}, nil
}

// Ping checks connectivity.
func (c *Client) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}

// Close releases the connection pool.
func (c *Client) Close() error {
	return c.rdb.Close()
}

// Hit increments the counter for key in the current fixed window and returns
// the new count. INCR and PEXPIRE run in one transaction, so every counted key
// carries a TTL of one window plus a second.
func (c *Client) Hit(ctx context.Context, key string, window time.Duration) (int64, error) {
	if window <= 0 {
		window = time.Second
	}
	bucket := time.Now().UnixNano() / int64(window)
	windowKey := fmt.Sprintf("%s:%d", key, bucket)

	pipe := c.rdb.TxPipeline()
	incr := pipe.Incr(ctx, windowKey)
	pipe.PExpire(ctx, windowKey, window+time.Second)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, fmt.Errorf("rate limit window %s: %w", windowKey, err)
	}
	return incr.Val(), nil
}
