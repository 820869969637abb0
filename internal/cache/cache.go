package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// Client wraps redis.Client but fails safe by treating every redis error as a cache miss.
// A nil *Client is valid and caches nothing.
type Client struct {
	client *redis.Client
	prefix string
}

// New wraps an existing redis client. Keys are namespaced with prefix.
func New(rdb *redis.Client, prefix string) *Client {
	if rdb == nil {
		return nil
	}
	return &Client{client: rdb, prefix: prefix}
}

func (c *Client) key(k string) string {
	return c.prefix + k
}

// GetJSON decodes the cached value into dst. It reports false on a miss, a redis
// failure or an undecodable payload.
func (c *Client) GetJSON(ctx context.Context, key string, dst any) bool {
	if c == nil || c.client == nil {
		return false
	}
	res, err := c.client.Get(ctx, c.key(key)).Bytes()
	if err != nil {
		return false
	}
	return json.Unmarshal(res, dst) == nil
}

// SetJSON stores value with TTL, ignoring redis errors.
func (c *Client) SetJSON(ctx context.Context, key string, value any, ttl time.Duration) {
	if c == nil || c.client == nil {
		return
	}
	payload, err := json.Marshal(value)
	if err != nil {
		return
	}
	_ = c.client.Set(ctx, c.key(key), payload, ttl).Err()
}

// Delete removes a key, ignoring redis errors.
func (c *Client) Delete(ctx context.Context, key string) {
	if c == nil || c.client == nil {
		return
	}
	_ = c.client.Del(ctx, c.key(key)).Err()
}
