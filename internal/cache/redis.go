// Package cache provides Redis-backed caching for comment sentiment results.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"pagepilot/internal/transfer"
)

const sentimentTTL = 24 * time.Hour

type SentimentCache struct {
	client *redis.Client
}

// NewSentimentCache connects to Redis at addr. A failed connection is not
// fatal: the returned cache degrades to a permanent miss so comment analysis
// keeps working without Redis.
func NewSentimentCache(addr string) *SentimentCache {
	var opts *redis.Options
	if strings.Contains(addr, "://") {
		parsed, err := redis.ParseURL(addr)
		if err != nil {
			slog.Warn("invalid redis address, continuing without cache", "error", err)
			return &SentimentCache{}
		}
		opts = parsed
	} else {
		opts = &redis.Options{Addr: addr}
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		slog.Warn("redis unavailable, continuing without cache", "error", err)
		return &SentimentCache{}
	}
	return &SentimentCache{client: client}
}

// NewSentimentCacheFromClient wraps an existing client. Used by tests.
func NewSentimentCacheFromClient(client *redis.Client) *SentimentCache {
	return &SentimentCache{client: client}
}

func key(commentID string) string {
	return "sentiment:" + commentID
}

// Get returns the cached sentiment for a comment, or nil on a miss.
func (c *SentimentCache) Get(ctx context.Context, commentID string) (*transfer.Sentiment, error) {
	if c.client == nil {
		return nil, nil
	}
	raw, err := c.client.Get(ctx, key(commentID)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var s transfer.Sentiment
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// Set stores the sentiment for a comment with a 24h TTL.
func (c *SentimentCache) Set(ctx context.Context, commentID string, s transfer.Sentiment) error {
	if c.client == nil {
		return nil
	}
	raw, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key(commentID), raw, sentimentTTL).Err()
}

// Close releases the underlying Redis connection.
func (c *SentimentCache) Close() error {
	if c.client == nil {
		return nil
	}
	return c.client.Close()
}
