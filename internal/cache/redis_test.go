package cache

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pagepilot/internal/transfer"
)

func testCache(t *testing.T) *SentimentCache {
	t.Helper()
	srv := miniredis.RunT(t)
	return NewSentimentCacheFromClient(redis.NewClient(&redis.Options{Addr: srv.Addr()}))
}

func TestSentimentCache_RoundTrip(t *testing.T) {
	c := testCache(t)
	ctx := context.Background()

	miss, err := c.Get(ctx, "c1")
	require.NoError(t, err)
	assert.Nil(t, miss)

	want := transfer.Sentiment{Label: transfer.SentimentNegative, Confidence: 0.78}
	require.NoError(t, c.Set(ctx, "c1", want))

	got, err := c.Get(ctx, "c1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, want, *got)
}

func TestSentimentCache_KeysAreScopedByComment(t *testing.T) {
	c := testCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "c1", transfer.Sentiment{Label: transfer.SentimentPositive, Confidence: 0.9}))

	got, err := c.Get(ctx, "c2")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSentimentCache_DegradesWithoutRedis(t *testing.T) {
	c := &SentimentCache{}
	ctx := context.Background()

	assert.NoError(t, c.Set(ctx, "c1", transfer.Sentiment{Label: transfer.SentimentNeutral}))

	got, err := c.Get(ctx, "c1")
	assert.NoError(t, err)
	assert.Nil(t, got)
	assert.NoError(t, c.Close())
}
