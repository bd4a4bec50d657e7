package repository

import (
	"access-request-server/config"
	"access-request-server/internal/model"
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) (*CacheRepository, *miniredis.Miniredis) {
	t.Helper()
	server := miniredis.RunT(t)
	client := &config.RedisClient{Client: redis.NewClient(&redis.Options{Addr: server.Addr()})}
	t.Cleanup(func() { client.Close() })
	return NewCacheRepository(client, time.Minute), server
}

func TestCacheRepository_SetGet(t *testing.T) {
	cache, server := newTestCache(t)
	ctx := context.Background()

	record, err := cache.GetRecord(ctx, 1)
	require.NoError(t, err)
	assert.Nil(t, record)

	require.NoError(t, cache.SetRecord(ctx, &model.Record{ID: 1, OwnerUserID: 10, Title: "Doc", AccessRight: "restricted"}))
	assert.True(t, server.Exists("record:1"))
	assert.Equal(t, time.Minute, server.TTL("record:1"))

	record, err = cache.GetRecord(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, record)
	assert.Equal(t, "Doc", record.Title)
}

func TestCacheRepository_Expiry(t *testing.T) {
	cache, server := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.SetRecord(ctx, &model.Record{ID: 2, Title: "Doc"}))
	server.FastForward(2 * time.Minute)

	record, err := cache.GetRecord(ctx, 2)
	require.NoError(t, err)
	assert.Nil(t, record)
}

func TestCacheRepository_CorruptedValue(t *testing.T) {
	cache, server := newTestCache(t)

	require.NoError(t, server.Set("record:3", "{not json"))
	_, err := cache.GetRecord(context.Background(), 3)
	assert.Error(t, err)
}
