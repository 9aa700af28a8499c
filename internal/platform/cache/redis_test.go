package cache

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	redisModule "github.com/testcontainers/testcontainers-go/modules/redis"

	"photo-gallery/internal/config"
	"photo-gallery/internal/domain/photo"
)

func TestNewRedisClient(t *testing.T) {
	tests := []struct {
		name   string
		config config.CacheConfig
	}{
		{name: "cache disabled", config: config.CacheConfig{Enabled: false}},
		{
			name: "unreachable address",
			config: config.CacheConfig{
				Enabled:     true,
				Address:     "127.0.0.1:1",
				DialTimeout: 200 * time.Millisecond,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := NewRedisClient(context.Background(), tt.config)
			assert.Error(t, err)
			assert.Nil(t, client)
		})
	}
}

func TestRedisClient_UnavailableServer(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", DialTimeout: 100 * time.Millisecond, MaxRetries: -1})
	client := NewRedisClientFromClient(rdb, 0)
	defer client.Close()

	_, err := client.GetPhotoList(context.Background())
	assert.ErrorIs(t, err, photo.ErrCacheUnavailable)

	err = client.SetPhotoList(context.Background(), nil, 0)
	assert.ErrorIs(t, err, photo.ErrCacheUnavailable)

	assert.ErrorIs(t, client.InvalidatePhotoList(context.Background()), photo.ErrCacheUnavailable)
}

func getTestRedisClient(t *testing.T) *RedisClient {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	container, err := redisModule.Run(ctx, "valkey/valkey:7-alpine")
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	endpoint, err := container.Endpoint(ctx, "")
	require.NoError(t, err)

	client, err := NewRedisClient(ctx, config.CacheConfig{
		Enabled:     true,
		Address:     endpoint,
		DefaultTTL:  time.Minute,
		DialTimeout: 5 * time.Second,
		PoolSize:    2,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	return client
}

func TestRedisClient_PhotoListOperations(t *testing.T) {
	client := getTestRedisClient(t)
	ctx := context.Background()

	_, err := client.GetPhotoList(ctx)
	assert.ErrorIs(t, err, photo.ErrCacheMiss)

	created := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	photos := []*photo.Photo{
		{ID: 2, Description: "Newer", FileName: "b.jpg", CreatedAt: created.Add(time.Hour)},
		{ID: 1, Description: "Older", FileName: "a.jpg", CreatedAt: created},
	}
	require.NoError(t, client.SetPhotoList(ctx, photos, 0))

	cached, err := client.GetPhotoList(ctx)
	require.NoError(t, err)
	require.Len(t, cached, 2)
	assert.Equal(t, int64(2), cached[0].ID)
	assert.True(t, cached[1].CreatedAt.Equal(created))

	require.NoError(t, client.InvalidatePhotoList(ctx))
	_, err = client.GetPhotoList(ctx)
	assert.ErrorIs(t, err, photo.ErrCacheMiss)

	require.NoError(t, client.SetPhotoList(ctx, nil, 0))
	empty, err := client.GetPhotoList(ctx)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestRedisClient_TTLAndFlush(t *testing.T) {
	client := getTestRedisClient(t)
	ctx := context.Background()

	require.NoError(t, client.Set(ctx, "k", map[string]int{"a": 1}, 50*time.Millisecond))
	require.Eventually(t, func() bool {
		var v map[string]int
		return client.Get(ctx, "k", &v) == photo.ErrCacheMiss
	}, 2*time.Second, 20*time.Millisecond)

	require.NoError(t, client.Set(ctx, "k2", "v", 0))
	require.NoError(t, client.FlushCache(ctx))
	var s string
	assert.ErrorIs(t, client.Get(ctx, "k2", &s), photo.ErrCacheMiss)

	assert.NoError(t, client.Health(ctx))
}
