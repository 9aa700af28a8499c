package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"photo-gallery/internal/config"
	"photo-gallery/internal/domain/photo"
)

const photoListKey = "photos:list"

// RedisClient wraps go-redis with the photo gallery cache operations.
// It works against Redis and Valkey alike.
type RedisClient struct {
	client     *redis.Client
	defaultTTL time.Duration
}

// NewRedisClient connects using cfg and verifies the connection
func NewRedisClient(ctx context.Context, cfg config.CacheConfig) (*RedisClient, error) {
	if !cfg.Enabled {
		return nil, errors.New("cache is disabled")
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:            cfg.Address,
		Password:        cfg.Password,
		DB:              cfg.Database,
		MaxRetries:      cfg.MaxRetries,
		MinRetryBackoff: cfg.MinRetryBackoff,
		MaxRetryBackoff: cfg.MaxRetryBackoff,
		DialTimeout:     cfg.DialTimeout,
		ReadTimeout:     cfg.ReadTimeout,
		WriteTimeout:    cfg.WriteTimeout,
		PoolSize:        cfg.PoolSize,
		MinIdleConns:    cfg.MinIdleConns,
		PoolTimeout:     cfg.PoolTimeout,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close() //nolint:errcheck // error path
		return nil, fmt.Errorf("failed to connect to Redis/Valkey: %w", err)
	}

	return NewRedisClientFromClient(rdb, cfg.DefaultTTL), nil
}

// NewRedisClientFromClient wraps an existing go-redis client
func NewRedisClientFromClient(rdb *redis.Client, defaultTTL time.Duration) *RedisClient {
	if defaultTTL <= 0 {
		defaultTTL = time.Minute
	}
	return &RedisClient{client: rdb, defaultTTL: defaultTTL}
}

// GetPhotoList returns the cached newest-first photo list, or photo.ErrCacheMiss
func (r *RedisClient) GetPhotoList(ctx context.Context) ([]*photo.Photo, error) {
	var photos []*photo.Photo
	if err := r.Get(ctx, photoListKey, &photos); err != nil {
		return nil, err
	}
	return photos, nil
}

// SetPhotoList caches the photo list. ttl <= 0 uses the default TTL.
func (r *RedisClient) SetPhotoList(ctx context.Context, photos []*photo.Photo, ttl time.Duration) error {
	if photos == nil {
		photos = []*photo.Photo{}
	}
	return r.Set(ctx, photoListKey, photos, ttl)
}

// InvalidatePhotoList drops the cached photo list
func (r *RedisClient) InvalidatePhotoList(ctx context.Context) error {
	return r.Delete(ctx, photoListKey)
}

// Get retrieves a cached value by key and unmarshals it into result
func (r *RedisClient) Get(ctx context.Context, key string, result any) error {
	val, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return photo.ErrCacheMiss
		}
		return fmt.Errorf("%w: %w", photo.ErrCacheUnavailable, err)
	}

	if err := json.Unmarshal(val, result); err != nil {
		return fmt.Errorf("failed to unmarshal cached value: %w", err)
	}

	return nil
}

// Set caches a value as JSON. ttl <= 0 uses the default TTL.
func (r *RedisClient) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value: %w", err)
	}

	if ttl <= 0 {
		ttl = r.defaultTTL
	}

	if err := r.client.Set(ctx, key, data, ttl).Err(); err != nil {
		return fmt.Errorf("%w: %w", photo.ErrCacheUnavailable, err)
	}

	return nil
}

// Delete removes a value from cache by key
func (r *RedisClient) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("%w: %w", photo.ErrCacheUnavailable, err)
	}
	return nil
}

// Health checks if the Redis/Valkey connection is healthy
func (r *RedisClient) Health(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis/valkey health check failed: %w", err)
	}
	return nil
}

// FlushCache clears the selected database
func (r *RedisClient) FlushCache(ctx context.Context) error {
	if err := r.client.FlushDB(ctx).Err(); err != nil {
		return fmt.Errorf("failed to flush cache: %w", err)
	}
	return nil
}

// Close closes the Redis/Valkey connection
func (r *RedisClient) Close() error {
	return r.client.Close()
}
