package implementations

import (
	"context"
	"time"

	"photo-gallery/internal/domain/photo"
	"photo-gallery/internal/observability"
	"photo-gallery/internal/platform/cache"
)

// CacheService implements photo.CacheService on Redis/Valkey. A nil client
// turns every read into a miss and every write into a no-op.
type CacheService struct {
	client *cache.RedisClient
	ttl    time.Duration
	logger *observability.Logger
}

var _ photo.CacheService = (*CacheService)(nil)

// NewCacheService creates a new cache service
func NewCacheService(client *cache.RedisClient, ttl time.Duration, logger *observability.Logger) *CacheService {
	if logger == nil {
		logger = observability.NopLogger()
	}
	return &CacheService{
		client: client,
		ttl:    ttl,
		logger: logger.WithComponent("photo-cache"),
	}
}

// GetPhotoList retrieves the cached photo list
func (c *CacheService) GetPhotoList(ctx context.Context) ([]*photo.Photo, error) {
	if c.client == nil {
		return nil, photo.ErrCacheUnavailable
	}
	return c.client.GetPhotoList(ctx)
}

// SetPhotoList caches the photo list
func (c *CacheService) SetPhotoList(ctx context.Context, photos []*photo.Photo, ttl time.Duration) error {
	if c.client == nil {
		return nil
	}
	if ttl <= 0 {
		ttl = c.ttl
	}
	return c.client.SetPhotoList(ctx, photos, ttl)
}

// InvalidatePhotoList clears the cached photo list
func (c *CacheService) InvalidatePhotoList(ctx context.Context) error {
	if c.client == nil {
		return nil
	}
	if err := c.client.InvalidatePhotoList(ctx); err != nil {
		c.logger.Warn(ctx).Err(err).Msg("failed to invalidate photo list cache")
		return err
	}
	return nil
}

// Health checks if the cache service is healthy
func (c *CacheService) Health(ctx context.Context) error {
	if c.client == nil {
		return photo.ErrCacheUnavailable
	}
	return c.client.Health(ctx)
}

// Enabled reports whether a cache backend is configured
func (c *CacheService) Enabled() bool {
	return c.client != nil
}
