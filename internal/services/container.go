package services

import (
	"context"
	"database/sql"
	"errors"

	"photo-gallery/internal/config"
	"photo-gallery/internal/domain/photo"
	"photo-gallery/internal/observability"
	"photo-gallery/internal/platform/cache"
	"photo-gallery/internal/platform/database"
	"photo-gallery/internal/platform/storage"
	"photo-gallery/internal/services/implementations"
)

// Container holds all the application dependencies
type Container struct {
	config *config.Config
	db     *sql.DB
	logger *observability.Logger

	// Infrastructure
	storage     *storage.Service
	cacheClient *cache.RedisClient // nil when caching is disabled

	// Repositories
	photoRepository photo.Repository

	// Services
	photoService      photo.Service
	validationService photo.ValidationService
	imageInspector    photo.ImageInspector
	cacheService      *implementations.CacheService
	eventPublisher    photo.EventPublisher
}

// NewContainer wires the photo services on top of the given infrastructure.
// cacheClient may be nil.
func NewContainer(cfg *config.Config, db *sql.DB, store *storage.Service, cacheClient *cache.RedisClient, logger *observability.Logger) (*Container, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	if db == nil {
		return nil, errors.New("database cannot be nil")
	}
	if store == nil {
		return nil, errors.New("storage cannot be nil")
	}
	if logger == nil {
		logger = observability.NopLogger()
	}

	c := &Container{
		config:      cfg,
		db:          db,
		logger:      logger,
		storage:     store,
		cacheClient: cacheClient,
	}
	c.initializeServices()

	return c, nil
}

// initializeServices initializes all services in dependency order
func (c *Container) initializeServices() {
	c.photoRepository = implementations.NewPhotoRepositoryAdapter(database.NewPhotoRepository(c.db))

	c.validationService = implementations.NewValidationService(c.config.Storage.MaxUploadSize, c.config.Storage.AllowedTypes)
	c.imageInspector = storage.NewInspector(0, 0)
	c.cacheService = implementations.NewCacheService(c.cacheClient, c.config.Cache.DefaultTTL, c.logger)
	c.eventPublisher = implementations.NewLogEventPublisher(c.logger)

	deps := implementations.PhotoServiceDeps{
		Repository:     c.photoRepository,
		Storage:        c.storage,
		Inspector:      c.imageInspector,
		Validator:      c.validationService,
		EventPublisher: c.eventPublisher,
		URLExpiry:      c.config.Storage.PresignExpiry,
		Logger:         c.logger,
	}
	if c.cacheService.Enabled() {
		deps.Cache = c.cacheService
	}
	c.photoService = implementations.NewPhotoService(deps)

	c.logger.Info(context.Background()).
		Bool("cache_enabled", c.cacheService.Enabled()).
		Msg("dependency injection container initialized")
}

// Config returns the application configuration
func (c *Container) Config() *config.Config {
	return c.config
}

// DB returns the database handle
func (c *Container) DB() *sql.DB {
	return c.db
}

// Storage returns the object storage service
func (c *Container) Storage() *storage.Service {
	return c.storage
}

// PhotoService returns the photo use cases
func (c *Container) PhotoService() photo.Service {
	return c.photoService
}

// PhotoRepository returns the domain repository
func (c *Container) PhotoRepository() photo.Repository {
	return c.photoRepository
}

// CacheService returns the list cache; it reports unavailable when disabled
func (c *Container) CacheService() *implementations.CacheService {
	return c.cacheService
}

// Logger returns the application logger
func (c *Container) Logger() *observability.Logger {
	return c.logger
}

// Close cleans up resources
func (c *Container) Close() error {
	var errs []error
	if c.cacheClient != nil {
		errs = append(errs, c.cacheClient.Close())
	}
	if c.db != nil {
		errs = append(errs, c.db.Close())
	}
	return errors.Join(errs...)
}
