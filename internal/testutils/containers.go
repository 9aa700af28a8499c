package testutils

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	minioClient "github.com/minio/minio-go/v7"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/minio"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	redisModule "github.com/testcontainers/testcontainers-go/modules/redis"
	"github.com/testcontainers/testcontainers-go/wait"

	"photo-gallery/internal/config"
	"photo-gallery/internal/platform/cache"
	"photo-gallery/internal/platform/database"
	"photo-gallery/internal/platform/storage"
)

const (
	TestBucketName = "test-photos"
	minioRegion    = "us-east-1"
)

// TestContainers manages test containers for integration testing
type TestContainers struct {
	PostgresContainer testcontainers.Container
	MinioContainer    testcontainers.Container
	RedisContainer    testcontainers.Container
	DB                *sql.DB
	Storage           *storage.Service
	RawMinio          *minioClient.Client
	RedisClient       *cache.RedisClient
	DatabaseURL       string
	MinioEndpoint     string
	MinioUsername     string
	MinioPassword     string
	RedisEndpoint     string
}

// SetupTestContainers starts PostgreSQL, MinIO and Valkey and applies the
// database migrations
func SetupTestContainers(ctx context.Context) (*TestContainers, error) {
	containers := &TestContainers{
		MinioUsername: "testuser",
		MinioPassword: "testpass123",
	}

	if err := containers.setupPostgres(ctx); err != nil {
		_ = containers.Cleanup(ctx) //nolint:errcheck // error path
		return nil, fmt.Errorf("failed to setup postgres container: %w", err)
	}

	if err := containers.setupMinio(ctx); err != nil {
		_ = containers.Cleanup(ctx) //nolint:errcheck // error path
		return nil, fmt.Errorf("failed to setup minio container: %w", err)
	}

	if err := containers.setupRedis(ctx); err != nil {
		_ = containers.Cleanup(ctx) //nolint:errcheck // error path
		return nil, fmt.Errorf("failed to setup redis container: %w", err)
	}

	if _, err := database.RunMigrations(ctx, containers.DB); err != nil {
		_ = containers.Cleanup(ctx) //nolint:errcheck // error path
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return containers, nil
}

// setupPostgres creates and starts a PostgreSQL test container
func (tc *TestContainers) setupPostgres(ctx context.Context) error {
	postgresContainer, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		postgres.WithSQLDriver("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		return fmt.Errorf("failed to start postgres container: %w", err)
	}
	tc.PostgresContainer = postgresContainer

	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return fmt.Errorf("failed to get postgres connection string: %w", err)
	}
	tc.DatabaseURL = connStr

	// Retry: the port can accept connections shortly after the log line
	var db *sql.DB
	for i := 0; i < 10; i++ {
		db, err = database.NewConnection(ctx, connStr)
		if err == nil {
			break
		}
		time.Sleep(time.Second)
	}
	if err != nil {
		return fmt.Errorf("failed to connect to postgres after retries: %w", err)
	}

	tc.DB = db
	return nil
}

// setupMinio creates and starts a MinIO test container and the test bucket
func (tc *TestContainers) setupMinio(ctx context.Context) error {
	minioContainer, err := minio.Run(ctx,
		"minio/minio:latest",
		minio.WithUsername(tc.MinioUsername),
		minio.WithPassword(tc.MinioPassword),
	)
	if err != nil {
		return fmt.Errorf("failed to start minio container: %w", err)
	}
	tc.MinioContainer = minioContainer

	endpoint, err := minioContainer.ConnectionString(ctx)
	if err != nil {
		return fmt.Errorf("failed to get minio endpoint: %w", err)
	}
	tc.MinioEndpoint = endpoint

	cfg := tc.StorageConfig()
	raw, err := storage.NewMinIOClient(cfg)
	if err != nil {
		return fmt.Errorf("failed to create minio client: %w", err)
	}
	tc.RawMinio = raw

	svc, err := storage.NewService(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to create storage service: %w", err)
	}
	tc.Storage = svc

	return nil
}

// setupRedis creates and starts a Valkey test container (Redis-compatible)
func (tc *TestContainers) setupRedis(ctx context.Context) error {
	redisContainer, err := redisModule.Run(ctx,
		"valkey/valkey:7-alpine",
		redisModule.WithSnapshotting(10, 1),
		redisModule.WithLogLevel(redisModule.LogLevelVerbose),
	)
	if err != nil {
		return fmt.Errorf("failed to start valkey container: %w", err)
	}
	tc.RedisContainer = redisContainer

	endpoint, err := redisContainer.ConnectionString(ctx)
	if err != nil {
		return fmt.Errorf("failed to get valkey endpoint: %w", err)
	}
	tc.RedisEndpoint = endpoint

	redisClient, err := cache.NewRedisClient(ctx, tc.CacheConfig())
	if err != nil {
		return fmt.Errorf("failed to create redis client: %w", err)
	}
	tc.RedisClient = redisClient

	return nil
}

// StorageConfig describes the MinIO container as application config
func (tc *TestContainers) StorageConfig() config.StorageConfig {
	return config.StorageConfig{
		Endpoint:        tc.MinioEndpoint,
		AccessKeyID:     tc.MinioUsername,
		SecretAccessKey: tc.MinioPassword,
		BucketName:      TestBucketName,
		Region:          minioRegion,
		MaxUploadSize:   10 << 20,
		AllowedTypes:    []string{"image/jpeg", "image/jpg", "image/png", "image/gif", "image/webp"},
		PresignExpiry:   time.Hour,
	}
}

// CacheConfig describes the Valkey container as application config. The
// connection string has the form redis://host:port.
func (tc *TestContainers) CacheConfig() config.CacheConfig {
	return config.CacheConfig{
		Enabled:     true,
		Address:     strings.TrimPrefix(tc.RedisEndpoint, "redis://"),
		DefaultTTL:  time.Hour,
		DialTimeout: 5 * time.Second,
		PoolSize:    5,
	}
}

// Config assembles a full application config pointing at the containers
func (tc *TestContainers) Config() *config.Config {
	return &config.Config{
		Environment: "test",
		Port:        "0",
		Host:        "localhost",
		DatabaseURL: tc.DatabaseURL,
		Storage:     tc.StorageConfig(),
		Cache:       tc.CacheConfig(),
		Logging:     &config.LoggingConfig{Level: "debug", Format: "json", Output: "stdout"},
		Server:      &config.ServerConfig{ReadTimeout: 5 * time.Second, WriteTimeout: 5 * time.Second, IdleTimeout: 5 * time.Second},
	}
}

// Cleanup terminates all test containers and closes connections
func (tc *TestContainers) Cleanup(ctx context.Context) error {
	var errs []error

	if tc.DB != nil {
		if err := tc.DB.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close database: %w", err))
		}
	}

	if tc.RedisClient != nil {
		if err := tc.RedisClient.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close valkey client: %w", err))
		}
	}

	for name, c := range map[string]testcontainers.Container{
		"postgres": tc.PostgresContainer,
		"minio":    tc.MinioContainer,
		"valkey":   tc.RedisContainer,
	} {
		if c == nil {
			continue
		}
		if err := c.Terminate(ctx); err != nil {
			errs = append(errs, fmt.Errorf("failed to terminate %s container: %w", name, err))
		}
	}

	return errors.Join(errs...)
}

// ResetDatabase removes every photo row
func (tc *TestContainers) ResetDatabase(ctx context.Context) error {
	if _, err := tc.DB.ExecContext(ctx, "DELETE FROM photos"); err != nil {
		return fmt.Errorf("failed to reset photos: %w", err)
	}
	return nil
}

// CleanBucket removes all objects from the test bucket
func (tc *TestContainers) CleanBucket(ctx context.Context) error {
	var errs []error
	for obj := range tc.RawMinio.ListObjects(ctx, TestBucketName, minioClient.ListObjectsOptions{Recursive: true}) {
		if obj.Err != nil {
			return obj.Err
		}
		if err := tc.RawMinio.RemoveObject(ctx, TestBucketName, obj.Key, minioClient.RemoveObjectOptions{}); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// FlushRedis clears all data from the Valkey test database
func (tc *TestContainers) FlushRedis(ctx context.Context) error {
	if tc.RedisClient == nil {
		return errors.New("valkey client not available")
	}
	return tc.RedisClient.FlushCache(ctx)
}

// ObjectCount reports how many objects the test bucket holds
func (tc *TestContainers) ObjectCount(ctx context.Context) (int, error) {
	n := 0
	for obj := range tc.RawMinio.ListObjects(ctx, TestBucketName, minioClient.ListObjectsOptions{Recursive: true}) {
		if obj.Err != nil {
			return 0, obj.Err
		}
		n++
	}
	return n, nil
}
