package implementations

import (
	"context"
	"io"
	"time"

	"github.com/stretchr/testify/mock"

	"photo-gallery/internal/domain/photo"
	"photo-gallery/internal/platform/database"
)

// MockPhotoRepository is a mock implementation of photo.Repository
type MockPhotoRepository struct {
	mock.Mock
}

func (m *MockPhotoRepository) Create(ctx context.Context, p *photo.Photo) error {
	args := m.Called(ctx, p)
	if args.Error(0) == nil {
		p.ID = 1
		p.Version = 1
		p.CreatedAt = time.Now()
		p.UpdatedAt = p.CreatedAt
	}
	return args.Error(0)
}

func (m *MockPhotoRepository) GetByID(ctx context.Context, id int64) (*photo.Photo, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*photo.Photo), args.Error(1)
}

func (m *MockPhotoRepository) List(ctx context.Context) ([]*photo.Photo, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*photo.Photo), args.Error(1)
}

func (m *MockPhotoRepository) UpdateDescription(ctx context.Context, id int64, description string) (*photo.Photo, error) {
	args := m.Called(ctx, id, description)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*photo.Photo), args.Error(1)
}

func (m *MockPhotoRepository) UpdatePresignedURL(ctx context.Context, id int64, url string) (*photo.Photo, error) {
	args := m.Called(ctx, id, url)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*photo.Photo), args.Error(1)
}

func (m *MockPhotoRepository) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

// MockStorageService is a mock implementation of photo.StorageService
type MockStorageService struct {
	mock.Mock
}

func (m *MockStorageService) Store(ctx context.Context, objectName, contentType string, data io.Reader, size int64, metadata map[string]string) error {
	return m.Called(ctx, objectName, contentType, data, size, metadata).Error(0)
}

func (m *MockStorageService) Delete(ctx context.Context, objectName string) error {
	return m.Called(ctx, objectName).Error(0)
}

func (m *MockStorageService) Exists(ctx context.Context, objectName string) (bool, error) {
	args := m.Called(ctx, objectName)
	return args.Bool(0), args.Error(1)
}

func (m *MockStorageService) PresignedURL(ctx context.Context, objectName string, expiry time.Duration) (string, error) {
	args := m.Called(ctx, objectName, expiry)
	return args.String(0), args.Error(1)
}

// MockImageInspector is a mock implementation of photo.ImageInspector
type MockImageInspector struct {
	mock.Mock
}

func (m *MockImageInspector) Inspect(ctx context.Context, data io.Reader) (*photo.ImageInfo, error) {
	args := m.Called(ctx, data)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*photo.ImageInfo), args.Error(1)
}

func (m *MockImageInspector) Validate(ctx context.Context, data io.Reader, contentType string) error {
	// Drain like a real decoder so the service has to rewind.
	_, _ = io.Copy(io.Discard, data)
	return m.Called(ctx, data, contentType).Error(0)
}

// MockCacheService is a mock implementation of photo.CacheService
type MockCacheService struct {
	mock.Mock
}

func (m *MockCacheService) GetPhotoList(ctx context.Context) ([]*photo.Photo, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*photo.Photo), args.Error(1)
}

func (m *MockCacheService) SetPhotoList(ctx context.Context, photos []*photo.Photo, ttl time.Duration) error {
	return m.Called(ctx, photos, ttl).Error(0)
}

func (m *MockCacheService) InvalidatePhotoList(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

// MockEventPublisher is a mock implementation of photo.EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, event *photo.Event) error {
	return m.Called(ctx, event).Error(0)
}

// MockDatabasePhotoRepository is a mock implementation of database.PhotoRepository
type MockDatabasePhotoRepository struct {
	mock.Mock
}

func (m *MockDatabasePhotoRepository) Create(ctx context.Context, p *database.Photo) error {
	args := m.Called(ctx, p)
	if args.Error(0) == nil {
		p.ID = 7
		p.Version = 1
		p.CreatedAt = time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
		p.UpdatedAt = p.CreatedAt
	}
	return args.Error(0)
}

func (m *MockDatabasePhotoRepository) GetByID(ctx context.Context, id int64) (*database.Photo, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*database.Photo), args.Error(1)
}

func (m *MockDatabasePhotoRepository) GetByFileName(ctx context.Context, fileName string) (*database.Photo, error) {
	args := m.Called(ctx, fileName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*database.Photo), args.Error(1)
}

func (m *MockDatabasePhotoRepository) ListNewestFirst(ctx context.Context) ([]*database.Photo, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*database.Photo), args.Error(1)
}

func (m *MockDatabasePhotoRepository) UpdateDescription(ctx context.Context, id int64, description string) (*database.Photo, error) {
	args := m.Called(ctx, id, description)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*database.Photo), args.Error(1)
}

func (m *MockDatabasePhotoRepository) UpdatePresignedURL(ctx context.Context, id int64, url string) (*database.Photo, error) {
	args := m.Called(ctx, id, url)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*database.Photo), args.Error(1)
}

func (m *MockDatabasePhotoRepository) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockDatabasePhotoRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}
