package implementations

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"photo-gallery/internal/domain/photo"
	"photo-gallery/internal/observability"
	"photo-gallery/internal/platform/storage"
)

// PhotoServiceImpl implements photo.Service
type PhotoServiceImpl struct {
	repo      photo.Repository
	storage   photo.StorageService
	inspector photo.ImageInspector
	validator photo.ValidationService
	cache     photo.CacheService   // can be nil
	eventPub  photo.EventPublisher // can be nil
	urlExpiry time.Duration
	logger    *observability.Logger
	objectKey func(originalFileName string) string
}

var _ photo.Service = (*PhotoServiceImpl)(nil)

// PhotoServiceDeps groups the collaborators of the photo service
type PhotoServiceDeps struct {
	Repository     photo.Repository
	Storage        photo.StorageService
	Inspector      photo.ImageInspector
	Validator      photo.ValidationService
	Cache          photo.CacheService
	EventPublisher photo.EventPublisher
	URLExpiry      time.Duration
	Logger         *observability.Logger
}

// NewPhotoService creates a new photo service implementation
func NewPhotoService(deps PhotoServiceDeps) *PhotoServiceImpl {
	logger := deps.Logger
	if logger == nil {
		logger = observability.NopLogger()
	}
	expiry := deps.URLExpiry
	if expiry <= 0 {
		expiry = photo.PresignedURLTTL
	}

	return &PhotoServiceImpl{
		repo:      deps.Repository,
		storage:   deps.Storage,
		inspector: deps.Inspector,
		validator: deps.Validator,
		cache:     deps.Cache,
		eventPub:  deps.EventPublisher,
		urlExpiry: expiry,
		logger:    logger.WithComponent("photo-service"),
		objectKey: storage.UniqueObjectName,
	}
}

// Upload validates and stores a photo, then records its metadata
func (s *PhotoServiceImpl) Upload(ctx context.Context, req *photo.UploadRequest, data io.ReadSeeker) (*photo.Photo, error) {
	if req == nil || data == nil {
		return nil, fmt.Errorf("%w: file is required", photo.ErrInvalidFile)
	}

	if err := s.validator.ValidateUpload(ctx, req); err != nil {
		return nil, err
	}

	if s.inspector != nil {
		if err := s.inspector.Validate(ctx, data, req.ContentType); err != nil {
			return nil, err
		}
		if _, err := data.Seek(0, io.SeekStart); err != nil {
			return nil, fmt.Errorf("failed to rewind upload: %w", err)
		}
	}

	objectName := s.objectKey(req.OriginalFileName)
	metadata := map[string]string{"original-name": storage.SanitizeFilename(req.OriginalFileName)}

	if err := s.storage.Store(ctx, objectName, req.ContentType, data, req.FileSize, metadata); err != nil {
		return nil, fmt.Errorf("failed to store photo: %w", err)
	}

	url, err := s.storage.PresignedURL(ctx, objectName, s.urlExpiry)
	if err != nil {
		s.removeObject(ctx, objectName)
		return nil, fmt.Errorf("failed to generate presigned URL: %w", err)
	}

	p := &photo.Photo{
		FileName:         objectName,
		OriginalFileName: req.OriginalFileName,
		Description:      req.Description,
		PresignedURL:     url,
		FileSize:         req.FileSize,
		ContentType:      req.ContentType,
		Tags:             req.Tags,
		Location:         req.Location,
		Category:         req.Category,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		s.removeObject(ctx, objectName)
		return nil, fmt.Errorf("failed to save photo: %w", err)
	}

	s.logger.Info(ctx).Int64("photo_id", p.ID).Str("file_name", objectName).Int64("file_size", p.FileSize).Msg("photo uploaded")
	s.afterWrite(ctx, photo.NewUploadedEvent(p))

	return p, nil
}

// List returns all photos newest first, served from cache when possible
func (s *PhotoServiceImpl) List(ctx context.Context) ([]*photo.Photo, error) {
	if s.cache != nil {
		photos, err := s.cache.GetPhotoList(ctx)
		if err == nil {
			return photos, nil
		}
		if !errors.Is(err, photo.ErrCacheMiss) && !errors.Is(err, photo.ErrCacheUnavailable) {
			s.logger.Warn(ctx).Err(err).Msg("photo list cache read failed")
		}
	}

	photos, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list photos: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.SetPhotoList(ctx, photos, 0); err != nil {
			s.logger.Warn(ctx).Err(err).Msg("photo list cache write failed")
		}
	}

	return photos, nil
}

// Get returns one photo
func (s *PhotoServiceImpl) Get(ctx context.Context, id int64) (*photo.Photo, error) {
	return s.repo.GetByID(ctx, id)
}

// UpdateDescription replaces the description of a photo
func (s *PhotoServiceImpl) UpdateDescription(ctx context.Context, id int64, description string) (*photo.Photo, error) {
	if err := s.validator.ValidateDescriptionUpdate(ctx, id, description); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	updated, err := s.repo.UpdateDescription(ctx, id, strings.TrimSpace(description))
	if err != nil {
		return nil, err
	}

	s.logger.Info(ctx).Int64("photo_id", id).Msg("photo description updated")
	s.afterWrite(ctx, photo.NewDescriptionUpdatedEvent(updated, existing.Description))

	return updated, nil
}

// Delete removes the stored object and the metadata row. A storage failure
// is logged and does not keep the row alive.
func (s *PhotoServiceImpl) Delete(ctx context.Context, id int64) error {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	s.removeObject(ctx, existing.FileName)

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info(ctx).Int64("photo_id", id).Msg("photo deleted")
	s.afterWrite(ctx, photo.NewDeletedEvent(existing))

	return nil
}

// RefreshURL regenerates the presigned URL of a photo whose object still exists
func (s *PhotoServiceImpl) RefreshURL(ctx context.Context, id int64) (*photo.Photo, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	exists, err := s.storage.Exists(ctx, existing.FileName)
	if err != nil {
		return nil, fmt.Errorf("failed to check photo file: %w", err)
	}
	if !exists {
		s.logger.Error(ctx).Int64("photo_id", id).Str("file_name", existing.FileName).Msg("photo file missing from storage")
		return nil, photo.ErrStorageObjectAbsent
	}

	url, err := s.storage.PresignedURL(ctx, existing.FileName, s.urlExpiry)
	if err != nil {
		return nil, fmt.Errorf("failed to generate presigned URL: %w", err)
	}

	updated, err := s.repo.UpdatePresignedURL(ctx, id, url)
	if err != nil {
		return nil, err
	}

	s.afterWrite(ctx, photo.NewURLRefreshedEvent(updated))
	return updated, nil
}

func (s *PhotoServiceImpl) removeObject(ctx context.Context, objectName string) {
	if err := s.storage.Delete(ctx, objectName); err != nil {
		s.logger.Warn(ctx).Err(err).Str("file_name", objectName).Msg("failed to delete photo file")
	}
}

func (s *PhotoServiceImpl) afterWrite(ctx context.Context, event *photo.Event) {
	if s.cache != nil {
		_ = s.cache.InvalidatePhotoList(ctx) //nolint:errcheck // logged by the cache service
	}
	if s.eventPub != nil {
		if err := s.eventPub.Publish(ctx, event); err != nil {
			s.logger.Warn(ctx).Err(err).Str("event_type", string(event.Type)).Msg("failed to publish photo event")
		}
	}
}
