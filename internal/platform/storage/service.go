package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/minio/minio-go/v7"

	"photo-gallery/internal/config"
	"photo-gallery/internal/domain/photo"
)

// Service implements photo.StorageService on top of a MinIO bucket
type Service struct {
	client        *minio.Client
	bucketName    string
	maxObjectSize int64
}

var _ photo.StorageService = (*Service)(nil)

// NewService connects to the configured endpoint and ensures the bucket exists
func NewService(ctx context.Context, cfg config.StorageConfig) (*Service, error) {
	if cfg.BucketName == "" {
		return nil, errors.New("storage bucket name cannot be empty")
	}

	client, err := NewMinIOClient(cfg)
	if err != nil {
		return nil, err
	}

	if err := EnsureBucket(ctx, client, cfg.BucketName, cfg.Region); err != nil {
		return nil, err
	}

	return NewServiceWithClient(client, cfg.BucketName, cfg.MaxUploadSize), nil
}

// NewServiceWithClient wraps an existing client. maxObjectSize <= 0 disables the size guard.
func NewServiceWithClient(client *minio.Client, bucketName string, maxObjectSize int64) *Service {
	return &Service{
		client:        client,
		bucketName:    bucketName,
		maxObjectSize: maxObjectSize,
	}
}

// Store implements photo.StorageService.Store
func (s *Service) Store(ctx context.Context, objectName, contentType string, data io.Reader, size int64, metadata map[string]string) error {
	if objectName == "" {
		return errors.New("object name cannot be empty")
	}
	if contentType == "" {
		return errors.New("content type cannot be empty")
	}
	if data == nil {
		return errors.New("data cannot be nil")
	}
	if s.maxObjectSize > 0 && size > s.maxObjectSize {
		return fmt.Errorf("%w: %d bytes", photo.ErrFileTooLarge, size)
	}

	userMetadata := map[string]string{
		"upload-time": time.Now().UTC().Format(time.RFC3339),
	}
	for k, v := range metadata {
		userMetadata[k] = v
	}

	reader := data
	if size < 0 && s.maxObjectSize > 0 {
		reader = &sizeLimitedReader{reader: data, maxSize: s.maxObjectSize}
	}

	info, err := s.client.PutObject(ctx, s.bucketName, objectName, reader, size, minio.PutObjectOptions{
		ContentType:  contentType,
		UserMetadata: userMetadata,
	})
	if err != nil {
		return fmt.Errorf("failed to upload object %s: %w", objectName, err)
	}

	if info.Size == 0 {
		_ = s.client.RemoveObject(ctx, s.bucketName, objectName, minio.RemoveObjectOptions{}) //nolint:errcheck // best effort
		return fmt.Errorf("%w: uploaded file is empty", photo.ErrInvalidFile)
	}

	return nil
}

// Delete implements photo.StorageService.Delete. Deleting a missing object is not an error.
func (s *Service) Delete(ctx context.Context, objectName string) error {
	if objectName == "" {
		return errors.New("object name cannot be empty")
	}

	if err := s.client.RemoveObject(ctx, s.bucketName, objectName, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to delete object %s: %w", objectName, err)
	}

	return nil
}

// Exists implements photo.StorageService.Exists
func (s *Service) Exists(ctx context.Context, objectName string) (bool, error) {
	if objectName == "" {
		return false, errors.New("object name cannot be empty")
	}

	_, err := s.client.StatObject(ctx, s.bucketName, objectName, minio.StatObjectOptions{})
	if err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return false, nil
		}
		return false, fmt.Errorf("failed to stat object %s: %w", objectName, err)
	}

	return true, nil
}

// PresignedURL implements photo.StorageService.PresignedURL
func (s *Service) PresignedURL(ctx context.Context, objectName string, expiry time.Duration) (string, error) {
	if objectName == "" {
		return "", errors.New("object name cannot be empty")
	}
	if expiry <= 0 {
		expiry = photo.PresignedURLTTL
	}

	u, err := s.client.PresignedGetObject(ctx, s.bucketName, objectName, expiry, nil)
	if err != nil {
		return "", fmt.Errorf("failed to generate presigned URL: %w", err)
	}

	return u.String(), nil
}

// Health checks that the bucket is reachable
func (s *Service) Health(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := s.client.BucketExists(ctx, s.bucketName); err != nil {
		return fmt.Errorf("storage unreachable: %w", err)
	}
	return nil
}

// sizeLimitedReader fails the upload once more than maxSize bytes were read
type sizeLimitedReader struct {
	reader  io.Reader
	read    int64
	maxSize int64
}

func (r *sizeLimitedReader) Read(p []byte) (int, error) {
	n, err := r.reader.Read(p)
	r.read += int64(n)
	if r.read > r.maxSize {
		return 0, fmt.Errorf("%w: more than %d bytes", photo.ErrFileTooLarge, r.maxSize)
	}
	return n, err
}
