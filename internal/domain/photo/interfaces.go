package photo

import (
	"context"
	"io"
	"time"
)

// Repository defines the interface for photo metadata persistence
type Repository interface {
	// Create stores a new photo and fills in its ID and timestamps
	Create(ctx context.Context, p *Photo) error

	// GetByID retrieves a photo by its ID
	GetByID(ctx context.Context, id int64) (*Photo, error)

	// List returns all photos, newest first
	List(ctx context.Context) ([]*Photo, error)

	// UpdateDescription changes the description and returns the updated photo
	UpdateDescription(ctx context.Context, id int64, description string) (*Photo, error)

	// UpdatePresignedURL stores a freshly generated URL and returns the updated photo
	UpdatePresignedURL(ctx context.Context, id int64, url string) (*Photo, error)

	// Delete removes a photo by ID
	Delete(ctx context.Context, id int64) error
}

// StorageService defines the interface for photo file storage
type StorageService interface {
	// Store uploads the content under objectName. size may be -1 when unknown.
	Store(ctx context.Context, objectName, contentType string, data io.Reader, size int64, metadata map[string]string) error

	// Delete removes an object
	Delete(ctx context.Context, objectName string) error

	// Exists reports whether an object is present
	Exists(ctx context.Context, objectName string) (bool, error)

	// PresignedURL returns a time-limited GET URL for an object
	PresignedURL(ctx context.Context, objectName string, expiry time.Duration) (string, error)
}

// CacheService caches the photo list between writes
type CacheService interface {
	GetPhotoList(ctx context.Context) ([]*Photo, error)
	SetPhotoList(ctx context.Context, photos []*Photo, ttl time.Duration) error
	InvalidatePhotoList(ctx context.Context) error
}

// ImageInspector validates that uploaded bytes are a decodable image
type ImageInspector interface {
	Inspect(ctx context.Context, data io.Reader) (*ImageInfo, error)
	Validate(ctx context.Context, data io.Reader, contentType string) error
}

// ImageInfo describes an image header
type ImageInfo struct {
	Width  int
	Height int
	Format string
}

// ValidationService applies the configured upload limits
type ValidationService interface {
	ValidateUpload(ctx context.Context, req *UploadRequest) error
	ValidateDescriptionUpdate(ctx context.Context, id int64, description string) error
}

// EventPublisher publishes photo lifecycle events
type EventPublisher interface {
	Publish(ctx context.Context, event *Event) error
}

// Service defines the photo use cases exposed over HTTP
type Service interface {
	Upload(ctx context.Context, req *UploadRequest, data io.ReadSeeker) (*Photo, error)
	List(ctx context.Context) ([]*Photo, error)
	Get(ctx context.Context, id int64) (*Photo, error)
	UpdateDescription(ctx context.Context, id int64, description string) (*Photo, error)
	Delete(ctx context.Context, id int64) error
	RefreshURL(ctx context.Context, id int64) (*Photo, error)
}

// UploadInput is the client-side payload of a multipart upload
type UploadInput struct {
	FileName    string
	ContentType string
	Content     io.Reader
	Description string
	Tags        string
	Location    string
	Category    string
}
