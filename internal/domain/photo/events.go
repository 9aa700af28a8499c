package photo

import (
	"time"

	"github.com/google/uuid"
)

// EventType represents the type of a photo lifecycle event
type EventType string

const (
	EventPhotoUploaded   EventType = "photo.uploaded"
	EventPhotoUpdated    EventType = "photo.updated"
	EventPhotoDeleted    EventType = "photo.deleted"
	EventPhotoURLRefresh EventType = "photo.url_refreshed"
)

// Event is a photo lifecycle event
type Event struct {
	ID        string         `json:"id"`
	Type      EventType      `json:"type"`
	PhotoID   int64          `json:"photo_id"`
	Data      map[string]any `json:"data,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
}

// NewEvent creates an event stamped with a random ID and the current time
func NewEvent(eventType EventType, photoID int64, data map[string]any) *Event {
	return &Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		PhotoID:   photoID,
		Data:      data,
		Timestamp: time.Now().UTC(),
	}
}

// NewUploadedEvent describes a completed upload
func NewUploadedEvent(p *Photo) *Event {
	return NewEvent(EventPhotoUploaded, p.ID, map[string]any{
		"file_name":          p.FileName,
		"original_file_name": p.OriginalFileName,
		"content_type":       p.ContentType,
		"file_size":          p.FileSize,
	})
}

// NewDescriptionUpdatedEvent describes a description change
func NewDescriptionUpdatedEvent(p *Photo, previous string) *Event {
	return NewEvent(EventPhotoUpdated, p.ID, map[string]any{
		"previous_description": previous,
		"description":          p.Description,
	})
}

// NewDeletedEvent describes a deletion
func NewDeletedEvent(p *Photo) *Event {
	return NewEvent(EventPhotoDeleted, p.ID, map[string]any{
		"file_name": p.FileName,
	})
}

// NewURLRefreshedEvent describes a regenerated presigned URL
func NewURLRefreshedEvent(p *Photo) *Event {
	return NewEvent(EventPhotoURLRefresh, p.ID, nil)
}
