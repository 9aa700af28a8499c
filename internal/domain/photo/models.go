package photo

import (
	"errors"
	"fmt"
	"math"
	"path/filepath"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

// Photo is a stored photo with its metadata
type Photo struct {
	ID               int64     `json:"id"`
	FileName         string    `json:"file_name"`
	OriginalFileName string    `json:"original_file_name"`
	Description      string    `json:"description"`
	PresignedURL     string    `json:"presigned_url"`
	FileSize         int64     `json:"file_size"`
	ContentType      string    `json:"content_type"`
	Tags             string    `json:"tags,omitempty"`
	Location         string    `json:"location,omitempty"`
	Category         string    `json:"category,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
	Version          int       `json:"version"`
}

// Record is the wire representation of a photo served by the API and
// consumed by the gallery. Formatted fields are computed by the server.
type Record struct {
	ID                int64     `json:"id"`
	FileName          string    `json:"fileName,omitempty"`
	OriginalFileName  string    `json:"originalFileName,omitempty"`
	Description       string    `json:"description"`
	PresignedURL      string    `json:"presignedUrl"`
	FileSize          int64     `json:"fileSize,omitempty"`
	ContentType       string    `json:"contentType,omitempty"`
	Tags              string    `json:"tags,omitempty"`
	Location          string    `json:"location,omitempty"`
	Category          string    `json:"category,omitempty"`
	CreatedAt         Timestamp `json:"createdAt"`
	UpdatedAt         Timestamp `json:"updatedAt"`
	FileSizeFormatted string    `json:"fileSizeFormatted"`
	TimeAgo           string    `json:"timeAgo"`
}

// UploadRequest carries the form fields of a photo upload
type UploadRequest struct {
	OriginalFileName string
	ContentType      string
	FileSize         int64
	Description      string
	Tags             string
	Location         string
	Category         string
}

// Domain errors
var (
	ErrPhotoNotFound       = errors.New("photo not found")
	ErrInvalidDescription  = errors.New("invalid description")
	ErrInvalidFile         = errors.New("invalid file")
	ErrInvalidContentType  = errors.New("invalid content type")
	ErrFileTooLarge        = errors.New("file too large")
	ErrStorageObjectAbsent = errors.New("photo file not found in storage")
	ErrCacheMiss           = errors.New("photo list not found in cache")
	ErrCacheUnavailable    = errors.New("cache unavailable")
)

const (
	MaxDescriptionLen = 500
	MaxFilenameLen    = 255
	MaxMetadataLen    = 255
	DefaultMaxSize    = 10 * 1024 * 1024
	PresignedURLTTL   = 3 * 24 * time.Hour
	TimestampLayout   = "2006-01-02 15:04:05"
)

// SupportedContentTypes lists the image types accepted for upload
var SupportedContentTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// Normalize trims every text field of the request
func (r *UploadRequest) Normalize() {
	r.OriginalFileName = strings.TrimSpace(r.OriginalFileName)
	r.ContentType = strings.ToLower(strings.TrimSpace(r.ContentType))
	r.Description = strings.TrimSpace(r.Description)
	r.Tags = strings.TrimSpace(r.Tags)
	r.Location = strings.TrimSpace(r.Location)
	r.Category = strings.TrimSpace(r.Category)
}

// Validate checks the request against the upload rules. maxSize <= 0 uses DefaultMaxSize.
func (r *UploadRequest) Validate(maxSize int64) error {
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}

	if err := ValidateDescription(r.Description); err != nil {
		return err
	}

	if r.FileSize <= 0 {
		return fmt.Errorf("%w: file is required", ErrInvalidFile)
	}
	if r.FileSize > maxSize {
		return fmt.Errorf("%w: file size exceeds maximum allowed size of %s", ErrFileTooLarge, FormatFileSize(maxSize))
	}

	if r.OriginalFileName == "" {
		return fmt.Errorf("%w: file must have a valid filename", ErrInvalidFile)
	}
	if len(r.OriginalFileName) > MaxFilenameLen || !utf8.ValidString(r.OriginalFileName) {
		return fmt.Errorf("%w: filename too long or not valid UTF-8", ErrInvalidFile)
	}

	if !SupportedContentTypes[r.ContentType] {
		return fmt.Errorf("%w: %q is not one of image/jpeg, image/png, image/gif, image/webp", ErrInvalidContentType, r.ContentType)
	}

	for name, value := range map[string]string{"tags": r.Tags, "location": r.Location, "category": r.Category} {
		if utf8.RuneCountInString(value) > MaxMetadataLen {
			return fmt.Errorf("%w: %s exceeds %d characters", ErrInvalidFile, name, MaxMetadataLen)
		}
	}

	return nil
}

// ValidateDescription rejects blank descriptions and descriptions over the length limit
func ValidateDescription(description string) error {
	trimmed := strings.TrimSpace(description)
	if trimmed == "" {
		return fmt.Errorf("%w: description is required", ErrInvalidDescription)
	}
	if utf8.RuneCountInString(trimmed) > MaxDescriptionLen {
		return fmt.Errorf("%w: description cannot exceed %d characters", ErrInvalidDescription, MaxDescriptionLen)
	}
	return nil
}

// GetFileExtension returns the lower-cased extension of the original filename
func (p *Photo) GetFileExtension() string {
	return strings.ToLower(filepath.Ext(p.OriginalFileName))
}

// ToRecord converts the photo to its wire form, computing the formatted fields relative to now
func (p *Photo) ToRecord(now time.Time) Record {
	return Record{
		ID:                p.ID,
		FileName:          p.FileName,
		OriginalFileName:  p.OriginalFileName,
		Description:       p.Description,
		PresignedURL:      p.PresignedURL,
		FileSize:          p.FileSize,
		ContentType:       p.ContentType,
		Tags:              p.Tags,
		Location:          p.Location,
		Category:          p.Category,
		CreatedAt:         Timestamp{Time: p.CreatedAt},
		UpdatedAt:         Timestamp{Time: p.UpdatedAt},
		FileSizeFormatted: FormatFileSize(p.FileSize),
		TimeAgo:           TimeAgo(p.CreatedAt, now),
	}
}

// ToRecords converts a slice of photos, preserving order
func ToRecords(photos []*Photo, now time.Time) []Record {
	records := make([]Record, 0, len(photos))
	for _, p := range photos {
		records = append(records, p.ToRecord(now))
	}
	return records
}

var sizeUnits = []string{"B", "KB", "MB", "GB", "TB"}

// FormatFileSize renders a byte count with up to two decimals, e.g. "2.5 MB"
func FormatFileSize(bytes int64) string {
	if bytes <= 0 {
		return "0 B"
	}

	size := float64(bytes)
	unit := 0
	for size >= 1024 && unit < len(sizeUnits)-1 {
		size /= 1024
		unit++
	}

	rounded := math.Round(size*100) / 100
	return strconv.FormatFloat(rounded, 'f', -1, 64) + " " + sizeUnits[unit]
}

// TimeAgo renders the coarse age of t relative to now, e.g. "5m ago"
func TimeAgo(t, now time.Time) string {
	if t.IsZero() {
		return "Unknown"
	}

	elapsed := now.Sub(t)
	minutes := int64(elapsed / time.Minute)
	hours := int64(elapsed / time.Hour)
	days := hours / 24

	switch {
	case minutes < 1:
		return "Just now"
	case minutes < 60:
		return fmt.Sprintf("%dm ago", minutes)
	case hours < 24:
		return fmt.Sprintf("%dh ago", hours)
	case days < 7:
		return fmt.Sprintf("%dd ago", days)
	case days/7 < 4:
		return fmt.Sprintf("%dw ago", days/7)
	case days/30 < 12:
		return fmt.Sprintf("%dmo ago", days/30)
	default:
		return fmt.Sprintf("%dy ago", days/365)
	}
}

// Timestamp marshals as "yyyy-MM-dd HH:mm:ss"
type Timestamp struct {
	time.Time
}

// MarshalJSON implements json.Marshaler
func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return []byte(strconv.Quote(t.Format(TimestampLayout))), nil
}

// UnmarshalJSON implements json.Unmarshaler
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	s := string(data)
	if s == "null" || s == `""` {
		t.Time = time.Time{}
		return nil
	}

	unquoted, err := strconv.Unquote(s)
	if err != nil {
		return fmt.Errorf("invalid timestamp %s: %w", s, err)
	}

	parsed, err := time.Parse(TimestampLayout, unquoted)
	if err != nil {
		return fmt.Errorf("invalid timestamp %q: %w", unquoted, err)
	}
	t.Time = parsed
	return nil
}
