package photo

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUploadRequest_Validate(t *testing.T) {
	valid := func() *UploadRequest {
		return &UploadRequest{
			OriginalFileName: "sunset.jpg",
			ContentType:      "image/jpeg",
			FileSize:         2048,
			Description:      "Sunset over the bay",
		}
	}

	tests := []struct {
		name          string
		mutate        func(r *UploadRequest)
		maxSize       int64
		expectedError error
	}{
		{name: "valid request", mutate: func(r *UploadRequest) {}},
		{name: "jpg alias accepted", mutate: func(r *UploadRequest) { r.ContentType = "image/jpg" }},
		{name: "webp accepted", mutate: func(r *UploadRequest) { r.ContentType = "image/webp" }},
		{
			name:          "blank description",
			mutate:        func(r *UploadRequest) { r.Description = "   " },
			expectedError: ErrInvalidDescription,
		},
		{
			name:          "description too long",
			mutate:        func(r *UploadRequest) { r.Description = strings.Repeat("a", MaxDescriptionLen+1) },
			expectedError: ErrInvalidDescription,
		},
		{
			name:          "empty file",
			mutate:        func(r *UploadRequest) { r.FileSize = 0 },
			expectedError: ErrInvalidFile,
		},
		{
			name:          "file over default limit",
			mutate:        func(r *UploadRequest) { r.FileSize = DefaultMaxSize + 1 },
			expectedError: ErrFileTooLarge,
		},
		{
			name:          "file over configured limit",
			mutate:        func(r *UploadRequest) { r.FileSize = 2048 },
			maxSize:       1024,
			expectedError: ErrFileTooLarge,
		},
		{
			name:          "missing filename",
			mutate:        func(r *UploadRequest) { r.OriginalFileName = "" },
			expectedError: ErrInvalidFile,
		},
		{
			name:          "unsupported type",
			mutate:        func(r *UploadRequest) { r.ContentType = "application/pdf" },
			expectedError: ErrInvalidContentType,
		},
		{
			name:          "tags too long",
			mutate:        func(r *UploadRequest) { r.Tags = strings.Repeat("t", MaxMetadataLen+1) },
			expectedError: ErrInvalidFile,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid()
			tt.mutate(req)

			err := req.Validate(tt.maxSize)
			if tt.expectedError != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.expectedError)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestUploadRequest_Normalize(t *testing.T) {
	req := &UploadRequest{
		OriginalFileName: " beach.png ",
		ContentType:      " IMAGE/PNG",
		Description:      "  Beach day ",
		Tags:             " summer,sea ",
		Location:         " Nice ",
		Category:         " travel ",
	}

	req.Normalize()

	assert.Equal(t, "beach.png", req.OriginalFileName)
	assert.Equal(t, "image/png", req.ContentType)
	assert.Equal(t, "Beach day", req.Description)
	assert.Equal(t, "summer,sea", req.Tags)
	assert.Equal(t, "Nice", req.Location)
	assert.Equal(t, "travel", req.Category)
}

func TestFormatFileSize(t *testing.T) {
	tests := []struct {
		bytes    int64
		expected string
	}{
		{0, "0 B"},
		{-5, "0 B"},
		{512, "512 B"},
		{1024, "1 KB"},
		{1536, "1.5 KB"},
		{2621440, "2.5 MB"},
		{1073741824, "1 GB"},
		{1099511627776 * 3, "3 TB"},
		{1500000, "1.43 MB"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatFileSize(tt.bytes))
		})
	}
}

func TestTimeAgo(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		at       time.Time
		expected string
	}{
		{"zero time", time.Time{}, "Unknown"},
		{"seconds", now.Add(-30 * time.Second), "Just now"},
		{"minutes", now.Add(-5 * time.Minute), "5m ago"},
		{"hours", now.Add(-3 * time.Hour), "3h ago"},
		{"days", now.Add(-2 * 24 * time.Hour), "2d ago"},
		{"weeks", now.Add(-15 * 24 * time.Hour), "2w ago"},
		{"months", now.Add(-100 * 24 * time.Hour), "3mo ago"},
		{"years", now.Add(-800 * 24 * time.Hour), "2y ago"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, TimeAgo(tt.at, now))
		})
	}
}

func TestPhoto_ToRecord(t *testing.T) {
	created := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	p := &Photo{
		ID:               7,
		FileName:         "abc_sunset.jpg",
		OriginalFileName: "sunset.jpg",
		Description:      "Sunset",
		PresignedURL:     "http://minio/photos/abc_sunset.jpg?sig=1",
		FileSize:         2048,
		ContentType:      "image/jpeg",
		Tags:             "sky",
		Location:         "Lisbon",
		Category:         "nature",
		CreatedAt:        created,
		UpdatedAt:        created,
	}

	rec := p.ToRecord(created.Add(2 * time.Hour))

	assert.Equal(t, int64(7), rec.ID)
	assert.Equal(t, "Sunset", rec.Description)
	assert.Equal(t, "2 KB", rec.FileSizeFormatted)
	assert.Equal(t, "2h ago", rec.TimeAgo)
	assert.Equal(t, "sky", rec.Tags)
	assert.Equal(t, "Lisbon", rec.Location)
	assert.Equal(t, "nature", rec.Category)

	data, err := json.Marshal(rec)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"presignedUrl":"http://minio/photos/abc_sunset.jpg?sig=1"`)
	assert.Contains(t, string(data), `"createdAt":"2025-06-01 10:00:00"`)
	assert.Contains(t, string(data), `"timeAgo":"2h ago"`)
}

func TestTimestamp_UnmarshalJSON(t *testing.T) {
	var rec Record
	err := json.Unmarshal([]byte(`{"id":1,"description":"x","createdAt":"2025-06-01 10:00:00","updatedAt":null}`), &rec)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC), rec.CreatedAt.Time)
	assert.True(t, rec.UpdatedAt.IsZero())

	err = json.Unmarshal([]byte(`{"createdAt":"yesterday"}`), &rec)
	assert.Error(t, err)
}

func TestNewUploadedEvent(t *testing.T) {
	p := &Photo{ID: 3, FileName: "f.jpg", OriginalFileName: "o.jpg", ContentType: "image/jpeg", FileSize: 10}

	event := NewUploadedEvent(p)

	assert.Equal(t, EventPhotoUploaded, event.Type)
	assert.Equal(t, int64(3), event.PhotoID)
	assert.NotEmpty(t, event.ID)
	assert.Equal(t, "o.jpg", event.Data["original_file_name"])
	assert.False(t, event.Timestamp.IsZero())
}
