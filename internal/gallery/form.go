package gallery

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"photo-gallery/internal/domain/photo"
)

// FileInfo describes a file chosen for upload
type FileInfo struct {
	Name        string
	Size        int64
	ContentType string
	Open        func() (io.ReadCloser, error)
}

// IsImage reports whether the file has an image content type
func (f FileInfo) IsImage() bool {
	return strings.HasPrefix(strings.ToLower(f.ContentType), "image/")
}

// Preview is the "name (size)" caption shown for a selected file
func (f FileInfo) Preview() string {
	return fmt.Sprintf("%s (%s)", f.Name, photo.FormatFileSize(f.Size))
}

// UploadForm holds the fields of the upload dialog
type UploadForm struct {
	File        *FileInfo
	Description string
	Tags        string
	Location    string
	Category    string
}

// input trims the form into an upload payload. The caller sets Content.
func (f UploadForm) input() photo.UploadInput {
	return photo.UploadInput{
		FileName:    f.File.Name,
		ContentType: f.File.ContentType,
		Description: strings.TrimSpace(f.Description),
		Tags:        strings.TrimSpace(f.Tags),
		Location:    strings.TrimSpace(f.Location),
		Category:    strings.TrimSpace(f.Category),
	}
}

func (f UploadForm) view(open, uploading bool) UploadModalView {
	v := UploadModalView{
		Open:        open,
		Description: f.Description,
		CharCount:   utf8.RuneCountInString(f.Description),
		Tags:        f.Tags,
		Location:    f.Location,
		Category:    f.Category,
		Uploading:   uploading,
	}
	if f.File != nil {
		v.HasFile = true
		v.FileInfo = f.File.Preview()
	}
	return v
}
