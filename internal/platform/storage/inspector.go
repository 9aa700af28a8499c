package storage

import (
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // register gif decoder
	_ "image/jpeg" // register jpeg decoder
	_ "image/png"  // register png decoder
	"io"

	_ "golang.org/x/image/webp" // register webp decoder

	"photo-gallery/internal/domain/photo"
)

// Inspector reads image headers to confirm uploads are real images
type Inspector struct {
	maxWidth  int
	maxHeight int
}

var _ photo.ImageInspector = (*Inspector)(nil)

// expectedFormats maps accepted content types to image.DecodeConfig format names
var expectedFormats = map[string]string{
	"image/jpeg": "jpeg",
	"image/jpg":  "jpeg",
	"image/png":  "png",
	"image/gif":  "gif",
	"image/webp": "webp",
}

// NewInspector creates an inspector. Non-positive limits default to 20000 pixels.
func NewInspector(maxWidth, maxHeight int) *Inspector {
	if maxWidth <= 0 {
		maxWidth = 20000
	}
	if maxHeight <= 0 {
		maxHeight = 20000
	}
	return &Inspector{maxWidth: maxWidth, maxHeight: maxHeight}
}

// Inspect decodes the image header without decoding pixel data
func (i *Inspector) Inspect(_ context.Context, data io.Reader) (*photo.ImageInfo, error) {
	if data == nil {
		return nil, errors.New("data cannot be nil")
	}

	cfg, format, err := image.DecodeConfig(data)
	if err != nil {
		return nil, fmt.Errorf("%w: not a decodable image: %w", photo.ErrInvalidFile, err)
	}

	return &photo.ImageInfo{Width: cfg.Width, Height: cfg.Height, Format: format}, nil
}

// Validate checks that data decodes as the format its content type claims
func (i *Inspector) Validate(ctx context.Context, data io.Reader, contentType string) error {
	expected, ok := expectedFormats[contentType]
	if !ok {
		return fmt.Errorf("%w: %s", photo.ErrInvalidContentType, contentType)
	}

	info, err := i.Inspect(ctx, data)
	if err != nil {
		return err
	}

	if info.Format != expected {
		return fmt.Errorf("%w: image format %s doesn't match content type %s", photo.ErrInvalidContentType, info.Format, contentType)
	}

	if info.Width <= 0 || info.Height <= 0 {
		return fmt.Errorf("%w: invalid image dimensions %dx%d", photo.ErrInvalidFile, info.Width, info.Height)
	}

	if info.Width > i.maxWidth || info.Height > i.maxHeight {
		return fmt.Errorf("%w: image dimensions %dx%d exceed maximum allowed %dx%d",
			photo.ErrInvalidFile, info.Width, info.Height, i.maxWidth, i.maxHeight)
	}

	return nil
}
