package testutils

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"

	"github.com/google/uuid"

	"photo-gallery/internal/domain/photo"
	"photo-gallery/internal/observability"
	"photo-gallery/internal/services"
)

// TestSuite provides common test utilities for integration tests
type TestSuite struct {
	Containers *TestContainers
	Container  *services.Container
}

// SetupTestSuite starts the containers and wires the photo services on top
func SetupTestSuite(ctx context.Context) (*TestSuite, error) {
	containers, err := SetupTestContainers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to setup test containers: %w", err)
	}

	container, err := services.NewContainer(containers.Config(), containers.DB, containers.Storage, containers.RedisClient, observability.NopLogger())
	if err != nil {
		_ = containers.Cleanup(ctx) //nolint:errcheck // error path
		return nil, fmt.Errorf("failed to create services container: %w", err)
	}

	return &TestSuite{
		Containers: containers,
		Container:  container,
	}, nil
}

// Cleanup cleans up all test resources
func (ts *TestSuite) Cleanup(ctx context.Context) error {
	return ts.Containers.Cleanup(ctx)
}

// ResetData clears rows, objects and cached lists between tests
func (ts *TestSuite) ResetData(ctx context.Context) error {
	if err := ts.Containers.ResetDatabase(ctx); err != nil {
		return err
	}
	if err := ts.Containers.CleanBucket(ctx); err != nil {
		return fmt.Errorf("failed to clean bucket: %w", err)
	}
	return ts.Containers.FlushRedis(ctx)
}

// CreateTestPhoto inserts a photo row without uploading an object
func (ts *TestSuite) CreateTestPhoto(ctx context.Context, description string) (*photo.Photo, error) {
	p := &photo.Photo{
		FileName:         fmt.Sprintf("%s_test.png", uuid.NewString()),
		OriginalFileName: "test.png",
		Description:      description,
		PresignedURL:     "http://localhost/placeholder",
		FileSize:         1024,
		ContentType:      "image/png",
	}
	if err := ts.Container.PhotoRepository().Create(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to create test photo: %w", err)
	}
	return p, nil
}

// UploadTestPhoto uploads a generated PNG through the photo service
func (ts *TestSuite) UploadTestPhoto(ctx context.Context, description string) (*photo.Photo, error) {
	data, err := SamplePNG(4, 4)
	if err != nil {
		return nil, err
	}
	req := &photo.UploadRequest{
		OriginalFileName: "sample.png",
		ContentType:      "image/png",
		FileSize:         int64(len(data)),
		Description:      description,
	}
	return ts.Container.PhotoService().Upload(ctx, req, bytes.NewReader(data))
}

// SamplePNG encodes a small solid-color PNG
func SamplePNG(width, height int) ([]byte, error) {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			img.Set(x, y, color.RGBA{R: 200, G: 120, B: 40, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode sample png: %w", err)
	}
	return buf.Bytes(), nil
}

// MultipartFile describes the file part of an upload form
type MultipartFile struct {
	FieldName   string
	FileName    string
	ContentType string
	Content     []byte
}

// CreateMultipartRequest builds an upload request with one file part and
// plain form fields
func CreateMultipartRequest(url string, file MultipartFile, fields map[string]string) (*http.Request, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			return nil, err
		}
	}

	if file.FieldName == "" {
		file.FieldName = "file"
	}
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, file.FieldName, file.FileName))
	if file.ContentType != "" {
		header.Set("Content-Type", file.ContentType)
	}
	part, err := writer.CreatePart(header)
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, bytes.NewReader(file.Content)); err != nil {
		return nil, err
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}

	req := httptest.NewRequest(http.MethodPost, url, &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req, nil
}
