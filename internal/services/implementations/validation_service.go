package implementations

import (
	"context"
	"fmt"
	"strings"

	"photo-gallery/internal/domain/photo"
)

// ValidationServiceImpl applies the configured upload limits on top of the
// domain rules
type ValidationServiceImpl struct {
	maxUploadSize int64
	allowedTypes  map[string]bool
}

var _ photo.ValidationService = (*ValidationServiceImpl)(nil)

// NewValidationService creates a validation service. allowedTypes holds
// content types ("image/png") or bare extensions ("png"); an empty list
// accepts every supported content type.
func NewValidationService(maxUploadSize int64, allowedTypes []string) *ValidationServiceImpl {
	allowed := make(map[string]bool, len(allowedTypes))
	for _, t := range allowedTypes {
		t = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(t), "."))
		if t == "" {
			continue
		}
		if !strings.Contains(t, "/") {
			t = "image/" + t
		}
		allowed[t] = true
	}
	return &ValidationServiceImpl{maxUploadSize: maxUploadSize, allowedTypes: allowed}
}

// ValidateUpload normalizes and validates an upload request
func (v *ValidationServiceImpl) ValidateUpload(_ context.Context, req *photo.UploadRequest) error {
	if req == nil {
		return fmt.Errorf("%w: upload request cannot be nil", photo.ErrInvalidFile)
	}

	req.Normalize()
	if err := req.Validate(v.maxUploadSize); err != nil {
		return err
	}

	if len(v.allowedTypes) > 0 && !v.allowedTypes[req.ContentType] {
		return fmt.Errorf("%w: %q is not an allowed file type", photo.ErrInvalidContentType, req.ContentType)
	}

	return nil
}

// ValidateDescriptionUpdate validates a description change
func (v *ValidationServiceImpl) ValidateDescriptionUpdate(_ context.Context, id int64, description string) error {
	if id <= 0 {
		return photo.ErrPhotoNotFound
	}
	return photo.ValidateDescription(description)
}
