package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"photo-gallery/internal/domain/photo"
)

const (
	maxMemoryPerUpload = 1 << 20 // 1MB in memory, the rest spills to disk
	multipartOverhead  = 1 << 20 // room for the form fields and part headers
)

// uploadPhotoHandler handles a single photo upload (multipart "file" plus
// description and optional tags, location and category)
func (h *Handler) uploadPhotoHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "UploadPhoto", trace.WithSpanKind(trace.SpanKindServer))
	defer span.End()

	h.logger.Info(ctx).
		Str("user_agent", r.UserAgent()).
		Str("content_type", r.Header.Get("Content-Type")).
		Msg("Starting photo upload request")

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize+multipartOverhead)

	if err := r.ParseMultipartForm(maxMemoryPerUpload); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to parse multipart form")
		h.logger.Warn(ctx).Err(err).Msg("Failed to parse multipart form")

		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			http.Error(w, "File size exceeds maximum allowed size", http.StatusRequestEntityTooLarge)
			return
		}
		http.Error(w, fmt.Sprintf("Failed to parse form: %v", err), http.StatusBadRequest)
		return
	}
	defer func() {
		if r.MultipartForm != nil {
			_ = r.MultipartForm.RemoveAll() //nolint:errcheck // Cleanup operation
		}
	}()

	file, header, err := r.FormFile("file")
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "no file in request")
		h.logger.Warn(ctx).Msg("Upload request with no file")
		http.Error(w, "File is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	req := &photo.UploadRequest{
		OriginalFileName: header.Filename,
		ContentType:      header.Header.Get("Content-Type"),
		FileSize:         header.Size,
		Description:      r.FormValue("description"),
		Tags:             r.FormValue("tags"),
		Location:         r.FormValue("location"),
		Category:         r.FormValue("category"),
	}

	span.SetAttributes(
		attribute.String("upload.filename", header.Filename),
		attribute.String("upload.content_type", req.ContentType),
		attribute.Int64("upload.size", header.Size),
	)

	p, err := h.photos.Upload(ctx, req, file)
	if err != nil {
		h.fail(w, r.WithContext(ctx), span, err, "Failed to upload photo")
		return
	}

	span.SetAttributes(attribute.Int64("photo.id", p.ID))
	h.logger.Info(ctx).
		Int64("photo_id", p.ID).
		Str("file_name", p.FileName).
		Int64("size", p.FileSize).
		Msg("Photo uploaded")

	writeJSON(w, http.StatusCreated, p.ToRecord(h.now()))
}
