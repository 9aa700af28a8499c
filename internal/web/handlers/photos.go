package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"photo-gallery/internal/domain/photo"
	"photo-gallery/internal/gallery"
	"photo-gallery/internal/gallery/htmlview"
)

// maxJSONBody bounds the description update payload
const maxJSONBody = 16 << 10

func (h *Handler) indexHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	photos, err := h.photos.List(ctx)
	if err != nil {
		h.logger.Error(ctx).Err(err).Msg("Failed to list photos for index page")
		photos = nil
	}

	snap := gallery.InitialSnapshot(photo.ToRecords(photos, h.now()))
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := htmlview.WritePage(w, snap, htmlview.Options{}); err != nil {
		h.logger.Error(ctx).Err(err).Msg("Failed to render index page")
	}
}

func (h *Handler) listPhotosHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "ListPhotos", trace.WithSpanKind(trace.SpanKindServer))
	defer span.End()

	photos, err := h.photos.List(ctx)
	if err != nil {
		h.fail(w, r.WithContext(ctx), span, err, "Failed to list photos")
		return
	}

	span.SetAttributes(attribute.Int("photos.count", len(photos)))
	h.logger.Debug(ctx).Int("count", len(photos)).Msg("Retrieved photos")
	writeJSON(w, http.StatusOK, photo.ToRecords(photos, h.now()))
}

func (h *Handler) getPhotoHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	ctx, span := h.tracer.Start(r.Context(), "GetPhoto", trace.WithSpanKind(trace.SpanKindServer))
	defer span.End()
	span.SetAttributes(attribute.Int64("photo.id", id))

	p, err := h.photos.Get(ctx, id)
	if err != nil {
		h.fail(w, r.WithContext(ctx), span, err, "Failed to get photo")
		return
	}

	writeJSON(w, http.StatusOK, p.ToRecord(h.now()))
}

type descriptionRequest struct {
	Description *string `json:"description"`
}

func (h *Handler) updateDescriptionHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	ctx, span := h.tracer.Start(r.Context(), "UpdatePhotoDescription", trace.WithSpanKind(trace.SpanKindServer))
	defer span.End()
	span.SetAttributes(attribute.Int64("photo.id", id))

	var req descriptionRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxJSONBody)).Decode(&req); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "invalid request body")
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Description == nil || strings.TrimSpace(*req.Description) == "" {
		span.SetStatus(codes.Error, "empty description")
		http.Error(w, "Description cannot be empty", http.StatusBadRequest)
		return
	}

	h.logger.Info(ctx).Int64("photo_id", id).Msg("Updating photo description")

	p, err := h.photos.UpdateDescription(ctx, id, strings.TrimSpace(*req.Description))
	if err != nil {
		h.fail(w, r.WithContext(ctx), span, err, "Failed to update photo description")
		return
	}

	writeJSON(w, http.StatusOK, p.ToRecord(h.now()))
}

func (h *Handler) deletePhotoHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	ctx, span := h.tracer.Start(r.Context(), "DeletePhoto", trace.WithSpanKind(trace.SpanKindServer))
	defer span.End()
	span.SetAttributes(attribute.Int64("photo.id", id))

	h.logger.Info(ctx).Int64("photo_id", id).Msg("Deleting photo")

	if err := h.photos.Delete(ctx, id); err != nil {
		h.fail(w, r.WithContext(ctx), span, err, "Failed to delete photo")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) refreshURLHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	ctx, span := h.tracer.Start(r.Context(), "RefreshPhotoURL", trace.WithSpanKind(trace.SpanKindServer))
	defer span.End()
	span.SetAttributes(attribute.Int64("photo.id", id))

	h.logger.Info(ctx).Int64("photo_id", id).Msg("Refreshing presigned URL")

	p, err := h.photos.RefreshURL(ctx, id)
	if err != nil {
		h.fail(w, r.WithContext(ctx), span, err, "Failed to refresh presigned URL")
		return
	}

	writeJSON(w, http.StatusOK, p.ToRecord(h.now()))
}

func parseID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		http.Error(w, "Invalid photo ID", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

// statusFor maps service errors onto HTTP status codes
func statusFor(err error) int {
	var maxBytesErr *http.MaxBytesError
	switch {
	case errors.Is(err, photo.ErrPhotoNotFound), errors.Is(err, photo.ErrStorageObjectAbsent):
		return http.StatusNotFound
	case errors.Is(err, photo.ErrFileTooLarge), errors.As(err, &maxBytesErr):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, photo.ErrInvalidDescription),
		errors.Is(err, photo.ErrInvalidFile),
		errors.Is(err, photo.ErrInvalidContentType):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// fail records err on the span, logs it and writes a plain text error.
// Client errors carry the error text; server errors a generic message.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, span trace.Span, err error, msg string) {
	status := statusFor(err)
	span.RecordError(err)
	span.SetStatus(codes.Error, msg)

	if status >= http.StatusInternalServerError {
		h.logger.Error(r.Context()).Err(err).Msg(msg)
		http.Error(w, msg, status)
		return
	}

	h.logger.Warn(r.Context()).Err(err).Int("status", status).Msg(msg)
	http.Error(w, err.Error(), status)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v) //nolint:errcheck // Best effort response
}
