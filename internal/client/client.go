// Package client is the HTTP client for the photo API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"photo-gallery/internal/domain/photo"
	"photo-gallery/internal/gallery"
)

// maxErrorBody caps how much of a failed response is kept as error detail
const maxErrorBody = 4 << 10

// StatusError is returned for any non-2xx response
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("photo api: %d %s", e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("photo api: %d %s: %s", e.StatusCode, http.StatusText(e.StatusCode), e.Body)
}

// IsNotFound reports whether err is a 404 from the photo API
func IsNotFound(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.StatusCode == http.StatusNotFound
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithTimeout sets a per-request timeout. Zero means none.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

// WithLogger sets the logger for request failures
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// Client talks to the photo API rooted at baseURL (for example
// http://localhost:8080/api/photos).
type Client struct {
	baseURL string
	http    *http.Client
	logger  zerolog.Logger
}

var _ gallery.PhotoAPI = (*Client)(nil)

// New creates a client. The default transport is traced with otelhttp.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)},
		logger:  zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ListPhotos fetches every photo, newest first
func (c *Client) ListPhotos(ctx context.Context) ([]photo.Record, error) {
	var photos []photo.Record
	if err := c.doJSON(ctx, http.MethodGet, "", nil, &photos); err != nil {
		return nil, err
	}
	if photos == nil {
		photos = []photo.Record{}
	}
	return photos, nil
}

// GetPhoto fetches one photo
func (c *Client) GetPhoto(ctx context.Context, id int64) (photo.Record, error) {
	var p photo.Record
	err := c.doJSON(ctx, http.MethodGet, "/"+strconv.FormatInt(id, 10), nil, &p)
	return p, err
}

// UploadPhoto sends a multipart upload. Optional fields are omitted when empty.
func (c *Client) UploadPhoto(ctx context.Context, in photo.UploadInput) (photo.Record, error) {
	if in.Content == nil {
		return photo.Record{}, photo.ErrInvalidFile
	}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	contentType := in.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition",
		fmt.Sprintf(`form-data; name="file"; filename="%s"`, escapeQuotes(in.FileName)))
	h.Set("Content-Type", contentType)

	part, err := mw.CreatePart(h)
	if err != nil {
		return photo.Record{}, fmt.Errorf("failed to create file part: %w", err)
	}
	if _, err := io.Copy(part, in.Content); err != nil {
		return photo.Record{}, fmt.Errorf("failed to read upload content: %w", err)
	}

	fields := []struct{ name, value string }{
		{"description", in.Description},
		{"tags", in.Tags},
		{"location", in.Location},
		{"category", in.Category},
	}
	for _, f := range fields {
		if f.name != "description" && f.value == "" {
			continue
		}
		if err := mw.WriteField(f.name, f.value); err != nil {
			return photo.Record{}, fmt.Errorf("failed to write field %s: %w", f.name, err)
		}
	}
	if err := mw.Close(); err != nil {
		return photo.Record{}, fmt.Errorf("failed to finish multipart body: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/upload", &body)
	if err != nil {
		return photo.Record{}, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	var p photo.Record
	err = c.do(req, &p)
	return p, err
}

// DeletePhoto removes a photo
func (c *Client) DeletePhoto(ctx context.Context, id int64) error {
	return c.doJSON(ctx, http.MethodDelete, "/"+strconv.FormatInt(id, 10), nil, nil)
}

// UpdateDescription replaces a photo's description
func (c *Client) UpdateDescription(ctx context.Context, id int64, description string) (photo.Record, error) {
	var p photo.Record
	payload := map[string]string{"description": description}
	err := c.doJSON(ctx, http.MethodPatch, "/"+strconv.FormatInt(id, 10)+"/description", payload, &p)
	return p, err
}

// RefreshURL asks the server for a new presigned URL
func (c *Client) RefreshURL(ctx context.Context, id int64) (photo.Record, error) {
	var p photo.Record
	err := c.doJSON(ctx, http.MethodPatch, "/"+strconv.FormatInt(id, 10)+"/refresh-url", nil, &p)
	return p, err
}

// HealthStatus is the body of the photo API health endpoint
type HealthStatus struct {
	Status    string `json:"status"`
	Service   string `json:"service"`
	Timestamp int64  `json:"timestamp"`
}

// Health reports the photo API health
func (c *Client) Health(ctx context.Context) (HealthStatus, error) {
	var hs HealthStatus
	err := c.doJSON(ctx, http.MethodGet, "/health", nil, &hs)
	return hs, err
}

func (c *Client) doJSON(ctx context.Context, method, path string, payload, out any) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := c.newRequest(ctx, method, path, body)
	if err != nil {
		return err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.do(req, out)
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	return req, nil
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.send(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s %s response: %w", req.Method, req.URL.Path, err)
	}
	return nil
}

// send performs the request and converts non-2xx responses into StatusError
func (c *Client) send(req *http.Request) (*http.Response, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Error().Err(err).
			Str("method", req.Method).
			Str("url", req.URL.String()).
			Msg("photo api request failed")
		return nil, fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		se := &StatusError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(data))}
		c.logger.Warn().
			Str("method", req.Method).
			Str("url", req.URL.String()).
			Int("status", se.StatusCode).
			Str("body", se.Body).
			Msg("photo api returned an error")
		return nil, se
	}

	return resp, nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}
