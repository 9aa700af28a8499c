// Package htmlview renders gallery snapshots as HTML. The same renderer
// backs the server-side first page and the in-process Document used by
// hosts that want markup.
package htmlview

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"sync"

	"photo-gallery/internal/domain/photo"
	"photo-gallery/internal/gallery"
)

//go:embed templates/page.html
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/page.html"))

// DefaultTitle is the page heading
const DefaultTitle = "Photo Gallery"

type pageData struct {
	Title           string
	UploadAction    string
	UploadLabel     string
	LoadingMessage  string
	EmptyMessage    string
	Placeholder     string
	PlaceholderHint string
	MaxDescription  int
	Snap            gallery.Snapshot
}

// Options customise the rendered page
type Options struct {
	Title        string
	UploadAction string
}

func (o Options) withDefaults() Options {
	if o.Title == "" {
		o.Title = DefaultTitle
	}
	if o.UploadAction == "" {
		o.UploadAction = "/api/photos/upload"
	}
	return o
}

// WritePage renders snap as a complete HTML page
func WritePage(w io.Writer, snap gallery.Snapshot, opts Options) error {
	opts = opts.withDefaults()
	data := pageData{
		Title:           opts.Title,
		UploadAction:    opts.UploadAction,
		UploadLabel:     gallery.UploadButtonIdle,
		LoadingMessage:  gallery.LoadingMessage,
		EmptyMessage:    gallery.EmptyStateMessage,
		Placeholder:     gallery.ImagePlaceholder,
		PlaceholderHint: gallery.ImagePlaceholderHint,
		MaxDescription:  photo.MaxDescriptionLen,
		Snap:            snap,
	}
	if err := pageTemplate.Execute(w, data); err != nil {
		return fmt.Errorf("render gallery page: %w", err)
	}
	return nil
}

// Document is a gallery.Document that keeps the markup of the last render
type Document struct {
	opts Options

	mu      sync.RWMutex
	html    []byte
	renders int
	err     error
}

var _ gallery.Document = (*Document)(nil)

// NewDocument creates an empty Document
func NewDocument(opts Options) *Document {
	return &Document{opts: opts}
}

// Render implements gallery.Document
func (d *Document) Render(snap gallery.Snapshot) {
	var buf bytes.Buffer
	err := WritePage(&buf, snap, d.opts)

	d.mu.Lock()
	defer d.mu.Unlock()
	d.renders++
	d.err = err
	if err == nil {
		d.html = buf.Bytes()
	}
}

// HTML returns the markup of the last successful render
func (d *Document) HTML() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return string(d.html)
}

// Renders counts Render calls
func (d *Document) Renders() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.renders
}

// Err returns the error of the last render, if any
func (d *Document) Err() error {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.err
}
