package gallery

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"photo-gallery/internal/domain/photo"
)

// PhotoAPI is the subset of the photo API the controller needs
type PhotoAPI interface {
	ListPhotos(ctx context.Context) ([]photo.Record, error)
	UploadPhoto(ctx context.Context, in photo.UploadInput) (photo.Record, error)
	DeletePhoto(ctx context.Context, id int64) error
	UpdateDescription(ctx context.Context, id int64, description string) (photo.Record, error)
}

// Option configures a Controller
type Option func(*Controller)

// WithLogger sets the logger used for API failures
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Controller) { c.logger = logger }
}

// WithNotificationTTL sets how long notifications stay visible
func WithNotificationTTL(ttl time.Duration) Option {
	return func(c *Controller) {
		if ttl > 0 {
			c.notes.ttl = ttl
		}
	}
}

func withAfterFunc(f afterFunc) Option {
	return func(c *Controller) { c.notes.after = f }
}

// Controller owns the gallery state. All methods are safe for concurrent
// use; the lock is never held across an API call.
type Controller struct {
	api    PhotoAPI
	doc    Document
	logger zerolog.Logger

	mu             sync.Mutex
	allPhotos      []photo.Record
	filteredPhotos []photo.Record
	query          string
	failedImages   map[int64]bool

	generation uint64
	loading    bool
	refreshing bool
	uploading  bool

	uploadOpen bool
	form       UploadForm
	detail     *PhotoDetail

	confirm dialog
	prompt  dialog
	notes   notifier
}

// New creates a controller bound to api and doc. Nothing is fetched until
// Start or LoadPhotos is called.
func New(api PhotoAPI, doc Document, opts ...Option) *Controller {
	if doc == nil {
		doc = DocumentFunc(func(Snapshot) {})
	}
	c := &Controller{
		api:          api,
		doc:          doc,
		logger:       zerolog.Nop(),
		failedImages: make(map[int64]bool),
		notes:        notifier{ttl: DefaultNotificationTTL, after: realAfterFunc},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Start renders the initial state and performs the first load
func (c *Controller) Start(ctx context.Context) error {
	c.Render()
	return c.LoadPhotos(ctx)
}

// Close cancels the pending notification timer
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.notes.close()
}

// AllPhotos returns a copy of the photo list in server order
func (c *Controller) AllPhotos() []photo.Record {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]photo.Record(nil), c.allPhotos...)
}

// FilteredPhotos returns a copy of the photos matching the active query
func (c *Controller) FilteredPhotos() []photo.Record {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]photo.Record(nil), c.filteredPhotos...)
}

// Query returns the active normalized search query
func (c *Controller) Query() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return NormalizeQuery(c.query)
}

// Snapshot returns the current render-ready state
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// Render hands the current snapshot to the document
func (c *Controller) Render() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.renderLocked()
}

func (c *Controller) snapshotLocked() Snapshot {
	s := Snapshot{
		Query:        c.query,
		Loading:      c.loading,
		Refreshing:   c.refreshing,
		Gallery:      Project(c.filteredPhotos, c.failedImages),
		UploadModal:  c.form.view(c.uploadOpen, c.uploading),
		Notification: c.notes.snapshot(),
		Confirmation: c.confirm.confirmation(),
		Prompt:       c.prompt.prompt(),
		ScrollLocked: c.uploadOpen || c.detail != nil,
	}
	if c.detail != nil {
		d := *c.detail
		s.PhotoModal = &d
	}
	return s
}

func (c *Controller) renderLocked() {
	c.doc.Render(c.snapshotLocked())
}

func (c *Controller) notifyLocked(message string, severity Severity) {
	c.notes.show(message, severity, func(seq uint64) {
		c.mu.Lock()
		defer c.mu.Unlock()
		if c.notes.dismiss(seq) {
			c.renderLocked()
		}
	})
}

// Notify shows a message in the notification slot
func (c *Controller) Notify(message string, severity Severity) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.notifyLocked(message, severity)
	c.renderLocked()
}

func (c *Controller) refilterLocked() {
	c.filteredPhotos = Filter(c.allPhotos, c.query)
}

// LoadPhotos fetches the photo list and replaces the in-memory state. When
// loads overlap, only the response of the most recently issued one is
// applied; older responses return ErrStaleLoad. A failed load clears the
// gallery and shows an error notification.
func (c *Controller) LoadPhotos(ctx context.Context) error {
	c.mu.Lock()
	c.generation++
	gen := c.generation
	c.loading = true
	c.renderLocked()
	c.mu.Unlock()

	photos, err := c.api.ListPhotos(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.generation {
		c.logger.Debug().Uint64("generation", gen).Uint64("latest", c.generation).Msg("discarding stale photo list")
		return ErrStaleLoad
	}
	c.loading = false

	if err != nil {
		c.logger.Error().Err(err).Msg("error loading photos")
		c.allPhotos = nil
		c.filteredPhotos = nil
		c.notifyLocked(MsgLoadFailed, SeverityError)
		c.renderLocked()
		return fmt.Errorf("load photos: %w", err)
	}

	c.allPhotos = append([]photo.Record(nil), photos...)
	c.failedImages = make(map[int64]bool)
	c.refilterLocked()
	c.renderLocked()
	return nil
}

// Refresh is the user-triggered reload. The refresh control shows as busy
// until it completes; a refresh while one is running is ignored.
func (c *Controller) Refresh(ctx context.Context) error {
	c.mu.Lock()
	if c.refreshing {
		c.mu.Unlock()
		return nil
	}
	c.refreshing = true
	c.renderLocked()
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.refreshing = false
		c.renderLocked()
		c.mu.Unlock()
	}()

	return c.LoadPhotos(ctx)
}

// Search filters the gallery by query and re-renders
func (c *Controller) Search(query string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.query = query
	c.refilterLocked()
	c.renderLocked()
}

// ImageFailed replaces the image of one card with a placeholder
func (c *Controller) ImageFailed(id int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if indexOf(c.allPhotos, id) < 0 || c.failedImages[id] {
		return
	}
	c.failedImages[id] = true
	c.renderLocked()
}

// SelectFile sets the file of the upload form
func (c *Controller) SelectFile(f FileInfo) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.form.File = &f
	c.renderLocked()
}

// DropFiles handles files dropped on the upload form. Only the first file
// is considered and it must be an image.
func (c *Controller) DropFiles(files []FileInfo) error {
	if len(files) == 0 {
		return nil
	}
	first := files[0]
	if !first.IsImage() {
		c.Notify(MsgSelectImage, SeverityError)
		return ErrNotImage
	}
	c.SelectFile(first)
	return nil
}

// SetDescription updates the description field and its character count
func (c *Controller) SetDescription(s string) {
	c.updateForm(func(f *UploadForm) { f.Description = s })
}

// SetTags updates the tags field
func (c *Controller) SetTags(s string) {
	c.updateForm(func(f *UploadForm) { f.Tags = s })
}

// SetLocation updates the location field
func (c *Controller) SetLocation(s string) {
	c.updateForm(func(f *UploadForm) { f.Location = s })
}

// SetCategory updates the category field
func (c *Controller) SetCategory(s string) {
	c.updateForm(func(f *UploadForm) { f.Category = s })
}

func (c *Controller) updateForm(update func(*UploadForm)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	update(&c.form)
	c.renderLocked()
}

// ResetUploadForm clears every field of the upload form
func (c *Controller) ResetUploadForm() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.form = UploadForm{}
	c.renderLocked()
}

// SubmitUpload uploads the contents of the upload form
func (c *Controller) SubmitUpload(ctx context.Context) error {
	c.mu.Lock()
	form := c.form
	c.mu.Unlock()
	return c.Upload(ctx, form)
}

// Upload sends form to the photo API. On success the returned photo is
// prepended to the list, the dialog closes and the form resets; on failure
// the state is left unchanged.
func (c *Controller) Upload(ctx context.Context, form UploadForm) error {
	c.mu.Lock()
	if c.uploading {
		c.mu.Unlock()
		return ErrUploadInFlight
	}
	if form.File == nil {
		c.notifyLocked(MsgSelectFile, SeverityError)
		c.renderLocked()
		c.mu.Unlock()
		return ErrNoFile
	}
	if strings.TrimSpace(form.Description) == "" {
		c.notifyLocked(MsgProvideDesc, SeverityError)
		c.renderLocked()
		c.mu.Unlock()
		return ErrEmptyDescription
	}
	c.uploading = true
	c.renderLocked()
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.uploading = false
		c.renderLocked()
		c.mu.Unlock()
	}()

	created, err := c.sendUpload(ctx, form)
	if err != nil {
		c.logger.Error().Err(err).Str("file", form.File.Name).Msg("error uploading photo")
		c.Notify(MsgUploadFailed, SeverityError)
		return fmt.Errorf("upload photo: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.allPhotos = append([]photo.Record{created}, c.allPhotos...)
	c.refilterLocked()
	c.uploadOpen = false
	c.form = UploadForm{}
	c.notifyLocked(MsgUploadSuccess, SeveritySuccess)
	c.renderLocked()
	return nil
}

func (c *Controller) sendUpload(ctx context.Context, form UploadForm) (photo.Record, error) {
	if form.File.Open == nil {
		return photo.Record{}, errors.New("file has no content")
	}
	content, err := form.File.Open()
	if err != nil {
		return photo.Record{}, fmt.Errorf("open %s: %w", form.File.Name, err)
	}
	defer func() { _ = content.Close() }() //nolint:errcheck // read-only

	in := form.input()
	in.Content = content
	return c.api.UploadPhoto(ctx, in)
}

// RequestDelete asks for confirmation before deleting a photo
func (c *Controller) RequestDelete(id int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.confirm.open(id, MsgConfirmDelete, "")
	c.renderLocked()
}

// ConfirmationState reports the state of the delete confirmation
func (c *Controller) ConfirmationState() DialogState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.confirm.state
}

// CancelConfirmation dismisses a pending delete
func (c *Controller) CancelConfirmation() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.confirm.resolve(false); ok {
		c.renderLocked()
	}
}

// ConfirmDelete deletes the photo awaiting confirmation
func (c *Controller) ConfirmDelete(ctx context.Context) error {
	c.mu.Lock()
	id, ok := c.confirm.resolve(true)
	if !ok {
		c.mu.Unlock()
		return ErrNoPendingConfirmation
	}
	c.renderLocked()
	c.mu.Unlock()

	if err := c.api.DeletePhoto(ctx, id); err != nil {
		c.logger.Error().Err(err).Int64("photo_id", id).Msg("error deleting photo")
		c.Notify(MsgDeleteFailed, SeverityError)
		return fmt.Errorf("delete photo %d: %w", id, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.allPhotos = removeID(c.allPhotos, id)
	c.filteredPhotos = removeID(c.filteredPhotos, id)
	delete(c.failedImages, id)
	c.notifyLocked(MsgDeleteSuccess, SeveritySuccess)
	c.renderLocked()
	return nil
}

// RequestEdit opens the description prompt for a photo. Unknown ids are
// ignored.
func (c *Controller) RequestEdit(id int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	i := indexOf(c.allPhotos, id)
	if i < 0 {
		return
	}
	c.prompt.open(id, MsgEditDescription, c.allPhotos[i].Description)
	c.renderLocked()
}

// PromptState reports the state of the edit prompt
func (c *Controller) PromptState() DialogState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.prompt.state
}

// CancelEdit dismisses a pending edit
func (c *Controller) CancelEdit() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.prompt.resolve(false); ok {
		c.renderLocked()
	}
}

// SubmitEdit answers the pending edit prompt with value. An unchanged
// description sends nothing; an empty one is rejected with a notification.
func (c *Controller) SubmitEdit(ctx context.Context, value string) error {
	c.mu.Lock()
	id, ok := c.prompt.resolve(true)
	if !ok {
		c.mu.Unlock()
		return ErrNoPendingPrompt
	}

	description := strings.TrimSpace(value)
	i := indexOf(c.allPhotos, id)
	if i < 0 || description == c.allPhotos[i].Description {
		c.renderLocked()
		c.mu.Unlock()
		return nil
	}
	if description == "" {
		c.notifyLocked(MsgEmptyDescription, SeverityError)
		c.renderLocked()
		c.mu.Unlock()
		return ErrEmptyDescription
	}
	c.renderLocked()
	c.mu.Unlock()

	updated, err := c.api.UpdateDescription(ctx, id, description)
	if err != nil {
		c.logger.Error().Err(err).Int64("photo_id", id).Msg("error updating photo")
		c.Notify(MsgUpdateFailed, SeverityError)
		return fmt.Errorf("update photo %d: %w", id, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if i := indexOf(c.allPhotos, id); i >= 0 {
		c.allPhotos[i] = updated
		delete(c.failedImages, id)
	}
	c.refilterLocked()
	c.notifyLocked(MsgUpdateSuccess, SeveritySuccess)
	c.renderLocked()
	return nil
}
