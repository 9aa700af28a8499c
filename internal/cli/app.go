// Package cli is the terminal host for the gallery controller.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"photo-gallery/internal/client"
	"photo-gallery/internal/config"
	"photo-gallery/internal/gallery"
)

// HealthAPI reports the backend health
type HealthAPI interface {
	Health(ctx context.Context) (client.HealthStatus, error)
}

type App struct {
	ctrl      *gallery.Controller
	doc       *Document
	refresher *gallery.Refresher
	health    HealthAPI
	reader    *bufio.Reader
	out       io.Writer
	width     func() int
	logger    zerolog.Logger
}

// NewApp wires a controller to the photo API at cfg.APIBaseURL
func NewApp(cfg *config.ClientConfig, logger zerolog.Logger, in io.Reader, out io.Writer) *App {
	api := client.New(cfg.APIBaseURL,
		client.WithTimeout(cfg.HTTPTimeout),
		client.WithLogger(logger.With().Str("component", "photo-api-client").Logger()),
	)
	return newApp(api, api, cfg, logger, in, out)
}

func newApp(api gallery.PhotoAPI, health HealthAPI, cfg *config.ClientConfig, logger zerolog.Logger, in io.Reader, out io.Writer) *App {
	doc := NewDocument(out)
	ctrl := gallery.New(api, doc,
		gallery.WithLogger(logger.With().Str("component", "gallery").Logger()),
		gallery.WithNotificationTTL(cfg.NotificationTTL),
	)
	return &App{
		ctrl:      ctrl,
		doc:       doc,
		refresher: gallery.NewRefresher(ctrl, cfg.RefreshInterval, logger),
		health:    health,
		reader:    bufio.NewReader(in),
		out:       out,
		width:     func() int { return terminalWidth(os.Stdout) },
		logger:    logger,
	}
}

// Run loads the gallery, starts the background refresh and serves commands
// until the input ends or the user quits
func (a *App) Run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	defer a.ctrl.Close()

	_ = a.ctrl.Start(ctx) //nolint:errcheck // failure is notified
	go func() { _ = a.refresher.Run(ctx) }()

	a.List(ctx)
	runREPL(ctx, a, a.reader, a.out)
}

func (a *App) List(context.Context) error {
	printGrid(a.out, a.ctrl.Snapshot(), a.width())
	return nil
}

func (a *App) Search(_ context.Context, query string) error {
	a.ctrl.Search(query)
	printGrid(a.out, a.ctrl.Snapshot(), a.width())
	return nil
}

func (a *App) Refresh(ctx context.Context) error {
	if err := a.ctrl.Refresh(ctx); err != nil {
		return err
	}
	printGrid(a.out, a.ctrl.Snapshot(), a.width())
	return nil
}

// Upload asks for the file and its details, then submits the upload form
func (a *App) Upload(ctx context.Context, path string) error {
	var err error
	if path == "" {
		if path, err = GetSimpleText(a.reader, "Path to image", a.out); err != nil {
			return err
		}
	}

	info, err := fileInfo(path)
	if err != nil {
		fmt.Fprintf(a.out, "Cannot read %s: %v\n", path, err)
		return err
	}

	a.ctrl.OpenUploadModal()
	if err := a.ctrl.DropFiles([]gallery.FileInfo{info}); err != nil {
		a.ctrl.CloseUploadModal()
		return err
	}
	fmt.Fprintln(a.out, a.ctrl.Snapshot().UploadModal.FileInfo)

	fields := []struct {
		prompt string
		set    func(string)
	}{
		{"Description", a.ctrl.SetDescription},
		{"Tags (optional)", a.ctrl.SetTags},
		{"Location (optional)", a.ctrl.SetLocation},
		{"Category (optional)", a.ctrl.SetCategory},
	}
	for _, f := range fields {
		v, err := GetSimpleText(a.reader, f.prompt, a.out)
		if err != nil {
			a.ctrl.CloseUploadModal()
			return err
		}
		f.set(v)
	}

	if err := a.ctrl.SubmitUpload(ctx); err != nil {
		return err
	}
	return nil
}

func (a *App) Show(_ context.Context, id int64) error {
	a.ctrl.OpenPhotoModal(id)
	detail := a.ctrl.Snapshot().PhotoModal
	if detail == nil || detail.ID != id {
		fmt.Fprintf(a.out, "No photo #%d\n", id)
		return nil
	}
	printDetail(a.out, detail)
	return nil
}

func (a *App) CloseModals(context.Context) error {
	a.ctrl.Navigate()
	return nil
}

// Edit prompts for a new description. An empty answer cancels.
func (a *App) Edit(ctx context.Context, id int64) error {
	a.ctrl.RequestEdit(id)
	p := a.ctrl.Snapshot().Prompt
	if p == nil {
		fmt.Fprintf(a.out, "No photo #%d\n", id)
		return nil
	}

	value, err := GetSimpleText(a.reader, fmt.Sprintf("%s [%s] (empty to cancel)", p.Message, p.Value), a.out)
	if err != nil || value == "" {
		a.ctrl.CancelEdit()
		return err
	}
	return a.ctrl.SubmitEdit(ctx, value)
}

// Delete asks for confirmation and deletes the photo
func (a *App) Delete(ctx context.Context, id int64) error {
	a.ctrl.RequestDelete(id)
	c := a.ctrl.Snapshot().Confirmation
	if c == nil {
		return gallery.ErrNoPendingConfirmation
	}

	answer, err := GetSimpleText(a.reader, c.Message+" [y/N]", a.out)
	if err != nil || !strings.EqualFold(answer, "y") && !strings.EqualFold(answer, "yes") {
		a.ctrl.CancelConfirmation()
		return err
	}
	return a.ctrl.ConfirmDelete(ctx)
}

// Key forwards a shortcut such as "ctrl+u" to the controller
func (a *App) Key(ctx context.Context, combo string) error {
	k, ok := parseKey(combo)
	if !ok {
		return fmt.Errorf("unknown key %q", combo)
	}
	if a.ctrl.HandleKey(ctx, k) && k.Name == "u" {
		return a.Upload(ctx, "")
	}
	return nil
}

// SetVisible pauses or resumes the background refresh
func (a *App) SetVisible(_ context.Context, visible bool) error {
	a.refresher.SetVisible(visible)
	return nil
}

func (a *App) Health(ctx context.Context) error {
	if a.health == nil {
		return errors.New("health check not available")
	}
	hs, err := a.health.Health(ctx)
	if err != nil {
		fmt.Fprintf(a.out, "Photo API unreachable: %v\n", err)
		return err
	}
	fmt.Fprintf(a.out, "%s: %s\n", hs.Service, hs.Status)
	return nil
}

func fileInfo(path string) (gallery.FileInfo, error) {
	st, err := os.Stat(path)
	if err != nil {
		return gallery.FileInfo{}, err
	}
	if st.IsDir() {
		return gallery.FileInfo{}, fmt.Errorf("%s is a directory", path)
	}

	contentType := mime.TypeByExtension(strings.ToLower(filepath.Ext(path)))
	if i := strings.IndexByte(contentType, ';'); i >= 0 {
		contentType = contentType[:i]
	}

	return gallery.FileInfo{
		Name:        filepath.Base(path),
		Size:        st.Size(),
		ContentType: contentType,
		Open:        func() (io.ReadCloser, error) { return os.Open(path) },
	}, nil
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimPrefix(s, "#"), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid photo id %q", s)
	}
	return id, nil
}
