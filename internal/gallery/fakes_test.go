package gallery

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"time"

	"photo-gallery/internal/domain/photo"
)

var errBackend = errors.New("HTTP 500: boom")

type uploadCall struct {
	input   photo.UploadInput
	content string
}

type fakeAPI struct {
	mu          sync.Mutex
	listCalls   int
	listFn      func(call int) ([]photo.Record, error)
	uploads     []uploadCall
	uploadFn    func(in photo.UploadInput) (photo.Record, error)
	deletes     []int64
	deleteErr   error
	updates     map[int64]string
	updateCalls int
	updateFn    func(id int64, description string) (photo.Record, error)
}

func newFakeAPI(photos []photo.Record) *fakeAPI {
	return &fakeAPI{
		listFn:  func(int) ([]photo.Record, error) { return photos, nil },
		updates: make(map[int64]string),
	}
}

func (f *fakeAPI) ListPhotos(_ context.Context) ([]photo.Record, error) {
	f.mu.Lock()
	f.listCalls++
	call := f.listCalls
	fn := f.listFn
	f.mu.Unlock()
	return fn(call)
}

func (f *fakeAPI) UploadPhoto(_ context.Context, in photo.UploadInput) (photo.Record, error) {
	var content string
	if in.Content != nil {
		b, _ := io.ReadAll(in.Content)
		content = string(b)
	}
	f.mu.Lock()
	f.uploads = append(f.uploads, uploadCall{input: in, content: content})
	fn := f.uploadFn
	f.mu.Unlock()
	if fn == nil {
		return photo.Record{ID: 100, Description: in.Description, Tags: in.Tags, PresignedURL: "https://s3/100"}, nil
	}
	return fn(in)
}

func (f *fakeAPI) DeletePhoto(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deletes = append(f.deletes, id)
	return f.deleteErr
}

func (f *fakeAPI) UpdateDescription(_ context.Context, id int64, description string) (photo.Record, error) {
	f.mu.Lock()
	f.updateCalls++
	f.updates[id] = description
	fn := f.updateFn
	f.mu.Unlock()
	if fn == nil {
		return photo.Record{ID: id, Description: description, TimeAgo: "Just now"}, nil
	}
	return fn(id, description)
}

func (f *fakeAPI) counts() (list, uploads, deletes, updates int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.listCalls, len(f.uploads), len(f.deletes), f.updateCalls
}

type recordingDoc struct {
	mu        sync.Mutex
	snapshots []Snapshot
}

func (d *recordingDoc) Render(s Snapshot) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.snapshots = append(d.snapshots, s)
}

func (d *recordingDoc) last() Snapshot {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.snapshots) == 0 {
		return Snapshot{}
	}
	return d.snapshots[len(d.snapshots)-1]
}

func (d *recordingDoc) count() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.snapshots)
}

// fakeTimers records scheduled callbacks and fires them on demand, even
// after they were stopped, to model timers racing their cancellation.
type fakeTimers struct {
	mu      sync.Mutex
	fns     []func()
	stopped []bool
}

func (f *fakeTimers) after(_ time.Duration, fn func()) func() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	idx := len(f.fns)
	f.fns = append(f.fns, fn)
	f.stopped = append(f.stopped, false)
	return func() bool {
		f.mu.Lock()
		defer f.mu.Unlock()
		wasActive := !f.stopped[idx]
		f.stopped[idx] = true
		return wasActive
	}
}

func (f *fakeTimers) fire(i int) {
	f.mu.Lock()
	fn := f.fns[i]
	f.mu.Unlock()
	fn()
}

func (f *fakeTimers) len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.fns)
}

func samplePhotos() []photo.Record {
	return []photo.Record{
		{ID: 3, Description: "Sunset at the Beach", Tags: "sea,orange", Location: "Nice", Category: "Nature",
			PresignedURL: "https://s3/3", TimeAgo: "5m ago", FileSizeFormatted: "1.2 MB"},
		{ID: 2, Description: "City lights", Tags: "night", Location: "Paris", Category: "Urban",
			PresignedURL: "https://s3/2", TimeAgo: "2h ago", FileSizeFormatted: "800 KB"},
		{ID: 1, Description: "Mountain hike", Location: "Chamonix", Category: "Nature",
			PresignedURL: "https://s3/1", TimeAgo: "3d ago", FileSizeFormatted: "2 MB"},
	}
}

func imageFile(name, content string) FileInfo {
	return FileInfo{
		Name:        name,
		Size:        int64(len(content)),
		ContentType: "image/png",
		Open:        func() (io.ReadCloser, error) { return io.NopCloser(strings.NewReader(content)), nil },
	}
}
