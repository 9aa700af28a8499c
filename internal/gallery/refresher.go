package gallery

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// DefaultRefreshInterval is the period of background reloads
const DefaultRefreshInterval = 5 * time.Minute

// Loader reloads the photo list
type Loader interface {
	LoadPhotos(ctx context.Context) error
}

// Refresher reloads the gallery periodically while the host is visible and
// immediately when it becomes visible again
type Refresher struct {
	loader   Loader
	interval time.Duration
	logger   zerolog.Logger

	mu      sync.Mutex
	visible bool
	wake    chan struct{}
}

// NewRefresher creates a refresher. The host starts out visible.
func NewRefresher(loader Loader, interval time.Duration, logger zerolog.Logger) *Refresher {
	if interval <= 0 {
		interval = DefaultRefreshInterval
	}
	return &Refresher{
		loader:   loader,
		interval: interval,
		logger:   logger,
		visible:  true,
		wake:     make(chan struct{}, 1),
	}
}

// Visible reports the last visibility set by the host
func (r *Refresher) Visible() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.visible
}

// SetVisible records the host visibility. Becoming visible schedules an
// immediate reload.
func (r *Refresher) SetVisible(visible bool) {
	r.mu.Lock()
	wasVisible := r.visible
	r.visible = visible
	r.mu.Unlock()

	if visible && !wasVisible {
		select {
		case r.wake <- struct{}{}:
		default:
		}
	}
}

// Run blocks until ctx is done
func (r *Refresher) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if r.Visible() {
				r.load(ctx, "interval")
			}
		case <-r.wake:
			r.load(ctx, "visible")
		}
	}
}

func (r *Refresher) load(ctx context.Context, trigger string) {
	if err := r.loader.LoadPhotos(ctx); err != nil && !errors.Is(err, ErrStaleLoad) && ctx.Err() == nil {
		r.logger.Debug().Err(err).Str("trigger", trigger).Msg("background refresh failed")
	}
}
