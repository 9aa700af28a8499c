package gallery

import (
	"photo-gallery/internal/domain/photo"
)

// Document displays controller snapshots. Render is called with the
// controller lock held, so implementations must not call back into the
// controller synchronously.
type Document interface {
	Render(Snapshot)
}

// DocumentFunc adapts a function to Document
type DocumentFunc func(Snapshot)

// Render implements Document
func (f DocumentFunc) Render(s Snapshot) { f(s) }

// Snapshot is the complete render-ready state of the gallery
type Snapshot struct {
	Query        string
	Loading      bool
	Refreshing   bool
	Gallery      GalleryView
	UploadModal  UploadModalView
	PhotoModal   *PhotoDetail
	Notification *Notification
	Confirmation *Confirmation
	Prompt       *Prompt
	ScrollLocked bool
}

// RefreshLabel is the caption of the refresh control
func (s Snapshot) RefreshLabel() string {
	if s.Refreshing {
		return RefreshButtonBusy
	}
	return RefreshButtonIdle
}

// GalleryView is the grid of cards, or the empty state
type GalleryView struct {
	Empty bool
	Cards []Card
}

// Card is one photo in the grid
type Card struct {
	ID          int64
	ImageURL    string
	Alt         string
	Description string
	TimeAgo     string
	FileSize    string
	ImageFailed bool
}

// UploadModalView is the state of the upload dialog and its form
type UploadModalView struct {
	Open        bool
	HasFile     bool
	FileInfo    string
	Description string
	CharCount   int
	Tags        string
	Location    string
	Category    string
	Uploading   bool
}

// ButtonLabel is the caption of the submit control
func (v UploadModalView) ButtonLabel() string {
	if v.Uploading {
		return UploadButtonBusy
	}
	return UploadButtonIdle
}

// PhotoDetail is the content of the photo detail dialog
type PhotoDetail struct {
	ID          int64
	ImageURL    string
	Alt         string
	Description string
	TimeAgo     string
	FileSize    string
	Tags        string
	Location    string
	Category    string
}

// Confirmation is a pending yes/no question
type Confirmation struct {
	PhotoID int64
	Message string
}

// Prompt is a pending text question
type Prompt struct {
	PhotoID int64
	Message string
	Value   string
}

// Project builds the gallery grid for photos. failed marks photos whose
// image could not be displayed.
func Project(photos []photo.Record, failed map[int64]bool) GalleryView {
	if len(photos) == 0 {
		return GalleryView{Empty: true}
	}

	cards := make([]Card, 0, len(photos))
	for _, p := range photos {
		cards = append(cards, Card{
			ID:          p.ID,
			ImageURL:    p.PresignedURL,
			Alt:         p.Description,
			Description: p.Description,
			TimeAgo:     p.TimeAgo,
			FileSize:    p.FileSizeFormatted,
			ImageFailed: failed[p.ID],
		})
	}
	return GalleryView{Cards: cards}
}

// ProjectDetail builds the detail dialog content for p
func ProjectDetail(p photo.Record) *PhotoDetail {
	return &PhotoDetail{
		ID:          p.ID,
		ImageURL:    p.PresignedURL,
		Alt:         p.Description,
		Description: p.Description,
		TimeAgo:     p.TimeAgo,
		FileSize:    p.FileSizeFormatted,
		Tags:        p.Tags,
		Location:    p.Location,
		Category:    p.Category,
	}
}

// InitialSnapshot is the snapshot of a freshly loaded gallery with no
// interaction yet, used for server-side rendering of the first page.
func InitialSnapshot(photos []photo.Record) Snapshot {
	return Snapshot{Gallery: Project(photos, nil)}
}
