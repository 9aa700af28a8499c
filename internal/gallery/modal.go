package gallery

import "context"

// ModalID identifies a modal container
type ModalID string

const (
	UploadModal ModalID = "uploadModal"
	PhotoModal  ModalID = "photoModal"
)

// Key is a key press reported by the host
type Key struct {
	Name string
	Ctrl bool
	Meta bool
}

// OpenUploadModal shows the upload dialog
func (c *Controller) OpenUploadModal() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.uploadOpen = true
	c.renderLocked()
}

// CloseUploadModal hides the upload dialog. The form keeps its contents.
func (c *Controller) CloseUploadModal() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.uploadOpen = false
	c.renderLocked()
}

// OpenPhotoModal shows the detail dialog for a photo. Unknown ids are
// ignored.
func (c *Controller) OpenPhotoModal(id int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	i := indexOf(c.allPhotos, id)
	if i < 0 {
		return
	}
	c.detail = ProjectDetail(c.allPhotos[i])
	c.renderLocked()
}

// ClosePhotoModal hides the detail dialog
func (c *Controller) ClosePhotoModal() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.detail = nil
	c.renderLocked()
}

// BackdropClick closes modal when the click landed on the modal container
// itself rather than on its content
func (c *Controller) BackdropClick(modal ModalID, target string) {
	if target != string(modal) {
		return
	}
	switch modal {
	case UploadModal:
		c.CloseUploadModal()
	case PhotoModal:
		c.ClosePhotoModal()
	}
}

// Navigate handles history back/forward by closing both dialogs
func (c *Controller) Navigate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.uploadOpen = false
	c.detail = nil
	c.renderLocked()
}

// HandleKey applies the keyboard shortcuts. It reports whether the key was
// consumed, in which case the host suppresses its default action.
func (c *Controller) HandleKey(ctx context.Context, k Key) bool {
	if k.Name == "Escape" {
		c.mu.Lock()
		changed := false
		if c.uploadOpen {
			c.uploadOpen = false
			changed = true
		}
		if c.detail != nil {
			c.detail = nil
			changed = true
		}
		if changed {
			c.renderLocked()
		}
		c.mu.Unlock()
		return false
	}

	if !k.Ctrl && !k.Meta {
		return false
	}

	switch k.Name {
	case "u":
		c.OpenUploadModal()
		return true
	case "r":
		_ = c.Refresh(ctx) //nolint:errcheck // failure is notified
		return true
	}
	return false
}
