package gallery

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"photo-gallery/internal/domain/photo"
)

func TestProject(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		v := Project(nil, nil)
		assert.True(t, v.Empty)
		assert.Empty(t, v.Cards)
	})

	t.Run("cards follow input order", func(t *testing.T) {
		v := Project(samplePhotos(), map[int64]bool{1: true})
		require.Len(t, v.Cards, 3)
		assert.False(t, v.Empty)
		assert.Equal(t, int64(3), v.Cards[0].ID)
		assert.True(t, v.Cards[2].ImageFailed)
		assert.Equal(t, "2 MB", v.Cards[2].FileSize)
	})

	t.Run("same input same output", func(t *testing.T) {
		assert.Equal(t, Project(samplePhotos(), nil), Project(samplePhotos(), nil))
	})
}

func TestProjectDetail(t *testing.T) {
	d := ProjectDetail(photo.Record{ID: 9, Description: "Fog", PresignedURL: "u", Category: "Weather", TimeAgo: "1w ago"})
	assert.Equal(t, int64(9), d.ID)
	assert.Equal(t, "Fog", d.Alt)
	assert.Equal(t, "Weather", d.Category)
	assert.Empty(t, d.Tags)
	assert.Equal(t, "1w ago", d.TimeAgo)
}

func TestInitialSnapshot(t *testing.T) {
	s := InitialSnapshot(samplePhotos())
	assert.Len(t, s.Gallery.Cards, 3)
	assert.Nil(t, s.PhotoModal)
	assert.Equal(t, RefreshButtonIdle, s.RefreshLabel())
	assert.Equal(t, UploadButtonIdle, s.UploadModal.ButtonLabel())
}

func TestDialog(t *testing.T) {
	var d dialog
	assert.Equal(t, "idle", d.state.String())
	assert.Nil(t, d.confirmation())

	_, ok := d.resolve(true)
	assert.False(t, ok)

	d.open(4, "sure?", "")
	assert.Equal(t, "confirming", d.state.String())
	require.NotNil(t, d.confirmation())

	d.open(5, "sure?", "")
	id, ok := d.resolve(false)
	assert.True(t, ok)
	assert.Equal(t, int64(5), id)
	assert.Equal(t, "cancelled", d.state.String())
	assert.Nil(t, d.prompt())

	d.open(6, "edit", "value")
	assert.Equal(t, "value", d.prompt().Value)
	_, _ = d.resolve(true)
	assert.Equal(t, DialogConfirmed.String(), d.state.String())
}
