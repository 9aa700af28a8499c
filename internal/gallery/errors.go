package gallery

import "errors"

var (
	ErrNoFile                = errors.New("no file selected")
	ErrNotImage              = errors.New("file is not an image")
	ErrEmptyDescription      = errors.New("description is empty")
	ErrUploadInFlight        = errors.New("an upload is already in progress")
	ErrNoPendingConfirmation = errors.New("no delete awaiting confirmation")
	ErrNoPendingPrompt       = errors.New("no edit awaiting input")
	ErrStaleLoad             = errors.New("photo list response superseded by a newer load")
)

// User-facing notification messages
const (
	MsgLoadFailed        = "Failed to load photos. Please try again."
	MsgSelectFile        = "Please select a file to upload."
	MsgProvideDesc       = "Please provide a description."
	MsgSelectImage       = "Please select an image file."
	MsgUploadSuccess     = "Photo uploaded successfully!"
	MsgUploadFailed      = "Failed to upload photo. Please try again."
	MsgDeleteSuccess     = "Photo deleted successfully!"
	MsgDeleteFailed      = "Failed to delete photo. Please try again."
	MsgEmptyDescription  = "Description cannot be empty."
	MsgUpdateSuccess     = "Photo updated successfully!"
	MsgUpdateFailed      = "Failed to update photo. Please try again."
	MsgConfirmDelete     = "Are you sure you want to delete this photo? This action cannot be undone."
	MsgEditDescription   = "Edit description:"
	UploadButtonIdle     = "Upload Photo"
	UploadButtonBusy     = "Uploading..."
	RefreshButtonIdle    = "Refresh"
	RefreshButtonBusy    = "Refreshing..."
	LoadingMessage       = "Loading photos..."
	EmptyStateMessage    = "No photos yet"
	ImagePlaceholder     = "🖼️"
	ImagePlaceholderHint = "Image failed to load"
)
