package gallery

// DialogState is the state of a confirmation or prompt dialog
type DialogState int

const (
	DialogIdle DialogState = iota
	DialogConfirming
	DialogConfirmed
	DialogCancelled
)

func (s DialogState) String() string {
	switch s {
	case DialogConfirming:
		return "confirming"
	case DialogConfirmed:
		return "confirmed"
	case DialogCancelled:
		return "cancelled"
	default:
		return "idle"
	}
}

// dialog is a non-blocking question about one photo. A new request replaces
// a pending one; confirmed and cancelled are terminal until the next request.
type dialog struct {
	state   DialogState
	photoID int64
	message string
	value   string
}

func (d *dialog) open(photoID int64, message, value string) {
	*d = dialog{state: DialogConfirming, photoID: photoID, message: message, value: value}
}

func (d *dialog) pending() bool {
	return d.state == DialogConfirming
}

// resolve moves a pending dialog to confirmed or cancelled and reports the
// photo it was about
func (d *dialog) resolve(confirmed bool) (int64, bool) {
	if !d.pending() {
		return 0, false
	}
	if confirmed {
		d.state = DialogConfirmed
	} else {
		d.state = DialogCancelled
	}
	return d.photoID, true
}

func (d *dialog) confirmation() *Confirmation {
	if !d.pending() {
		return nil
	}
	return &Confirmation{PhotoID: d.photoID, Message: d.message}
}

func (d *dialog) prompt() *Prompt {
	if !d.pending() {
		return nil
	}
	return &Prompt{PhotoID: d.photoID, Message: d.message, Value: d.value}
}
