package gallery

import "time"

// Severity is the style of a notification
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
)

// DefaultNotificationTTL is how long a notification stays visible
const DefaultNotificationTTL = 4 * time.Second

// Notification is the message shown in the shared notification slot
type Notification struct {
	Message  string
	Severity Severity
	Seq      uint64
}

// afterFunc schedules f after d and returns a function that cancels it
type afterFunc func(d time.Duration, f func()) (stop func() bool)

func realAfterFunc(d time.Duration, f func()) func() bool {
	return time.AfterFunc(d, f).Stop
}

// notifier owns the single notification slot. It is guarded by the
// controller mutex; expire is invoked with that mutex held.
type notifier struct {
	ttl     time.Duration
	after   afterFunc
	current *Notification
	seq     uint64
	stop    func() bool
}

// show replaces the current notification and schedules its dismissal. The
// sequence number keeps a stale timer from hiding a newer message.
func (n *notifier) show(message string, severity Severity, expire func(seq uint64)) {
	n.seq++
	seq := n.seq
	n.current = &Notification{Message: message, Severity: severity, Seq: seq}

	if n.stop != nil {
		n.stop()
	}
	n.stop = n.after(n.ttl, func() { expire(seq) })
}

// dismiss hides the notification if seq is still the latest one
func (n *notifier) dismiss(seq uint64) bool {
	if n.current == nil || n.current.Seq != seq {
		return false
	}
	n.current = nil
	n.stop = nil
	return true
}

func (n *notifier) close() {
	if n.stop != nil {
		n.stop()
		n.stop = nil
	}
}

func (n *notifier) snapshot() *Notification {
	if n.current == nil {
		return nil
	}
	cp := *n.current
	return &cp
}
