package cli

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"unicode/utf8"

	"photo-gallery/internal/gallery"
)

const cellWidth = 32

// Document prints gallery notifications as they appear and keeps the last
// snapshot for the list and show commands
type Document struct {
	out io.Writer

	mu      sync.Mutex
	last    gallery.Snapshot
	lastSeq uint64
}

var _ gallery.Document = (*Document)(nil)

func NewDocument(out io.Writer) *Document {
	return &Document{out: out}
}

// Render implements gallery.Document
func (d *Document) Render(s gallery.Snapshot) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if n := s.Notification; n != nil && n.Seq != d.lastSeq {
		d.lastSeq = n.Seq
		fmt.Fprintf(d.out, "[%s] %s\n", n.Severity, n.Message)
	}
	d.last = s
}

// Last returns the most recent snapshot
func (d *Document) Last() gallery.Snapshot {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.last
}

// printGrid lays the cards out in as many columns as fit in width
func printGrid(w io.Writer, s gallery.Snapshot, width int) {
	switch {
	case s.Loading:
		fmt.Fprintln(w, gallery.LoadingMessage)
		return
	case s.Gallery.Empty:
		fmt.Fprintln(w, gallery.EmptyStateMessage)
		return
	}

	cols := width / cellWidth
	if cols < 1 {
		cols = 1
	}

	cards := s.Gallery.Cards
	for start := 0; start < len(cards); start += cols {
		end := min(start+cols, len(cards))
		row := cards[start:end]

		var title, meta strings.Builder
		for _, c := range row {
			head := fmt.Sprintf("#%d %s", c.ID, c.Description)
			if c.ImageFailed {
				head = fmt.Sprintf("#%d %s %s", c.ID, gallery.ImagePlaceholder, c.Description)
			}
			title.WriteString(cell(head))
			meta.WriteString(cell(c.TimeAgo + " · " + c.FileSize))
		}
		fmt.Fprintln(w, strings.TrimRight(title.String(), " "))
		fmt.Fprintln(w, strings.TrimRight(meta.String(), " "))
		fmt.Fprintln(w)
	}
}

// printDetail prints the photo detail dialog
func printDetail(w io.Writer, d *gallery.PhotoDetail) {
	fmt.Fprintf(w, "#%d %s\n", d.ID, d.Description)
	fmt.Fprintf(w, "  %s · %s\n", d.TimeAgo, d.FileSize)
	if d.Tags != "" {
		fmt.Fprintf(w, "  tags: %s\n", d.Tags)
	}
	if d.Location != "" {
		fmt.Fprintf(w, "  location: %s\n", d.Location)
	}
	if d.Category != "" {
		fmt.Fprintf(w, "  category: %s\n", d.Category)
	}
	fmt.Fprintf(w, "  %s\n", d.ImageURL)
}

// cell pads or truncates s to the grid cell width
func cell(s string) string {
	const inner = cellWidth - 2
	if n := utf8.RuneCountInString(s); n > inner {
		r := []rune(s)
		s = string(r[:inner-1]) + "…"
	}
	return s + strings.Repeat(" ", cellWidth-utf8.RuneCountInString(s))
}
