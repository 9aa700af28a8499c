package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"photo-gallery/internal/gallery"
)

const defaultWidth = 80

// GetSimpleText prints a prompt to w and reads a single line of input from
// reader. If EOF occurs after some input was read, the partial line is
// returned.
func GetSimpleText(reader *bufio.Reader, prompt string, w io.Writer) (string, error) {
	if _, err := fmt.Fprint(w, prompt+"\n> "); err != nil {
		return "", err
	}
	line, err := reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && len(line) > 0 {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// terminalWidth returns the column count of f, or 80 when f is not a terminal
func terminalWidth(f *os.File) int {
	fd := int(f.Fd())
	if !term.IsTerminal(fd) {
		return defaultWidth
	}
	w, _, err := term.GetSize(fd)
	if err != nil || w <= 0 {
		return defaultWidth
	}
	return w
}

// parseKey turns "ctrl+u", "meta+r" or "escape" into a gallery key
func parseKey(s string) (gallery.Key, bool) {
	var k gallery.Key
	parts := strings.Split(strings.ToLower(strings.TrimSpace(s)), "+")
	for i, p := range parts {
		last := i == len(parts)-1
		switch {
		case !last && p == "ctrl":
			k.Ctrl = true
		case !last && (p == "meta" || p == "cmd"):
			k.Meta = true
		case last && (p == "escape" || p == "esc"):
			k.Name = "Escape"
		case last && p != "":
			k.Name = p
		default:
			return gallery.Key{}, false
		}
	}
	return k, k.Name != ""
}
