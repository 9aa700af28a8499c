package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// execIface is the command surface the REPL dispatches to. App satisfies
// it; tests provide a lightweight stub.
type execIface interface {
	List(ctx context.Context) error
	Search(ctx context.Context, query string) error
	Refresh(ctx context.Context) error
	Upload(ctx context.Context, path string) error
	Show(ctx context.Context, id int64) error
	CloseModals(ctx context.Context) error
	Edit(ctx context.Context, id int64) error
	Delete(ctx context.Context, id int64) error
	Key(ctx context.Context, combo string) error
	SetVisible(ctx context.Context, visible bool) error
	Health(ctx context.Context) error
}

const helpText = `Available commands:
  (l)ist                 show the gallery
  search [text]          filter by description (no text clears the filter)
  refresh                reload photos from the server
  upload [path]          upload an image
  show <id>              show photo details
  close                  close open dialogs
  edit <id>              change a description
  delete <id>            delete a photo
  key <combo>            send a shortcut (ctrl+u, ctrl+r, escape)
  pause | resume         stop or restart background refresh
  health                 check the photo API
  exit | quit            leave the program`

// runREPL reads commands from reader until EOF or exit. Command errors are
// reported through the gallery notifications, so they are not printed here
// except for malformed input.
func runREPL(ctx context.Context, a execIface, reader *bufio.Reader, w io.Writer) {
	for {
		if ctx.Err() != nil {
			return
		}
		fmt.Fprint(w, "gallery> ")
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help", "?":
			fmt.Fprintln(w, helpText)

		case "l", "list":
			_ = a.List(ctx)

		case "search":
			_ = a.Search(ctx, strings.Join(args, " "))

		case "refresh":
			_ = a.Refresh(ctx)

		case "upload":
			_ = a.Upload(ctx, strings.Join(args, " "))

		case "show", "edit", "delete":
			if len(args) != 1 {
				fmt.Fprintf(w, "Usage: %s <id>\n", cmd)
				continue
			}
			id, err := parseID(args[0])
			if err != nil {
				fmt.Fprintln(w, err)
				continue
			}
			switch cmd {
			case "show":
				_ = a.Show(ctx, id)
			case "edit":
				_ = a.Edit(ctx, id)
			case "delete":
				_ = a.Delete(ctx, id)
			}

		case "close":
			_ = a.CloseModals(ctx)

		case "key":
			if len(args) != 1 {
				fmt.Fprintln(w, "Usage: key <combo>")
				continue
			}
			if err := a.Key(ctx, args[0]); err != nil {
				fmt.Fprintln(w, err)
			}

		case "pause":
			_ = a.SetVisible(ctx, false)

		case "resume":
			_ = a.SetVisible(ctx, true)

		case "health":
			_ = a.Health(ctx)

		case "exit", "quit":
			fmt.Fprintln(w, "Bye!")
			return

		default:
			fmt.Fprintln(w, "Unknown command:", cmd)
		}
	}
}
