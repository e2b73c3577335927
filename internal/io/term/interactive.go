package term

import (
	"golang.org/x/term"
	"io"
	"os"
)

// IsInteractive reports whether r is a terminal a user is typing into.
func IsInteractive(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
