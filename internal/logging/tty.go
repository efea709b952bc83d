package logging

import (
	"io"
	"os"

	"golang.org/x/term"
)

// isTerminal reports whether w is a file attached to a terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// IsTerminal reports whether w is a terminal. Renderers use it to decide
// between styled and plain output.
func IsTerminal(w io.Writer) bool {
	return isTerminal(w)
}
