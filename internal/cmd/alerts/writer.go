package alerts

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

// Writer prints alerts as plain lines, colored on terminals.
type Writer struct {
	w        io.Writer
	useColor bool
}

// NewWriter creates a Writer for w. Color is used only when w is a
// terminal and noColor is false.
func NewWriter(w io.Writer, noColor bool) *Writer {
	return &Writer{w: w, useColor: !noColor && isTerminal(w)}
}

// Write prints every alert in order.
func (aw *Writer) Write(alerts ...*Alert) error {
	for _, a := range alerts {
		message := a.String()
		if aw.useColor {
			message = a.Level.Color() + message + resetColor
		}
		if _, err := fmt.Fprintln(aw.w, message); err != nil {
			return err
		}
		for _, detail := range a.Details {
			if _, err := fmt.Fprintf(aw.w, "   %s\n", detail); err != nil {
				return err
			}
		}
	}
	return nil
}

// isTerminal checks if the writer is a terminal (for color support).
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
