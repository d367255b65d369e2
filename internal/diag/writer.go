package diag

import (
	"fmt"
	"io"
	"sync"

	"github.com/fatih/color"
)

// Writer prints diagnostics as coloured warning lines.
type Writer struct {
	mu    sync.Mutex
	out   io.Writer
	label *color.Color
	code  *color.Color
}

// NewWriter creates a Writer that prints to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{
		out:   w,
		label: color.New(color.FgYellow, color.Bold),
		code:  color.New(color.FgCyan),
	}
}

// Report implements Reporter.
func (w *Writer) Report(d Diagnostic) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.label.Fprint(w.out, "warning ")
	w.code.Fprintf(w.out, "[%s]", d.Code)
	if d.Panel != NoPanel {
		fmt.Fprintf(w.out, " panel %d:", d.Panel)
	}
	fmt.Fprintf(w.out, " %s\n", d.Message)
}
