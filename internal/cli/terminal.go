package cli

import (
	"io"
	"os"

	"golang.org/x/term"

	"github.com/matzehuels/treemap/pkg/layout"
	"github.com/matzehuels/treemap/pkg/pipeline"
	"github.com/matzehuels/treemap/pkg/render/sink"
)

// Fallback size when the terminal does not report one.
const (
	defaultCols = 80
	defaultRows = 24
)

// isTerminal reports whether w is a terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// terminalSize returns the size of the terminal behind w, leaving one row
// for the prompt.
func terminalSize(w io.Writer) (cols, rows int) {
	if f, ok := w.(*os.File); ok {
		if c, r, err := term.GetSize(int(f.Fd())); err == nil && c > 0 && r > 1 {
			return c, r - 1
		}
	}
	return defaultCols, defaultRows - 1
}

// renderTerminal draws l as colored character cells.
func renderTerminal(l layout.Layout, cols, rows int, opts pipeline.Options) string {
	opts.SetRenderDefaults()
	return sink.RenderTerminal(l, cols, rows, opts.SinkOptions()...)
}
