package terminal

import (
	"fmt"
	"io"
	"os"
	"sync"

	"ArticleBrowser/internal/domain"
	"ArticleBrowser/internal/ports"
)

// Notifier prints notifications with a severity marker. Warnings and errors go to errOut.
type Notifier struct {
	mu      sync.Mutex
	out     io.Writer
	errOut  io.Writer
	palette Palette
}

var _ ports.Notifier = (*Notifier)(nil)

// NewNotifier uses stdout and stderr when writers are nil.
func NewNotifier(out, errOut io.Writer, palette Palette) *Notifier {
	if out == nil {
		out = os.Stdout
	}
	if errOut == nil {
		errOut = os.Stderr
	}
	return &Notifier{out: out, errOut: errOut, palette: palette}
}

// SetPalette swaps the theme.
func (n *Notifier) SetPalette(p Palette) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.palette = p
}

// Notify writes a single line for the notification.
func (n *Notifier) Notify(note domain.Notification) {
	n.mu.Lock()
	defer n.mu.Unlock()

	p := n.palette
	w := n.out
	var line string
	switch note.Severity {
	case domain.SeveritySuccess:
		line = p.paint(p.Success, marker(p, "✓", "[OK]")+" "+note.Message)
	case domain.SeverityWarning:
		w = n.errOut
		line = p.paint(p.Warning, marker(p, "⚠", "[WARN]")+" "+note.Message)
	case domain.SeverityError:
		w = n.errOut
		line = p.paint(p.Error, marker(p, "✗", "[ERROR]")+" "+note.Message)
	default:
		line = p.paint(p.Info, note.Message)
	}
	fmt.Fprintln(w, line)
}

func marker(p Palette, symbol, plain string) string {
	if p.disabled {
		return plain
	}
	return symbol
}
