package terminal

import (
	"io"
	"reflect"
	"sync"
)

// Console serializes writes to one terminal stream. Renderer and Notifier
// each emit a frame in a single Write, so frames never interleave.
type Console struct {
	mu sync.Mutex
	w  io.Writer
}

// NewConsole wraps w.
func NewConsole(w io.Writer) *Console {
	return &Console{w: w}
}

func (c *Console) Write(p []byte) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.w.Write(p)
}

// Consoles wraps out and errOut, sharing one lock when both are the same writer.
func Consoles(out, errOut io.Writer) (*Console, *Console) {
	stdout := NewConsole(out)
	if sameWriter(out, errOut) {
		return stdout, stdout
	}
	return stdout, NewConsole(errOut)
}

func sameWriter(a, b io.Writer) bool {
	if a == nil || b == nil {
		return false
	}
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	return ta == tb && ta.Comparable() && a == b
}
