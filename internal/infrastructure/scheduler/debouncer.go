package scheduler

import (
	"sync"
	"time"

	"ArticleBrowser/internal/ports"
)

// Debouncer runs only the latest triggered function once the delay passes
// without another trigger.
type Debouncer struct {
	delay time.Duration

	mu      sync.Mutex
	timer   *time.Timer
	pending func()
	gen     uint64
	stopped bool
}

var _ ports.Debouncer = (*Debouncer)(nil)

// NewDebouncer builds a debouncer. A non-positive delay runs triggers inline.
func NewDebouncer(delay time.Duration) *Debouncer {
	return &Debouncer{delay: delay}
}

// Trigger schedules fn, replacing anything still pending.
func (d *Debouncer) Trigger(fn func()) {
	if fn == nil {
		return
	}

	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		return
	}
	if d.delay <= 0 {
		d.mu.Unlock()
		fn()
		return
	}

	if d.timer != nil {
		d.timer.Stop()
	}
	d.gen++
	gen := d.gen
	d.pending = fn
	d.timer = time.AfterFunc(d.delay, func() { d.fire(gen) })
	d.mu.Unlock()
}

// Flush runs the pending function now, if any.
func (d *Debouncer) Flush() {
	d.mu.Lock()
	fn := d.takeLocked()
	d.mu.Unlock()

	if fn != nil {
		fn()
	}
}

// Stop drops the pending function and ignores later triggers.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	d.takeLocked()
	d.stopped = true
	d.mu.Unlock()
}

func (d *Debouncer) fire(gen uint64) {
	d.mu.Lock()
	if gen != d.gen || d.stopped {
		d.mu.Unlock()
		return
	}
	fn := d.takeLocked()
	d.mu.Unlock()

	if fn != nil {
		fn()
	}
}

// takeLocked clears the timer and invalidates any fire already in flight.
func (d *Debouncer) takeLocked() func() {
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.gen++
	fn := d.pending
	d.pending = nil
	return fn
}
