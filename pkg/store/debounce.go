package store

import (
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// Debouncer coalesces rapid saves into one write after a quiet period.
// The TUI offers the board after every commit; without debouncing a long
// drag would hammer the store on every release.
//
// Save failures are logged and swallowed: autosave must never interrupt
// an interactive session.
type Debouncer struct {
	mu      sync.Mutex
	delay   time.Duration
	save    func(data []byte) error
	timer   *time.Timer
	pending []byte
	closed  bool
}

// NewDebouncer creates a debouncer that invokes save once per quiet period.
func NewDebouncer(delay time.Duration, save func(data []byte) error) *Debouncer {
	return &Debouncer{delay: delay, save: save}
}

// Offer replaces the pending payload and restarts the quiet-period timer.
// Only the latest payload offered before the timer fires is saved.
func (d *Debouncer) Offer(data []byte) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return
	}

	d.pending = data
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, d.fire)
}

func (d *Debouncer) fire() {
	d.mu.Lock()
	data := d.pending
	d.pending = nil
	d.mu.Unlock()

	if data == nil {
		return
	}
	if err := d.save(data); err != nil {
		log.Warn("autosave failed", "error", err)
	}
}

// Flush saves any pending payload immediately.
func (d *Debouncer) Flush() {
	d.mu.Lock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.mu.Unlock()
	d.fire()
}

// Close flushes pending work and stops the debouncer. Offers after Close
// are dropped.
func (d *Debouncer) Close() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	if d.timer != nil {
		d.timer.Stop()
	}
	d.mu.Unlock()
	d.fire()
}
