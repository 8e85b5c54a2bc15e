package feed

import (
	"sync"
	"time"
)

// Debouncer coalesces bursts of triggers into a single callback, with
// single-slot replacement semantics: a new trigger cancels the pending one
// and reschedules, so only the last trigger within the window fires.
type Debouncer struct {
	mu    sync.Mutex
	delay time.Duration
	timer *time.Timer
}

func NewDebouncer(delay time.Duration) *Debouncer {
	return &Debouncer{delay: delay}
}

// Trigger schedules fn to run after the debounce delay, replacing any
// previously scheduled callback. fn runs on the timer goroutine.
func (d *Debouncer) Trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, fn)
}

// Stop cancels any pending callback. Safe to call on teardown even when
// nothing is scheduled.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
