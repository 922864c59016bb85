package debounce

import (
	"sync"
	"time"
)

// DefaultDelay is the quiet period used when none is configured.
const DefaultDelay = 400 * time.Millisecond

// Debouncer coalesces bursts of triggers into a single call.
type Debouncer struct {
	delay     time.Duration
	scheduler Scheduler

	mu      sync.Mutex
	pending Task
	// generation invalidates callbacks whose task was stopped too late to prevent firing.
	generation uint64
	typing     bool
}

// New creates a Debouncer. A nil scheduler uses time.AfterFunc; a negative delay
// is treated as zero.
func New(delay time.Duration, scheduler Scheduler) *Debouncer {
	if scheduler == nil {
		scheduler = RealScheduler()
	}
	if delay < 0 {
		delay = 0
	}
	return &Debouncer{delay: delay, scheduler: scheduler}
}

// Delay returns the quiet period.
func (d *Debouncer) Delay() time.Duration {
	return d.delay
}

// Trigger schedules fn to run once the quiet period elapses, cancelling any call
// still pending from an earlier Trigger.
func (d *Debouncer) Trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.pending != nil {
		d.pending.Stop()
	}
	d.typing = true
	d.generation++
	gen := d.generation

	d.pending = d.scheduler.AfterFunc(d.delay, func() {
		d.mu.Lock()
		if gen != d.generation {
			d.mu.Unlock()
			return
		}
		d.pending = nil
		d.mu.Unlock()

		fn()

		d.mu.Lock()
		if gen == d.generation {
			d.typing = false
		}
		d.mu.Unlock()
	})
}

// Cancel stops the pending call, if any. Returns true when a call was cancelled.
func (d *Debouncer) Cancel() bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.generation++
	d.typing = false
	if d.pending == nil {
		return false
	}
	stopped := d.pending.Stop()
	d.pending = nil
	return stopped
}

// Pending reports whether a call is scheduled and has not started.
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending != nil
}

// Typing reports whether a burst is in progress: set by Trigger and cleared once
// the debounced call returns or the debouncer is cancelled.
func (d *Debouncer) Typing() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.typing
}
