package window

import (
	"sync"
	"time"

	"tableflip.dev/shelflife/pkg/item"
)

// Debouncer defers a recompute until its input has been quiet for a while.
// Every Schedule resets the timer and replaces the pending input; only the
// latest input is ever handed to fn, and runs of fn never overlap.
type Debouncer struct {
	quiet time.Duration
	fn    func([]item.Item)

	mu         sync.Mutex
	timer      *time.Timer
	pending    []item.Item
	hasPending bool
	generation uint64
	stopped    bool

	run sync.Mutex
}

// NewDebouncer returns a debouncer that calls fn after quiet has elapsed
// without a new Schedule.
func NewDebouncer(quiet time.Duration, fn func([]item.Item)) *Debouncer {
	return &Debouncer{quiet: quiet, fn: fn}
}

// Quiet returns the configured quiet period.
func (d *Debouncer) Quiet() time.Duration { return d.quiet }

// Schedule replaces any pending input with items and restarts the timer.
func (d *Debouncer) Schedule(items []item.Item) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}
	d.generation++
	gen := d.generation
	d.pending = items
	d.hasPending = true
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.quiet, func() {
		d.fire(gen)
	})
}

// Pending reports whether an input is waiting for its quiet period.
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.hasPending
}

// Flush runs the pending input now. It reports whether anything ran.
func (d *Debouncer) Flush() bool {
	items, ok := d.take(0, false)
	if !ok {
		return false
	}
	d.call(items)
	return true
}

// Stop drops any pending input and ignores further schedules.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopped = true
	d.generation++
	d.pending = nil
	d.hasPending = false
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

func (d *Debouncer) fire(gen uint64) {
	items, ok := d.take(gen, true)
	if !ok {
		return
	}
	d.call(items)
}

// take claims the pending input. A timer whose generation was superseded
// claims nothing, so a late timer can never run stale input.
func (d *Debouncer) take(gen uint64, fromTimer bool) ([]item.Item, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped || !d.hasPending {
		return nil, false
	}
	if fromTimer && gen != d.generation {
		return nil, false
	}
	items := d.pending
	d.pending = nil
	d.hasPending = false
	d.generation++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	return items, true
}

func (d *Debouncer) call(items []item.Item) {
	d.run.Lock()
	defer d.run.Unlock()
	d.fn(items)
}
