// Package clock provides the periodic callback scheduling the simulation runs on.
//
// Every callback registered on a Scheduler, and every function posted to it, runs on a
// single goroutine, one at a time. Code driven by a Scheduler therefore needs no locks as
// long as it is only touched from scheduled callbacks.
package clock

import "time"

// Handle identifies a periodic registration
type Handle interface {
	// Cancel stops future invocations. Safe to call more than once
	Cancel()
}

// Scheduler runs callbacks cooperatively on one goroutine
type Scheduler interface {
	// Every registers fn to run every interval until the handle is cancelled
	Every(interval time.Duration, fn func()) Handle

	// Post queues fn to run once on the scheduler goroutine, safe from any goroutine
	Post(fn func())
}

// entry is one periodic registration shared by Loop and Manual
type entry struct {
	id        uint64
	interval  time.Duration
	next      time.Time
	fn        func()
	cancelled bool
	cancel    func(*entry)
}

func (e *entry) Cancel() {
	e.cancel(e)
}

// earliest returns the live entry with the nearest deadline, ties broken by registration order
func earliest(entries []*entry) *entry {
	var best *entry
	for _, e := range entries {
		if e.cancelled {
			continue
		}
		if best == nil || e.next.Before(best.next) || (e.next.Equal(best.next) && e.id < best.id) {
			best = e
		}
	}
	return best
}
