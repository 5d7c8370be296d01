package clock

import (
	"slices"
	"sync"
	"time"
)

// Manual is a deterministic Scheduler driven by Advance
// Callbacks run on the goroutine calling Advance or Flush
type Manual struct {
	mu      sync.Mutex
	now     time.Time
	entries []*entry
	posted  []func()
	nextID  uint64
}

// NewManual creates a manual scheduler starting at start
func NewManual(start time.Time) *Manual {
	return &Manual{now: start}
}

// Now returns the manual clock reading
func (m *Manual) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

func (m *Manual) Every(interval time.Duration, fn func()) Handle {
	if interval <= 0 {
		interval = time.Millisecond
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextID++
	e := &entry{
		id:       m.nextID,
		interval: interval,
		next:     m.now.Add(interval),
		fn:       fn,
		cancel:   m.cancel,
	}
	m.entries = append(m.entries, e)
	return e
}

func (m *Manual) Post(fn func()) {
	m.mu.Lock()
	m.posted = append(m.posted, fn)
	m.mu.Unlock()
}

// Active returns the number of live periodic registrations
func (m *Manual) Active() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

// Pending returns the number of posted functions not yet run
func (m *Manual) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.posted)
}

func (m *Manual) cancel(e *entry) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if e.cancelled {
		return
	}
	e.cancelled = true
	m.entries = slices.DeleteFunc(m.entries, func(x *entry) bool { return x == e })
}

// Flush runs posted functions, including ones posted while flushing, and returns how many ran
func (m *Manual) Flush() int {
	ran := 0
	for {
		m.mu.Lock()
		posted := m.posted
		m.posted = nil
		m.mu.Unlock()

		if len(posted) == 0 {
			return ran
		}
		for _, fn := range posted {
			fn()
			ran++
		}
	}
}

// Advance moves the clock forward by d, firing due callbacks in deadline order
// Posted functions are flushed before each callback and once at the end
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	target := m.now.Add(d)
	m.mu.Unlock()

	for {
		m.Flush()

		m.mu.Lock()
		e := earliest(m.entries)
		if e == nil || e.next.After(target) {
			m.now = target
			m.mu.Unlock()
			break
		}
		m.now = e.next
		e.next = e.next.Add(e.interval)
		fn := e.fn
		m.mu.Unlock()

		fn()
	}

	m.Flush()
}

// Tick advances the clock n times by interval
func (m *Manual) Tick(interval time.Duration, n int) {
	for i := 0; i < n; i++ {
		m.Advance(interval)
	}
}
