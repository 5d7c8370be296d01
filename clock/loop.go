package clock

import (
	"context"
	"slices"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/lixenwraith/heavy-boxes/constant"
)

// Loop is the real-time Scheduler: Run executes every callback on the calling goroutine
type Loop struct {
	mu      sync.Mutex
	entries []*entry
	posted  []func()
	nextID  uint64
	wake    chan struct{}
	running bool

	log *zap.Logger
	now func() time.Time
}

// NewLoop creates an idle loop; callbacks fire only while Run is active
func NewLoop(log *zap.Logger) *Loop {
	if log == nil {
		log = zap.NewNop()
	}
	return &Loop{
		wake: make(chan struct{}, 1),
		log:  log,
		now:  time.Now,
	}
}

// Every registers a periodic callback, first invocation one interval from now
func (l *Loop) Every(interval time.Duration, fn func()) Handle {
	if interval <= 0 {
		interval = time.Millisecond
	}
	l.mu.Lock()
	l.nextID++
	e := &entry{
		id:       l.nextID,
		interval: interval,
		next:     l.now().Add(interval),
		fn:       fn,
		cancel:   l.cancel,
	}
	l.entries = append(l.entries, e)
	l.mu.Unlock()

	l.signal()
	return e
}

// Post queues fn for the loop goroutine
func (l *Loop) Post(fn func()) {
	l.mu.Lock()
	l.posted = append(l.posted, fn)
	l.mu.Unlock()

	l.signal()
}

// Active returns the number of live periodic registrations
func (l *Loop) Active() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

func (l *Loop) cancel(e *entry) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if e.cancelled {
		return
	}
	e.cancelled = true
	l.entries = slices.DeleteFunc(l.entries, func(x *entry) bool { return x == e })
}

func (l *Loop) signal() {
	select {
	case l.wake <- struct{}{}:
	default:
	}
}

// Run dispatches posted functions and due callbacks until ctx is done
func (l *Loop) Run(ctx context.Context) error {
	l.mu.Lock()
	if l.running {
		l.mu.Unlock()
		return nil
	}
	l.running = true
	l.mu.Unlock()

	defer func() {
		l.mu.Lock()
		l.running = false
		l.mu.Unlock()
	}()

	timer := time.NewTimer(0)
	if !timer.Stop() {
		select {
		case <-timer.C:
		default:
		}
	}
	defer timer.Stop()

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		l.drainPosted()

		due, wait := l.nextDue()
		if due != nil {
			l.invoke(due.fn)
			continue
		}

		if wait < 0 {
			// Nothing scheduled, sleep until woken
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-l.wake:
			}
			continue
		}

		timer.Reset(wait)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.wake:
			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
		case <-timer.C:
		}
	}
}

func (l *Loop) drainPosted() {
	l.mu.Lock()
	posted := l.posted
	l.posted = nil
	l.mu.Unlock()

	for _, fn := range posted {
		l.invoke(fn)
	}
}

// nextDue returns the entry that should fire now and advances its deadline,
// or the wait until the next deadline (-1 when nothing is registered)
func (l *Loop) nextDue() (*entry, time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()

	e := earliest(l.entries)
	if e == nil {
		return nil, -1
	}

	now := l.now()
	if now.Before(e.next) {
		return nil, e.next.Sub(now)
	}

	e.next = e.next.Add(e.interval)
	// Rebase when too far behind instead of firing a burst
	if now.Sub(e.next) > e.interval*constant.LoopBehindMax {
		e.next = now.Add(e.interval)
	}
	return e, 0
}

// invoke runs fn to completion, a panic is logged and does not stop the loop
func (l *Loop) invoke(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			l.log.Error("scheduled callback panicked", zap.Any("panic", r), zap.Stack("stack"))
		}
	}()
	fn()
}
