package feed

import (
	"context"
	"slices"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/lixenwraith/heavy-boxes/clock"
	"github.com/lixenwraith/heavy-boxes/constant"
	"github.com/lixenwraith/heavy-boxes/core"
)

// Callback consumes an item; returning false hands the item back to the queue head
type Callback func(Item) bool

// Emitter feeds items from its sources to a callback at a fixed cadence
// All methods except Wait must be called on the scheduler goroutine
type Emitter struct {
	scheduler clock.Scheduler
	queue     *Queue
	baseURL   string
	endpoints []string
	sources   []Source

	emitLoop    clock.Handle
	refreshLoop clock.Handle
	refreshEach time.Duration

	// Cancels in-flight fetches on Stop
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	log *zap.Logger
}

// EmitterOption configures an Emitter
type EmitterOption func(*Emitter)

// WithBaseURL sets the API root used by AddUser and AddPublicTimeline
func WithBaseURL(base string) EmitterOption {
	return func(e *Emitter) {
		e.baseURL = base
	}
}

// WithRefreshInterval overrides how often an empty queue is refilled
func WithRefreshInterval(d time.Duration) EmitterOption {
	return func(e *Emitter) {
		if d > 0 {
			e.refreshEach = d
		}
	}
}

// WithEmitterLogger sets the logger
func WithEmitterLogger(log *zap.Logger) EmitterOption {
	return func(e *Emitter) {
		if log != nil {
			e.log = log
		}
	}
}

// NewEmitter creates an idle emitter bound to a scheduler
func NewEmitter(scheduler clock.Scheduler, opts ...EmitterOption) *Emitter {
	e := &Emitter{
		scheduler:   scheduler,
		queue:       NewQueue(),
		refreshEach: constant.FeedRefreshInterval,
		log:         zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// AddSource registers a source polled on every refresh
func (e *Emitter) AddSource(s Source) {
	e.sources = append(e.sources, s)
}

// AddUser registers the timeline of screenName
func (e *Emitter) AddUser(screenName string) {
	e.addEndpoint(UserTimelineURL(e.baseURL, screenName))
}

// AddPublicTimeline registers the public timeline once
func (e *Emitter) AddPublicTimeline() {
	e.addEndpoint(PublicTimelineURL(e.baseURL))
}

func (e *Emitter) addEndpoint(u string) {
	if slices.Contains(e.endpoints, u) {
		return
	}
	e.endpoints = append(e.endpoints, u)
	e.sources = append(e.sources, &HTTPSource{URL: u})
}

// Endpoints returns the registered timeline URLs
func (e *Emitter) Endpoints() []string {
	return slices.Clone(e.endpoints)
}

// Queued returns the number of items waiting to be emitted
func (e *Emitter) Queued() int {
	return e.queue.Len()
}

// Running reports whether Emit is active
func (e *Emitter) Running() bool {
	return e.emitLoop != nil || e.refreshLoop != nil
}

// Emit starts handing one item to cb every interval, no-op when already running
// The queue is refreshed immediately and then on the refresh interval
func (e *Emitter) Emit(cb Callback, interval time.Duration) {
	if e.Running() {
		return
	}
	if interval <= 0 {
		interval = constant.FeedEmitInterval
	}
	e.ctx, e.cancel = context.WithCancel(context.Background())

	emit := func() {
		it, ok := e.queue.Pop()
		if !ok {
			return
		}
		if !cb(it) {
			e.queue.PushFront(it)
		}
	}

	e.emitLoop = e.scheduler.Every(interval, emit)
	e.refresh()
	e.refreshLoop = e.scheduler.Every(e.refreshEach, e.refresh)
	emit()
}

// Stop cancels both loops and any in-flight fetch, no-op when stopped
func (e *Emitter) Stop() {
	if e.emitLoop != nil {
		e.emitLoop.Cancel()
		e.emitLoop = nil
	}
	if e.refreshLoop != nil {
		e.refreshLoop.Cancel()
		e.refreshLoop = nil
	}
	if e.cancel != nil {
		e.cancel()
		e.cancel = nil
	}
}

// Wait blocks until in-flight fetches have posted their results
// Must not be called on the scheduler goroutine of a Loop
func (e *Emitter) Wait() {
	e.wg.Wait()
}

// refresh fetches every source when the queue is empty
// A failed fetch is logged and retried on the next refresh
func (e *Emitter) refresh() {
	if e.queue.Len() > 0 || e.ctx == nil {
		return
	}

	ctx := e.ctx
	for _, src := range e.sources {
		e.wg.Add(1)
		core.Go(func() {
			defer e.wg.Done()

			fetchCtx, cancel := context.WithTimeout(ctx, constant.FeedFetchTimeout)
			items, err := src.Fetch(fetchCtx)
			cancel()

			e.scheduler.Post(func() {
				if err != nil {
					if ctx.Err() == nil {
						e.log.Warn("feed fetch failed", zap.Error(err))
					}
					return
				}
				if ctx.Err() != nil {
					return
				}
				added := e.queue.Offer(items)
				e.log.Debug("feed refreshed", zap.Int("fetched", len(items)), zap.Int("added", added))
			})
		})
	}
}
