package constant

import "time"

// Loop Timing
const (
	// TickInterval is the cadence of the simulation callback, independent of TimeStep
	TickInterval = 10 * time.Millisecond

	// FrameUpdateInterval is the rendering frame rate interval (~60 FPS)
	FrameUpdateInterval = 16 * time.Millisecond

	// LoopBehindMax is how many intervals a periodic callback may lag before its deadline is rebased
	LoopBehindMax = 2
)

// Feed Timing
const (
	// FeedRefreshInterval is how often an emitter refills an empty queue
	FeedRefreshInterval = 30 * time.Second

	// FeedEmitInterval is the default delay between two emitted items
	FeedEmitInterval = 3 * time.Second

	// FeedFetchTimeout bounds a single source fetch
	FeedFetchTimeout = 10 * time.Second

	// FeedTimelineCount is the number of statuses requested per timeline
	FeedTimelineCount = 100
)
