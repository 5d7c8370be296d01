package clock

import (
	"context"
	"sync/atomic"
	"testing"
	"time"
)

func runLoop(t *testing.T, l *Loop, d time.Duration) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), d)
	defer cancel()
	if err := l.Run(ctx); err != context.DeadlineExceeded {
		t.Fatalf("Run returned %v, want deadline exceeded", err)
	}
}

func TestLoopFiresPeriodically(t *testing.T) {
	l := NewLoop(nil)
	var count atomic.Int32
	l.Every(5*time.Millisecond, func() { count.Add(1) })

	runLoop(t, l, 100*time.Millisecond)

	if n := count.Load(); n < 5 {
		t.Errorf("Expected at least 5 invocations in 100ms, got %d", n)
	}
}

func TestLoopCancelStopsCallback(t *testing.T) {
	l := NewLoop(nil)
	var count atomic.Int32
	var h Handle
	h = l.Every(2*time.Millisecond, func() {
		if count.Add(1) == 3 {
			h.Cancel()
		}
	})

	runLoop(t, l, 60*time.Millisecond)

	if n := count.Load(); n != 3 {
		t.Errorf("Expected exactly 3 invocations, got %d", n)
	}
	if l.Active() != 0 {
		t.Errorf("Expected no active registrations, got %d", l.Active())
	}
}

func TestLoopCallbacksNeverOverlap(t *testing.T) {
	l := NewLoop(nil)
	var inFlight, overlaps atomic.Int32

	work := func() {
		if inFlight.Add(1) > 1 {
			overlaps.Add(1)
		}
		time.Sleep(time.Millisecond)
		inFlight.Add(-1)
	}
	l.Every(time.Millisecond, work)
	l.Every(time.Millisecond, work)

	go func() {
		for i := 0; i < 20; i++ {
			l.Post(work)
			time.Sleep(time.Millisecond)
		}
	}()

	runLoop(t, l, 50*time.Millisecond)

	if n := overlaps.Load(); n != 0 {
		t.Errorf("Detected %d overlapping invocations", n)
	}
}

func TestLoopPostRunsOnLoop(t *testing.T) {
	l := NewLoop(nil)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	go func() {
		l.Post(func() {
			close(done)
			cancel()
		})
	}()

	if err := l.Run(ctx); err != context.Canceled {
		t.Fatalf("Run returned %v", err)
	}
	select {
	case <-done:
	default:
		t.Error("Posted function did not run")
	}
}

func TestLoopRecoversPanics(t *testing.T) {
	l := NewLoop(nil)
	var after atomic.Bool
	l.Post(func() { panic("boom") })
	l.Post(func() { after.Store(true) })

	runLoop(t, l, 20*time.Millisecond)

	if !after.Load() {
		t.Error("Loop stopped after a panicking callback")
	}
}
