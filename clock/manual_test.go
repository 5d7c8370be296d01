package clock

import (
	"testing"
	"time"
)

var epoch = time.Date(2012, 3, 1, 12, 0, 0, 0, time.UTC)

func TestManualFiresAtInterval(t *testing.T) {
	m := NewManual(epoch)
	count := 0
	m.Every(10*time.Millisecond, func() { count++ })

	m.Advance(9 * time.Millisecond)
	if count != 0 {
		t.Fatalf("Fired early: %d", count)
	}

	m.Advance(1 * time.Millisecond)
	if count != 1 {
		t.Fatalf("Expected 1 invocation, got %d", count)
	}

	m.Advance(50 * time.Millisecond)
	if count != 6 {
		t.Errorf("Expected 6 invocations, got %d", count)
	}
	if got := m.Now(); !got.Equal(epoch.Add(60 * time.Millisecond)) {
		t.Errorf("Clock at %v", got)
	}
}

func TestManualCancel(t *testing.T) {
	m := NewManual(epoch)
	count := 0
	h := m.Every(time.Second, func() { count++ })

	m.Advance(time.Second)
	h.Cancel()
	h.Cancel()
	m.Advance(5 * time.Second)

	if count != 1 {
		t.Errorf("Expected 1 invocation, got %d", count)
	}
	if m.Active() != 0 {
		t.Errorf("Expected no active registrations, got %d", m.Active())
	}
}

func TestManualCancelFromCallback(t *testing.T) {
	m := NewManual(epoch)
	count := 0
	var h Handle
	h = m.Every(time.Second, func() {
		count++
		if count == 2 {
			h.Cancel()
		}
	})

	m.Advance(10 * time.Second)

	if count != 2 {
		t.Errorf("Expected 2 invocations, got %d", count)
	}
}

func TestManualOrdering(t *testing.T) {
	m := NewManual(epoch)
	var order []string
	m.Every(30*time.Millisecond, func() { order = append(order, "slow") })
	m.Every(10*time.Millisecond, func() { order = append(order, "fast") })

	m.Advance(30 * time.Millisecond)

	want := []string{"fast", "fast", "slow", "fast"}
	if len(order) != len(want) {
		t.Fatalf("Order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("Order = %v, want %v", order, want)
		}
	}
}

func TestManualPostAndFlush(t *testing.T) {
	m := NewManual(epoch)
	var got []int
	m.Post(func() {
		got = append(got, 1)
		m.Post(func() { got = append(got, 2) })
	})

	if m.Pending() != 1 {
		t.Fatalf("Expected 1 pending, got %d", m.Pending())
	}
	if ran := m.Flush(); ran != 2 {
		t.Errorf("Flush ran %d, want 2", ran)
	}
	if len(got) != 2 || got[0] != 1 || got[1] != 2 {
		t.Errorf("Posted order = %v", got)
	}
}
