package timer

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
)

// advance steps the fake clock in ticker-sized increments, yielding real
// time between steps so the process goroutine can observe each tick.
func advance(clock *clockwork.FakeClock, d time.Duration) {
	step := 100 * time.Millisecond
	for elapsed := time.Duration(0); elapsed < d; elapsed += step {
		clock.Advance(step)
		time.Sleep(10 * time.Millisecond)
	}
}

func TestAddTimer_FiresOnce(t *testing.T) {
	clock := clockwork.NewFakeClock()
	m := NewTimerManagerWithClock(clock)
	defer m.Stop()
	clock.BlockUntil(1)

	fired := make(chan struct{}, 1)
	m.AddTimer(300*time.Millisecond, 0, func() {
		fired <- struct{}{}
	})

	advance(clock, 500*time.Millisecond)

	select {
	case <-fired:
	case <-time.After(2 * time.Second):
		t.Fatal("Timer did not fire after its delay elapsed")
	}

	// One-shot timers do not re-arm.
	advance(clock, 500*time.Millisecond)
	select {
	case <-fired:
		t.Fatal("One-shot timer fired twice")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestAddTimer_Repeats(t *testing.T) {
	clock := clockwork.NewFakeClock()
	m := NewTimerManagerWithClock(clock)
	defer m.Stop()
	clock.BlockUntil(1)

	fired := make(chan struct{}, 100)
	m.AddTimer(100*time.Millisecond, 100*time.Millisecond, func() {
		fired <- struct{}{}
	})

	advance(clock, time.Second)

	count := 0
	deadline := time.After(2 * time.Second)
	for count < 3 {
		select {
		case <-fired:
			count++
		case <-deadline:
			t.Fatalf("Expected at least 3 periodic fires, got %d", count)
		}
	}
}

func TestRemoveTimer(t *testing.T) {
	clock := clockwork.NewFakeClock()
	m := NewTimerManagerWithClock(clock)
	defer m.Stop()
	clock.BlockUntil(1)

	fired := make(chan struct{}, 1)
	id := m.AddTimer(300*time.Millisecond, 0, func() {
		fired <- struct{}{}
	})
	m.RemoveTimer(id)

	advance(clock, time.Second)

	select {
	case <-fired:
		t.Fatal("Removed timer must never fire")
	case <-time.After(200 * time.Millisecond):
	}

	// Removing an unknown ID is a no-op.
	m.RemoveTimer(9999)
}

func TestEarlierTimerFiresFirst(t *testing.T) {
	clock := clockwork.NewFakeClock()
	m := NewTimerManagerWithClock(clock)
	defer m.Stop()
	clock.BlockUntil(1)

	order := make(chan string, 2)
	m.AddTimer(400*time.Millisecond, 0, func() { order <- "late" })
	m.AddTimer(100*time.Millisecond, 0, func() { order <- "early" })

	advance(clock, 600*time.Millisecond)

	deadline := time.After(2 * time.Second)
	var got []string
	for len(got) < 2 {
		select {
		case name := <-order:
			got = append(got, name)
		case <-deadline:
			t.Fatalf("Expected both timers to fire, got %v", got)
		}
	}
	if got[0] != "early" || got[1] != "late" {
		t.Fatalf("Timers fired out of order: %v", got)
	}
}
