package tradehub

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestSchedulerRunsTicks(t *testing.T) {
	s := newTestStore(t)
	src := &fakeSource{name: "x", rates: map[string]float64{"BTC_USD": 60000}}
	u := NewUpdater(s, zerolog.Nop(), src)

	sched := NewScheduler(u, 10*time.Millisecond, zerolog.Nop())
	sched.Start()
	defer sched.Stop()

	deadline := time.After(2 * time.Second)
	for {
		if state := sched.State(); state.LastResult != nil {
			if state.LastResult.Result != StatusOK {
				t.Fatalf("tick result = %q, want OK", state.LastResult.Result)
			}
			return
		}
		select {
		case <-deadline:
			t.Fatal("no tick completed in time")
		case <-time.After(5 * time.Millisecond):
		}
	}
}

func TestSchedulerKeepsLastError(t *testing.T) {
	s := newTestStore(t)
	src := &fakeSource{name: "x", err: &SourceError{Source: "x", Reason: "down"}}
	u := NewUpdater(s, zerolog.Nop(), src)

	sched := NewScheduler(u, 10*time.Millisecond, zerolog.Nop())
	sched.Start()
	defer sched.Stop()

	deadline := time.After(2 * time.Second)
	for {
		if state := sched.State(); state.LastError != "" {
			return
		}
		select {
		case <-deadline:
			t.Fatal("no failing tick recorded in time")
		case <-time.After(5 * time.Millisecond):
		}
	}
}

func TestSchedulerStartStopIdempotent(t *testing.T) {
	s := newTestStore(t)
	u := NewUpdater(s, zerolog.Nop(), &fakeSource{name: "x", rates: map[string]float64{"BTC_USD": 1}})
	sched := NewScheduler(u, time.Hour, zerolog.Nop())

	// stopping a stopped scheduler is a no-op
	sched.Stop()

	sched.Start()
	sched.Start()
	if !sched.State().Running {
		t.Fatal("scheduler not running after Start")
	}

	sched.Stop()
	sched.Stop()
	if sched.State().Running {
		t.Fatal("scheduler still running after Stop")
	}

	// restartable after a stop
	sched.Start()
	if !sched.State().Running {
		t.Fatal("scheduler not running after restart")
	}
	sched.Stop()
}
