package tradehub

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// SchedulerState is a point-in-time view of the scheduler, safe to read
// concurrently with tick execution.
type SchedulerState struct {
	Running    bool
	LastResult *UpdateSummary
	LastError  string
}

// Scheduler drives the Updater on a fixed interval from a background
// goroutine. Neither a failed nor a successful tick stops the schedule;
// the last outcome is kept for status queries.
type Scheduler struct {
	updater  *Updater
	interval time.Duration
	log      zerolog.Logger

	mu         sync.Mutex
	running    bool
	lastResult *UpdateSummary
	lastError  string
	stop       chan struct{}
	done       chan struct{}
}

// NewScheduler returns a stopped scheduler ticking at the given interval.
func NewScheduler(updater *Updater, interval time.Duration, log zerolog.Logger) *Scheduler {
	return &Scheduler{updater: updater, interval: interval, log: log}
}

// Start arms the periodic cycle. Calling Start on a running scheduler is a
// no-op.
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return
	}
	s.running = true
	s.stop = make(chan struct{})
	s.done = make(chan struct{})
	s.log.Info().Dur("interval", s.interval).Msg("scheduler started")
	go s.loop(s.stop, s.done)
}

// Stop disarms the schedule and waits for an in-flight tick to run to
// completion. Calling Stop on a stopped scheduler is a no-op.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	stop, done := s.stop, s.done
	s.mu.Unlock()

	close(stop)
	<-done
	s.log.Info().Msg("scheduler stopped")
}

// State returns a consistent view of the scheduler state.
func (s *Scheduler) State() SchedulerState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return SchedulerState{Running: s.running, LastResult: s.lastResult, LastError: s.lastError}
}

func (s *Scheduler) loop(stop, done chan struct{}) {
	defer close(done)
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			s.tick()
		case <-stop:
			return
		}
	}
}

func (s *Scheduler) tick() {
	summary, err := s.updater.RunUpdate(context.Background())
	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.lastError = err.Error()
		s.log.Warn().Err(err).Msg("scheduled update failed")
		return
	}
	s.lastResult = &summary
	s.lastError = ""
}
