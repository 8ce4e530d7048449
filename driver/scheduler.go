// Package driver implements the process driver: the component that owns a
// backend and a screen, feeding bytes from one into the other on a single
// cooperative event loop and translating UI input back into bytes the
// child expects.
package driver

import "sync"

// Scheduler is the single-threaded cooperative event loop that Screen,
// parser, and driver state live behind. Backends post work onto it (via
// Post) instead of touching that state from their own reader/waiter
// goroutines, so those goroutines never observe or mutate Screen state
// directly.
type Scheduler struct {
	jobs      chan func()
	done      chan struct{}
	closeOnce sync.Once
}

// NewScheduler creates a scheduler. Call Run on the goroutine that should
// own all Screen/driver state, typically the same goroutine as the host
// UI's own event loop.
func NewScheduler() *Scheduler {
	return &Scheduler{
		jobs: make(chan func(), 256),
		done: make(chan struct{}),
	}
}

// Post enqueues job to run on the scheduler's loop. Safe to call from any
// goroutine; this is the thread-safe post primitive the rest of the
// package relies on instead of locking Screen state directly.
func (s *Scheduler) Post(job func()) {
	select {
	case s.jobs <- job:
	case <-s.done:
	}
}

// Run drains and executes jobs until Stop is called. Blocks the calling
// goroutine; run it as the main loop.
func (s *Scheduler) Run() {
	for {
		select {
		case job := <-s.jobs:
			job()
		case <-s.done:
			return
		}
	}
}

// Stop ends Run. Idempotent.
func (s *Scheduler) Stop() {
	s.closeOnce.Do(func() { close(s.done) })
}
