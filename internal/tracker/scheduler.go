package tracker

import (
	"sync"
	"time"
)

// DefaultFrameInterval approximates one rendering frame at 60fps.
const DefaultFrameInterval = 16 * time.Millisecond

// Scheduler coalesces recompute triggers: at most one recomputation may be
// pending at a time, and re-entrant requests are ignored until it runs.
type Scheduler interface {
	// Request schedules run unless a run is already pending.
	Request(run func())

	// Stop cancels any pending run and rejects further requests.
	Stop()
}

// FrameScheduler delays each run by a frame interval so bursts of scroll
// and resize events collapse into a single recomputation.
type FrameScheduler struct {
	interval time.Duration

	mu      sync.Mutex
	pending bool
	stopped bool
	timer   *time.Timer
}

// NewFrameScheduler creates a FrameScheduler with the given interval.
// A non-positive interval falls back to DefaultFrameInterval.
func NewFrameScheduler(interval time.Duration) *FrameScheduler {
	if interval <= 0 {
		interval = DefaultFrameInterval
	}
	return &FrameScheduler{interval: interval}
}

func (s *FrameScheduler) Request(run func()) {
	s.mu.Lock()
	if s.stopped || s.pending {
		s.mu.Unlock()
		return
	}
	s.pending = true
	s.timer = time.AfterFunc(s.interval, func() {
		s.mu.Lock()
		if s.stopped {
			s.mu.Unlock()
			return
		}
		s.pending = false
		s.mu.Unlock()
		run()
	})
	s.mu.Unlock()
}

func (s *FrameScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopped = true
	s.pending = false
	if s.timer != nil {
		s.timer.Stop()
	}
}

// Immediate runs every request synchronously. Used in tests and by
// embedders that drive recomputation from their own loop.
type Immediate struct{}

func (Immediate) Request(run func()) { run() }
func (Immediate) Stop()              {}
