// Package tracker orchestrates section scanning, visibility geometry, and
// monotonic percent updates for the node the user is currently reading.
package tracker

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/abhisek/questlog/internal/geometry"
	"github.com/abhisek/questlog/internal/progress"
	"github.com/abhisek/questlog/internal/scanner"
)

// DefaultSettleDelay covers async layout and late content expansion after
// mount before the second measurement pass.
const DefaultSettleDelay = 500 * time.Millisecond

// Tracker tracks exploration of a single node. Create one per active node
// and Close it on navigation; a closed tracker discards any in-flight
// recomputation instead of mutating records retroactively.
type Tracker struct {
	nodeID      string
	scanner     scanner.Scanner
	store       *progress.Store
	sched       Scheduler
	log         *zap.Logger
	settleDelay time.Duration

	mu             sync.Mutex
	viewportBottom float64
	closed         bool
	watchCancel    func()
	settleTimer    *time.Timer
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithScheduler overrides the recompute scheduler.
func WithScheduler(s Scheduler) Option {
	return func(t *Tracker) { t.sched = s }
}

// WithSettleDelay overrides the post-mount settle delay.
func WithSettleDelay(d time.Duration) Option {
	return func(t *Tracker) { t.settleDelay = d }
}

// WithLogger sets the logger.
func WithLogger(log *zap.Logger) Option {
	return func(t *Tracker) { t.log = log }
}

// New creates a Tracker for nodeID over the given scanner and store.
func New(nodeID string, sc scanner.Scanner, store *progress.Store, opts ...Option) *Tracker {
	t := &Tracker{
		nodeID:      nodeID,
		scanner:     sc,
		store:       store,
		log:         zap.NewNop(),
		settleDelay: DefaultSettleDelay,
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.sched == nil {
		t.sched = NewFrameScheduler(DefaultFrameInterval)
	}
	return t
}

// Mount starts tracking: marks the node visited, watches for content
// changes, runs one measurement pass immediately and another after the
// settle delay.
func (t *Tracker) Mount() {
	t.store.MarkVisited(t.nodeID)

	t.mu.Lock()
	t.watchCancel = t.scanner.Watch(t.requestRecompute)
	t.settleTimer = time.AfterFunc(t.settleDelay, t.requestRecompute)
	t.mu.Unlock()

	t.recompute()
}

// OnScroll records the new viewport bottom and schedules a recompute.
func (t *Tracker) OnScroll(viewportBottom float64) {
	t.mu.Lock()
	t.viewportBottom = viewportBottom
	t.mu.Unlock()
	t.requestRecompute()
}

// OnResize schedules a recompute after a layout change.
func (t *Tracker) OnResize() {
	t.requestRecompute()
}

// Close tears down watchers and cancels any scheduled recomputation.
// Safe to call more than once.
func (t *Tracker) Close() {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return
	}
	t.closed = true
	cancel := t.watchCancel
	settle := t.settleTimer
	t.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	if settle != nil {
		settle.Stop()
	}
	t.sched.Stop()
}

func (t *Tracker) requestRecompute() {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return
	}
	t.mu.Unlock()
	t.sched.Request(t.recompute)
}

// recompute runs one scan + geometry pass and feeds the result into the
// store. Regressions from scrolling back up are absorbed by the store's
// high-water clamp, so no bookkeeping happens here.
func (t *Tracker) recompute() {
	t.mu.Lock()
	if t.closed {
		// Stale run for a node the user already left.
		t.mu.Unlock()
		return
	}
	viewportBottom := t.viewportBottom
	t.mu.Unlock()

	var totalHeight, seenHeight float64
	for _, sec := range t.scanner.Scan() {
		if !sec.Countable() {
			continue
		}
		totalHeight += sec.Height
		seenHeight += geometry.SectionVisibility(sec.Top, sec.Height, viewportBottom)
	}

	percent := geometry.ExplorationPercent(totalHeight, seenHeight)
	t.store.UpdateExploredPercent(t.nodeID, percent)
	t.log.Debug("recomputed exploration",
		zap.String("node", t.nodeID),
		zap.Int("percent", percent),
		zap.Float64("viewportBottom", viewportBottom))
}
