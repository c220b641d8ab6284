// Package discovery handles the "topic reference became visible" side of
// tracking: discover-once semantics over the global ledger, per-page topic
// attribution, and notifications for presentation collaborators.
package discovery

import (
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/abhisek/questlog/internal/progress"
)

// Event is delivered to subscribers at the moment of first discovery.
// It exists purely to drive presentation (an unlock animation); engine
// state never depends on it.
type Event struct {
	ID        string // unique per discovery, for animation correlation
	TopicID   string
	SourceRef string // the link element that triggered the discovery
	Title     string // human title when the catalog knows the topic
}

// TitleFunc resolves a topic's human title for event payloads.
type TitleFunc func(topicID string) string

type subscriber struct {
	id int
	fn func(Event)
}

// Engine enforces discover-once semantics on top of the progress store and
// fans discovery notifications out to subscribers.
type Engine struct {
	store *progress.Store
	title TitleFunc
	log   *zap.Logger

	mu     sync.Mutex
	subs   []subscriber
	nextID int
}

// Option configures an Engine.
type Option func(*Engine)

// WithTitles sets the title resolver used for event payloads.
func WithTitles(fn TitleFunc) Option {
	return func(e *Engine) { e.title = fn }
}

// WithLogger sets the logger for listener diagnostics.
func WithLogger(log *zap.Logger) Option {
	return func(e *Engine) { e.log = log }
}

// New creates a discovery engine over the given store.
func New(store *progress.Store, opts ...Option) *Engine {
	e := &Engine{store: store, log: zap.NewNop()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// IsTopicDiscovered reports membership in the global discovery ledger.
func (e *Engine) IsTopicDiscovered(topicID string) bool {
	return e.store.IsDiscovered(topicID)
}

// MarkTopicDiscovered records that a reference to topicID became visible.
// It returns true iff this call caused a new discovery; repeats are no-ops.
//
// On first discovery: the topic enters the global ledger, its record gets a
// discovery timestamp, and — when currentPageID names a different node —
// the topic is attributed to that page's discovered set. A notification is
// emitted only when sourceRef is provided, after all state is persisted, so
// a misbehaving listener cannot lose the discovery.
func (e *Engine) MarkTopicDiscovered(topicID, sourceRef, currentPageID string) bool {
	if !e.store.Discover(topicID) {
		return false
	}

	if currentPageID != "" && currentPageID != topicID {
		e.store.RecordPageTopic(currentPageID, topicID)
	}

	if sourceRef != "" {
		e.dispatch(Event{
			ID:        uuid.NewString(),
			TopicID:   topicID,
			SourceRef: sourceRef,
			Title:     e.resolveTitle(topicID),
		})
	}
	return true
}

// Subscribe registers a listener for discovery events. Listeners run
// synchronously at the point of discovery, in subscription order. The
// returned function removes the listener.
func (e *Engine) Subscribe(fn func(Event)) (unsubscribe func()) {
	e.mu.Lock()
	id := e.nextID
	e.nextID++
	e.subs = append(e.subs, subscriber{id: id, fn: fn})
	e.mu.Unlock()

	return func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		for i, s := range e.subs {
			if s.id == id {
				e.subs = append(e.subs[:i], e.subs[i+1:]...)
				return
			}
		}
	}
}

func (e *Engine) dispatch(ev Event) {
	e.mu.Lock()
	subs := append([]subscriber(nil), e.subs...)
	e.mu.Unlock()

	for _, s := range subs {
		e.invoke(s.fn, ev)
	}
}

// invoke shields dispatch from panicking listeners; state is already
// persisted, so a bad listener only loses its own notification.
func (e *Engine) invoke(fn func(Event), ev Event) {
	defer func() {
		if r := recover(); r != nil {
			e.log.Warn("discovery listener panicked",
				zap.String("topic", ev.TopicID), zap.Any("panic", r))
		}
	}()
	fn(ev)
}

func (e *Engine) resolveTitle(topicID string) string {
	if e.title == nil {
		return ""
	}
	return e.title(topicID)
}
