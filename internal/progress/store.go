package progress

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/abhisek/questlog/internal/storage"
)

// Store is the single authority over ProgressState. Every mutating method
// updates memory first, then writes the whole state through to the backend.
// Persistence failures are swallowed: the in-memory state stays
// authoritative for the session.
type Store struct {
	mu         sync.Mutex
	nodes      map[string]*NodeProgress
	discovered map[string]struct{}
	backend    storage.Backend
	log        *zap.Logger
	now        func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for persistence diagnostics.
func WithLogger(log *zap.Logger) Option {
	return func(s *Store) { s.log = log }
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// NewStore creates a Store over the given backend and loads any persisted
// state. Absent or malformed state initializes empty — loading never fails.
func NewStore(backend storage.Backend, opts ...Option) *Store {
	s := &Store{
		nodes:      make(map[string]*NodeProgress),
		discovered: make(map[string]struct{}),
		backend:    backend,
		log:        zap.NewNop(),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	raw, err := backend.Load()
	if err != nil {
		s.log.Warn("load persisted state failed, starting empty", zap.Error(err))
		return s
	}
	if raw == nil {
		return s
	}
	if err := s.unmarshalState(raw); err != nil {
		s.log.Warn("persisted state malformed, starting empty", zap.Error(err))
		s.nodes = make(map[string]*NodeProgress)
		s.discovered = make(map[string]struct{})
	}
	return s
}

// NodeProgress returns a copy of the node's record, or the default record
// if the node has never been touched. It never fails.
func (s *Store) NodeProgress(nodeID string) NodeProgress {
	s.mu.Lock()
	defer s.mu.Unlock()
	if np, ok := s.nodes[nodeID]; ok {
		return np.clone()
	}
	return *defaultRecord()
}

// IsDiscovered reports whether the node is in the global discovery ledger.
func (s *Store) IsDiscovered(nodeID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.discovered[nodeID]
	return ok
}

// DiscoveredTopics returns the global discovery ledger, sorted.
func (s *Store) DiscoveredTopics() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return sortedKeys(s.discovered)
}

// NodeIDs returns every node with a progress record, sorted.
func (s *Store) NodeIDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make(map[string]struct{}, len(s.nodes))
	for id := range s.nodes {
		ids[id] = struct{}{}
	}
	return sortedKeys(ids)
}

// MarkVisited records the first navigation into a node. Visiting also
// discovers the node globally. Repeat calls are no-ops.
func (s *Store) MarkVisited(nodeID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	np := s.record(nodeID)
	changed := s.discoverLocked(nodeID)
	if np.VisitedAt == nil {
		t := s.now()
		np.VisitedAt = &t
		changed = true
	}
	if changed {
		s.persistLocked()
	}
}

// UpdateExploredPercent raises the node's explored high-water mark. The
// input is clamped to [0,100]; values at or below the current mark are
// ignored without a persistence write.
func (s *Store) UpdateExploredPercent(nodeID string, percent int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	clamped := clampPercent(percent)
	current := 0
	if np, ok := s.nodes[nodeID]; ok {
		current = np.ExploredPercent
	}
	if clamped <= current {
		return
	}
	s.record(nodeID).ExploredPercent = clamped
	s.persistLocked()
}

// MarkQuestComplete forces a node to completion: full exploration, a
// completion timestamp, and the visited + discovered side effects. The
// resolver treats the completion timestamp as overriding its normal
// derivation, so linked-topic requirements no longer apply.
func (s *Store) MarkQuestComplete(nodeID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	np := s.record(nodeID)
	changed := s.discoverLocked(nodeID)
	if np.VisitedAt == nil {
		t := s.now()
		np.VisitedAt = &t
		changed = true
	}
	if np.ExploredPercent < 100 {
		np.ExploredPercent = 100
		changed = true
	}
	if np.CompletedAt == nil {
		t := s.now()
		np.CompletedAt = &t
		changed = true
	}
	if changed {
		s.persistLocked()
	}
}

// Discover adds a node to the global discovery ledger and stamps its
// record. It returns true iff this call caused a new discovery.
func (s *Store) Discover(nodeID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.discoverLocked(nodeID) {
		return false
	}
	s.persistLocked()
	return true
}

// RecordPageTopic adds a discovered topic to the page's per-node set,
// deduplicated. Returns true if the set grew.
func (s *Store) RecordPageTopic(pageID, topicID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	np := s.record(pageID)
	if _, ok := np.DiscoveredTopicsOnPage[topicID]; ok {
		return false
	}
	np.DiscoveredTopicsOnPage[topicID] = struct{}{}
	s.persistLocked()
	return true
}

// ResetNode deletes the node's record and removes it from the global
// discovery ledger, returning it to the default state.
func (s *Store) ResetNode(nodeID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.nodes, nodeID)
	delete(s.discovered, nodeID)
	s.persistLocked()
}

// ResetAll clears the entire state and erases persisted storage.
func (s *Store) ResetAll() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nodes = make(map[string]*NodeProgress)
	s.discovered = make(map[string]struct{})
	if err := s.backend.Delete(); err != nil {
		s.log.Warn("erase persisted state failed", zap.Error(err))
	}
}

// record returns the mutable record for nodeID, creating it lazily.
// Callers must hold s.mu.
func (s *Store) record(nodeID string) *NodeProgress {
	np, ok := s.nodes[nodeID]
	if !ok {
		np = defaultRecord()
		s.nodes[nodeID] = np
	}
	return np
}

// discoverLocked performs the discovery side effect without persisting.
// Returns true iff the node was not already discovered.
func (s *Store) discoverLocked(nodeID string) bool {
	if _, ok := s.discovered[nodeID]; ok {
		return false
	}
	s.discovered[nodeID] = struct{}{}
	np := s.record(nodeID)
	if np.DiscoveredAt == nil {
		t := s.now()
		np.DiscoveredAt = &t
	}
	return true
}

// persistLocked writes the full state through to the backend, best-effort.
func (s *Store) persistLocked() {
	raw, err := s.marshalState()
	if err != nil {
		s.log.Warn("marshal state failed", zap.Error(err))
		return
	}
	if err := s.backend.Save(raw); err != nil {
		s.log.Warn("persist state failed", zap.Error(err))
	}
}
