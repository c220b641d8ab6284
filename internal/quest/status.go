// Package quest derives a node's completion status from progress facts.
// Derivation is pure and never mutates state, so it is safe on every
// render or poll.
package quest

import "github.com/abhisek/questlog/internal/progress"

// Status is a node's position in the exploration lifecycle.
type Status string

const (
	StatusUndiscovered Status = "undiscovered"
	StatusDiscovered   Status = "discovered"
	StatusInProgress   Status = "in_progress"
	StatusComplete     Status = "complete"
)

// Derive computes the status from raw facts:
//
//  1. A node absent from the global discovery ledger is undiscovered.
//  2. A forced completion supersedes the normal derivation.
//  3. A discovered but never-visited node is merely discovered.
//  4. Full exploration plus every linked topic discovered is complete;
//     an empty linked list makes the topic clause vacuously true.
//  5. Anything else is in progress.
func Derive(discovered bool, np progress.NodeProgress, linkedTopics []string) Status {
	if !discovered {
		return StatusUndiscovered
	}
	if np.ForcedComplete() {
		return StatusComplete
	}
	if !np.Visited() {
		return StatusDiscovered
	}
	if np.ExploredPercent >= 100 && np.TopicsDiscovered() >= len(linkedTopics) {
		return StatusComplete
	}
	return StatusInProgress
}

// LinkedTopicsFunc supplies a node's outbound linked-topic ids. A nil
// function or nil result means no linked topics, so completion is
// reachable through exploration alone.
type LinkedTopicsFunc func(nodeID string) []string

// Resolver binds derivation to a progress store and a linked-topics source.
type Resolver struct {
	store  *progress.Store
	linked LinkedTopicsFunc
}

// NewResolver creates a Resolver. linked may be nil.
func NewResolver(store *progress.Store, linked LinkedTopicsFunc) *Resolver {
	return &Resolver{store: store, linked: linked}
}

// Status returns the node's current derived status.
func (r *Resolver) Status(nodeID string) Status {
	var topics []string
	if r.linked != nil {
		topics = r.linked(nodeID)
	}
	return Derive(r.store.IsDiscovered(nodeID), r.store.NodeProgress(nodeID), topics)
}
