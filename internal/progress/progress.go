// Package progress owns the durable exploration state: one record per
// content node plus the global discovered-topic ledger. All mutation goes
// through the Store so monotonicity and discovery idempotence are enforced
// in one place.
package progress

import "time"

// NodeProgress holds everything tracked for a single content node.
// A node with no record reads as the zero NodeProgress.
type NodeProgress struct {
	// ExploredPercent is a high-water mark in [0,100]. It never decreases
	// except through an explicit reset.
	ExploredPercent int

	// DiscoveredTopicsOnPage are the topics whose reference links became
	// visible while this node was the active page.
	DiscoveredTopicsOnPage map[string]struct{}

	DiscoveredAt *time.Time // first discovered as a topic elsewhere
	VisitedAt    *time.Time // first navigated into
	CompletedAt  *time.Time // completion explicitly forced
}

// Visited reports whether the node has ever been navigated into.
func (np NodeProgress) Visited() bool {
	return np.VisitedAt != nil
}

// ForcedComplete reports whether completion was forced via MarkQuestComplete.
func (np NodeProgress) ForcedComplete() bool {
	return np.CompletedAt != nil
}

// TopicsDiscovered returns how many topics were discovered on this page.
func (np NodeProgress) TopicsDiscovered() int {
	return len(np.DiscoveredTopicsOnPage)
}

func (np NodeProgress) clone() NodeProgress {
	out := np
	out.DiscoveredTopicsOnPage = make(map[string]struct{}, len(np.DiscoveredTopicsOnPage))
	for t := range np.DiscoveredTopicsOnPage {
		out.DiscoveredTopicsOnPage[t] = struct{}{}
	}
	out.DiscoveredAt = copyTime(np.DiscoveredAt)
	out.VisitedAt = copyTime(np.VisitedAt)
	out.CompletedAt = copyTime(np.CompletedAt)
	return out
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}

func defaultRecord() *NodeProgress {
	return &NodeProgress{DiscoveredTopicsOnPage: make(map[string]struct{})}
}

// clampPercent clamps a raw percent into [0,100]. Inputs outside the range
// are capped rather than rejected.
func clampPercent(p int) int {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}
