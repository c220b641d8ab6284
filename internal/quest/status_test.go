package quest

import (
	"testing"

	"github.com/abhisek/questlog/internal/discovery"
	"github.com/abhisek/questlog/internal/progress"
	"github.com/abhisek/questlog/internal/storage"
)

func newFixture(linked map[string][]string) (*progress.Store, *discovery.Engine, *Resolver) {
	store := progress.NewStore(storage.NewMemory())
	engine := discovery.New(store)
	resolver := NewResolver(store, func(id string) []string { return linked[id] })
	return store, engine, resolver
}

func TestStatus_NeverReferenced(t *testing.T) {
	_, _, r := newFixture(nil)
	if got := r.Status("n"); got != StatusUndiscovered {
		t.Errorf("Status = %s, want undiscovered", got)
	}
}

func TestStatus_DiscoveredButNotVisited(t *testing.T) {
	_, e, r := newFixture(nil)
	e.MarkTopicDiscovered("n", "", "")
	if got := r.Status("n"); got != StatusDiscovered {
		t.Errorf("Status = %s, want discovered", got)
	}
}

func TestStatus_VisitedPartialScroll(t *testing.T) {
	s, _, r := newFixture(nil)
	s.MarkVisited("n")
	s.UpdateExploredPercent("n", 50)
	if got := r.Status("n"); got != StatusInProgress {
		t.Errorf("Status = %s, want in_progress", got)
	}
}

func TestStatus_FullScrollNoLinkedTopics(t *testing.T) {
	s, _, r := newFixture(nil)
	s.MarkVisited("n")
	s.UpdateExploredPercent("n", 100)
	if got := r.Status("n"); got != StatusComplete {
		t.Errorf("Status = %s, want complete (empty linked list is vacuously satisfied)", got)
	}
}

func TestStatus_LinkedTopicsGateCompletion(t *testing.T) {
	s, e, r := newFixture(map[string][]string{"n": {"t1", "t2"}})
	s.MarkVisited("n")
	s.UpdateExploredPercent("n", 100)

	if got := r.Status("n"); got != StatusInProgress {
		t.Fatalf("Status = %s, want in_progress with undiscovered linked topics", got)
	}

	e.MarkTopicDiscovered("t1", "", "n")
	if got := r.Status("n"); got != StatusInProgress {
		t.Fatalf("Status = %s, want in_progress with one of two topics", got)
	}

	e.MarkTopicDiscovered("t2", "", "n")
	if got := r.Status("n"); got != StatusComplete {
		t.Errorf("Status = %s, want complete after both topics discovered", got)
	}
}

func TestStatus_ForcedCompletionOverridesTopicClause(t *testing.T) {
	s, _, r := newFixture(map[string][]string{"n": {"t1", "t2"}})
	s.MarkQuestComplete("n")
	if got := r.Status("n"); got != StatusComplete {
		t.Errorf("Status = %s, want complete (manual override supersedes derivation)", got)
	}
}

func TestStatus_VisitedZeroPercent(t *testing.T) {
	s, _, r := newFixture(nil)
	s.MarkVisited("n")

	// Visited with no scroll yet and no linked topics: topic clause is
	// vacuous but exploration is not, so the node is in progress.
	if got := r.Status("n"); got != StatusInProgress {
		t.Errorf("Status = %s, want in_progress", got)
	}
}

func TestDerive_Pure(t *testing.T) {
	np := progress.NodeProgress{ExploredPercent: 100}
	if got := Derive(false, np, nil); got != StatusUndiscovered {
		t.Errorf("Derive(undiscovered) = %s, want undiscovered", got)
	}
	// Repeated calls on the same inputs always agree.
	for i := 0; i < 3; i++ {
		if got := Derive(false, np, nil); got != StatusUndiscovered {
			t.Fatalf("Derive changed across calls: %s", got)
		}
	}
}

func TestStatus_AfterReset(t *testing.T) {
	s, e, r := newFixture(nil)
	s.MarkVisited("n")
	s.UpdateExploredPercent("n", 100)
	s.ResetNode("n")

	if got := r.Status("n"); got != StatusUndiscovered {
		t.Errorf("Status = %s, want undiscovered after reset", got)
	}
	if e.IsTopicDiscovered("n") {
		t.Error("reset node still in discovery ledger")
	}
}
