package progress

import (
	"testing"
	"time"

	"github.com/abhisek/questlog/internal/storage"
)

func newTestStore() (*Store, *storage.Memory) {
	backend := storage.NewMemory()
	return NewStore(backend), backend
}

func TestNodeProgress_DefaultRecord(t *testing.T) {
	s, _ := newTestStore()
	np := s.NodeProgress("never-touched")
	if np.ExploredPercent != 0 {
		t.Errorf("ExploredPercent = %d, want 0", np.ExploredPercent)
	}
	if np.TopicsDiscovered() != 0 {
		t.Errorf("TopicsDiscovered() = %d, want 0", np.TopicsDiscovered())
	}
	if np.Visited() || np.ForcedComplete() || np.DiscoveredAt != nil {
		t.Error("default record should carry no timestamps")
	}
}

func TestUpdateExploredPercent_Monotonic(t *testing.T) {
	s, _ := newTestStore()

	s.UpdateExploredPercent("n", 40)
	s.UpdateExploredPercent("n", 25)
	if got := s.NodeProgress("n").ExploredPercent; got != 40 {
		t.Errorf("ExploredPercent = %d, want 40 (high-water mark)", got)
	}

	s.UpdateExploredPercent("n", 80)
	if got := s.NodeProgress("n").ExploredPercent; got != 80 {
		t.Errorf("ExploredPercent = %d, want 80", got)
	}
}

func TestUpdateExploredPercent_OrderIndependent(t *testing.T) {
	a, _ := newTestStore()
	a.UpdateExploredPercent("n", 30)
	a.UpdateExploredPercent("n", 70)

	b, _ := newTestStore()
	b.UpdateExploredPercent("n", 70)
	b.UpdateExploredPercent("n", 30)

	if a.NodeProgress("n").ExploredPercent != b.NodeProgress("n").ExploredPercent {
		t.Errorf("order changed result: %d vs %d",
			a.NodeProgress("n").ExploredPercent, b.NodeProgress("n").ExploredPercent)
	}
}

func TestUpdateExploredPercent_Clamped(t *testing.T) {
	s, _ := newTestStore()

	s.UpdateExploredPercent("n", 150)
	if got := s.NodeProgress("n").ExploredPercent; got != 100 {
		t.Errorf("ExploredPercent = %d, want 100 after over-range input", got)
	}

	s.UpdateExploredPercent("m", -20)
	if got := s.NodeProgress("m").ExploredPercent; got != 0 {
		t.Errorf("ExploredPercent = %d, want 0 after negative input", got)
	}
}

func TestUpdateExploredPercent_NoWriteWhenUnchanged(t *testing.T) {
	s, backend := newTestStore()

	s.UpdateExploredPercent("n", 50)
	writes := backend.SaveCount

	s.UpdateExploredPercent("n", 50)
	s.UpdateExploredPercent("n", 30)
	if backend.SaveCount != writes {
		t.Errorf("SaveCount = %d, want %d (regressions must not persist)", backend.SaveCount, writes)
	}
}

func TestMarkVisited_Idempotent(t *testing.T) {
	s, backend := newTestStore()

	s.MarkVisited("n")
	np := s.NodeProgress("n")
	if !np.Visited() {
		t.Fatal("VisitedAt not set")
	}
	if !s.IsDiscovered("n") {
		t.Error("visiting must also discover the node")
	}

	first := *np.VisitedAt
	writes := backend.SaveCount
	s.MarkVisited("n")
	if !s.NodeProgress("n").VisitedAt.Equal(first) {
		t.Error("repeat visit changed VisitedAt")
	}
	if backend.SaveCount != writes {
		t.Errorf("repeat visit wrote state: SaveCount = %d, want %d", backend.SaveCount, writes)
	}
}

func TestDiscover_Idempotent(t *testing.T) {
	s, _ := newTestStore()

	if !s.Discover("n") {
		t.Fatal("first Discover returned false")
	}
	discoveredAt := *s.NodeProgress("n").DiscoveredAt

	if s.Discover("n") {
		t.Error("second Discover returned true")
	}
	if !s.NodeProgress("n").DiscoveredAt.Equal(discoveredAt) {
		t.Error("repeat discovery changed DiscoveredAt")
	}
}

func TestMarkQuestComplete_ForcesEverything(t *testing.T) {
	s, _ := newTestStore()

	s.MarkQuestComplete("n")
	np := s.NodeProgress("n")
	if np.ExploredPercent != 100 {
		t.Errorf("ExploredPercent = %d, want 100", np.ExploredPercent)
	}
	if !np.ForcedComplete() || !np.Visited() {
		t.Error("forced completion must imply completed + visited")
	}
	if !s.IsDiscovered("n") {
		t.Error("forced completion must imply discovered")
	}
}

func TestRecordPageTopic_Dedup(t *testing.T) {
	s, _ := newTestStore()

	if !s.RecordPageTopic("page", "topic-a") {
		t.Fatal("first RecordPageTopic returned false")
	}
	if s.RecordPageTopic("page", "topic-a") {
		t.Error("duplicate RecordPageTopic returned true")
	}
	s.RecordPageTopic("page", "topic-b")
	if got := s.NodeProgress("page").TopicsDiscovered(); got != 2 {
		t.Errorf("TopicsDiscovered() = %d, want 2", got)
	}
}

func TestResetNode(t *testing.T) {
	s, _ := newTestStore()

	s.MarkVisited("n")
	s.UpdateExploredPercent("n", 60)
	s.ResetNode("n")

	if s.IsDiscovered("n") {
		t.Error("reset node still discovered")
	}
	if got := s.NodeProgress("n").ExploredPercent; got != 0 {
		t.Errorf("ExploredPercent = %d, want 0 after reset", got)
	}
}

func TestResetAll_ErasesStorage(t *testing.T) {
	s, backend := newTestStore()

	s.MarkVisited("a")
	s.MarkVisited("b")
	s.ResetAll()

	if len(s.NodeIDs()) != 0 || len(s.DiscoveredTopics()) != 0 {
		t.Error("state not empty after ResetAll")
	}
	raw, err := backend.Load()
	if err != nil || raw != nil {
		t.Errorf("persisted state not erased: raw=%q err=%v", raw, err)
	}
}

func TestPersistence_RoundTrip(t *testing.T) {
	backend := storage.NewMemory()
	s := NewStore(backend)

	s.MarkVisited("n")
	s.UpdateExploredPercent("n", 75)
	s.RecordPageTopic("n", "t1")
	s.Discover("t1")

	reloaded := NewStore(backend)
	np := reloaded.NodeProgress("n")
	if np.ExploredPercent != 75 {
		t.Errorf("ExploredPercent = %d, want 75 after reload", np.ExploredPercent)
	}
	if !np.Visited() {
		t.Error("VisitedAt lost across reload")
	}
	if np.TopicsDiscovered() != 1 {
		t.Errorf("TopicsDiscovered() = %d, want 1 after reload", np.TopicsDiscovered())
	}
	if !reloaded.IsDiscovered("n") || !reloaded.IsDiscovered("t1") {
		t.Error("discovery ledger lost across reload")
	}
}

func TestPersistence_MalformedStateLoadsEmpty(t *testing.T) {
	backend := storage.NewMemory()
	if err := backend.Save([]byte("{not json")); err != nil {
		t.Fatal(err)
	}

	s := NewStore(backend)
	if len(s.NodeIDs()) != 0 {
		t.Error("malformed state should load as empty")
	}
	if got := s.NodeProgress("n").ExploredPercent; got != 0 {
		t.Errorf("ExploredPercent = %d, want 0", got)
	}
}

func TestPersistence_WriteFailureSwallowed(t *testing.T) {
	backend := storage.NewMemory()
	backend.FailWrites = true
	s := NewStore(backend)

	s.MarkVisited("n")
	s.UpdateExploredPercent("n", 90)

	// In-memory state stays authoritative for the session.
	if got := s.NodeProgress("n").ExploredPercent; got != 90 {
		t.Errorf("ExploredPercent = %d, want 90 despite failed writes", got)
	}
	if !s.NodeProgress("n").Visited() {
		t.Error("VisitedAt lost when writes fail")
	}
}

func TestNodeProgress_ReturnsCopy(t *testing.T) {
	s, _ := newTestStore()
	s.RecordPageTopic("n", "t1")

	np := s.NodeProgress("n")
	np.DiscoveredTopicsOnPage["t2"] = struct{}{}
	np.ExploredPercent = 99

	if got := s.NodeProgress("n").TopicsDiscovered(); got != 1 {
		t.Errorf("external mutation leaked into store: TopicsDiscovered() = %d, want 1", got)
	}
}

func TestWithClock(t *testing.T) {
	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s := NewStore(storage.NewMemory(), WithClock(func() time.Time { return fixed }))

	s.MarkVisited("n")
	if got := *s.NodeProgress("n").VisitedAt; !got.Equal(fixed) {
		t.Errorf("VisitedAt = %v, want %v", got, fixed)
	}
}
