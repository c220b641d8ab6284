package progress

import (
	"encoding/json"
	"sort"
	"time"
)

// nodeData is the persisted form of a NodeProgress record.
type nodeData struct {
	ExploredPercent        int      `json:"exploredPercent"`
	DiscoveredTopicsOnPage []string `json:"discoveredTopicsOnPage"`
	DiscoveredAt           *string  `json:"discoveredAt,omitempty"`
	VisitedAt              *string  `json:"visitedAt,omitempty"`
	CompletedAt            *string  `json:"completedAt,omitempty"`
}

// stateData is the full persisted state blob.
type stateData struct {
	Nodes               map[string]*nodeData `json:"nodes"`
	AllDiscoveredTopics []string             `json:"allDiscoveredTopics"`
}

func (s *Store) marshalState() ([]byte, error) {
	data := stateData{
		Nodes:               make(map[string]*nodeData, len(s.nodes)),
		AllDiscoveredTopics: sortedKeys(s.discovered),
	}
	for id, np := range s.nodes {
		nd := &nodeData{
			ExploredPercent:        np.ExploredPercent,
			DiscoveredTopicsOnPage: sortedKeys(np.DiscoveredTopicsOnPage),
		}
		nd.DiscoveredAt = formatTime(np.DiscoveredAt)
		nd.VisitedAt = formatTime(np.VisitedAt)
		nd.CompletedAt = formatTime(np.CompletedAt)
		data.Nodes[id] = nd
	}
	return json.Marshal(data)
}

// unmarshalState replaces in-memory state from a persisted blob. Unknown or
// out-of-range values are normalized rather than rejected.
func (s *Store) unmarshalState(raw []byte) error {
	var data stateData
	if err := json.Unmarshal(raw, &data); err != nil {
		return err
	}

	s.nodes = make(map[string]*NodeProgress, len(data.Nodes))
	s.discovered = make(map[string]struct{}, len(data.AllDiscoveredTopics))

	for _, id := range data.AllDiscoveredTopics {
		s.discovered[id] = struct{}{}
	}
	for id, nd := range data.Nodes {
		if nd == nil {
			continue
		}
		np := defaultRecord()
		np.ExploredPercent = clampPercent(nd.ExploredPercent)
		for _, t := range nd.DiscoveredTopicsOnPage {
			np.DiscoveredTopicsOnPage[t] = struct{}{}
		}
		np.DiscoveredAt = parseTime(nd.DiscoveredAt)
		np.VisitedAt = parseTime(nd.VisitedAt)
		np.CompletedAt = parseTime(nd.CompletedAt)
		s.nodes[id] = np
	}
	return nil
}

func formatTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.RFC3339)
	return &s
}

func parseTime(s *string) *time.Time {
	if s == nil {
		return nil
	}
	t, err := time.Parse(time.RFC3339, *s)
	if err != nil {
		return nil
	}
	return &t
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
