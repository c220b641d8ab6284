// Package content supplies read-only node metadata: the human title used in
// discovery notifications and the outbound linked-topic ids that gate full
// completion. The engine treats missing metadata as an empty linked list.
package content

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
)

// Node is one content unit's metadata.
type Node struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	LinkedTopics []string `json:"linkedTopics,omitempty"`
}

// Catalog is an indexed, immutable set of node metadata.
type Catalog struct {
	byID  map[string]Node
	order []string
}

type catalogFile struct {
	Nodes []Node `json:"nodes"`
}

// Load reads and parses a catalog file.
func Load(path string) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return Parse(raw)
}

// Parse validates raw JSON against the catalog schema and builds the index.
func Parse(raw []byte) (*Catalog, error) {
	if err := validateCatalog(raw); err != nil {
		return nil, err
	}

	var file catalogFile
	if err := json.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}

	c := &Catalog{byID: make(map[string]Node, len(file.Nodes))}
	for _, n := range file.Nodes {
		if _, ok := c.byID[n.ID]; ok {
			return nil, fmt.Errorf("duplicate node id: %q", n.ID)
		}
		c.byID[n.ID] = n
		c.order = append(c.order, n.ID)
	}
	return c, nil
}

// Empty returns a catalog with no nodes. Every lookup falls back to the
// zero metadata, so tracking still works without authored metadata.
func Empty() *Catalog {
	return &Catalog{byID: make(map[string]Node)}
}

// Node returns the metadata for id.
func (c *Catalog) Node(id string) (Node, bool) {
	n, ok := c.byID[id]
	return n, ok
}

// Nodes returns all nodes in file order.
func (c *Catalog) Nodes() []Node {
	out := make([]Node, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.byID[id])
	}
	return out
}

// LinkedTopics returns the node's outbound topic ids, sorted.
// Unknown nodes have none.
func (c *Catalog) LinkedTopics(id string) []string {
	n, ok := c.byID[id]
	if !ok || len(n.LinkedTopics) == 0 {
		return nil
	}
	out := append([]string(nil), n.LinkedTopics...)
	sort.Strings(out)
	return out
}

// Title returns the node's human title, or "" when unknown.
func (c *Catalog) Title(id string) string {
	return c.byID[id].Title
}
