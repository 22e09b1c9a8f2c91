// Package spec provides the declarative workflow graph model
package spec

import (
	"fmt"
	"sort"
)

// GraphSpec is a complete declarative description of a workflow graph
// PRINCIPLES:
// - KISS: Declaration only, no execution state
// - SRP: Only responsible for graph structure data
// - OCP: Opaque tags (goal_id, node_type, condition_expr) extend without change
type GraphSpec struct {
	ID            string            `json:"id" yaml:"id" validate:"required,spec_id"`
	GoalID        string            `json:"goal_id,omitempty" yaml:"goal_id,omitempty"`
	EntryNode     string            `json:"entry_node" yaml:"entry_node" validate:"required"`
	EntryPoints   map[string]string `json:"entry_points,omitempty" yaml:"entry_points,omitempty"`
	TerminalNodes []string          `json:"terminal_nodes,omitempty" yaml:"terminal_nodes,omitempty"`
	Nodes         []NodeSpec        `json:"nodes" yaml:"nodes" validate:"required,min=1,dive"`
	Edges         []EdgeSpec        `json:"edges,omitempty" yaml:"edges,omitempty" validate:"dive"`
}

// NewGraphSpec creates an empty graph declaration with the given id
func NewGraphSpec(id string) *GraphSpec {
	return &GraphSpec{
		ID:            id,
		EntryPoints:   make(map[string]string),
		TerminalNodes: make([]string, 0),
		Nodes:         make([]NodeSpec, 0),
		Edges:         make([]EdgeSpec, 0),
	}
}

// NodeByID resolves a node id to its declaration. When ids repeat the
// first occurrence wins; duplicate ids themselves are a CheckShape failure.
func (g *GraphSpec) NodeByID(id string) (*NodeSpec, bool) {
	for i := range g.Nodes {
		if g.Nodes[i].ID == id {
			return &g.Nodes[i], true
		}
	}
	return nil, false
}

// CheckShape rejects graphs that violate construction invariants the
// field tags cannot express: duplicate node ids and duplicate edge ids.
// Shape failures are a distinct class from Validate findings; a graph
// must pass CheckShape before Validate results mean anything.
func (g *GraphSpec) CheckShape() error {
	if g == nil {
		return ErrNilGraphSpec
	}
	nodeIDs := make(map[string]struct{}, len(g.Nodes))
	for _, n := range g.Nodes {
		if _, dup := nodeIDs[n.ID]; dup {
			return fmt.Errorf("%w: %q", ErrDuplicateNodeID, n.ID)
		}
		nodeIDs[n.ID] = struct{}{}
	}
	edgeIDs := make(map[string]struct{}, len(g.Edges))
	for _, e := range g.Edges {
		if _, dup := edgeIDs[e.ID]; dup {
			return fmt.Errorf("%w: %q", ErrDuplicateEdgeID, e.ID)
		}
		edgeIDs[e.ID] = struct{}{}
	}
	return nil
}

// Clone returns a deep copy, so stored declarations cannot be mutated
// through shared slices or maps.
func (g *GraphSpec) Clone() *GraphSpec {
	if g == nil {
		return nil
	}
	clone := *g
	clone.EntryPoints = make(map[string]string, len(g.EntryPoints))
	for name, id := range g.EntryPoints {
		clone.EntryPoints[name] = id
	}
	clone.TerminalNodes = append([]string(nil), g.TerminalNodes...)
	clone.Nodes = make([]NodeSpec, len(g.Nodes))
	for i, n := range g.Nodes {
		clone.Nodes[i] = n
		clone.Nodes[i].OutputKeys = append([]string(nil), n.OutputKeys...)
	}
	clone.Edges = append([]EdgeSpec(nil), g.Edges...)
	return &clone
}

// nodeIndex maps node ids to their position in Nodes, first occurrence wins.
func (g *GraphSpec) nodeIndex() map[string]int {
	idx := make(map[string]int, len(g.Nodes))
	for i, n := range g.Nodes {
		if _, seen := idx[n.ID]; !seen {
			idx[n.ID] = i
		}
	}
	return idx
}

// sortedEntryNames returns the entry point names in their canonical
// order. Map iteration order is not deterministic; sorted symbolic
// names are the declared order for reporting and traversal.
func (g *GraphSpec) sortedEntryNames() []string {
	names := make([]string, 0, len(g.EntryPoints))
	for name := range g.EntryPoints {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
