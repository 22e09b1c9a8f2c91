// Package spec provides cycle detection over graph declarations
package spec

import (
	"sort"
	"strings"
)

// Traversal colors: white is unvisited, gray is on the active path,
// black is fully explored.
type color uint8

const (
	white color = iota
	gray
	black
)

// dfsFrame holds one node on the explicit traversal stack together with
// the index of its next outgoing target to examine.
type dfsFrame struct {
	node string
	next int
}

// findCycles reports one formatted finding per distinct cycle. The walk
// is an explicit-stack depth-first search, so declaration depth is
// bounded by the heap rather than the goroutine stack, and runs in
// O(V+E).
//
// Every edge participates regardless of its condition kind: a guarded
// transition is a worst-case transition for termination purposes.
func (g *GraphSpec) findCycles(idx map[string]int) []string {
	adj := g.adjacency(idx)
	colors := make(map[string]color, len(g.Nodes))
	reported := make(map[string]struct{})

	var findings []string
	report := func(chain []string) {
		sig := cycleSignature(chain)
		if _, dup := reported[sig]; dup {
			return
		}
		reported[sig] = struct{}{}
		findings = append(findings, CyclePrefix+g.formatChain(chain, idx))
	}

	for _, root := range g.traversalRoots(idx) {
		if colors[root] != white {
			continue
		}
		g.walk(root, adj, colors, report)
	}
	return findings
}

// adjacency maps each declared node to its outgoing targets in edge
// declaration order. Edges with an undeclared endpoint are excluded:
// the referential pass already reports them and they cannot close a
// cycle among declared nodes.
func (g *GraphSpec) adjacency(idx map[string]int) map[string][]string {
	adj := make(map[string][]string, len(g.Nodes))
	for i := range g.Edges {
		e := &g.Edges[i]
		if _, ok := idx[e.Source]; !ok {
			continue
		}
		if _, ok := idx[e.Target]; !ok {
			continue
		}
		adj[e.Source] = append(adj[e.Source], e.Target)
	}
	return adj
}

// traversalRoots fixes the deterministic search order: the entry node
// first, then alternate entry points by symbolic name, then every node
// in declaration order. Already-colored roots are skipped by the caller,
// so listing a node twice is harmless.
func (g *GraphSpec) traversalRoots(idx map[string]int) []string {
	roots := make([]string, 0, len(g.Nodes)+len(g.EntryPoints)+1)
	if _, ok := idx[g.EntryNode]; ok {
		roots = append(roots, g.EntryNode)
	}
	for _, name := range g.sortedEntryNames() {
		if target := g.EntryPoints[name]; target != "" {
			if _, ok := idx[target]; ok {
				roots = append(roots, target)
			}
		}
	}
	for i := range g.Nodes {
		roots = append(roots, g.Nodes[i].ID)
	}
	return roots
}

// walk runs the explicit-stack depth-first search from root. The path
// slice mirrors the gray chain from root to the current node; a target
// found gray proves a back edge and report receives the closed chain.
func (g *GraphSpec) walk(root string, adj map[string][]string, colors map[string]color, report func(chain []string)) {
	colors[root] = gray
	path := []string{root}
	stack := []dfsFrame{{node: root}}

	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		targets := adj[top.node]
		if top.next >= len(targets) {
			colors[top.node] = black
			stack = stack[:len(stack)-1]
			path = path[:len(path)-1]
			continue
		}
		target := targets[top.next]
		top.next++

		switch colors[target] {
		case gray:
			report(closeChain(path, target))
		case white:
			colors[target] = gray
			path = append(path, target)
			stack = append(stack, dfsFrame{node: target})
		case black:
			// Fully explored subtrees cannot take part in a new cycle.
		}
	}
}

// closeChain copies the contiguous slice of the path starting at the
// back-edge target and appends the target again to close the loop. A
// self-loop yields the two-element chain [id, id].
func closeChain(path []string, target string) []string {
	start := 0
	for i, id := range path {
		if id == target {
			start = i
			break
		}
	}
	chain := make([]string, 0, len(path)-start+1)
	chain = append(chain, path[start:]...)
	chain = append(chain, target)
	return chain
}

// cycleSignature canonicalizes a chain for deduplication: the sorted
// set of member ids. Rediscoveries of one underlying cycle through a
// different root or back edge collapse to a single finding, as do
// distinct cycles over the same node set. The separator cannot occur
// in ids that survive the shape gate.
func cycleSignature(chain []string) string {
	members := append([]string(nil), chain[:len(chain)-1]...)
	sort.Strings(members)
	return strings.Join(members, "\x1f")
}

// formatChain renders a chain with display names in declaration
// positions, joined by the arrow separator.
func (g *GraphSpec) formatChain(chain []string, idx map[string]int) string {
	names := make([]string, len(chain))
	for i, id := range chain {
		names[i] = id
		if pos, ok := idx[id]; ok {
			names[i] = g.Nodes[pos].DisplayName()
		}
	}
	return strings.Join(names, chainSeparator)
}
