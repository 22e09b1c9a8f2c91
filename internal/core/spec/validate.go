// Package spec provides structural validation of graph declarations
package spec

import (
	"fmt"
	"strings"
)

// CyclePrefix is the literal prefix of every cycle finding. Callers may
// classify findings by this prefix; it is part of the report contract.
const CyclePrefix = "Cycle detected: "

// chainSeparator joins display names inside a cycle finding.
const chainSeparator = " → "

// IsCycleMessage reports whether a validation finding describes a cycle.
func IsCycleMessage(msg string) bool {
	return strings.HasPrefix(msg, CyclePrefix)
}

// Validate checks the declaration for structural soundness and returns
// one message per finding. It never panics and never stops early: every
// finding is collected, in a fixed order (referential integrity first,
// conditional completeness second, cycles last). An empty slice means
// the graph is valid.
//
// Validate is total over any constructed value. Construction-class
// defects (duplicate ids, missing required fields) belong to CheckShape
// and the validation package; here duplicate ids resolve to the first
// occurrence.
func (g *GraphSpec) Validate() []string {
	findings := make([]string, 0)
	idx := g.nodeIndex()

	findings = append(findings, g.checkReferences(idx)...)
	findings = append(findings, g.checkConditionalEdges()...)
	findings = append(findings, g.findCycles(idx)...)
	return findings
}

// checkReferences verifies that every node id mentioned by the graph
// names a declared node: edge endpoints, the entry node, entry point
// targets and terminal nodes, in that order.
func (g *GraphSpec) checkReferences(idx map[string]int) []string {
	var findings []string
	for i := range g.Edges {
		e := &g.Edges[i]
		if _, ok := idx[e.Source]; !ok {
			findings = append(findings, fmt.Sprintf("Edge %q references unknown source node %q", e.ID, e.Source))
		}
		if _, ok := idx[e.Target]; !ok {
			findings = append(findings, fmt.Sprintf("Edge %q references unknown target node %q", e.ID, e.Target))
		}
	}
	if _, ok := idx[g.EntryNode]; !ok {
		findings = append(findings, fmt.Sprintf("Entry node %q is not defined in nodes", g.EntryNode))
	}
	for _, name := range g.sortedEntryNames() {
		if _, ok := idx[g.EntryPoints[name]]; !ok {
			findings = append(findings, fmt.Sprintf("Entry point %q references unknown node %q", name, g.EntryPoints[name]))
		}
	}
	for _, id := range g.TerminalNodes {
		if _, ok := idx[id]; !ok {
			findings = append(findings, fmt.Sprintf("Terminal node %q is not defined in nodes", id))
		}
	}
	return findings
}

// checkConditionalEdges verifies conditional completeness: an
// expression is present iff the edge condition is CONDITIONAL. The
// expression text is opaque and never parsed.
func (g *GraphSpec) checkConditionalEdges() []string {
	var findings []string
	for i := range g.Edges {
		e := &g.Edges[i]
		switch {
		case e.IsConditional() && !e.HasExpr():
			findings = append(findings, fmt.Sprintf("Edge %q is CONDITIONAL but has no condition expression", e.ID))
		case !e.IsConditional() && e.HasExpr():
			findings = append(findings, fmt.Sprintf("Edge %q has condition %s but carries a condition expression", e.ID, e.Condition))
		}
	}
	return findings
}
