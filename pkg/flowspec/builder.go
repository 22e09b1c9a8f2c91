package flowspec

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/flowspec/flowspec/internal/core/spec"
	"github.com/flowspec/flowspec/pkg/validation"
)

// DefaultNodeType is assigned to nodes declared without an explicit type.
const DefaultNodeType = "task"

// Builder assembles a GraphSpec through a fluent API. Methods never fail
// in place; problems are accumulated and surfaced by Build, so call chains
// stay flat. Edge ids are generated when the caller does not care about them.
//
// PRINCIPLES:
// - KISS: linear append-only construction, no graph mutation helpers.
// - Fail-fast: Build refuses to hand out a spec that fails the shape gate.
type Builder struct {
	graph *spec.GraphSpec
	errs  []error
}

// NewBuilder starts a spec for the given graph id. A blank id gets a
// generated uuid so throwaway graphs in tests need no naming ceremony.
func NewBuilder(id string) *Builder {
	if strings.TrimSpace(id) == "" {
		id = uuid.New().String()
	}
	return &Builder{graph: spec.NewGraphSpec(id)}
}

// WithGoal sets the goal this graph decomposes.
func (b *Builder) WithGoal(goalID string) *Builder {
	b.graph.GoalID = goalID
	return b
}

// WithEntry sets the primary entry node.
func (b *Builder) WithEntry(nodeID string) *Builder {
	b.graph.EntryNode = nodeID
	return b
}

// WithEntryPoint registers a named alternate entry point.
func (b *Builder) WithEntryPoint(name, nodeID string) *Builder {
	if strings.TrimSpace(name) == "" {
		return b.fail(fmt.Errorf("entry point for node %q needs a name", nodeID))
	}
	if b.graph.EntryPoints == nil {
		b.graph.EntryPoints = make(map[string]string)
	}
	b.graph.EntryPoints[name] = nodeID
	return b
}

// WithTerminal marks nodes as terminal. Repeated calls accumulate.
func (b *Builder) WithTerminal(nodeIDs ...string) *Builder {
	b.graph.TerminalNodes = append(b.graph.TerminalNodes, nodeIDs...)
	return b
}

// AddNode declares a node with the default node type. The first declared
// node becomes the entry node unless WithEntry overrides it.
func (b *Builder) AddNode(id, name string) *Builder {
	return b.AddNodeSpec(spec.NodeSpec{ID: id, Name: name})
}

// AddNodeSpec declares a fully specified node. A blank node type is filled
// with DefaultNodeType.
func (b *Builder) AddNodeSpec(n spec.NodeSpec) *Builder {
	if n.NodeType == "" {
		n.NodeType = DefaultNodeType
	}
	b.graph.Nodes = append(b.graph.Nodes, n)
	if b.graph.EntryNode == "" {
		b.graph.EntryNode = n.ID
	}
	return b
}

// Connect adds an unconditional edge from source to target.
func (b *Builder) Connect(source, target string) *Builder {
	return b.addEdge(source, target, spec.ConditionAlways, "")
}

// ConnectOn adds an edge taken only on the given outcome condition.
// CONDITIONAL edges must go through ConnectIf so they carry an expression.
func (b *Builder) ConnectOn(source, target string, condition spec.EdgeCondition) *Builder {
	if !condition.Known() {
		return b.fail(fmt.Errorf("edge %s -> %s: unknown condition %q", source, target, string(condition)))
	}
	if condition == spec.ConditionConditional {
		return b.fail(fmt.Errorf("edge %s -> %s: conditional edges need an expression, use ConnectIf", source, target))
	}
	return b.addEdge(source, target, condition, "")
}

// ConnectIf adds a CONDITIONAL edge guarded by the given expression.
func (b *Builder) ConnectIf(source, target, expr string) *Builder {
	if strings.TrimSpace(expr) == "" {
		return b.fail(fmt.Errorf("edge %s -> %s: conditional edges need an expression", source, target))
	}
	return b.addEdge(source, target, spec.ConditionConditional, expr)
}

// AddEdgeSpec declares a fully specified edge. A blank id gets a generated
// uuid and a blank condition defaults to ALWAYS.
func (b *Builder) AddEdgeSpec(e spec.EdgeSpec) *Builder {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	if e.Condition == "" {
		e.Condition = spec.ConditionAlways
	}
	b.graph.Edges = append(b.graph.Edges, e)
	return b
}

// Build finalizes the spec. The first error accumulated during construction
// is returned as-is; otherwise the assembled spec must pass the shape gate.
func (b *Builder) Build() (*spec.GraphSpec, error) {
	if len(b.errs) > 0 {
		return nil, b.errs[0]
	}
	if err := validation.CheckSpec(b.graph); err != nil {
		return nil, err
	}
	return b.graph, nil
}

func (b *Builder) addEdge(source, target string, condition spec.EdgeCondition, expr string) *Builder {
	b.graph.Edges = append(b.graph.Edges, spec.EdgeSpec{
		ID:            uuid.New().String(),
		Source:        source,
		Target:        target,
		Condition:     condition,
		ConditionExpr: expr,
	})
	return b
}

func (b *Builder) fail(err error) *Builder {
	b.errs = append(b.errs, err)
	return b
}
