package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flowspec/flowspec/internal/core/spec"
)

func wellFormed() *spec.GraphSpec {
	return &spec.GraphSpec{
		ID:        "graph-1",
		GoalID:    "goal-1",
		EntryNode: "A",
		Nodes: []spec.NodeSpec{
			{ID: "A", Name: "Node A", NodeType: "task"},
			{ID: "B", Name: "Node B", NodeType: "task"},
		},
		Edges: []spec.EdgeSpec{
			{ID: "e1", Source: "A", Target: "B", Condition: spec.ConditionAlways},
		},
	}
}

func TestCheckSpec_WellFormed(t *testing.T) {
	assert.NoError(t, CheckSpec(wellFormed()))
}

func TestCheckSpec_NilGraph(t *testing.T) {
	assert.ErrorIs(t, CheckSpec(nil), spec.ErrNilGraphSpec)
}

func TestCheckSpec_TagViolations(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*spec.GraphSpec)
		wantMsg string
	}{
		{
			name:    "missing graph id",
			mutate:  func(g *spec.GraphSpec) { g.ID = "" },
			wantMsg: "id is required",
		},
		{
			name:    "missing entry node",
			mutate:  func(g *spec.GraphSpec) { g.EntryNode = "" },
			wantMsg: "entry_node is required",
		},
		{
			name:    "no nodes",
			mutate:  func(g *spec.GraphSpec) { g.Nodes = nil },
			wantMsg: "nodes is required",
		},
		{
			name:    "node id with illegal characters",
			mutate:  func(g *spec.GraphSpec) { g.Nodes[0].ID = "bad node!" },
			wantMsg: "not a valid identifier",
		},
		{
			name:    "missing node name",
			mutate:  func(g *spec.GraphSpec) { g.Nodes[0].Name = "" },
			wantMsg: "name is required",
		},
		{
			name:    "missing node type",
			mutate:  func(g *spec.GraphSpec) { g.Nodes[1].NodeType = "" },
			wantMsg: "node_type is required",
		},
		{
			name:    "unknown edge condition",
			mutate:  func(g *spec.GraphSpec) { g.Edges[0].Condition = "SOMETIMES" },
			wantMsg: "condition must be one of",
		},
		{
			name:    "missing edge source",
			mutate:  func(g *spec.GraphSpec) { g.Edges[0].Source = "" },
			wantMsg: "source is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := wellFormed()
			tt.mutate(g)

			err := CheckSpec(g)
			require.Error(t, err)

			var ferrs FieldErrors
			require.ErrorAs(t, err, &ferrs)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestCheckSpec_RelationalViolations(t *testing.T) {
	t.Run("duplicate node id", func(t *testing.T) {
		g := wellFormed()
		g.Nodes = append(g.Nodes, spec.NodeSpec{ID: "A", Name: "Shadow A", NodeType: "task"})
		assert.ErrorIs(t, CheckSpec(g), spec.ErrDuplicateNodeID)
	})

	t.Run("duplicate edge id", func(t *testing.T) {
		g := wellFormed()
		g.Edges = append(g.Edges, spec.EdgeSpec{ID: "e1", Source: "B", Target: "A", Condition: spec.ConditionAlways})
		assert.ErrorIs(t, CheckSpec(g), spec.ErrDuplicateEdgeID)
	})
}

func TestCheckSpec_CollectsAllFieldErrors(t *testing.T) {
	g := wellFormed()
	g.ID = ""
	g.Nodes[0].Name = ""
	g.Edges[0].Condition = "NEVER"

	err := CheckSpec(g)
	require.Error(t, err)

	var ferrs FieldErrors
	require.ErrorAs(t, err, &ferrs)
	assert.Len(t, ferrs, 3)
}

func TestCheckStruct(t *testing.T) {
	type request struct {
		GraphID string `json:"graph_id" validate:"required,spec_id"`
	}

	assert.NoError(t, CheckStruct(request{GraphID: "graph-1"}))

	err := CheckStruct(request{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "graph_id is required")
}
