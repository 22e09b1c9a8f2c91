package spec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// node builds a minimal node declaration for tests.
func node(id, name string) NodeSpec {
	return NodeSpec{ID: id, Name: name, Description: name, NodeType: "task"}
}

// edge builds an edge declaration for tests.
func edge(id, source, target string, cond EdgeCondition) EdgeSpec {
	return EdgeSpec{ID: id, Source: source, Target: target, Condition: cond}
}

// testGraph builds a graph declaration around the given entry node.
func testGraph(entry string, nodes []NodeSpec, edges []EdgeSpec) *GraphSpec {
	return &GraphSpec{
		ID:        "graph-1",
		GoalID:    "goal-1",
		EntryNode: entry,
		Nodes:     nodes,
		Edges:     edges,
	}
}

func TestNewGraphSpec(t *testing.T) {
	g := NewGraphSpec("graph-42")

	assert.Equal(t, "graph-42", g.ID)
	assert.NotNil(t, g.EntryPoints)
	assert.NotNil(t, g.TerminalNodes)
	assert.NotNil(t, g.Nodes)
	assert.NotNil(t, g.Edges)
	assert.Empty(t, g.Nodes)
}

func TestGraphSpec_CheckShape(t *testing.T) {
	tests := []struct {
		name    string
		graph   *GraphSpec
		wantErr error
	}{
		{
			name: "valid graph",
			graph: testGraph("A",
				[]NodeSpec{node("A", "Node A"), node("B", "Node B")},
				[]EdgeSpec{edge("e1", "A", "B", ConditionAlways)},
			),
			wantErr: nil,
		},
		{
			name: "duplicate node id",
			graph: testGraph("A",
				[]NodeSpec{node("A", "Node A"), node("A", "Shadow A")},
				nil,
			),
			wantErr: ErrDuplicateNodeID,
		},
		{
			name: "duplicate edge id",
			graph: testGraph("A",
				[]NodeSpec{node("A", "Node A"), node("B", "Node B")},
				[]EdgeSpec{
					edge("e1", "A", "B", ConditionAlways),
					edge("e1", "B", "A", ConditionAlways),
				},
			),
			wantErr: ErrDuplicateEdgeID,
		},
		{
			name:    "nil graph",
			graph:   nil,
			wantErr: ErrNilGraphSpec,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.graph.CheckShape()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestGraphSpec_NodeByID(t *testing.T) {
	g := testGraph("A",
		[]NodeSpec{node("A", "Node A"), node("B", "Node B"), {ID: "A", Name: "Shadow A", NodeType: "task"}},
		nil,
	)

	t.Run("resolves declared node", func(t *testing.T) {
		n, ok := g.NodeByID("B")
		require.True(t, ok)
		assert.Equal(t, "Node B", n.Name)
	})

	t.Run("first occurrence wins on duplicate ids", func(t *testing.T) {
		n, ok := g.NodeByID("A")
		require.True(t, ok)
		assert.Equal(t, "Node A", n.Name)
	})

	t.Run("missing node", func(t *testing.T) {
		_, ok := g.NodeByID("Z")
		assert.False(t, ok)
	})
}

func TestGraphSpec_Clone(t *testing.T) {
	g := testGraph("A",
		[]NodeSpec{
			{ID: "A", Name: "Node A", NodeType: "task", OutputKeys: []string{"result"}},
			node("B", "Node B"),
		},
		[]EdgeSpec{edge("e1", "A", "B", ConditionAlways)},
	)
	g.EntryPoints = map[string]string{"resume": "B"}
	g.TerminalNodes = []string{"B"}

	clone := g.Clone()
	require.NotNil(t, clone)
	assert.Equal(t, g, clone)

	clone.EntryPoints["retry"] = "A"
	clone.TerminalNodes[0] = "A"
	clone.Nodes[0].Name = "Mutated"
	clone.Nodes[0].OutputKeys[0] = "mutated"
	clone.Edges[0].Target = "A"

	assert.NotContains(t, g.EntryPoints, "retry")
	assert.Equal(t, "B", g.TerminalNodes[0])
	assert.Equal(t, "Node A", g.Nodes[0].Name)
	assert.Equal(t, "result", g.Nodes[0].OutputKeys[0])
	assert.Equal(t, "B", g.Edges[0].Target)

	t.Run("nil clone", func(t *testing.T) {
		var missing *GraphSpec
		assert.Nil(t, missing.Clone())
	})
}

func TestEdgeCondition_Known(t *testing.T) {
	for _, cond := range KnownConditions() {
		assert.True(t, cond.Known(), "condition %s", cond)
	}
	assert.False(t, EdgeCondition("SOMETIMES").Known())
	assert.False(t, EdgeCondition("").Known())
}

func TestEdgeSpec_HasExpr(t *testing.T) {
	e := edge("e1", "A", "B", ConditionConditional)
	assert.False(t, e.HasExpr())

	e.ConditionExpr = "   "
	assert.False(t, e.HasExpr())

	e.ConditionExpr = "result < 5"
	assert.True(t, e.HasExpr())
}

func TestNodeSpec_DisplayName(t *testing.T) {
	named := node("A", "Node A")
	assert.Equal(t, "Node A", named.DisplayName())

	unnamed := NodeSpec{ID: "A", NodeType: "task"}
	assert.Equal(t, "A", unnamed.DisplayName())
}
