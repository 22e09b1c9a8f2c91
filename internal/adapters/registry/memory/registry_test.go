package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flowspec/flowspec/internal/core/spec"
)

func reviewGraph(id string) *spec.GraphSpec {
	return &spec.GraphSpec{
		ID:        id,
		GoalID:    "goal-1",
		EntryNode: "draft",
		EntryPoints: map[string]string{
			"resume": "review",
		},
		TerminalNodes: []string{"publish"},
		Nodes: []spec.NodeSpec{
			{ID: "draft", Name: "Draft", NodeType: "task"},
			{ID: "review", Name: "Review", NodeType: "task"},
			{ID: "publish", Name: "Publish", NodeType: "task"},
		},
		Edges: []spec.EdgeSpec{
			{ID: "e1", Source: "draft", Target: "review", Condition: spec.ConditionAlways},
			{ID: "e2", Source: "review", Target: "publish", Condition: spec.ConditionOnSuccess},
		},
	}
}

func TestSpecRegistry_SaveAndGet(t *testing.T) {
	ctx := context.Background()
	registry := NewSpecRegistry()

	g := reviewGraph("flow-1")
	require.NoError(t, registry.Save(ctx, g))

	loaded, err := registry.Get(ctx, "flow-1")
	require.NoError(t, err)
	assert.Equal(t, g, loaded)
}

func TestSpecRegistry_StoredCopyIsDetached(t *testing.T) {
	ctx := context.Background()
	registry := NewSpecRegistry()

	g := reviewGraph("flow-1")
	require.NoError(t, registry.Save(ctx, g))

	g.Nodes[0].Name = "Mutated After Save"

	loaded, err := registry.Get(ctx, "flow-1")
	require.NoError(t, err)
	assert.Equal(t, "Draft", loaded.Nodes[0].Name)

	loaded.Nodes[0].Name = "Mutated After Get"

	again, err := registry.Get(ctx, "flow-1")
	require.NoError(t, err)
	assert.Equal(t, "Draft", again.Nodes[0].Name)
}

func TestSpecRegistry_SaveRejectsMalformed(t *testing.T) {
	ctx := context.Background()
	registry := NewSpecRegistry()

	g := reviewGraph("flow-1")
	g.Nodes = append(g.Nodes, spec.NodeSpec{ID: "draft", Name: "Shadow", NodeType: "task"})

	err := registry.Save(ctx, g)
	assert.ErrorIs(t, err, spec.ErrDuplicateNodeID)

	_, err = registry.Get(ctx, "flow-1")
	assert.ErrorIs(t, err, spec.ErrSpecNotFound)
}

func TestSpecRegistry_ListOrderedByID(t *testing.T) {
	ctx := context.Background()
	registry := NewSpecRegistry()

	for _, id := range []string{"flow-c", "flow-a", "flow-b"} {
		require.NoError(t, registry.Save(ctx, reviewGraph(id)))
	}

	specs, err := registry.List(ctx)
	require.NoError(t, err)
	require.Len(t, specs, 3)
	assert.Equal(t, "flow-a", specs[0].ID)
	assert.Equal(t, "flow-b", specs[1].ID)
	assert.Equal(t, "flow-c", specs[2].ID)
}

func TestSpecRegistry_Delete(t *testing.T) {
	ctx := context.Background()
	registry := NewSpecRegistry()

	require.NoError(t, registry.Save(ctx, reviewGraph("flow-1")))
	require.NoError(t, registry.Delete(ctx, "flow-1"))

	_, err := registry.Get(ctx, "flow-1")
	assert.ErrorIs(t, err, spec.ErrSpecNotFound)

	assert.ErrorIs(t, registry.Delete(ctx, "flow-1"), spec.ErrSpecNotFound)
}

func TestSpecRegistry_SaveOverwrites(t *testing.T) {
	ctx := context.Background()
	registry := NewSpecRegistry()

	require.NoError(t, registry.Save(ctx, reviewGraph("flow-1")))

	updated := reviewGraph("flow-1")
	updated.GoalID = "goal-2"
	require.NoError(t, registry.Save(ctx, updated))

	loaded, err := registry.Get(ctx, "flow-1")
	require.NoError(t, err)
	assert.Equal(t, "goal-2", loaded.GoalID)
}
