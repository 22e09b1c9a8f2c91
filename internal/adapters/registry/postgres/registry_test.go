package postgres

import (
	"context"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flowspec/flowspec/internal/core/spec"
)

// openRegistry connects using FLOWSPEC_TEST_PG_DSN; tests are skipped
// when the variable is unset so the suite stays green without a server.
func openRegistry(t *testing.T) *SpecRegistry {
	t.Helper()

	dsn := os.Getenv("FLOWSPEC_TEST_PG_DSN")
	if dsn == "" {
		t.Skip("integration test requires FLOWSPEC_TEST_PG_DSN")
	}

	pool, err := pgxpool.New(context.Background(), dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	registry := NewSpecRegistry(pool, nil).WithTableName("graph_specs_test")
	require.NoError(t, registry.CreateTables(context.Background()))
	t.Cleanup(func() {
		_, _ = pool.Exec(context.Background(), "DROP TABLE IF EXISTS graph_specs_test")
	})
	return registry
}

func pgGraph(id, goalID string) *spec.GraphSpec {
	return &spec.GraphSpec{
		ID:        id,
		GoalID:    goalID,
		EntryNode: "start",
		Nodes: []spec.NodeSpec{
			{ID: "start", Name: "Start", NodeType: "task"},
			{ID: "finish", Name: "Finish", NodeType: "task"},
		},
		Edges: []spec.EdgeSpec{
			{ID: "e1", Source: "start", Target: "finish", Condition: spec.ConditionAlways},
		},
	}
}

func TestSpecRegistry_RoundTrip(t *testing.T) {
	ctx := context.Background()
	registry := openRegistry(t)

	g := pgGraph("flow-1", "goal-1")
	require.NoError(t, registry.Save(ctx, g))

	loaded, err := registry.Get(ctx, "flow-1")
	require.NoError(t, err)
	assert.Equal(t, g, loaded)

	_, err = registry.Get(ctx, "missing")
	assert.ErrorIs(t, err, spec.ErrSpecNotFound)
}

func TestSpecRegistry_ListByGoal(t *testing.T) {
	ctx := context.Background()
	registry := openRegistry(t)

	require.NoError(t, registry.Save(ctx, pgGraph("flow-a", "goal-1")))
	require.NoError(t, registry.Save(ctx, pgGraph("flow-b", "goal-2")))
	require.NoError(t, registry.Save(ctx, pgGraph("flow-c", "goal-1")))

	specs, err := registry.ListByGoal(ctx, "goal-1")
	require.NoError(t, err)
	require.Len(t, specs, 2)
	assert.Equal(t, "flow-a", specs[0].ID)
	assert.Equal(t, "flow-c", specs[1].ID)
}

func TestSpecRegistry_Delete(t *testing.T) {
	ctx := context.Background()
	registry := openRegistry(t)

	require.NoError(t, registry.Save(ctx, pgGraph("flow-1", "goal-1")))
	require.NoError(t, registry.Delete(ctx, "flow-1"))
	assert.ErrorIs(t, registry.Delete(ctx, "flow-1"), spec.ErrSpecNotFound)
}

func TestSpecRegistry_GuardsWithoutPool(t *testing.T) {
	registry := NewSpecRegistry(nil, nil)

	t.Run("save rejects malformed before touching the pool", func(t *testing.T) {
		err := registry.Save(context.Background(), nil)
		assert.ErrorIs(t, err, spec.ErrNilGraphSpec)

		g := pgGraph("flow-1", "goal-1")
		g.Nodes = append(g.Nodes, spec.NodeSpec{ID: "start", Name: "Shadow", NodeType: "task"})
		assert.ErrorIs(t, registry.Save(context.Background(), g), spec.ErrDuplicateNodeID)
	})

	t.Run("unsafe table name is ignored", func(t *testing.T) {
		r := NewSpecRegistry(nil, nil).WithTableName(`specs"; DROP TABLE users--`)
		assert.Equal(t, "graph_specs", r.tableName)
	})
}
