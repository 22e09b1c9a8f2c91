package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/flowspec/flowspec/internal/core/spec"
	"github.com/flowspec/flowspec/pkg/serialization"
	"github.com/flowspec/flowspec/pkg/validation"
)

// SpecRegistry stores graph declaration documents in SQLite
type SpecRegistry struct {
	db         *sql.DB
	serializer *serialization.Serializer
	tableName  string
}

// NewSpecRegistry creates a SQLite-backed registry. A nil serializer
// defaults to plain JSON documents.
func NewSpecRegistry(db *sql.DB, serializer *serialization.Serializer) *SpecRegistry {
	if serializer == nil {
		serializer = serialization.Default()
	}
	return &SpecRegistry{
		db:         db,
		serializer: serializer,
		tableName:  "graph_specs",
	}
}

// WithTableName allows overriding the default table name with validation.
// Only alphanumeric and underscore are permitted to prevent SQL injection
// via identifiers.
func (r *SpecRegistry) WithTableName(name string) *SpecRegistry {
	if isSafeIdent(name) {
		r.tableName = name
	}
	return r
}

func isSafeIdent(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') || c == '_' {
			continue
		}
		return false
	}
	return true
}

// CreateTables creates the registry table and its indexes
func (r *SpecRegistry) CreateTables(ctx context.Context) error {
	query := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			id TEXT PRIMARY KEY,
			goal_id TEXT NOT NULL DEFAULT '',
			format TEXT NOT NULL,
			document BLOB NOT NULL,
			created_at INTEGER NOT NULL,
			updated_at INTEGER NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_%s_goal_id ON %s (goal_id);
	`, r.tableName, r.tableName, r.tableName)

	if _, err := r.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("create tables: %w", err)
	}
	return nil
}

// Save upserts a declaration document, preserving created_at on update
func (r *SpecRegistry) Save(ctx context.Context, g *spec.GraphSpec) error {
	if err := validation.CheckSpec(g); err != nil {
		return fmt.Errorf("invalid graph spec: %w", err)
	}

	doc, err := r.serializer.EncodeGraph(g)
	if err != nil {
		return fmt.Errorf("encode graph spec: %w", err)
	}

	now := time.Now().Unix()
	query := fmt.Sprintf(`
		INSERT INTO %s (id, goal_id, format, document, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			goal_id = excluded.goal_id,
			format = excluded.format,
			document = excluded.document,
			updated_at = excluded.updated_at
	`, r.tableName)

	if _, err := r.db.ExecContext(ctx, query,
		g.ID, g.GoalID, r.serializer.CodecName(), doc, now, now); err != nil {
		return fmt.Errorf("save graph spec: %w", err)
	}
	return nil
}

// Get loads a declaration document by id
func (r *SpecRegistry) Get(ctx context.Context, id string) (*spec.GraphSpec, error) {
	query := fmt.Sprintf("SELECT document FROM %s WHERE id = ?", r.tableName)

	var doc []byte
	err := r.db.QueryRowContext(ctx, query, id).Scan(&doc)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, spec.ErrSpecNotFound
		}
		return nil, fmt.Errorf("load graph spec: %w", err)
	}

	g, err := r.serializer.DecodeGraph(doc)
	if err != nil {
		return nil, fmt.Errorf("decode graph spec: %w", err)
	}
	return g, nil
}

// List loads every stored declaration ordered by id
func (r *SpecRegistry) List(ctx context.Context) ([]*spec.GraphSpec, error) {
	query := fmt.Sprintf("SELECT document FROM %s ORDER BY id", r.tableName)

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list graph specs: %w", err)
	}
	defer rows.Close()

	var specs []*spec.GraphSpec
	for rows.Next() {
		var doc []byte
		if err := rows.Scan(&doc); err != nil {
			return nil, fmt.Errorf("scan graph spec row: %w", err)
		}
		g, err := r.serializer.DecodeGraph(doc)
		if err != nil {
			return nil, fmt.Errorf("decode graph spec: %w", err)
		}
		specs = append(specs, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list graph specs: %w", err)
	}
	return specs, nil
}

// Delete removes a declaration by id
func (r *SpecRegistry) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE id = ?", r.tableName)

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete graph spec: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return spec.ErrSpecNotFound
	}
	return nil
}
