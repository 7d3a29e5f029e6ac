package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/StellarisJAY/workflow-ai/pkg/workflow"
)

const postgresSchema = `
CREATE TABLE IF NOT EXISTS workflow_definitions (
    id         TEXT PRIMARY KEY,
    nodes      INTEGER NOT NULL,
    edges      INTEGER NOT NULL,
    definition JSONB NOT NULL,
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
`

// PostgresStore persists definitions to PostgreSQL as JSONB.
type PostgresStore struct {
	db *pgxpool.Pool
}

// NewPostgresStore wraps an existing pool. Call CreateSchema before first use.
func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

// OpenPostgres connects to dsn and creates the schema.
func OpenPostgres(ctx context.Context, dsn string) (*PostgresStore, error) {
	return openPostgres(ctx, dsn, DefaultRetry)
}

// openPostgres connects with retries, then creates the schema.
func openPostgres(ctx context.Context, dsn string, retry RetryConfig) (*PostgresStore, error) {
	pool, err := withRetry(ctx, retry, func(ctx context.Context) (*pgxpool.Pool, error) {
		pool, err := pgxpool.New(ctx, dsn)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, fmt.Errorf("ping postgres: %w", err)
		}
		return pool, nil
	})
	if err != nil {
		return nil, err
	}
	s := NewPostgresStore(pool)
	if err := s.CreateSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return s, nil
}

// CreateSchema creates the workflow_definitions table if it doesn't exist.
func (s *PostgresStore) CreateSchema(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, postgresSchema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// DropSchema drops the workflow_definitions table.
func (s *PostgresStore) DropSchema(ctx context.Context) error {
	_, err := s.db.Exec(ctx, `DROP TABLE IF EXISTS workflow_definitions`)
	return err
}

// Save implements Store.
func (s *PostgresStore) Save(ctx context.Context, id string, def workflow.Definition) error {
	rec, err := encode(id, def)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(ctx, `
		INSERT INTO workflow_definitions (id, nodes, edges, definition, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE SET
			nodes = EXCLUDED.nodes,
			edges = EXCLUDED.edges,
			definition = EXCLUDED.definition,
			updated_at = EXCLUDED.updated_at
	`, id, rec.info.Nodes, rec.info.Edges, rec.data, rec.info.UpdatedAt)
	if err != nil {
		return fmt.Errorf("save definition %s: %w", id, err)
	}
	return nil
}

// Load implements Store.
func (s *PostgresStore) Load(ctx context.Context, id string) (workflow.Definition, error) {
	var data []byte
	err := s.db.QueryRow(ctx,
		`SELECT definition FROM workflow_definitions WHERE id = $1`, id,
	).Scan(&data)
	if errors.Is(err, pgx.ErrNoRows) {
		return workflow.Definition{}, ErrNotFound
	}
	if err != nil {
		return workflow.Definition{}, fmt.Errorf("load definition %s: %w", id, err)
	}
	return decode(id, data)
}

// List implements Store.
func (s *PostgresStore) List(ctx context.Context) ([]Info, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, nodes, edges, octet_length(definition::text), updated_at
		FROM workflow_definitions
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("list definitions: %w", err)
	}
	defer rows.Close()

	infos := []Info{}
	for rows.Next() {
		var info Info
		if err := rows.Scan(&info.ID, &info.Nodes, &info.Edges, &info.Size, &info.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan definition info: %w", err)
		}
		infos = append(infos, info)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate definitions: %w", err)
	}
	return infos, nil
}

// Delete implements Store.
func (s *PostgresStore) Delete(ctx context.Context, id string) error {
	if _, err := s.db.Exec(ctx, `DELETE FROM workflow_definitions WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete definition %s: %w", id, err)
	}
	return nil
}

// Close implements Store. It closes the pool.
func (s *PostgresStore) Close() error {
	s.db.Close()
	return nil
}
