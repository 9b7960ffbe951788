package specrepo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// PostgresRepository implements Repository against a "pegspec"
// schema, following the teacher's sqlx-over-database/sql convention.
// Every query runs directly on the pooled db handle; no method takes
// a transaction.
type PostgresRepository struct {
	db *sqlx.DB
}

// NewPostgresRepository wraps an already-opened sqlx.DB. Callers are
// responsible for the DSN and connection-pool settings (config.go
// composes this from PEGSPEC_DB_CONN_STRING).
func NewPostgresRepository(db *sqlx.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Save(ctx context.Context, name, source string) (*Record, error) {
	rec := &Record{
		SpecID: uuid.New().String(),
		Name:   name,
		Source: source,
	}

	query := `
		INSERT INTO pegspec.specifications (spec_id, name, source, version)
		VALUES ($1, $2, $3, COALESCE((SELECT MAX(version) + 1 FROM pegspec.specifications WHERE name = $2), 1))
		RETURNING version, created_at`

	err := r.db.QueryRowxContext(ctx, query, rec.SpecID, rec.Name, rec.Source).Scan(&rec.Version, &rec.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to save specification %q: %w", name, err)
	}
	return rec, nil
}

func (r *PostgresRepository) Load(ctx context.Context, name string, version int) (*Record, error) {
	var rec Record
	query := `
		SELECT spec_id, name, source, version, created_at
		FROM pegspec.specifications
		WHERE name = $1 AND version = $2`

	err := r.db.GetContext(ctx, &rec, query, name, version)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("specification not found: %s version %d", name, version)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load specification %q: %w", name, err)
	}
	return &rec, nil
}

func (r *PostgresRepository) LoadLatest(ctx context.Context, name string) (*Record, error) {
	var rec Record
	query := `
		SELECT spec_id, name, source, version, created_at
		FROM pegspec.specifications
		WHERE name = $1
		ORDER BY version DESC
		LIMIT 1`

	err := r.db.GetContext(ctx, &rec, query, name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("specification not found: %s", name)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load specification %q: %w", name, err)
	}
	return &rec, nil
}

func (r *PostgresRepository) ListVersions(ctx context.Context, name string) ([]*Record, error) {
	var recs []*Record
	query := `
		SELECT spec_id, name, source, version, created_at
		FROM pegspec.specifications
		WHERE name = $1
		ORDER BY version ASC`

	if err := r.db.SelectContext(ctx, &recs, query, name); err != nil {
		return nil, fmt.Errorf("failed to list versions for %q: %w", name, err)
	}
	return recs, nil
}
