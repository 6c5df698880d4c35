package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/pokeelt/internal/core/domain"
	"github.com/custodia-labs/pokeelt/internal/core/ports/driven"
)

// ingestRunStore implements driven.IngestRunStore.
type ingestRunStore struct {
	store *Store
}

var _ driven.IngestRunStore = (*ingestRunStore)(nil)

const selectRuns = `
	SELECT run_id, resource, table_name, load_mode, status, expected, discovered, loaded,
		started_at, finished_at, error
	FROM _ingest_runs`

// Create inserts a run under a new UUID.
func (s *ingestRunStore) Create(ctx context.Context, run domain.IngestRun) (string, error) {
	run.ID = uuid.New().String()

	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO _ingest_runs (run_id, resource, table_name, load_mode, status, expected, discovered, loaded,
			started_at, finished_at, error)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		run.ID, run.Resource, run.Table, string(run.Mode), string(run.Status),
		run.Expected, run.Discovered, run.Loaded,
		run.StartedAt.UTC(), nullTime(run.FinishedAt), run.Error,
	)
	if err != nil {
		return "", fmt.Errorf("inserting run: %w", err)
	}
	return run.ID, nil
}

// Update overwrites the mutable fields of a run.
func (s *ingestRunStore) Update(ctx context.Context, run domain.IngestRun) error {
	result, err := s.store.db.ExecContext(ctx, `
		UPDATE _ingest_runs SET
			status = ?, expected = ?, discovered = ?, loaded = ?, finished_at = ?, error = ?
		WHERE run_id = ?
	`,
		string(run.Status), run.Expected, run.Discovered, run.Loaded,
		nullTime(run.FinishedAt), run.Error, run.ID,
	)
	if err != nil {
		return fmt.Errorf("updating run: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Get retrieves a run by ID.
func (s *ingestRunStore) Get(ctx context.Context, id string) (*domain.IngestRun, error) {
	row := s.store.db.QueryRowContext(ctx, selectRuns+" WHERE run_id = ?", id)
	return scanRun(row)
}

// Latest returns the most recently created run for a resource.
func (s *ingestRunStore) Latest(ctx context.Context, resource string) (*domain.IngestRun, error) {
	row := s.store.db.QueryRowContext(ctx, selectRuns+" WHERE resource = ? ORDER BY rowid DESC LIMIT 1", resource)
	return scanRun(row)
}

// List returns runs newest first. An empty resource lists every run.
func (s *ingestRunStore) List(ctx context.Context, resource string) ([]domain.IngestRun, error) {
	query := selectRuns + " ORDER BY rowid DESC"
	var args []any
	if resource != "" {
		query = selectRuns + " WHERE resource = ? ORDER BY rowid DESC"
		args = append(args, resource)
	}

	rows, err := s.store.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []domain.IngestRun //nolint:prealloc // size unknown from query
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, *run)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating runs: %w", err)
	}
	return runs, nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (*domain.IngestRun, error) {
	var (
		run        domain.IngestRun
		mode       string
		status     string
		finishedAt sql.NullTime
	)

	err := row.Scan(
		&run.ID, &run.Resource, &run.Table, &mode, &status,
		&run.Expected, &run.Discovered, &run.Loaded,
		&run.StartedAt, &finishedAt, &run.Error,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning run: %w", err)
	}

	run.Mode = domain.LoadMode(mode)
	run.Status = domain.RunStatus(status)
	run.StartedAt = run.StartedAt.UTC()
	if finishedAt.Valid {
		run.FinishedAt = finishedAt.Time.UTC()
	}
	return &run, nil
}

// nullTime stores the zero time as NULL.
func nullTime(t time.Time) sql.NullTime {
	if t.IsZero() {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t.UTC(), Valid: true}
}
