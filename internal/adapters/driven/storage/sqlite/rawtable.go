package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/custodia-labs/pokeelt/internal/core/domain"
	"github.com/custodia-labs/pokeelt/internal/core/ports/driven"
)

// rawTableStore implements driven.RawTableStore.
type rawTableStore struct {
	store *Store
}

var _ driven.RawTableStore = (*rawTableStore)(nil)

const createRawTable = `CREATE TABLE %s (
	id INTEGER NOT NULL,
	raw_data TEXT NOT NULL CHECK (json_valid(raw_data)),
	_requested_at_utc TIMESTAMP NOT NULL,
	_loaded_at_utc TIMESTAMP NOT NULL,
	_request_url TEXT NOT NULL
)`

const insertRawRecord = `INSERT INTO %s (id, raw_data, _requested_at_utc, _loaded_at_utc, _request_url)
	VALUES (?, ?, ?, ?, ?)`

// BeginLoad drops and recreates the load destination on a dedicated
// connection. In swap mode the destination is the staging table and the live
// table is left untouched until Commit.
func (s *rawTableStore) BeginLoad(
	ctx context.Context,
	table domain.RawTable,
	mode domain.LoadMode,
) (driven.RawTableLoader, error) {
	if err := domain.ValidateResourceName(table.Resource); err != nil {
		return nil, err
	}
	if !mode.IsValid() {
		return nil, fmt.Errorf("%w: load mode %q", domain.ErrInvalidInput, mode)
	}

	target := table.Name()
	if mode == domain.LoadModeSwap {
		target = table.StagingName()
	}

	conn, err := s.store.db.Conn(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquiring connection: %w", err)
	}

	if _, err := conn.ExecContext(ctx, "DROP TABLE IF EXISTS "+quoteIdent(target)); err != nil {
		conn.Close()
		return nil, fmt.Errorf("dropping %s: %w", target, err)
	}
	if _, err := conn.ExecContext(ctx, fmt.Sprintf(createRawTable, quoteIdent(target))); err != nil {
		conn.Close()
		return nil, fmt.Errorf("creating %s: %w", target, err)
	}

	stmt, err := conn.PrepareContext(ctx, fmt.Sprintf(insertRawRecord, quoteIdent(target)))
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("preparing insert into %s: %w", target, err)
	}

	return &rawTableLoader{
		conn:   conn,
		insert: stmt,
		table:  table,
		mode:   mode,
		target: target,
	}, nil
}

// Count returns the number of rows in a table.
func (s *rawTableStore) Count(ctx context.Context, tableName string) (int, error) {
	if err := s.exists(ctx, tableName); err != nil {
		return 0, err
	}

	var count int
	row := s.store.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+quoteIdent(tableName))
	if err := row.Scan(&count); err != nil {
		return 0, fmt.Errorf("counting %s: %w", tableName, err)
	}
	return count, nil
}

// Tables lists raw and staging tables with their row counts.
func (s *rawTableStore) Tables(ctx context.Context) ([]domain.RawTableInfo, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT name FROM sqlite_master
		WHERE type = 'table' AND name LIKE ? ESCAPE '\'
		ORDER BY name
	`, strings.ReplaceAll(domain.RawTablePrefix, "_", `\_`)+"%")
	if err != nil {
		return nil, fmt.Errorf("querying tables: %w", err)
	}

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scanning table name: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("iterating tables: %w", err)
	}
	rows.Close()

	infos := make([]domain.RawTableInfo, 0, len(names))
	for _, name := range names {
		count, err := s.Count(ctx, name)
		if err != nil {
			return nil, err
		}
		infos = append(infos, domain.RawTableInfo{
			Name:    name,
			Rows:    count,
			Staging: domain.IsStagingTable(name),
		})
	}
	return infos, nil
}

// Records returns every row of a table in insertion order.
func (s *rawTableStore) Records(ctx context.Context, tableName string) ([]domain.RawRecord, error) {
	if err := s.exists(ctx, tableName); err != nil {
		return nil, err
	}

	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, raw_data, _requested_at_utc, _loaded_at_utc, _request_url
		FROM `+quoteIdent(tableName)+` ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("querying %s: %w", tableName, err)
	}
	defer rows.Close()

	var records []domain.RawRecord //nolint:prealloc // size unknown from query
	for rows.Next() {
		var (
			rec         domain.RawRecord
			raw         string
			requestedAt time.Time
			loadedAt    time.Time
		)
		if err := rows.Scan(&rec.ID, &raw, &requestedAt, &loadedAt, &rec.RequestURL); err != nil {
			return nil, fmt.Errorf("scanning %s: %w", tableName, err)
		}
		rec.RawData = []byte(raw)
		rec.RequestedAt = requestedAt.UTC()
		rec.LoadedAt = loadedAt.UTC()
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating %s: %w", tableName, err)
	}
	return records, nil
}

// exists returns domain.ErrNotFound if no table has the given name.
func (s *rawTableStore) exists(ctx context.Context, tableName string) error {
	var n int
	row := s.store.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?", tableName)
	if err := row.Scan(&n); err != nil {
		return fmt.Errorf("looking up %s: %w", tableName, err)
	}
	if n == 0 {
		return fmt.Errorf("table %s: %w", tableName, domain.ErrNotFound)
	}
	return nil
}

// rawTableLoader inserts rows over one connection. Each insert commits on
// its own, so rows written before a failure stay visible.
type rawTableLoader struct {
	conn   *sql.Conn
	insert *sql.Stmt
	table  domain.RawTable
	mode   domain.LoadMode
	target string
	closed bool
}

func (l *rawTableLoader) Insert(ctx context.Context, record domain.RawRecord) error {
	if l.closed {
		return fmt.Errorf("%w: loader for %s is closed", domain.ErrInvalidInput, l.target)
	}

	_, err := l.insert.ExecContext(ctx,
		int64(record.ID),
		string(record.RawData),
		record.RequestedAt.UTC(),
		record.LoadedAt.UTC(),
		record.RequestURL,
	)
	if err != nil {
		return fmt.Errorf("inserting into %s: %w", l.target, err)
	}
	return nil
}

// Commit publishes a swap load by replacing the live table with the staging
// table in one transaction. Direct loads are already published.
func (l *rawTableLoader) Commit(ctx context.Context) error {
	if l.closed {
		return fmt.Errorf("%w: loader for %s is closed", domain.ErrInvalidInput, l.target)
	}
	if l.mode != domain.LoadModeSwap {
		return nil
	}

	if err := l.insert.Close(); err != nil {
		return fmt.Errorf("closing insert statement: %w", err)
	}

	tx, err := l.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning swap: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	live := quoteIdent(l.table.Name())
	if _, err := tx.ExecContext(ctx, "DROP TABLE IF EXISTS "+live); err != nil {
		return fmt.Errorf("dropping %s: %w", l.table.Name(), err)
	}
	if _, err := tx.ExecContext(ctx, "ALTER TABLE "+quoteIdent(l.target)+" RENAME TO "+live); err != nil {
		return fmt.Errorf("renaming %s: %w", l.target, err)
	}
	return tx.Commit()
}

// Close releases the statement and the connection. Safe to call twice.
func (l *rawTableLoader) Close() error {
	if l.closed {
		return nil
	}
	l.closed = true

	stmtErr := l.insert.Close()
	if err := l.conn.Close(); err != nil {
		return err
	}
	return stmtErr
}
