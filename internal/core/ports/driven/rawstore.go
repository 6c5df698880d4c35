package driven

import (
	"context"

	"github.com/custodia-labs/pokeelt/internal/core/domain"
)

// RawTableStore persists raw records into one table per resource type.
type RawTableStore interface {
	// BeginLoad (re)creates the destination of a load and returns a loader
	// holding the store connection for the lifetime of the load.
	//
	// In LoadModeDirect the live table is dropped and recreated empty.
	// In LoadModeSwap the staging table is dropped and recreated empty and
	// the live table is left untouched until Commit.
	BeginLoad(ctx context.Context, table domain.RawTable, mode domain.LoadMode) (RawTableLoader, error)

	// Count returns the number of rows in the named table.
	// Returns domain.ErrNotFound if the table does not exist.
	Count(ctx context.Context, tableName string) (int, error)

	// Tables lists the raw tables, staging tables included.
	Tables(ctx context.Context) ([]domain.RawTableInfo, error)

	// Records returns the rows of the named table ordered by insertion.
	// Returns domain.ErrNotFound if the table does not exist.
	Records(ctx context.Context, tableName string) ([]domain.RawRecord, error)
}

// RawTableLoader appends records to the table created by BeginLoad.
// Each Insert is committed on its own.
type RawTableLoader interface {
	// Insert appends one row.
	Insert(ctx context.Context, record domain.RawRecord) error

	// Commit publishes the load. In LoadModeSwap the staging table replaces
	// the live table in a single transaction. In LoadModeDirect it is a no-op.
	Commit(ctx context.Context) error

	// Close releases the connection. It is safe to call after Commit and
	// more than once.
	Close() error
}

// IngestRunStore persists ingest run bookkeeping.
type IngestRunStore interface {
	// Create stores a new run, assigns it a UUID and returns the ID.
	Create(ctx context.Context, run domain.IngestRun) (string, error)

	// Update overwrites a stored run.
	// Returns domain.ErrNotFound if the run does not exist.
	Update(ctx context.Context, run domain.IngestRun) error

	// Get retrieves a run by ID.
	Get(ctx context.Context, id string) (*domain.IngestRun, error)

	// Latest returns the most recent run for a resource.
	// Returns domain.ErrNotFound if the resource was never ingested.
	Latest(ctx context.Context, resource string) (*domain.IngestRun, error)

	// List returns runs newest first. An empty resource lists every run.
	List(ctx context.Context, resource string) ([]domain.IngestRun, error)
}
