package driving

import (
	"context"

	"github.com/custodia-labs/pokeelt/internal/core/domain"
)

// Inventory reports what previous ingestions left in the store.
type Inventory interface {
	// Tables lists raw and staging tables with their row counts.
	Tables(ctx context.Context) ([]domain.RawTableInfo, error)

	// Runs returns ingestion runs newest first. An empty resource lists all.
	Runs(ctx context.Context, resource string) ([]domain.IngestRun, error)

	// LatestRun returns the most recent run for a resource.
	// Returns domain.ErrNotFound if the resource was never ingested.
	LatestRun(ctx context.Context, resource string) (*domain.IngestRun, error)
}
