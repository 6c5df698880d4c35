package driving

import (
	"context"

	"github.com/custodia-labs/pokeelt/internal/core/domain"
)

// Ingestor extracts resources from the remote API into raw tables.
type Ingestor interface {
	// IngestResource discovers every identifier of a resource type, recreates
	// its raw table and loads each record. Any failure aborts the call.
	IngestResource(ctx context.Context, resource string) (*domain.IngestRun, error)

	// IngestAll ingests resources in order. Unless continueOnError is set it
	// stops at the first failure.
	IngestAll(ctx context.Context, resources []string, continueOnError bool) ([]domain.IngestRun, error)

	// ListResourceIDs walks the listing endpoint and returns every identifier
	// in page order, along with the count the API reported.
	ListResourceIDs(ctx context.Context, resource string) ([]domain.ResourceID, int, error)

	// Status returns live progress for a resource.
	Status(ctx context.Context, resource string) (*IngestStatus, error)
}

// IngestStatus is the live progress of an ingestion.
type IngestStatus struct {
	// Resource identifies the resource type.
	Resource string

	// Running indicates if ingestion is currently in progress.
	Running bool

	// Discovering is true while the pagination walk is in progress.
	Discovering bool

	// Expected is the count the listing endpoint reported.
	Expected int

	// Discovered is the number of identifiers found so far.
	Discovered int

	// Loaded is the number of rows inserted so far.
	Loaded int
}

// Fraction returns Loaded/Discovered, or 0 before discovery completes.
func (s *IngestStatus) Fraction() float64 {
	if s.Discovering || s.Discovered == 0 {
		return 0
	}
	return float64(s.Loaded) / float64(s.Discovered)
}
