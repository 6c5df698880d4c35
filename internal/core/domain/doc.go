// Package domain defines the core entities for pokeelt.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - ResourceID: the integer key of a resource instance
//   - ResourcePage: one page of a paginated listing endpoint
//   - RawRecord: an unprocessed payload plus its load metadata
//   - IngestRun: the bookkeeping row written for every ingestion call
//   - APISpec: the parsed OpenAPI description of the remote API
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
