// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Interfaces
//
//   - ResourceAPI: Lists and fetches resources from the remote REST API
//   - SpecDownloader: Downloads the API specification document
//   - SpecParser: Decodes the specification document (YAML)
//   - RawTableStore: Creates raw tables and loads raw records into them
//   - IngestRunStore: Ingest run bookkeeping
//   - ConfigStore: Application configuration
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or connector package
package driven
