// Package sqlite provides the SQLite implementation of the raw table and
// ingest run stores.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that
// requires no CGO. One database file holds:
//
//   - raw_<resource> tables: one row per fetched record
//   - raw_<resource>__staging tables: in-progress swap loads
//   - _ingest_runs: the history of ingestion attempts
//
// # Schema
//
// Raw tables are created on demand by BeginLoad. The _ingest_runs table is
// managed through versioned migrations in the migrations/ directory.
//
// # Timestamps
//
// The connection is opened with _time_format=sqlite, so TIMESTAMP columns hold
// text with nanosecond precision and scan back into time.Time.
//
// # Data Location
//
// By default, the database is stored at ~/.pokeelt/pokemon_data_ingest.db
package sqlite
