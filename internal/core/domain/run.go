package domain

import "time"

// LoadMode selects how a raw table is replaced.
type LoadMode string

// Available load modes.
const (
	// LoadModeSwap loads into a staging table and swaps it into place in one
	// transaction once every record is loaded.
	LoadModeSwap LoadMode = "swap"

	// LoadModeDirect drops and recreates the live table and appends to it.
	// An interrupted run leaves a partial live table.
	LoadModeDirect LoadMode = "direct"
)

// IsValid returns true if the load mode is recognised.
func (m LoadMode) IsValid() bool {
	switch m {
	case LoadModeSwap, LoadModeDirect:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (m LoadMode) String() string {
	return string(m)
}

// RunStatus is the lifecycle state of an ingest run.
type RunStatus string

// Run states.
const (
	RunRunning  RunStatus = "running"
	RunComplete RunStatus = "complete"
	RunFailed   RunStatus = "failed"
)

// IngestRun records one IngestResource call. A raw table is only known to be
// complete when its latest run is RunComplete.
type IngestRun struct {
	// ID is a UUID.
	ID string

	// Resource is the resource type name.
	Resource string

	// Table is the live table the run replaces.
	Table string

	// Mode is the load mode used.
	Mode LoadMode

	// Status is the current lifecycle state.
	Status RunStatus

	// Expected is the count reported by the listing endpoint.
	Expected int

	// Discovered is the number of identifiers the pagination walk returned.
	Discovered int

	// Loaded is the number of rows inserted so far.
	Loaded int

	// StartedAt is when the run began.
	StartedAt time.Time

	// FinishedAt is zero while the run is in progress.
	FinishedAt time.Time

	// Error holds the failure message of a failed run.
	Error string
}

// Finished reports whether the run has reached a terminal state.
func (r *IngestRun) Finished() bool {
	return r.Status == RunComplete || r.Status == RunFailed
}

// Duration returns how long the run took, or zero while it is running.
func (r *IngestRun) Duration() time.Duration {
	if r.FinishedAt.IsZero() {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}
