package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrIngestInProgress indicates the resource is already being ingested.
	ErrIngestInProgress = errors.New("ingest in progress")

	// ErrConfiguration indicates the application was constructed without
	// the settings it needs (e.g. neither a remote spec URL nor a local
	// spec path).
	ErrConfiguration = errors.New("configuration error")
)

// FetchError reports an HTTP call that completed with a non-success status.
type FetchError struct {
	StatusCode int
	Status     string
	URL        string
}

func (e *FetchError) Error() string {
	if e.Status != "" {
		return fmt.Sprintf("fetch %s: unexpected status %s", e.URL, e.Status)
	}
	return fmt.Sprintf("fetch %s: unexpected status %d", e.URL, e.StatusCode)
}

// ParseError reports content that could not be interpreted: a listing entry
// URL without a numeric identifier, a continuation URL without an offset, or
// a malformed specification document.
type ParseError struct {
	// Input is the offending value (a URL, or a file path for documents).
	Input string

	// Reason describes what was expected.
	Reason string

	// Err is the underlying error, if any.
	Err error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("parse %q: %s: %v", e.Input, e.Reason, e.Err)
	}
	return fmt.Sprintf("parse %q: %s", e.Input, e.Reason)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// IsFetchError checks if the error chain contains a FetchError.
func IsFetchError(err error) bool {
	var fetchErr *FetchError
	return errors.As(err, &fetchErr)
}

// IsParseError checks if the error chain contains a ParseError.
func IsParseError(err error) bool {
	var parseErr *ParseError
	return errors.As(err, &parseErr)
}

// StatusCode returns the HTTP status carried by a FetchError in the chain,
// or 0 if there is none.
func StatusCode(err error) int {
	var fetchErr *FetchError
	if errors.As(err, &fetchErr) {
		return fetchErr.StatusCode
	}
	return 0
}
