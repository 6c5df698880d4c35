package domain

import "time"

// RawResponse is the unparsed body of a detail request.
type RawResponse struct {
	// URL is the exact URL the request was sent to.
	URL string

	// Body is the response body, stored as-is.
	Body []byte
}

// RawRecord is one row of a raw table.
type RawRecord struct {
	// ID is the resource identifier.
	ID ResourceID

	// RawData is the JSON body of the detail response.
	RawData []byte

	// RequestedAt is taken immediately before the request (UTC).
	RequestedAt time.Time

	// LoadedAt is taken after the response arrived (UTC).
	LoadedAt time.Time

	// RequestURL reproduces the fetch.
	RequestURL string
}

// NewRawRecord wraps a detail response with its load metadata.
func NewRawRecord(id ResourceID, res *RawResponse, requestedAt, loadedAt time.Time) RawRecord {
	return RawRecord{
		ID:          id,
		RawData:     res.Body,
		RequestedAt: requestedAt.UTC(),
		LoadedAt:    loadedAt.UTC(),
		RequestURL:  res.URL,
	}
}

// RawTableInfo summarises a raw table in the store.
type RawTableInfo struct {
	// Name is the table name, e.g. "raw_pokemon".
	Name string

	// Rows is the current row count.
	Rows int

	// Staging is true for tables left behind by a swap-mode load.
	Staging bool
}
