package domain

import (
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

// ResourceID is the integer key of a resource instance, unique within its
// resource type. IDs are neither contiguous nor guaranteed ascending.
type ResourceID int64

// String returns the decimal form used in detail URLs.
func (id ResourceID) String() string {
	return strconv.FormatInt(int64(id), 10)
}

// ResourceRef is one entry of a listing page.
type ResourceRef struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// ResourcePage is a decoded page of a listing endpoint.
type ResourcePage struct {
	// Count is the total number of instances the API reports.
	// Only used for progress reporting.
	Count int `json:"count"`

	// Next is the URL of the following page, empty when exhausted.
	Next string `json:"next"`

	// Previous is the URL of the preceding page, empty on the first page.
	Previous string `json:"previous"`

	// Results are the entries in API order.
	Results []ResourceRef `json:"results"`
}

// HasNext reports whether another page follows this one.
func (p *ResourcePage) HasNext() bool {
	return p.Next != ""
}

// IDs extracts the identifier of every entry, in page order.
func (p *ResourcePage) IDs() ([]ResourceID, error) {
	ids := make([]ResourceID, 0, len(p.Results))
	for _, ref := range p.Results {
		id, err := ParseResourceID(ref.URL)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// IDBatch is the identifiers of one listing page.
type IDBatch struct {
	// Offset is the offset the page was requested with.
	Offset int

	// Count is the total the API reported on this page.
	Count int

	// IDs are the page's identifiers in API order.
	IDs []ResourceID
}

// ParseResourceID takes the identifier from a detail URL. The identifier is
// the second-to-last "/"-delimited segment, so ".../ability/300/" yields 300.
func ParseResourceID(detailURL string) (ResourceID, error) {
	segments := strings.Split(detailURL, "/")
	if len(segments) < 2 {
		return 0, &ParseError{Input: detailURL, Reason: "no identifier segment"}
	}

	id, err := strconv.ParseInt(segments[len(segments)-2], 10, 64)
	if err != nil {
		return 0, &ParseError{Input: detailURL, Reason: "identifier segment is not an integer", Err: err}
	}
	return ResourceID(id), nil
}

// NextOffset recovers the offset query parameter of a continuation URL.
// The limit parameter is ignored: it always matches the current page size.
func NextOffset(nextURL string) (int, error) {
	u, err := url.Parse(nextURL)
	if err != nil {
		return 0, &ParseError{Input: nextURL, Reason: "invalid continuation URL", Err: err}
	}

	raw := u.Query().Get("offset")
	if raw == "" {
		return 0, &ParseError{Input: nextURL, Reason: "continuation URL has no offset"}
	}

	offset, err := strconv.Atoi(raw)
	if err != nil || offset < 0 {
		return 0, &ParseError{Input: nextURL, Reason: "offset is not a non-negative integer", Err: err}
	}
	return offset, nil
}

var resourceNamePattern = regexp.MustCompile(`^[a-z0-9][a-z0-9-]*$`)

// ValidateResourceName checks that a resource type name is safe to use in
// URLs and table names.
func ValidateResourceName(name string) error {
	if !resourceNamePattern.MatchString(name) {
		return fmt.Errorf("%w: resource name %q", ErrInvalidInput, name)
	}
	return nil
}

// RawTablePrefix prefixes every raw table name.
const RawTablePrefix = "raw_"

// stagingSuffix marks the table a swap-mode load writes into.
const stagingSuffix = "__staging"

// RawTable names the destination table of one resource type.
type RawTable struct {
	Resource string
}

// RawTableFor returns the raw table for a resource type.
func RawTableFor(resource string) RawTable {
	return RawTable{Resource: resource}
}

// Name returns the live table name, e.g. "raw_pokemon".
func (t RawTable) Name() string {
	return RawTablePrefix + t.Resource
}

// StagingName returns the table a swap-mode load writes into.
func (t RawTable) StagingName() string {
	return t.Name() + stagingSuffix
}

// IsStagingTable reports whether a table name is a staging table.
func IsStagingTable(name string) bool {
	return strings.HasSuffix(name, stagingSuffix)
}

// ResourceOfTable maps a raw or staging table name back to its resource type.
// It returns "" for names outside the raw table namespace.
func ResourceOfTable(name string) string {
	rest, ok := strings.CutPrefix(name, RawTablePrefix)
	if !ok {
		return ""
	}
	return strings.TrimSuffix(rest, stagingSuffix)
}
