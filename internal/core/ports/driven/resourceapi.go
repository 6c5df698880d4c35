package driven

import (
	"context"

	"github.com/custodia-labs/pokeelt/internal/core/domain"
)

// ResourceAPI fetches resources from the remote REST API.
// Implementations return *domain.FetchError for non-success responses and
// never retry.
type ResourceAPI interface {
	// ListPage fetches one page of the listing endpoint
	// {apiURL}{resource}/?limit=&offset=.
	ListPage(ctx context.Context, resource string, limit, offset int) (*domain.ResourcePage, error)

	// FetchRecord fetches the raw detail document {apiURL}{resource}/{id}/.
	FetchRecord(ctx context.Context, resource string, id domain.ResourceID) (*domain.RawResponse, error)
}

// SpecDownloader downloads the API specification document.
type SpecDownloader interface {
	// DownloadSpec fetches the document at url and returns its body as UTF-8 text.
	DownloadSpec(ctx context.Context, url string) ([]byte, error)
}

// SpecParser decodes a specification document.
type SpecParser interface {
	// Parse decodes data. Malformed content yields *domain.ParseError.
	Parse(data []byte) (*domain.APISpec, error)
}
