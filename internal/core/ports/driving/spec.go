package driving

import (
	"context"

	"github.com/custodia-labs/pokeelt/internal/core/domain"
)

// SpecLoader provides the API specification document.
type SpecLoader interface {
	// Load returns the parsed document cached at localPath, downloading it
	// from remoteURL first if no file exists there. An existing file is
	// never re-downloaded.
	Load(ctx context.Context, remoteURL, localPath string) (*domain.APISpec, error)
}
