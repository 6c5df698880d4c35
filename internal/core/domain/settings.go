package domain

import (
	"fmt"
	"strings"
	"time"
)

// Defaults mirror the public PokeAPI deployment.
const (
	DefaultAPIBaseURL    = "https://pokeapi.co"
	DefaultAPIPathPrefix = "/api/v2/"
	DefaultSpecURL       = "https://raw.githubusercontent.com/PokeAPI/pokeapi/master/openapi.yml"
	DefaultPageSize      = 1000
	DefaultTimeout       = 30 * time.Second
	DefaultUserAgent     = "pokeelt"
)

// APISettings configures the remote REST API.
type APISettings struct {
	// BaseURL is the scheme and host, e.g. "https://pokeapi.co".
	BaseURL string

	// PathPrefix is appended to BaseURL, e.g. "/api/v2/".
	PathPrefix string

	// PageSize is the listing limit parameter.
	PageSize int

	// Timeout bounds every HTTP request.
	Timeout time.Duration

	// UserAgent is sent with every request.
	UserAgent string

	// RequestsPerSecond paces requests. Zero disables pacing.
	RequestsPerSecond float64
}

// URL returns BaseURL joined with PathPrefix, e.g. "https://pokeapi.co/api/v2/".
// An empty prefix yields BaseURL with a single trailing slash.
func (a APISettings) URL() string {
	base := strings.TrimRight(a.BaseURL, "/") + "/"
	prefix := strings.Trim(a.PathPrefix, "/")
	if prefix == "" {
		return base
	}
	return base + prefix + "/"
}

// SpecSettings locates the OpenAPI document.
type SpecSettings struct {
	// URL is the remote document, downloaded only when Path is missing.
	URL string

	// Path is the local cache location.
	Path string
}

// StoreSettings locates the analytical database.
type StoreSettings struct {
	// Path is the database file.
	Path string
}

// IngestOptions controls a batch of resource ingestions.
type IngestOptions struct {
	// Resources are ingested in order when no names are given explicitly.
	Resources []string

	// Mode selects how each raw table is replaced.
	Mode LoadMode

	// ContinueOnError keeps ingesting the remaining resources after a failure.
	ContinueOnError bool
}

// IngestSettings is the immutable configuration of an ingestion process.
type IngestSettings struct {
	API    APISettings
	Spec   SpecSettings
	Store  StoreSettings
	Ingest IngestOptions
}

// DefaultResources are the resource types ingested when none are configured.
func DefaultResources() []string {
	return []string{"pokemon", "move", "ability"}
}

// DefaultIngestSettings returns settings with sensible defaults.
// Spec.Path and Store.Path are left empty: they depend on the data directory
// and are filled in by the caller.
func DefaultIngestSettings() IngestSettings {
	return IngestSettings{
		API: APISettings{
			BaseURL:    DefaultAPIBaseURL,
			PathPrefix: DefaultAPIPathPrefix,
			PageSize:   DefaultPageSize,
			Timeout:    DefaultTimeout,
			UserAgent:  DefaultUserAgent,
		},
		Spec: SpecSettings{
			URL: DefaultSpecURL,
		},
		Ingest: IngestOptions{
			Resources: DefaultResources(),
			Mode:      LoadModeSwap,
		},
	}
}

// Validate checks the settings are usable for ingestion.
func (s IngestSettings) Validate() error {
	if s.API.BaseURL == "" {
		return fmt.Errorf("%w: api.base_url is required", ErrInvalidInput)
	}
	if s.API.PageSize < 1 {
		return fmt.Errorf("%w: api.page_size must be at least 1", ErrInvalidInput)
	}
	if s.API.Timeout < 0 {
		return fmt.Errorf("%w: api.timeout_seconds must be non-negative", ErrInvalidInput)
	}
	if s.API.RequestsPerSecond < 0 {
		return fmt.Errorf("%w: api.requests_per_second must be non-negative", ErrInvalidInput)
	}
	if s.Spec.URL == "" && s.Spec.Path == "" {
		return fmt.Errorf("%w: spec.url or spec.path is required", ErrConfiguration)
	}
	if s.Store.Path == "" {
		return fmt.Errorf("%w: store.path is required", ErrInvalidInput)
	}
	if !s.Ingest.Mode.IsValid() {
		return fmt.Errorf("%w: ingest.load_mode %q", ErrInvalidInput, s.Ingest.Mode)
	}
	for _, name := range s.Ingest.Resources {
		if err := ValidateResourceName(name); err != nil {
			return err
		}
	}
	return nil
}
