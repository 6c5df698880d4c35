package services

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/custodia-labs/pokeelt/internal/core/domain"
	"github.com/custodia-labs/pokeelt/internal/core/ports/driven"
	"github.com/custodia-labs/pokeelt/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	KeyAPIBaseURL        = "api.base_url"
	KeyAPIPathPrefix     = "api.path_prefix"
	KeyAPIPageSize       = "api.page_size"
	KeyAPITimeout        = "api.timeout_seconds"
	KeyAPIUserAgent      = "api.user_agent"
	KeyAPIRate           = "api.requests_per_second"
	KeySpecURL           = "spec.url"
	KeySpecPath          = "spec.path"
	KeyStorePath         = "store.path"
	KeyIngestResources   = "ingest.resources"
	KeyIngestMode        = "ingest.load_mode"
	KeyIngestContinueErr = "ingest.continue_on_error"
)

// Default file names inside the data directory.
const (
	DefaultSpecFile  = "openapi.yml"
	DefaultStoreFile = "pokemon_data_ingest.db"
)

// SettingsService reads ingestion settings from the config store.
type SettingsService struct {
	configStore driven.ConfigStore
	dataDir     string
}

// NewSettingsService creates a new settings service. dataDir anchors the
// default spec cache and database paths.
func NewSettingsService(configStore driven.ConfigStore, dataDir string) *SettingsService {
	return &SettingsService{
		configStore: configStore,
		dataDir:     dataDir,
	}
}

// Get retrieves current settings with defaults filled in and validates them.
func (s *SettingsService) Get() (*domain.IngestSettings, error) {
	defaults := s.GetDefaults()

	settings := &domain.IngestSettings{
		API: domain.APISettings{
			BaseURL:           s.getString(KeyAPIBaseURL, defaults.API.BaseURL),
			PathPrefix:        s.getString(KeyAPIPathPrefix, defaults.API.PathPrefix),
			PageSize:          s.getInt(KeyAPIPageSize, defaults.API.PageSize),
			Timeout:           s.getSeconds(KeyAPITimeout, defaults.API.Timeout),
			UserAgent:         s.getString(KeyAPIUserAgent, defaults.API.UserAgent),
			RequestsPerSecond: s.configStore.GetFloat(KeyAPIRate),
		},
		Spec: domain.SpecSettings{
			URL:  s.getString(KeySpecURL, defaults.Spec.URL),
			Path: s.getString(KeySpecPath, defaults.Spec.Path),
		},
		Store: domain.StoreSettings{
			Path: s.getString(KeyStorePath, defaults.Store.Path),
		},
		Ingest: domain.IngestOptions{
			Resources:       s.getStringSlice(KeyIngestResources, defaults.Ingest.Resources),
			Mode:            domain.LoadMode(s.getString(KeyIngestMode, defaults.Ingest.Mode.String())),
			ContinueOnError: s.configStore.GetBool(KeyIngestContinueErr),
		},
	}

	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("settings from %s: %w", s.configStore.Path(), err)
	}
	return settings, nil
}

// Set stores a single setting by its dot-notation key.
func (s *SettingsService) Set(key string, value any) error {
	if err := validateSetting(key, value); err != nil {
		return err
	}
	if err := s.configStore.Set(key, value); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// GetDefaults returns default settings anchored at the data directory.
func (s *SettingsService) GetDefaults() domain.IngestSettings {
	defaults := domain.DefaultIngestSettings()
	defaults.Spec.Path = filepath.Join(s.dataDir, DefaultSpecFile)
	defaults.Store.Path = filepath.Join(s.dataDir, DefaultStoreFile)
	return defaults
}

func (s *SettingsService) getString(key, def string) string {
	if v := s.configStore.GetString(key); v != "" {
		return v
	}
	return def
}

func (s *SettingsService) getInt(key string, def int) int {
	if _, ok := s.configStore.Get(key); !ok {
		return def
	}
	return s.configStore.GetInt(key)
}

func (s *SettingsService) getSeconds(key string, def time.Duration) time.Duration {
	if _, ok := s.configStore.Get(key); !ok {
		return def
	}
	return time.Duration(s.configStore.GetFloat(key) * float64(time.Second))
}

func (s *SettingsService) getStringSlice(key string, def []string) []string {
	if v := s.configStore.GetStringSlice(key); len(v) > 0 {
		return v
	}
	return def
}

// validateSetting rejects unknown keys and values Get would refuse.
func validateSetting(key string, value any) error {
	invalid := func(want string) error {
		return fmt.Errorf("%w: %s must be %s, got %v", domain.ErrInvalidInput, key, want, value)
	}

	switch key {
	case KeyAPIBaseURL, KeyAPIPathPrefix, KeyAPIUserAgent, KeySpecURL, KeySpecPath, KeyStorePath:
		if _, ok := value.(string); !ok {
			return invalid("a string")
		}
	case KeyAPIPageSize:
		if n, ok := value.(int); !ok || n < 1 {
			return invalid("a positive integer")
		}
	case KeyAPITimeout, KeyAPIRate:
		var f float64
		switch v := value.(type) {
		case int:
			f = float64(v)
		case float64:
			f = v
		default:
			return invalid("a number")
		}
		if f < 0 {
			return invalid("non-negative")
		}
	case KeyIngestMode:
		mode, ok := value.(string)
		if !ok || !domain.LoadMode(mode).IsValid() {
			return invalid(`"swap" or "direct"`)
		}
	case KeyIngestContinueErr:
		if _, ok := value.(bool); !ok {
			return invalid("true or false")
		}
	case KeyIngestResources:
		names, ok := value.([]string)
		if !ok || len(names) == 0 {
			return invalid("a list of resource names")
		}
		for _, name := range names {
			if err := domain.ValidateResourceName(name); err != nil {
				return err
			}
		}
	default:
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}
	return nil
}
