package driving

import "github.com/custodia-labs/pokeelt/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current settings, defaults filled in.
	Get() (*domain.IngestSettings, error)

	// Set stores a single setting by its dot-notation key.
	Set(key string, value any) error

	// GetDefaults returns default settings.
	GetDefaults() domain.IngestSettings
}
