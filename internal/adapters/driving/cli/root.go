// Package cli implements the pokeelt command line interface with cobra.
//
// Commands talk to the core only through driving ports. The binary wires the
// concrete services with SetConfig; tests assign the service variables
// directly and leave the config unset.
package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/pokeelt/internal/core/domain"
	"github.com/custodia-labs/pokeelt/internal/core/ports/driving"
	"github.com/custodia-labs/pokeelt/internal/logger"
)

// version is set at build time via SetVersion.
var version = "dev"

// Services are the driving ports opened for one command invocation.
type Services struct {
	Ingestor   driving.Ingestor
	Inventory  driving.Inventory
	SpecLoader driving.SpecLoader

	// Close releases the store. May be nil.
	Close func() error
}

// Config builds services once flags are parsed.
type Config struct {
	// Settings returns the settings service rooted at configDir.
	// An empty configDir selects the default location.
	Settings func(configDir string) (driving.SettingsService, error)

	// Open creates the services for the effective settings.
	Open func(settings domain.IngestSettings) (*Services, error)
}

// cliConfig holds the current configuration.
var cliConfig *Config

// Services used by commands. Populated from cliConfig before a command runs.
var (
	settingsService driving.SettingsService
	ingestor        driving.Ingestor
	inventory       driving.Inventory
	specLoader      driving.SpecLoader
)

// Persistent flags.
var (
	verbose   bool
	configDir string
	dbPath    string
)

var rootCmd = &cobra.Command{
	Use:   "pokeelt",
	Short: "Load PokeAPI resources into raw SQLite tables",
	Long: `pokeelt extracts resources from the PokeAPI REST API and loads every
record, unmodified, into a raw_<resource> table of a local SQLite database.

Each table row keeps the record identifier, the JSON body exactly as
returned, when it was requested and loaded, and the URL it came from.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

// SetConfig sets the configuration used to build services.
func SetConfig(config *Config) {
	cliConfig = config
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// ExecuteContext runs the root command with ctx, which commands use to stop
// work when it is cancelled.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Print debug output to stderr")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "Directory holding config.toml (default ~/.pokeelt)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "SQLite database file (overrides store.path)")
}

func setup(_ *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)

	if cliConfig == nil || cliConfig.Settings == nil {
		return nil
	}
	svc, err := cliConfig.Settings(configDir)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	settingsService = svc
	return nil
}

// currentSettings returns the stored settings with persistent flag overrides
// applied.
func currentSettings() (*domain.IngestSettings, error) {
	if settingsService == nil {
		return nil, errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return nil, err
	}
	if dbPath != "" {
		settings.Store.Path = dbPath
	}
	return settings, nil
}

// openServices opens the services for settings and returns a release func.
// Without a config the existing service variables are used as they are.
func openServices(settings domain.IngestSettings) (func(), error) {
	if cliConfig == nil || cliConfig.Open == nil {
		return func() {}, nil
	}

	svc, err := cliConfig.Open(settings)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	ingestor = svc.Ingestor
	inventory = svc.Inventory
	specLoader = svc.SpecLoader

	return func() {
		if svc.Close == nil {
			return
		}
		if err := svc.Close(); err != nil {
			logger.Warn("closing store: %v", err)
		}
	}, nil
}
