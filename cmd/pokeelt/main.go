// Command pokeelt loads PokeAPI resources into raw SQLite tables.
package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/custodia-labs/pokeelt/internal/adapters/driven/apispec/openapi"
	"github.com/custodia-labs/pokeelt/internal/adapters/driven/config/file"
	"github.com/custodia-labs/pokeelt/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/pokeelt/internal/adapters/driving/cli"
	"github.com/custodia-labs/pokeelt/internal/connectors/pokeapi"
	"github.com/custodia-labs/pokeelt/internal/core/domain"
	"github.com/custodia-labs/pokeelt/internal/core/ports/driving"
	"github.com/custodia-labs/pokeelt/internal/core/services"
)

// version is overridden with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	cli.SetVersion(version)
	cli.SetConfig(&cli.Config{
		Settings: openSettings,
		Open:     openServices,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := cli.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

// openSettings loads config.toml from configDir. The same directory holds the
// cached spec and the database unless the config points elsewhere.
func openSettings(configDir string) (driving.SettingsService, error) {
	store, err := file.NewConfigStore(configDir)
	if err != nil {
		return nil, err
	}
	return services.NewSettingsService(store, filepath.Dir(store.Path())), nil
}

// openServices wires the core services to SQLite and the remote API.
func openServices(settings domain.IngestSettings) (*cli.Services, error) {
	store, err := sqlite.NewStore(settings.Store.Path)
	if err != nil {
		return nil, err
	}

	client := pokeapi.NewClient(settings.API)
	tables := store.RawTableStore()
	runs := store.IngestRunStore()

	return &cli.Services{
		Ingestor:   services.NewIngestService(client, tables, runs, settings),
		Inventory:  services.NewInventoryService(tables, runs),
		SpecLoader: services.NewSpecLoader(client, openapi.NewParser()),
		Close:      store.Close,
	}, nil
}
