package cli

import (
	"bytes"
	"context"
	"errors"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/custodia-labs/pokeelt/internal/core/domain"
	"github.com/custodia-labs/pokeelt/internal/core/ports/driving"
)

// mockSettingsService implements driving.SettingsService for testing.
type mockSettingsService struct {
	settings domain.IngestSettings
	getErr   error
	setErr   error
	set      map[string]any
}

func newMockSettingsService() *mockSettingsService {
	settings := domain.DefaultIngestSettings()
	settings.Spec.Path = "/data/openapi.yml"
	settings.Store.Path = "/data/pokemon_data_ingest.db"
	return &mockSettingsService{settings: settings, set: make(map[string]any)}
}

func (m *mockSettingsService) Get() (*domain.IngestSettings, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	cp := m.settings
	cp.Ingest.Resources = append([]string(nil), m.settings.Ingest.Resources...)
	return &cp, nil
}

func (m *mockSettingsService) Set(key string, value any) error {
	if m.setErr != nil {
		return m.setErr
	}
	m.set[key] = value
	return nil
}

func (m *mockSettingsService) GetDefaults() domain.IngestSettings {
	return domain.DefaultIngestSettings()
}

// mockIngestor implements driving.Ingestor for testing.
type mockIngestor struct {
	ids      map[string][]domain.ResourceID
	failures map[string]error

	ingested        []string
	continueOnError bool
}

func newMockIngestor() *mockIngestor {
	return &mockIngestor{
		ids:      make(map[string][]domain.ResourceID),
		failures: make(map[string]error),
	}
}

func (m *mockIngestor) run(resource string) (*domain.IngestRun, error) {
	m.ingested = append(m.ingested, resource)
	started := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	run := &domain.IngestRun{
		ID:         "run-" + resource,
		Resource:   resource,
		Table:      domain.RawTableFor(resource).Name(),
		Mode:       domain.LoadModeSwap,
		Status:     domain.RunComplete,
		Expected:   len(m.ids[resource]),
		Discovered: len(m.ids[resource]),
		Loaded:     len(m.ids[resource]),
		StartedAt:  started,
		FinishedAt: started.Add(1500 * time.Millisecond),
	}
	if err := m.failures[resource]; err != nil {
		run.Status = domain.RunFailed
		run.Loaded = 0
		run.Error = err.Error()
		return run, err
	}
	return run, nil
}

func (m *mockIngestor) IngestResource(_ context.Context, resource string) (*domain.IngestRun, error) {
	return m.run(resource)
}

func (m *mockIngestor) IngestAll(
	_ context.Context,
	resources []string,
	continueOnError bool,
) ([]domain.IngestRun, error) {
	m.continueOnError = continueOnError
	var runs []domain.IngestRun
	var errs []error
	for _, resource := range resources {
		run, err := m.run(resource)
		runs = append(runs, *run)
		if err != nil {
			if !continueOnError {
				return runs, err
			}
			errs = append(errs, err)
		}
	}
	return runs, errors.Join(errs...)
}

func (m *mockIngestor) ListResourceIDs(_ context.Context, resource string) ([]domain.ResourceID, int, error) {
	if err := m.failures[resource]; err != nil {
		return nil, 0, err
	}
	return m.ids[resource], len(m.ids[resource]), nil
}

func (m *mockIngestor) Status(_ context.Context, resource string) (*driving.IngestStatus, error) {
	return &driving.IngestStatus{Resource: resource}, nil
}

// mockInventory implements driving.Inventory for testing.
type mockInventory struct {
	tables []domain.RawTableInfo
	runs   []domain.IngestRun
	err    error
}

func (m *mockInventory) Tables(_ context.Context) ([]domain.RawTableInfo, error) {
	return m.tables, m.err
}

func (m *mockInventory) Runs(_ context.Context, resource string) ([]domain.IngestRun, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []domain.IngestRun
	for _, run := range m.runs {
		if resource == "" || run.Resource == resource {
			out = append(out, run)
		}
	}
	return out, nil
}

func (m *mockInventory) LatestRun(ctx context.Context, resource string) (*domain.IngestRun, error) {
	runs, err := m.Runs(ctx, resource)
	if err != nil {
		return nil, err
	}
	if len(runs) == 0 {
		return nil, domain.ErrNotFound
	}
	return &runs[0], nil
}

// mockSpecLoader implements driving.SpecLoader for testing.
type mockSpecLoader struct {
	spec      *domain.APISpec
	err       error
	remoteURL string
	localPath string
}

func (m *mockSpecLoader) Load(_ context.Context, remoteURL, localPath string) (*domain.APISpec, error) {
	m.remoteURL = remoteURL
	m.localPath = localPath
	return m.spec, m.err
}

// testEnv holds the mocks installed by setupCLITest.
type testEnv struct {
	settings  *mockSettingsService
	ingestor  *mockIngestor
	inventory *mockInventory
	spec      *mockSpecLoader
}

// setupCLITest installs mocks as the command services and resets every flag.
func setupCLITest() (*testEnv, func()) {
	oldConfig := cliConfig
	oldSettings := settingsService
	oldIngestor := ingestor
	oldInventory := inventory
	oldSpec := specLoader

	env := &testEnv{
		settings:  newMockSettingsService(),
		ingestor:  newMockIngestor(),
		inventory: &mockInventory{},
		spec:      &mockSpecLoader{},
	}
	cliConfig = nil
	settingsService = env.settings
	ingestor = env.ingestor
	inventory = env.inventory
	specLoader = env.spec
	resetFlags(rootCmd)

	return env, func() {
		cliConfig = oldConfig
		settingsService = oldSettings
		ingestor = oldIngestor
		inventory = oldInventory
		specLoader = oldSpec
		resetFlags(rootCmd)
	}
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

// execute runs the root command with args and returns its output.
func execute(args ...string) (string, error) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()
	return buf.String(), err
}
