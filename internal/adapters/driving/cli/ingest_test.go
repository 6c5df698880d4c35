package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/pokeelt/internal/core/domain"
	"github.com/custodia-labs/pokeelt/internal/logger"
)

func TestIngestCmd_Use(t *testing.T) {
	assert.Equal(t, "ingest [resource...]", ingestCmd.Use)
	assert.Equal(t, "Load resources into raw tables", ingestCmd.Short)
	assert.Contains(t, ingestCmd.Long, "swap mode")
}

func TestIngestCmd_DefaultResources(t *testing.T) {
	env, cleanup := setupCLITest()
	defer cleanup()
	env.ingestor.ids["pokemon"] = []domain.ResourceID{1, 2, 3}

	out, err := execute("ingest")

	require.NoError(t, err)
	assert.Equal(t, domain.DefaultResources(), env.ingestor.ingested)
	assert.False(t, env.ingestor.continueOnError)
	assert.Contains(t, out, "Ingesting 3 resource(s) in swap mode...")
	assert.Contains(t, out, "raw_pokemon")
	assert.Contains(t, out, "All resources loaded.")
}

func TestIngestCmd_NamedResources(t *testing.T) {
	env, cleanup := setupCLITest()
	defer cleanup()

	_, err := execute("ingest", "berry", "item")

	require.NoError(t, err)
	assert.Equal(t, []string{"berry", "item"}, env.ingestor.ingested)
}

func TestIngestCmd_InvalidResource(t *testing.T) {
	env, cleanup := setupCLITest()
	defer cleanup()

	_, err := execute("ingest", "Bad Name")

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, env.ingestor.ingested)
}

func TestIngestCmd_FlagsOverrideSettings(t *testing.T) {
	_, cleanup := setupCLITest()
	defer cleanup()

	var opened domain.IngestSettings
	SetConfig(&Config{
		Open: func(settings domain.IngestSettings) (*Services, error) {
			opened = settings
			return &Services{Ingestor: ingestor, SpecLoader: specLoader}, nil
		},
	})

	out, err := execute("ingest", "pokemon",
		"--mode", "direct", "--page-size", "50", "--rate", "4", "--timeout", "5s", "--continue-on-error")

	require.NoError(t, err)
	assert.Equal(t, domain.LoadModeDirect, opened.Ingest.Mode)
	assert.Equal(t, 50, opened.API.PageSize)
	assert.InDelta(t, 4.0, opened.API.RequestsPerSecond, 0.0001)
	assert.Equal(t, 5*time.Second, opened.API.Timeout)
	assert.True(t, opened.Ingest.ContinueOnError)
	assert.Equal(t, domain.DefaultAPIBaseURL, opened.API.BaseURL)
	assert.Contains(t, out, "in direct mode")
}

func TestIngestCmd_UnsetFlagsKeepStoredSettings(t *testing.T) {
	env, cleanup := setupCLITest()
	defer cleanup()
	env.settings.settings.API.PageSize = 25
	env.settings.settings.Ingest.Mode = domain.LoadModeDirect

	var opened domain.IngestSettings
	SetConfig(&Config{
		Open: func(settings domain.IngestSettings) (*Services, error) {
			opened = settings
			return &Services{Ingestor: ingestor, SpecLoader: specLoader}, nil
		},
	})

	_, err := execute("ingest", "pokemon")

	require.NoError(t, err)
	assert.Equal(t, 25, opened.API.PageSize)
	assert.Equal(t, domain.LoadModeDirect, opened.Ingest.Mode)
}

func TestIngestCmd_ZeroFlagsOverrideStoredSettings(t *testing.T) {
	env, cleanup := setupCLITest()
	defer cleanup()
	env.settings.settings.Ingest.ContinueOnError = true
	env.settings.settings.API.RequestsPerSecond = 5
	env.settings.settings.API.Timeout = 10 * time.Second

	var opened domain.IngestSettings
	SetConfig(&Config{
		Open: func(settings domain.IngestSettings) (*Services, error) {
			opened = settings
			return &Services{Ingestor: ingestor, SpecLoader: specLoader}, nil
		},
	})

	_, err := execute("ingest", "pokemon", "--continue-on-error=false", "--rate", "0", "--timeout", "0")

	require.NoError(t, err)
	assert.False(t, opened.Ingest.ContinueOnError)
	assert.Zero(t, opened.API.RequestsPerSecond)
	assert.Zero(t, opened.API.Timeout)
}

func TestIngestCmd_InvalidMode(t *testing.T) {
	env, cleanup := setupCLITest()
	defer cleanup()

	_, err := execute("ingest", "--mode", "append")

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, env.ingestor.ingested)
}

func TestIngestCmd_Failure(t *testing.T) {
	env, cleanup := setupCLITest()
	defer cleanup()
	env.ingestor.failures["move"] = &domain.FetchError{StatusCode: 500, Status: "500 Internal Server Error"}

	out, err := execute("ingest", "pokemon", "move", "ability")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "ingest failed")
	assert.Equal(t, []string{"pokemon", "move"}, env.ingestor.ingested)
	assert.Contains(t, out, "failed")
	assert.NotContains(t, out, "All resources loaded.")
}

func TestIngestCmd_ContinueOnError(t *testing.T) {
	env, cleanup := setupCLITest()
	defer cleanup()
	env.ingestor.failures["move"] = errors.New("boom")

	_, err := execute("ingest", "pokemon", "move", "ability", "--continue-on-error")

	require.Error(t, err)
	assert.True(t, env.ingestor.continueOnError)
	assert.Equal(t, []string{"pokemon", "move", "ability"}, env.ingestor.ingested)
}

func TestIngestCmd_LoadsSpecFirst(t *testing.T) {
	env, cleanup := setupCLITest()
	defer cleanup()
	env.spec.spec = testSpec()

	logBuf := new(bytes.Buffer)
	logger.SetOutput(logBuf)
	defer func() {
		logger.SetOutput(os.Stderr)
		logger.SetVerbose(false)
	}()

	_, err := execute("ingest", "pokemon", "berry", "--verbose")

	require.NoError(t, err)
	assert.Equal(t, "/data/openapi.yml", env.spec.localPath)
	assert.Contains(t, logBuf.String(), "berry is not listed")
	assert.NotContains(t, logBuf.String(), "pokemon is not listed")
	assert.Equal(t, []string{"pokemon", "berry"}, env.ingestor.ingested)
}

func TestIngestCmd_SpecError(t *testing.T) {
	env, cleanup := setupCLITest()
	defer cleanup()
	env.spec.err = &domain.ParseError{Input: "/data/openapi.yml", Reason: "not YAML"}

	_, err := execute("ingest", "pokemon")

	require.Error(t, err)
	assert.True(t, domain.IsParseError(err))
	assert.Empty(t, env.ingestor.ingested)
}

func TestIngestCmd_NotConfigured(t *testing.T) {
	_, cleanup := setupCLITest()
	defer cleanup()
	ingestor = nil

	_, err := execute("ingest", "pokemon")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "ingest service not configured")
}

func TestIngestEach_StopsAtFirstFailure(t *testing.T) {
	env, cleanup := setupCLITest()
	defer cleanup()
	env.ingestor.failures["move"] = errors.New("boom")

	buf := new(bytes.Buffer)
	ingestCmd.SetContext(context.Background())
	ingestCmd.SetOut(buf)
	defer ingestCmd.SetOut(nil)

	runs, err := ingestEach(ingestCmd, []string{"pokemon", "move", "ability"}, false)

	require.Error(t, err)
	assert.Len(t, runs, 2)
	assert.Equal(t, []string{"pokemon", "move"}, env.ingestor.ingested)
}

func TestIngestEach_ContinueOnError(t *testing.T) {
	env, cleanup := setupCLITest()
	defer cleanup()
	env.ingestor.failures["move"] = errors.New("boom")

	buf := new(bytes.Buffer)
	ingestCmd.SetContext(context.Background())
	ingestCmd.SetOut(buf)
	defer ingestCmd.SetOut(nil)

	runs, err := ingestEach(ingestCmd, []string{"pokemon", "move", "ability"}, true)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "ingest move: boom")
	assert.Len(t, runs, 3)
}
