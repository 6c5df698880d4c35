package cli

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/pokeelt/internal/core/domain"
)

func TestConfigCmd_Use(t *testing.T) {
	assert.Equal(t, "config", configCmd.Use)
	assert.Equal(t, "set <key> <value>", configSetCmd.Use)
}

func TestConfigShow(t *testing.T) {
	_, cleanup := setupCLITest()
	defer cleanup()

	out, err := execute("config", "show")

	require.NoError(t, err)
	assert.Contains(t, out, "https://pokeapi.co")
	assert.Contains(t, out, "unlimited")
	assert.Contains(t, out, "[pokemon move ability]")
	assert.Contains(t, out, "swap")
}

func TestConfigShow_Error(t *testing.T) {
	env, cleanup := setupCLITest()
	defer cleanup()
	env.settings.getErr = domain.ErrInvalidInput

	_, err := execute("config", "show")

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestConfigSet(t *testing.T) {
	env, cleanup := setupCLITest()
	defer cleanup()

	out, err := execute("config", "set", "api.page_size", "500")

	require.NoError(t, err)
	assert.Equal(t, 500, env.settings.set["api.page_size"])
	assert.Contains(t, out, "Set api.page_size = 500")
}

func TestConfigSet_Rejected(t *testing.T) {
	env, cleanup := setupCLITest()
	defer cleanup()
	env.settings.setErr = errors.New("unknown setting")

	_, err := execute("config", "set", "search.mode", "hybrid")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown setting")
}

func TestParseSettingValue(t *testing.T) {
	tests := []struct {
		key  string
		raw  string
		want any
	}{
		{"api.page_size", "100", 100},
		{"api.timeout_seconds", "2.5", 2.5},
		{"ingest.continue_on_error", "true", true},
		{"ingest.load_mode", "direct", "direct"},
		{"api.base_url", "http://localhost:8000", "http://localhost:8000"},
		{"ingest.resources", "pokemon, move,,ability", []string{"pokemon", "move", "ability"}},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			assert.Equal(t, tt.want, parseSettingValue(tt.key, tt.raw))
		})
	}
}
