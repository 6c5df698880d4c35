package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunsCmd_Use(t *testing.T) {
	assert.Equal(t, "runs [resource]", runsCmd.Use)
}

func TestRunsCmd_Empty(t *testing.T) {
	_, cleanup := setupCLITest()
	defer cleanup()

	out, err := execute("runs")

	require.NoError(t, err)
	assert.Contains(t, out, "No runs recorded.")
}

func TestRunsCmd_All(t *testing.T) {
	env, cleanup := setupCLITest()
	defer cleanup()
	env.inventory.runs = testRuns()

	out, err := execute("runs")

	require.NoError(t, err)
	assert.Contains(t, out, "raw_move")
	assert.Contains(t, out, "raw_pokemon")
	assert.Contains(t, out, "direct")
	assert.Contains(t, out, "2s")
}

func TestRunsCmd_FilterAndLimit(t *testing.T) {
	env, cleanup := setupCLITest()
	defer cleanup()
	env.inventory.runs = testRuns()

	out, err := execute("runs", "pokemon", "-n", "1")

	require.NoError(t, err)
	assert.NotContains(t, out, "raw_move")
	assert.Contains(t, out, "raw_pokemon")
	assert.NotContains(t, out, "direct")
}
