package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/pokeelt/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/pokeelt/internal/core/domain"
)

func TestInventoryService_AfterIngest(t *testing.T) {
	ctx := context.Background()
	api := newMockResourceAPI()
	api.addResource("pokemon", 3, 10)

	tables := memory.NewRawTableStore()
	runs := memory.NewIngestRunStore()
	ingest := NewIngestService(api, tables, runs, testIngestSettings(domain.LoadModeSwap, 10))
	inventory := NewInventoryService(tables, runs)

	_, err := ingest.IngestResource(ctx, "pokemon")
	require.NoError(t, err)
	_, err = ingest.IngestResource(ctx, "move")
	require.Error(t, err)

	infos, err := inventory.Tables(ctx)
	require.NoError(t, err)
	assert.Equal(t, []domain.RawTableInfo{{Name: "raw_pokemon", Rows: 3}}, infos)

	all, err := inventory.Runs(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "move", all[0].Resource)
	assert.Equal(t, domain.RunFailed, all[0].Status)

	latest, err := inventory.LatestRun(ctx, "pokemon")
	require.NoError(t, err)
	assert.Equal(t, domain.RunComplete, latest.Status)
	assert.Equal(t, 3, latest.Loaded)
}

func TestInventoryService_Validation(t *testing.T) {
	inventory := NewInventoryService(memory.NewRawTableStore(), memory.NewIngestRunStore())

	_, err := inventory.Runs(context.Background(), "Bad Name")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = inventory.LatestRun(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = inventory.LatestRun(context.Background(), "pokemon")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
