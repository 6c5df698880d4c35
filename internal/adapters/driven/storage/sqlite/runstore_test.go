package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/pokeelt/internal/core/domain"
)

func TestIngestRunStore_Lifecycle(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()
	runs := store.IngestRunStore()

	started := time.Date(2024, 3, 1, 12, 0, 0, 5, time.UTC)
	id, err := runs.Create(ctx, domain.IngestRun{
		Resource:  "pokemon",
		Table:     "raw_pokemon",
		Mode:      domain.LoadModeSwap,
		Status:    domain.RunRunning,
		StartedAt: started,
	})
	require.NoError(t, err)
	_, err = uuid.Parse(id)
	require.NoError(t, err)

	run, err := runs.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "pokemon", run.Resource)
	assert.Equal(t, "raw_pokemon", run.Table)
	assert.Equal(t, domain.LoadModeSwap, run.Mode)
	assert.Equal(t, domain.RunRunning, run.Status)
	assert.True(t, started.Equal(run.StartedAt))
	assert.True(t, run.FinishedAt.IsZero())

	run.Status = domain.RunFailed
	run.Expected = 1302
	run.Discovered = 1302
	run.Loaded = 17
	run.FinishedAt = started.Add(3 * time.Second)
	run.Error = "fetch pokemon 18: unexpected status 500"
	require.NoError(t, runs.Update(ctx, *run))

	got, err := runs.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, domain.RunFailed, got.Status)
	assert.Equal(t, 1302, got.Expected)
	assert.Equal(t, 17, got.Loaded)
	assert.Equal(t, 3*time.Second, got.Duration())
	assert.Equal(t, run.Error, got.Error)
}

func TestIngestRunStore_NotFound(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()
	runs := store.IngestRunStore()

	_, err := runs.Get(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = runs.Latest(ctx, "pokemon")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	err = runs.Update(ctx, domain.IngestRun{ID: "missing"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	list, err := runs.List(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestIngestRunStore_ListNewestFirst(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()
	runs := store.IngestRunStore()

	now := time.Now().UTC()
	var ids []string
	for _, resource := range []string{"pokemon", "move", "pokemon"} {
		id, err := runs.Create(ctx, domain.IngestRun{
			Resource:  resource,
			Table:     "raw_" + resource,
			Mode:      domain.LoadModeDirect,
			Status:    domain.RunComplete,
			StartedAt: now,
		})
		require.NoError(t, err)
		ids = append(ids, id)
	}

	all, err := runs.List(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, ids[2], all[0].ID)
	assert.Equal(t, ids[0], all[2].ID)

	pokemon, err := runs.List(ctx, "pokemon")
	require.NoError(t, err)
	require.Len(t, pokemon, 2)
	assert.Equal(t, ids[2], pokemon[0].ID)

	latest, err := runs.Latest(ctx, "move")
	require.NoError(t, err)
	assert.Equal(t, ids[1], latest.ID)
}
