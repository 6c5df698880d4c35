package memory

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigStore_SetAndGet(t *testing.T) {
	store := NewConfigStore()

	require.NoError(t, store.Set("api.base_url", "https://pokeapi.co"))
	require.NoError(t, store.Set("api.base_url", "http://localhost:8080"))

	val, ok := store.Get("api.base_url")
	assert.True(t, ok)
	assert.Equal(t, "http://localhost:8080", val)

	_, ok = store.Get("missing")
	assert.False(t, ok)
}

func TestConfigStore_GetString(t *testing.T) {
	store := NewConfigStore()
	require.NoError(t, store.Set("spec.url", "https://example.com/openapi.yml"))
	require.NoError(t, store.Set("api.page_size", 100))

	assert.Equal(t, "https://example.com/openapi.yml", store.GetString("spec.url"))
	assert.Empty(t, store.GetString("api.page_size"))
	assert.Empty(t, store.GetString("missing"))
}

func TestConfigStore_GetInt(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  int
	}{
		{"int", 250, 250},
		{"int64", int64(500), 500},
		{"float64", float64(1000), 1000},
		{"string", "1000", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := NewConfigStore()
			require.NoError(t, store.Set("api.page_size", tt.value))
			assert.Equal(t, tt.want, store.GetInt("api.page_size"))
		})
	}
}

func TestConfigStore_GetFloat(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  float64
	}{
		{"float64", 2.5, 2.5},
		{"int", 3, 3},
		{"int64", int64(7), 7},
		{"bool", true, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := NewConfigStore()
			require.NoError(t, store.Set("api.requests_per_second", tt.value))
			assert.InDelta(t, tt.want, store.GetFloat("api.requests_per_second"), 0.0001)
		})
	}
}

func TestConfigStore_GetBool(t *testing.T) {
	store := NewConfigStore()
	require.NoError(t, store.Set("ingest.continue_on_error", true))
	require.NoError(t, store.Set("ingest.load_mode", "swap"))

	assert.True(t, store.GetBool("ingest.continue_on_error"))
	assert.False(t, store.GetBool("ingest.load_mode"))
	assert.False(t, store.GetBool("missing"))
}

func TestConfigStore_GetStringSlice(t *testing.T) {
	store := NewConfigStore()
	require.NoError(t, store.Set("typed", []string{"pokemon", "move"}))
	require.NoError(t, store.Set("untyped", []any{"ability", 3, "item"}))

	assert.Equal(t, []string{"pokemon", "move"}, store.GetStringSlice("typed"))
	assert.Equal(t, []string{"ability", "item"}, store.GetStringSlice("untyped"))
	assert.Nil(t, store.GetStringSlice("missing"))
}

func TestConfigStore_LoadAndPath(t *testing.T) {
	store := NewConfigStore()
	assert.NoError(t, store.Load())
	assert.Empty(t, store.Path())
}

func TestConfigStore_Concurrency(t *testing.T) {
	store := NewConfigStore()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := fmt.Sprintf("key.%d", i)
			_ = store.Set(key, i)
			_ = store.GetInt(key)
		}(i)
	}
	wg.Wait()

	for i := 0; i < 50; i++ {
		assert.Equal(t, i, store.GetInt(fmt.Sprintf("key.%d", i)))
	}
}
