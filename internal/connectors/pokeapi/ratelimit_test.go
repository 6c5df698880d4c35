package pokeapi

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimiter_Disabled(t *testing.T) {
	for _, rps := range []float64{0, -1} {
		limiter := NewRateLimiter(rps)
		assert.False(t, limiter.Enabled())

		start := time.Now()
		for range 100 {
			require.NoError(t, limiter.Wait(context.Background()))
		}
		assert.Less(t, time.Since(start), 100*time.Millisecond)
	}

	var nilLimiter *RateLimiter
	assert.False(t, nilLimiter.Enabled())
	assert.NoError(t, nilLimiter.Wait(context.Background()))
}

func TestRateLimiter_Paces(t *testing.T) {
	limiter := NewRateLimiter(20)
	require.True(t, limiter.Enabled())

	start := time.Now()
	for range 3 {
		require.NoError(t, limiter.Wait(context.Background()))
	}

	// Burst of one, then 50ms per request
	assert.GreaterOrEqual(t, time.Since(start), 90*time.Millisecond)
}

func TestRateLimiter_Cancelled(t *testing.T) {
	limiter := NewRateLimiter(0.001)
	require.NoError(t, limiter.Wait(context.Background()))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	assert.Error(t, limiter.Wait(ctx))
}
