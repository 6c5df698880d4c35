package pokeapi

import (
	"context"

	"golang.org/x/time/rate"
)

// RateLimiter paces requests with a token bucket. A nil or disabled limiter
// never blocks.
type RateLimiter struct {
	bucket *rate.Limiter
}

// NewRateLimiter creates a limiter allowing requestsPerSecond requests with
// a burst of one. Zero or negative rates disable pacing.
func NewRateLimiter(requestsPerSecond float64) *RateLimiter {
	if requestsPerSecond <= 0 {
		return &RateLimiter{}
	}
	return &RateLimiter{
		bucket: rate.NewLimiter(rate.Limit(requestsPerSecond), 1),
	}
}

// Enabled reports whether the limiter paces requests.
func (r *RateLimiter) Enabled() bool {
	return r != nil && r.bucket != nil
}

// Wait blocks until a request may be sent or ctx is done.
func (r *RateLimiter) Wait(ctx context.Context) error {
	if !r.Enabled() {
		return ctx.Err()
	}
	return r.bucket.Wait(ctx)
}
