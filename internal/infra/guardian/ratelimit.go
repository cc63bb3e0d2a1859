package guardian

import (
	"context"

	"golang.org/x/time/rate"
)

// RateLimiter implements a token bucket for outbound request pacing.
// It keeps the client from hammering the content API when a caller
// invokes the pipeline in a tight loop.
type RateLimiter struct {
	limiter *rate.Limiter
}

// NewRateLimiter creates a RateLimiter with the specified sustained rate
// and burst capacity.
func NewRateLimiter(requestsPerSecond float64, burst int) *RateLimiter {
	return &RateLimiter{
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), burst),
	}
}

// Allow blocks until a token is available or the context is canceled.
func (r *RateLimiter) Allow(ctx context.Context) error {
	return r.limiter.Wait(ctx)
}
