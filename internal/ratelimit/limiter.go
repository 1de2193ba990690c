// Package ratelimit implements the shared token bucket gating outbound fetches.
package ratelimit

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"
)

// Config holds rate limiter configuration.
type Config struct {
	RequestsPerSecond float64
	Burst             int
}

// Limiter caps how fast the archiver hits the upstream site. All pipeline
// instances share one Limiter; it is the only cross-instance coordination point.
type Limiter struct {
	limiter *rate.Limiter
}

// New creates a Limiter. A non-positive rate means unlimited.
func New(cfg Config) *Limiter {
	r := rate.Limit(cfg.RequestsPerSecond)
	if cfg.RequestsPerSecond <= 0 {
		r = rate.Inf
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = 1
	}
	return &Limiter{limiter: rate.NewLimiter(r, burst)}
}

// Wait suspends the caller until a permit is available, respecting the context.
func (l *Limiter) Wait(ctx context.Context) error {
	if l == nil || l.limiter == nil {
		return nil
	}
	if err := l.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}
	return nil
}
