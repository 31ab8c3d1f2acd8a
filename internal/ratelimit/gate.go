// Package ratelimit provides admission control for outbound calls to
// external services. A Gate bounds in-flight concurrency with a weighted
// semaphore and paces request starts with a token bucket.
package ratelimit

import (
	"context"

	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"
)

// Config holds admission control settings for one external service.
type Config struct {
	// MaxInFlight is the maximum number of concurrent requests.
	MaxInFlight int64
	// RequestsPerSecond is the sustained rate limit. Zero disables pacing.
	RequestsPerSecond float64
	// BurstSize is the maximum burst size for the token bucket.
	BurstSize int
}

// Gate serialises access to an external service.
type Gate struct {
	sem     *semaphore.Weighted
	limiter *rate.Limiter
}

// NewGate creates a gate from the given config. MaxInFlight below one is
// raised to one; a zero RequestsPerSecond means no pacing.
func NewGate(cfg Config) *Gate {
	if cfg.MaxInFlight < 1 {
		cfg.MaxInFlight = 1
	}

	gate := &Gate{
		sem: semaphore.NewWeighted(cfg.MaxInFlight),
	}
	if cfg.RequestsPerSecond > 0 {
		burst := cfg.BurstSize
		if burst < 1 {
			burst = 1
		}
		gate.limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), burst)
	}
	return gate
}

// Acquire blocks until a slot is free and the rate limiter admits a new
// request. Callers must call Release once the request finishes.
func (g *Gate) Acquire(ctx context.Context) error {
	if err := g.sem.Acquire(ctx, 1); err != nil {
		return err
	}
	if g.limiter != nil {
		if err := g.limiter.Wait(ctx); err != nil {
			g.sem.Release(1)
			return err
		}
	}
	return nil
}

// Release frees the slot taken by a previous Acquire.
func (g *Gate) Release() {
	g.sem.Release(1)
}
