// Package embedding provides shared helpers for embedding service adapters.
package embedding

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/recall-labs/recall-cli/internal/core/ports/driven"
)

// Ensure RateLimited implements the interface.
var _ driven.EmbeddingService = (*RateLimited)(nil)

// RateLimitConfig holds rate limiting configuration for an embedding provider.
type RateLimitConfig struct {
	// RequestsPerSecond is the sustained rate limit.
	RequestsPerSecond float64
	// BurstSize is the maximum burst size.
	BurstSize int
}

// DefaultRateLimit is a conservative default that stays well below the
// published limits of hosted embedding APIs.
var DefaultRateLimit = RateLimitConfig{RequestsPerSecond: 5.0, BurstSize: 10}

// RateLimited wraps an EmbeddingService with a token bucket rate limiter.
// Requests block until the limiter admits them; a backoff period set by
// RecordRateLimitError is honoured before the bucket is consulted.
type RateLimited struct {
	inner   driven.EmbeddingService
	limiter *rate.Limiter

	mu      sync.Mutex
	retryAt time.Time
}

// NewRateLimited wraps the given embedding service with rate limiting.
func NewRateLimited(inner driven.EmbeddingService, cfg RateLimitConfig) *RateLimited {
	if cfg.RequestsPerSecond <= 0 {
		cfg = DefaultRateLimit
	}
	if cfg.BurstSize <= 0 {
		cfg.BurstSize = 1
	}

	return &RateLimited{
		inner:   inner,
		limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.BurstSize),
	}
}

// RecordRateLimitError records a 429 from the provider and sets a backoff
// period that subsequent requests wait out.
func (r *RateLimited) RecordRateLimitError(retryAfterSeconds int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if retryAfterSeconds <= 0 {
		// Default backoff: 60 seconds
		retryAfterSeconds = 60
	}

	r.retryAt = time.Now().Add(time.Duration(retryAfterSeconds) * time.Second)
}

// wait blocks until a request can be made without exceeding the rate limit.
func (r *RateLimited) wait(ctx context.Context) error {
	r.mu.Lock()
	retryAt := r.retryAt
	r.mu.Unlock()

	if time.Now().Before(retryAt) {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Until(retryAt)):
		}
	}

	return r.limiter.Wait(ctx)
}

// Embed generates a vector embedding for the given text.
func (r *RateLimited) Embed(ctx context.Context, text string) ([]float32, error) {
	if err := r.wait(ctx); err != nil {
		return nil, err
	}
	return r.inner.Embed(ctx, text)
}

// EmbedBatch generates embeddings for multiple texts.
// A batch consumes a single token; providers that fan the batch out into
// per-text requests do their own pacing inside the call.
func (r *RateLimited) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if err := r.wait(ctx); err != nil {
		return nil, err
	}
	return r.inner.EmbedBatch(ctx, texts)
}

// Dimensions returns the embedding vector size.
func (r *RateLimited) Dimensions() int {
	return r.inner.Dimensions()
}

// ModelName returns the name of the embedding model being used.
func (r *RateLimited) ModelName() string {
	return r.inner.ModelName()
}

// Ping validates the underlying service is reachable.
func (r *RateLimited) Ping(ctx context.Context) error {
	return r.inner.Ping(ctx)
}

// Close releases resources held by the underlying service.
func (r *RateLimited) Close() error {
	return r.inner.Close()
}
