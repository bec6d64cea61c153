package usecase

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"course-checkout/internal/domain/ratelimit"
	"course-checkout/internal/pkg/clock"
	"course-checkout/internal/usecase/shared"
)

// RateLimiter answers whether a keyed request is admitted in the current
// fixed window.
type RateLimiter interface {
	Check(ctx context.Context, key string, policy ratelimit.Policy) (ratelimit.Decision, error)
}

type rateLimiterImpl struct {
	primary  shared.RateLimitStore
	fallback shared.RateLimitStore
	clock    clock.Clock
	metrics  shared.Metrics
	logger   *slog.Logger
}

// NewRateLimiter uses primary when it is non-nil and answers from fallback
// whenever primary fails. Rate limiting degrades to per-instance counting
// rather than failing the request.
func NewRateLimiter(primary, fallback shared.RateLimitStore, clk clock.Clock, metrics shared.Metrics, logger *slog.Logger) RateLimiter {
	return &rateLimiterImpl{
		primary:  primary,
		fallback: fallback,
		clock:    clk,
		metrics:  metrics,
		logger:   logger,
	}
}

func (r *rateLimiterImpl) Check(ctx context.Context, key string, policy ratelimit.Policy) (ratelimit.Decision, error) {
	if err := policy.Validate(); err != nil {
		return ratelimit.Decision{}, err
	}
	now := r.clock.Now()

	decision, err := r.check(ctx, key, now, policy)
	if err != nil {
		return ratelimit.Decision{}, err
	}
	r.metrics.RateLimitDecision(purposeOf(key), decision.Admitted)
	return decision, nil
}

func (r *rateLimiterImpl) check(ctx context.Context, key string, now time.Time, policy ratelimit.Policy) (ratelimit.Decision, error) {
	if r.primary == nil {
		return r.fallback.Hit(ctx, key, now, policy)
	}

	decision, err := r.primary.Hit(ctx, key, now, policy)
	if err == nil {
		return decision, nil
	}
	if ctx.Err() != nil {
		return ratelimit.Decision{}, ctx.Err()
	}

	r.metrics.RateLimitFallback()
	r.logger.WarnContext(ctx, "rate limit store unavailable, using memory fallback",
		"key", key,
		"error", err,
	)
	return r.fallback.Hit(ctx, key, now, policy)
}

// purposeOf returns the "<purpose>" part of a "<purpose>:<client>" key.
func purposeOf(key string) string {
	if purpose, _, ok := strings.Cut(key, ":"); ok {
		return purpose
	}
	return key
}
