// Package memstore keeps rate-limit buckets in process memory. It is the
// fallback when no durable store is configured or the durable store fails.
package memstore

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"course-checkout/internal/domain/ratelimit"
	"course-checkout/internal/pkg/clock"
	"course-checkout/internal/pkg/keyedmutex"
)

// RateLimitStore holds immutable ratelimit.Bucket values. Every read-modify-write
// of a key runs under that key's lock; Sweep only deletes a bucket if it is
// still the value it inspected.
type RateLimitStore struct {
	buckets sync.Map // string -> ratelimit.Bucket
	locks   *keyedmutex.Mutex
}

func NewRateLimitStore(opts ...keyedmutex.Option) *RateLimitStore {
	return &RateLimitStore{
		locks: keyedmutex.New(opts...),
	}
}

func (s *RateLimitStore) Hit(ctx context.Context, key string, now time.Time, policy ratelimit.Policy) (ratelimit.Decision, error) {
	if err := policy.Validate(); err != nil {
		return ratelimit.Decision{}, err
	}

	return keyedmutex.Do(ctx, s.locks, key, func(context.Context) (ratelimit.Decision, error) {
		current, ok := s.load(key)
		next, decision := ratelimit.Apply(current, ok, now, policy)
		if decision.Admitted {
			s.buckets.Store(key, next)
		}
		return decision, nil
	})
}

// Sweep drops every bucket whose window closed at or before now and reports
// how many were removed.
func (s *RateLimitStore) Sweep(now time.Time) int {
	removed := 0
	s.buckets.Range(func(k, v any) bool {
		if b, ok := v.(ratelimit.Bucket); ok && b.Expired(now) {
			if s.buckets.CompareAndDelete(k, v) {
				removed++
			}
		}
		return true
	})
	return removed
}

func (s *RateLimitStore) Len() int {
	n := 0
	s.buckets.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}

// RunSweeper sweeps on every tick until ctx ends.
func (s *RateLimitStore) RunSweeper(ctx context.Context, interval time.Duration, clk clock.Clock, logger *slog.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if removed := s.Sweep(clk.Now()); removed > 0 {
				logger.Debug("rate limit buckets swept", "removed", removed, "remaining", s.Len())
			}
		}
	}
}

func (s *RateLimitStore) load(key string) (ratelimit.Bucket, bool) {
	v, ok := s.buckets.Load(key)
	if !ok {
		return ratelimit.Bucket{}, false
	}
	b, ok := v.(ratelimit.Bucket)
	return b, ok
}
