// Package ratelimit holds the fixed-window arithmetic shared by every rate-limit backend.
package ratelimit

import (
	"errors"
	"math"
	"time"
)

var ErrInvalidPolicy = errors.New("rate limit policy requires limit >= 1 and window > 0")

type Policy struct {
	Limit  int
	Window time.Duration
}

func (p Policy) Validate() error {
	if p.Limit < 1 || p.Window <= 0 {
		return ErrInvalidPolicy
	}
	return nil
}

// Bucket is the counter of one key within its current window.
type Bucket struct {
	Count   int
	ResetAt time.Time
}

// Expired reports whether the window has closed; a bucket is replaced once now >= ResetAt.
func (b Bucket) Expired(now time.Time) bool {
	return !now.Before(b.ResetAt)
}

type Decision struct {
	Admitted  bool
	Remaining int
	ResetAt   time.Time
}

// RetryAfter is the whole number of seconds until the window resets, rounded up.
func (d Decision) RetryAfter(now time.Time) int {
	secs := math.Ceil(d.ResetAt.Sub(now).Seconds())
	if secs < 0 {
		return 0
	}
	return int(secs)
}

// Apply evaluates one request against the current bucket. A missing or expired
// bucket opens a new window at now. The returned bucket equals current when
// the request is rejected.
func Apply(current Bucket, exists bool, now time.Time, p Policy) (Bucket, Decision) {
	if !exists || current.Expired(now) {
		next := Bucket{Count: 1, ResetAt: now.Add(p.Window)}
		return next, Decision{Admitted: true, Remaining: Remaining(p.Limit, next.Count), ResetAt: next.ResetAt}
	}

	if current.Count >= p.Limit {
		return current, Decision{Admitted: false, Remaining: 0, ResetAt: current.ResetAt}
	}

	next := Bucket{Count: current.Count + 1, ResetAt: current.ResetAt}
	return next, Decision{Admitted: true, Remaining: Remaining(p.Limit, next.Count), ResetAt: next.ResetAt}
}

func Remaining(limit, count int) int {
	return max(limit-count, 0)
}
