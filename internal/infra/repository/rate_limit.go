package repository

import (
	"context"
	"errors"
	"time"

	"course-checkout/internal/domain/ratelimit"
	"course-checkout/internal/infra"
	"course-checkout/internal/infra/sqlc"
	"course-checkout/internal/pkg/pgconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

type RateLimitQueries interface {
	HitRateLimit(ctx context.Context, db sqlc.DBTX, arg sqlc.HitRateLimitParams) (sqlc.RateLimits, error)
	GetRateLimit(ctx context.Context, db sqlc.DBTX, key string) (sqlc.RateLimits, error)
	DeleteExpiredRateLimits(ctx context.Context, db sqlc.DBTX, windowExpiresAt pgtype.Timestamptz) (int64, error)
}

type RateLimitRepository struct {
	queries RateLimitQueries
	db      sqlc.DBTX
}

func NewRateLimitRepository(queries RateLimitQueries, db sqlc.DBTX) *RateLimitRepository {
	return &RateLimitRepository{
		queries: queries,
		db:      db,
	}
}

// Hit admits or rejects one request in a single conditional upsert, so
// concurrent callers on the same key can never exceed the limit.
func (r *RateLimitRepository) Hit(ctx context.Context, key string, now time.Time, policy ratelimit.Policy) (ratelimit.Decision, error) {
	if err := policy.Validate(); err != nil {
		return ratelimit.Decision{}, err
	}

	row, err := r.queries.HitRateLimit(ctx, r.db, sqlc.HitRateLimitParams{
		Key:             key,
		WindowExpiresAt: pgconv.TimeToPgtype(now.Add(policy.Window)),
		Now:             pgconv.TimeToPgtype(now),
		MaxCount:        int32(policy.Limit),
	})
	if err == nil {
		return ratelimit.Decision{
			Admitted:  true,
			Remaining: ratelimit.Remaining(policy.Limit, int(row.Count)),
			ResetAt:   pgconv.TimeFromPgtype(row.WindowExpiresAt),
		}, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return ratelimit.Decision{}, infra.WrapRepoErr("failed to record rate limit hit", err)
	}

	// rejected: the window is still open and full
	current, err := r.queries.GetRateLimit(ctx, r.db, key)
	if err != nil {
		return ratelimit.Decision{}, infra.WrapRepoErr("failed to read rate limit window", err)
	}
	return ratelimit.Decision{
		Admitted:  false,
		Remaining: 0,
		ResetAt:   pgconv.TimeFromPgtype(current.WindowExpiresAt),
	}, nil
}

// PruneExpired deletes rows whose window closed at or before before.
func (r *RateLimitRepository) PruneExpired(ctx context.Context, before time.Time) (int64, error) {
	n, err := r.queries.DeleteExpiredRateLimits(ctx, r.db, pgconv.TimeToPgtype(before))
	if err != nil {
		return 0, infra.WrapRepoErr("failed to prune rate limits", err)
	}
	return n, nil
}
