package sqlc

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const deleteExpiredRateLimits = `-- name: DeleteExpiredRateLimits :execrows
DELETE FROM rate_limits WHERE window_expires_at <= $1
`

func (q *Queries) DeleteExpiredRateLimits(ctx context.Context, db DBTX, windowExpiresAt pgtype.Timestamptz) (int64, error) {
	result, err := db.Exec(ctx, deleteExpiredRateLimits, windowExpiresAt)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const getRateLimit = `-- name: GetRateLimit :one
SELECT key, count, window_expires_at FROM rate_limits WHERE key = $1
`

func (q *Queries) GetRateLimit(ctx context.Context, db DBTX, key string) (RateLimits, error) {
	row := db.QueryRow(ctx, getRateLimit, key)
	var i RateLimits
	err := row.Scan(&i.Key, &i.Count, &i.WindowExpiresAt)
	return i, err
}

const hitRateLimit = `-- name: HitRateLimit :one
INSERT INTO rate_limits (key, count, window_expires_at)
VALUES ($1, 1, $2)
ON CONFLICT (key) DO UPDATE
SET count = CASE
        WHEN rate_limits.window_expires_at <= $3 THEN 1
        ELSE rate_limits.count + 1
    END,
    window_expires_at = CASE
        WHEN rate_limits.window_expires_at <= $3 THEN EXCLUDED.window_expires_at
        ELSE rate_limits.window_expires_at
    END
WHERE rate_limits.window_expires_at <= $3
   OR rate_limits.count < $4
RETURNING key, count, window_expires_at
`

type HitRateLimitParams struct {
	Key             string             `json:"key"`
	WindowExpiresAt pgtype.Timestamptz `json:"window_expires_at"`
	Now             pgtype.Timestamptz `json:"now"`
	MaxCount        int32              `json:"max_count"`
}

// HitRateLimit admits one request in a single statement. It returns
// pgx.ErrNoRows when the window is full.
func (q *Queries) HitRateLimit(ctx context.Context, db DBTX, arg HitRateLimitParams) (RateLimits, error) {
	row := db.QueryRow(ctx, hitRateLimit,
		arg.Key,
		arg.WindowExpiresAt,
		arg.Now,
		arg.MaxCount,
	)
	var i RateLimits
	err := row.Scan(&i.Key, &i.Count, &i.WindowExpiresAt)
	return i, err
}
