//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// CreateWebhookEvent inserts a ledger row; processed rows get processed_at = now.
func CreateWebhookEvent(t *testing.T, db DBLike, eventID string, processed bool) {
	t.Helper()

	ctx := context.Background()
	_, err := db.Exec(ctx, `
		INSERT INTO webhook_events (event_id, processed, processed_at)
		VALUES ($1, $2, CASE WHEN $2 THEN NOW() END)`,
		eventID, processed)
	require.NoError(t, err)
}

func WebhookEventProcessed(t *testing.T, db DBLike, eventID string) (processed bool, found bool) {
	t.Helper()

	ctx := context.Background()
	err := db.QueryRow(ctx, "SELECT processed FROM webhook_events WHERE event_id = $1", eventID).Scan(&processed)
	if err != nil {
		return false, false
	}
	return processed, true
}

func CreateRateLimit(t *testing.T, db DBLike, key string, count int, expiresAt time.Time) {
	t.Helper()

	ctx := context.Background()
	_, err := db.Exec(ctx, "INSERT INTO rate_limits (key, count, window_expires_at) VALUES ($1, $2, $3)",
		key, count, expiresAt)
	require.NoError(t, err)
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// truncates all tables
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'
		    AND tablename NOT IN ('schema_migrations')`)
		if err != nil {
			truncateSQL.Store("")
			return
		}
		defer rows.Close()
		var tables []string
		for rows.Next() {
			var t string
			if err := rows.Scan(&t); err != nil {
				truncateSQL.Store("")
				return
			}
			tables = append(tables, t)
		}
		if rows.Err() != nil {
			truncateSQL.Store("")
			return
		}
		if len(tables) == 0 {
			truncateSQL.Store("SELECT 1")
			return
		}
		truncateSQL.Store("TRUNCATE " + strings.Join(tables, ", ") + ";")
	})
	sqlAny := truncateSQL.Load()
	if sqlAny == nil || sqlAny.(string) == "" {
		return fmt.Errorf("failed to build TRUNCATE SQL")
	}
	_, err := pool.Exec(ctx, sqlAny.(string))
	return err
}
