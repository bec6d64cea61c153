//go:build unit

package db_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"course-checkout/internal/infra/db"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingExecer struct {
	statements []string
	err        error
}

func (r *recordingExecer) Exec(_ context.Context, sql string, _ ...any) (pgconn.CommandTag, error) {
	r.statements = append(r.statements, sql)
	return pgconn.CommandTag{}, r.err
}

func TestEnsureSchema(t *testing.T) {
	t.Run("applies embedded migrations", func(t *testing.T) {
		rec := &recordingExecer{}
		require.NoError(t, db.EnsureSchema(context.Background(), rec))
		require.NotEmpty(t, rec.statements)

		all := strings.Join(rec.statements, "\n")
		assert.Contains(t, all, "CREATE TABLE IF NOT EXISTS webhook_events")
		assert.Contains(t, all, "CREATE TABLE IF NOT EXISTS rate_limits")
	})

	t.Run("stops on first failure", func(t *testing.T) {
		rec := &recordingExecer{err: errors.New("boom")}
		err := db.EnsureSchema(context.Background(), rec)
		assert.ErrorContains(t, err, "001_initial_schema.sql")
		assert.Len(t, rec.statements, 1)
	})
}
