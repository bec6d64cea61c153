//go:build unit

package pgconv_test

import (
	"testing"
	"time"

	"course-checkout/internal/pkg/pgconv"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeConversions(t *testing.T) {
	now := time.Date(2026, 5, 4, 3, 2, 1, 0, time.UTC)

	pt := pgconv.TimeToPgtype(now)
	assert.True(t, pt.Valid)
	assert.Equal(t, now, pgconv.TimeFromPgtype(pt))

	ptr := pgconv.TimePtrFromPgtype(pt)
	require.NotNil(t, ptr)
	assert.Equal(t, now, *ptr)

	assert.Nil(t, pgconv.TimePtrFromPgtype(pgtype.Timestamptz{}))
}
