//go:build unit

package repository_test

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"course-checkout/internal/domain/webhook"
	"course-checkout/internal/infra"
	"course-checkout/internal/infra/repository"
	"course-checkout/internal/infra/sqlc"
	"course-checkout/internal/pkg/pgconv"
	repositorymock "course-checkout/tests/mock/repository"

	"github.com/google/go-cmp/cmp"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// =============================================================================
// Reserve Tests
// =============================================================================

func TestWebhookEventRepository_Reserve(t *testing.T) {
	ctx := context.Background()

	testCases := []struct {
		name       string
		eventID    string
		setupMock  func(*repositorymock.MockWebhookEventQueries, sqlc.DBTX)
		want       bool
		expectKind infra.RepositoryErrorKind
	}{
		{
			name:    "success: first insert reserves",
			eventID: "evt_1",
			setupMock: func(m *repositorymock.MockWebhookEventQueries, db sqlc.DBTX) {
				m.EXPECT().InsertWebhookEvent(ctx, db, "evt_1").Return(int64(1), nil)
			},
			want: true,
		},
		{
			name:    "success: conflict means already reserved",
			eventID: "evt_1",
			setupMock: func(m *repositorymock.MockWebhookEventQueries, db sqlc.DBTX) {
				m.EXPECT().InsertWebhookEvent(ctx, db, "evt_1").Return(int64(0), nil)
			},
			want: false,
		},
		{
			name:      "success: empty id is never reserved",
			eventID:   "",
			setupMock: func(*repositorymock.MockWebhookEventQueries, sqlc.DBTX) {},
			want:      false,
		},
		{
			name:    "error: database failure",
			eventID: "evt_1",
			setupMock: func(m *repositorymock.MockWebhookEventQueries, db sqlc.DBTX) {
				m.EXPECT().InsertWebhookEvent(ctx, db, "evt_1").Return(int64(0), errors.New("connection refused"))
			},
			expectKind: infra.KindDBFailure,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			mockQueries := repositorymock.NewMockWebhookEventQueries(ctrl)
			mockDB := &mockDBTX{}
			tc.setupMock(mockQueries, mockDB)

			repo := repository.NewWebhookEventRepository(mockQueries, mockDB)
			got, err := repo.Reserve(ctx, tc.eventID)

			if tc.expectKind != "" {
				require.Error(t, err)
				assert.True(t, infra.IsKind(err, tc.expectKind), "expected kind [%v] but got (%v)", tc.expectKind, err)
				assert.False(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

// =============================================================================
// MarkProcessed / Release Tests
// =============================================================================

func TestWebhookEventRepository_MarkProcessed(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	mockQueries := repositorymock.NewMockWebhookEventQueries(ctrl)
	mockDB := &mockDBTX{}
	repo := repository.NewWebhookEventRepository(mockQueries, mockDB)

	mockQueries.EXPECT().UpsertWebhookEventProcessed(ctx, mockDB, "evt_ok").Return(nil)
	assert.NoError(t, repo.MarkProcessed(ctx, "evt_ok"))

	mockQueries.EXPECT().UpsertWebhookEventProcessed(ctx, mockDB, "evt_fail").Return(errors.New("timeout"))
	err := repo.MarkProcessed(ctx, "evt_fail")
	assert.True(t, infra.IsKind(err, infra.KindDBFailure))
}

func TestWebhookEventRepository_Release(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	mockQueries := repositorymock.NewMockWebhookEventQueries(ctrl)
	mockDB := &mockDBTX{}
	repo := repository.NewWebhookEventRepository(mockQueries, mockDB)

	mockQueries.EXPECT().DeleteWebhookEvent(ctx, mockDB, "evt_1").Return(int64(1), nil)
	assert.NoError(t, repo.Release(ctx, "evt_1"))

	mockQueries.EXPECT().DeleteWebhookEvent(ctx, mockDB, "evt_gone").Return(int64(0), nil)
	assert.NoError(t, repo.Release(ctx, "evt_gone"), "releasing an absent id is not an error")

	mockQueries.EXPECT().DeleteWebhookEvent(ctx, mockDB, "evt_2").Return(int64(0), errors.New("broken pipe"))
	assert.Error(t, repo.Release(ctx, "evt_2"))
}

// =============================================================================
// Get / List Tests
// =============================================================================

func TestWebhookEventRepository_Get(t *testing.T) {
	ctx := context.Background()
	created := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	processed := created.Add(3 * time.Second)

	t.Run("success: maps the row", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockQueries := repositorymock.NewMockWebhookEventQueries(ctrl)
		mockDB := &mockDBTX{}
		repo := repository.NewWebhookEventRepository(mockQueries, mockDB)

		mockQueries.EXPECT().GetWebhookEvent(ctx, mockDB, "evt_1").Return(sqlc.WebhookEvents{
			EventID:     "evt_1",
			Processed:   true,
			CreatedAt:   pgconv.TimeToPgtype(created),
			ProcessedAt: pgconv.TimeToPgtype(processed),
		}, nil)

		got, err := repo.Get(ctx, "evt_1")
		require.NoError(t, err)

		want := &webhook.Record{EventID: "evt_1", Processed: true, CreatedAt: created, ProcessedAt: &processed}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("record mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("error: not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockQueries := repositorymock.NewMockWebhookEventQueries(ctrl)
		mockDB := &mockDBTX{}
		repo := repository.NewWebhookEventRepository(mockQueries, mockDB)

		mockQueries.EXPECT().GetWebhookEvent(ctx, mockDB, "evt_x").Return(sqlc.WebhookEvents{}, pgx.ErrNoRows)

		got, err := repo.Get(ctx, "evt_x")
		assert.Nil(t, got)
		assert.True(t, infra.IsKind(err, infra.KindNotFound))
	})
}

func TestWebhookEventRepository_List(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	mockQueries := repositorymock.NewMockWebhookEventQueries(ctrl)
	mockDB := &mockDBTX{}
	repo := repository.NewWebhookEventRepository(mockQueries, mockDB)

	rows := []sqlc.WebhookEvents{
		{EventID: "evt_2", CreatedAt: pgconv.TimeToPgtype(time.Unix(20, 0))},
		{EventID: "evt_1", CreatedAt: pgconv.TimeToPgtype(time.Unix(10, 0)), ProcessedAt: pgtype.Timestamptz{}},
	}
	mockQueries.EXPECT().ListWebhookEvents(ctx, mockDB, int32(2)).Return(rows, nil)
	mockQueries.EXPECT().ListWebhookEvents(ctx, mockDB, int32(math.MaxInt32)).Return(nil, nil)

	got, err := repo.List(ctx, 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "evt_2", got[0].EventID)
	assert.Nil(t, got[1].ProcessedAt)

	all, err := repo.List(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, all)
}
