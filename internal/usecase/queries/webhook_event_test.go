//go:build unit

package queries_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"course-checkout/internal/domain/webhook"
	"course-checkout/internal/infra"
	"course-checkout/internal/pkg/errs"
	"course-checkout/internal/usecase/queries"
	sharedmock "course-checkout/tests/mock/shared"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestGetEvent(t *testing.T) {
	created := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	processed := webhook.NewReservation("evt_1", created).MarkProcessed(created.Add(2 * time.Second))

	testCases := []struct {
		name    string
		id      string
		setup   func(m *sharedmock.MockWebhookLedger)
		want    *queries.WebhookEventView
		wantErr error
	}{
		{
			name: "processed",
			id:   "evt_1",
			setup: func(m *sharedmock.MockWebhookLedger) {
				m.EXPECT().Get(gomock.Any(), "evt_1").Return(&processed, nil)
			},
			want: &queries.WebhookEventView{
				EventID:     "evt_1",
				State:       "processed",
				Processed:   true,
				CreatedAt:   created,
				ProcessedAt: processed.ProcessedAt,
			},
		},
		{
			name: "not found",
			id:   "evt_missing",
			setup: func(m *sharedmock.MockWebhookLedger) {
				m.EXPECT().Get(gomock.Any(), "evt_missing").Return(nil, infra.NewRepoErr(infra.KindNotFound, "webhook event", nil))
			},
			wantErr: errs.ErrEventNotFound,
		},
		{
			name: "storage failure",
			id:   "evt_1",
			setup: func(m *sharedmock.MockWebhookLedger) {
				m.EXPECT().Get(gomock.Any(), "evt_1").Return(nil, errors.New("connection refused"))
			},
			wantErr: errs.ErrLedgerUnavailable,
		},
		{
			name:    "blank id",
			id:      "  ",
			setup:   func(*sharedmock.MockWebhookLedger) {},
			wantErr: errs.ErrValidation,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			ledger := sharedmock.NewMockWebhookLedger(ctrl)
			tc.setup(ledger)

			got, err := queries.NewWebhookEventQueries(ledger).GetEvent(context.Background(), tc.id)

			if tc.wantErr != nil {
				assert.True(t, errs.Is(err, tc.wantErr), "got %v", err)
				return
			}
			require.NoError(t, err)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("GetEvent mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestListEvents_ClampsLimit(t *testing.T) {
	testCases := []struct {
		in   int
		want int
	}{
		{in: 0, want: queries.DefaultListLimit},
		{in: -3, want: queries.DefaultListLimit},
		{in: 10, want: 10},
		{in: 10_000, want: queries.MaxListLimit},
	}

	for _, tc := range testCases {
		ctrl := gomock.NewController(t)
		ledger := sharedmock.NewMockWebhookLedger(ctrl)
		ledger.EXPECT().List(gomock.Any(), tc.want).Return([]webhook.Record{
			webhook.NewReservation("evt_b", time.Unix(20, 0)),
			webhook.NewReservation("evt_a", time.Unix(10, 0)),
		}, nil)

		got, err := queries.NewWebhookEventQueries(ledger).ListEvents(context.Background(), tc.in)

		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "evt_b", got[0].EventID)
		assert.Equal(t, "reserved", got[0].State)
	}
}
