//go:build unit

package webhook_test

import (
	"encoding/json"
	"testing"
	"time"

	"course-checkout/internal/domain/webhook"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeCheckoutSession(t *testing.T) {
	testCases := []struct {
		name    string
		raw     string
		want    webhook.CheckoutSession
		wantErr bool
	}{
		{
			name: "customer details email",
			raw:  `{"id":"cs_1","payment_status":"paid","customer_details":{"email":" a@example.com "},"metadata":{"productType":"live"}}`,
			want: webhook.CheckoutSession{ID: "cs_1", PaymentStatus: "paid", CustomerEmail: "a@example.com", ProductType: "live"},
		},
		{
			name: "falls back to customer_email",
			raw:  `{"id":"cs_2","payment_status":"unpaid","customer_email":"b@example.com"}`,
			want: webhook.CheckoutSession{ID: "cs_2", PaymentStatus: "unpaid", CustomerEmail: "b@example.com"},
		},
		{name: "empty payload", raw: ``, wantErr: true},
		{name: "not json", raw: `{`, wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := webhook.DecodeCheckoutSession(json.RawMessage(tc.raw))
			if tc.wantErr {
				assert.ErrorIs(t, err, webhook.ErrMalformedSession)
				return
			}
			require.NoError(t, err)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("session mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCheckoutSession_Deliverable(t *testing.T) {
	assert.True(t, webhook.CheckoutSession{PaymentStatus: "paid", CustomerEmail: "a@example.com"}.Deliverable())
	assert.False(t, webhook.CheckoutSession{PaymentStatus: "paid"}.Deliverable())
	assert.False(t, webhook.CheckoutSession{PaymentStatus: "unpaid", CustomerEmail: "a@example.com"}.Deliverable())
}

func TestRecord_State(t *testing.T) {
	var missing *webhook.Record
	assert.Equal(t, webhook.StateAbsent, missing.State())

	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	rec := webhook.NewReservation("evt_1", now)
	assert.Equal(t, webhook.StateReserved, rec.State())
	assert.Nil(t, rec.ProcessedAt)

	done := rec.MarkProcessed(now.Add(time.Second))
	assert.Equal(t, webhook.StateProcessed, done.State())
	require.NotNil(t, done.ProcessedAt)
	assert.Equal(t, now.Add(time.Second), *done.ProcessedAt)
	assert.Equal(t, now, done.CreatedAt)
	assert.False(t, rec.Processed, "MarkProcessed must not mutate the receiver")
}
