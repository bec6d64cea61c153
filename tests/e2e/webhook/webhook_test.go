//go:build e2e

package webhook_test

import (
	"encoding/json"
	"net/http"
	"sync"
	"testing"

	resdto "course-checkout/internal/handler/dto/response"
	"course-checkout/tests/common/authtest"
	"course-checkout/tests/common/builder"
	"course-checkout/tests/common/dbtest"
	"course-checkout/tests/common/httptest"
	"course-checkout/tests/e2e"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	webhookURL     = "/api/webhook/stripe"
	adminEventsURL = "/api/admin/webhook-events"
)

type WebhookSuite struct {
	e2e.SharedSuite
}

func TestWebhookSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(WebhookSuite))
}

func (s *WebhookSuite) deliver(payload []byte) (int, resdto.WebhookAckResponse) {
	t := s.T()
	sig := builder.SignStripePayload(payload, s.Config.Stripe.WebhookSecret)
	w := httptest.PerformRawRequest(t, s.Router, http.MethodPost, webhookURL, payload,
		map[string]string{"stripe-signature": sig, "Content-Type": "application/json"})

	var ack resdto.WebhookAckResponse
	if w.Code == http.StatusOK {
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &ack))
	}
	return w.Code, ack
}

// =============================================================================
// Delivery
// =============================================================================

func (s *WebhookSuite) TestDelivery() {
	s.Run("Normal case: paid session is processed once", func() {
		t := s.T()
		payload := builder.NewSessionBuilder().BuildEventPayload("evt_e2e_1")

		code, ack := s.deliver(payload)
		require.Equal(t, http.StatusOK, code)
		require.True(t, ack.OK)
		require.False(t, ack.Duplicate)

		processed, found := dbtest.WebhookEventProcessed(t, s.DB, "evt_e2e_1")
		require.True(t, found)
		require.True(t, processed)

		code, ack = s.deliver(payload)
		require.Equal(t, http.StatusOK, code)
		require.True(t, ack.Duplicate, "redelivery must be reported as duplicate")
	})

	s.Run("Normal case: unpaid session is recorded without e-mail", func() {
		t := s.T()
		payload := builder.NewSessionBuilder().WithPaymentStatus("unpaid").BuildEventPayload("evt_e2e_unpaid")

		code, ack := s.deliver(payload)
		require.Equal(t, http.StatusOK, code)
		require.False(t, ack.Duplicate)

		processed, found := dbtest.WebhookEventProcessed(t, s.DB, "evt_e2e_unpaid")
		require.True(t, found)
		require.True(t, processed)
	})

	s.Run("Normal case: concurrent redeliveries process exactly once", func() {
		t := s.T()
		payload := builder.NewSessionBuilder().BuildEventPayload("evt_e2e_race")

		const n = 8
		var (
			wg         sync.WaitGroup
			mu         sync.Mutex
			firsts     int
			duplicates int
		)
		for range n {
			wg.Add(1)
			go func() {
				defer wg.Done()
				sig := builder.SignStripePayload(payload, s.Config.Stripe.WebhookSecret)
				w := httptest.PerformRawRequest(t, s.Router, http.MethodPost, webhookURL, payload,
					map[string]string{"stripe-signature": sig})
				if w.Code != http.StatusOK {
					return
				}
				var ack resdto.WebhookAckResponse
				if err := json.Unmarshal(w.Body.Bytes(), &ack); err != nil {
					return
				}
				mu.Lock()
				defer mu.Unlock()
				if ack.Duplicate {
					duplicates++
				} else {
					firsts++
				}
			}()
		}
		wg.Wait()

		require.Equal(t, 1, firsts)
		require.Equal(t, n-1, duplicates)
	})

	s.Run("Error case: tampered payload is rejected", func() {
		t := s.T()
		payload := builder.NewSessionBuilder().BuildEventPayload("evt_e2e_tampered")
		sig := builder.SignStripePayload(payload, s.Config.Stripe.WebhookSecret)
		tampered := builder.NewSessionBuilder().WithCustomerEmail("mallory@example.com").BuildEventPayload("evt_e2e_tampered")

		w := httptest.PerformRawRequest(t, s.Router, http.MethodPost, webhookURL, tampered,
			map[string]string{"stripe-signature": sig})

		httptest.AssertErrorResponse(t, w, http.StatusBadRequest, "Invalid webhook signature")
		_, found := dbtest.WebhookEventProcessed(t, s.DB, "evt_e2e_tampered")
		require.False(t, found, "rejected event must not reach the ledger")
	})
}

// =============================================================================
// Admin ledger API
// =============================================================================

func (s *WebhookSuite) TestAdminLedger() {
	s.Run("Normal case: release makes a processed event eligible again", func() {
		t := s.T()
		token := authtest.NewJWTHelper(s.Config.Admin).AdminToken(t)
		payload := builder.NewSessionBuilder().BuildEventPayload("evt_e2e_release")

		code, _ := s.deliver(payload)
		require.Equal(t, http.StatusOK, code)

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, adminEventsURL+"/evt_e2e_release", nil, token)
		var ev resdto.WebhookEventResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &ev)
		require.Equal(t, "processed", ev.State)

		w = httptest.PerformRequest(t, s.Router, http.MethodDelete, adminEventsURL+"/evt_e2e_release", nil, token)
		require.Equal(t, http.StatusNoContent, w.Code, w.Body.String())

		_, found := dbtest.WebhookEventProcessed(t, s.DB, "evt_e2e_release")
		require.False(t, found)

		code, ack := s.deliver(payload)
		require.Equal(t, http.StatusOK, code)
		require.False(t, ack.Duplicate)
	})

	s.Run("Normal case: list returns newest first", func() {
		t := s.T()
		token := authtest.NewJWTHelper(s.Config.Admin).AdminToken(t)
		dbtest.CreateWebhookEvent(t, s.DB, "evt_old", true)
		dbtest.CreateWebhookEvent(t, s.DB, "evt_new", false)

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, adminEventsURL+"?limit=1", nil, token)
		var list []resdto.WebhookEventResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &list)
		require.Len(t, list, 1)
		require.Equal(t, "evt_new", list[0].EventID)
		require.Equal(t, "reserved", list[0].State)
	})

	s.Run("Error case: non-admin token is forbidden", func() {
		t := s.T()
		token := authtest.NewJWTHelper(s.Config.Admin).GenerateToken(t, "buyer@example.com")

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, adminEventsURL, nil, token)

		httptest.AssertErrorResponse(t, w, http.StatusForbidden, "Insufficient permissions")
	})

	s.Run("Error case: missing token is unauthorized", func() {
		t := s.T()

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, adminEventsURL, nil, "")

		httptest.AssertErrorResponse(t, w, http.StatusUnauthorized, "Access token required")
	})

	s.Run("Error case: unknown event is 404", func() {
		t := s.T()
		token := authtest.NewJWTHelper(s.Config.Admin).AdminToken(t)

		w := httptest.PerformRequest(t, s.Router, http.MethodDelete, adminEventsURL+"/evt_nope", nil, token)

		httptest.AssertErrorResponse(t, w, http.StatusNotFound, "Webhook event not found")
	})
}
