//go:build unit || e2e

package builder

import (
	"encoding/json"
	"fmt"
	"time"

	reqdto "course-checkout/internal/handler/dto/request"
	"course-checkout/internal/usecase/queries"

	"github.com/stripe/stripe-go/v76/webhook"
)

type CheckoutBuilder struct {
	SuccessURL  string
	CancelURL   string
	ProductType string
}

func NewCheckoutBuilder() *CheckoutBuilder {
	return &CheckoutBuilder{
		SuccessURL:  "https://kurs.example.com/checkout/success",
		CancelURL:   "https://kurs.example.com/",
		ProductType: "live",
	}
}

func (b *CheckoutBuilder) WithOrigin(origin string) *CheckoutBuilder {
	b.SuccessURL = origin + "/checkout/success"
	b.CancelURL = origin + "/"
	return b
}

func (b *CheckoutBuilder) WithProductType(productType string) *CheckoutBuilder {
	b.ProductType = productType
	return b
}

func (b *CheckoutBuilder) BuildDTO() reqdto.CreateCheckoutRequest {
	return reqdto.CreateCheckoutRequest{
		SuccessURL:  b.SuccessURL,
		CancelURL:   b.CancelURL,
		ProductType: b.ProductType,
	}
}

type SessionBuilder struct {
	ID            string
	PaymentStatus string
	CustomerEmail string
	ProductType   string
}

func NewSessionBuilder() *SessionBuilder {
	return &SessionBuilder{
		ID:            "cs_test_a1",
		PaymentStatus: "paid",
		CustomerEmail: "buyer@example.com",
		ProductType:   "live",
	}
}

func (b *SessionBuilder) WithID(id string) *SessionBuilder {
	b.ID = id
	return b
}

func (b *SessionBuilder) WithPaymentStatus(status string) *SessionBuilder {
	b.PaymentStatus = status
	return b
}

func (b *SessionBuilder) WithCustomerEmail(email string) *SessionBuilder {
	b.CustomerEmail = email
	return b
}

func (b *SessionBuilder) BuildView() *queries.CheckoutSessionView {
	return &queries.CheckoutSessionView{
		ID:            b.ID,
		PaymentStatus: b.PaymentStatus,
		CustomerEmail: b.CustomerEmail,
		ProductType:   b.ProductType,
	}
}

// BuildEventPayload renders a checkout.session.completed event as Stripe posts it.
func (b *SessionBuilder) BuildEventPayload(eventID string) []byte {
	object := map[string]any{
		"id":             b.ID,
		"object":         "checkout.session",
		"payment_status": b.PaymentStatus,
		"customer_details": map[string]any{
			"email": b.CustomerEmail,
		},
		"metadata": map[string]string{"productType": b.ProductType},
	}
	payload, err := json.Marshal(map[string]any{
		"id":          eventID,
		"object":      "event",
		"type":        "checkout.session.completed",
		"api_version": "2023-10-16",
		"data":        map[string]any{"object": object},
	})
	if err != nil {
		panic(fmt.Sprintf("marshal event payload: %v", err))
	}
	return payload
}

// SignStripePayload returns the stripe-signature header for payload.
func SignStripePayload(payload []byte, secret string) string {
	signed := webhook.GenerateTestSignedPayload(&webhook.UnsignedPayload{
		Payload:   payload,
		Secret:    secret,
		Timestamp: time.Now(),
	})
	return signed.Header
}
