package webhook

import (
	"encoding/json"
	"errors"
	"strings"
)

const TypeCheckoutSessionCompleted = "checkout.session.completed"

const PaymentStatusPaid = "paid"

var ErrMalformedSession = errors.New("malformed checkout session payload")

// Event is a provider callback whose signature has already been checked.
// Data holds the raw data.object payload.
type Event struct {
	ID   string
	Type string
	Data json.RawMessage
}

func (e Event) IsCheckoutCompleted() bool {
	return e.Type == TypeCheckoutSessionCompleted
}

type CheckoutSession struct {
	ID            string
	PaymentStatus string
	CustomerEmail string
	ProductType   string
}

func (s CheckoutSession) Paid() bool {
	return s.PaymentStatus == PaymentStatusPaid
}

// Deliverable reports whether the session warrants a welcome e-mail.
func (s CheckoutSession) Deliverable() bool {
	return s.Paid() && s.CustomerEmail != ""
}

type sessionPayload struct {
	ID              string `json:"id"`
	PaymentStatus   string `json:"payment_status"`
	CustomerEmail   string `json:"customer_email"`
	CustomerDetails *struct {
		Email string `json:"email"`
	} `json:"customer_details"`
	Metadata map[string]string `json:"metadata"`
}

// DecodeCheckoutSession reads the fields the handler needs from a checkout
// session object. customer_details.email wins over customer_email.
func DecodeCheckoutSession(raw json.RawMessage) (CheckoutSession, error) {
	if len(raw) == 0 {
		return CheckoutSession{}, ErrMalformedSession
	}
	var p sessionPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return CheckoutSession{}, errors.Join(ErrMalformedSession, err)
	}

	email := p.CustomerEmail
	if p.CustomerDetails != nil && p.CustomerDetails.Email != "" {
		email = p.CustomerDetails.Email
	}

	return CheckoutSession{
		ID:            p.ID,
		PaymentStatus: p.PaymentStatus,
		CustomerEmail: strings.TrimSpace(email),
		ProductType:   p.Metadata["productType"],
	}, nil
}
