package queries

import "time"

// WebhookEventView is the operator's view of one ledger record
type WebhookEventView struct {
	EventID     string     `json:"eventId"`
	State       string     `json:"state"`
	Processed   bool       `json:"processed"`
	CreatedAt   time.Time  `json:"createdAt"`
	ProcessedAt *time.Time `json:"processedAt,omitempty"`
}

// CheckoutSessionView is what the success page needs to greet the buyer
type CheckoutSessionView struct {
	ID            string `json:"id"`
	PaymentStatus string `json:"paymentStatus"`
	CustomerEmail string `json:"customerEmail"`
	ProductType   string `json:"productType"`
}
