package shared

import (
	"context"
	"time"

	"course-checkout/internal/domain/product"
	"course-checkout/internal/domain/ratelimit"
	"course-checkout/internal/domain/webhook"
)

// RateLimitStore counts requests per key in fixed windows. Implementations
// must admit or reject atomically with respect to other callers on the same key.
type RateLimitStore interface {
	Hit(ctx context.Context, key string, now time.Time, policy ratelimit.Policy) (ratelimit.Decision, error)
}

// WebhookLedger records which provider events were already handled.
//   - Reserve: true iff the caller moved eventID from absent to reserved
//   - MarkProcessed: reserved (or absent) to processed
//   - Release: back to absent so a redelivery can reserve again
type WebhookLedger interface {
	Reserve(ctx context.Context, eventID string) (bool, error)
	MarkProcessed(ctx context.Context, eventID string) error
	Release(ctx context.Context, eventID string) error
	Get(ctx context.Context, eventID string) (*webhook.Record, error)
	List(ctx context.Context, limit int) ([]webhook.Record, error)
}

type EventVerifier interface {
	Verify(payload []byte, signature string) (webhook.Event, error)
}

type WelcomeEmail struct {
	To        string
	SessionID string
	MagicLink string
	Product   product.Course
}

type Mailer interface {
	SendWelcome(ctx context.Context, msg WelcomeEmail) error
}

type CheckoutParams struct {
	PriceID    string
	SuccessURL string
	CancelURL  string
	Product    product.Course
}

// CheckoutGateway is the payment provider's checkout API. LookupPrice returns
// "" without error when no active price carries the lookup key; GetSession
// returns errs.ErrSessionNotFound for unknown ids.
type CheckoutGateway interface {
	LookupPrice(ctx context.Context, lookupKey string) (string, error)
	CreateSession(ctx context.Context, params CheckoutParams) (string, error)
	GetSession(ctx context.Context, sessionID string) (webhook.CheckoutSession, error)
}

// Metrics is the subset of instrumentation the use cases report to.
type Metrics interface {
	RateLimitDecision(purpose string, admitted bool)
	RateLimitFallback()
	WebhookOutcome(status webhook.Status)
	WebhookFailure(stage string)
	LedgerOperation(op string, err error)
}

type NopMetrics struct{}

func (NopMetrics) RateLimitDecision(string, bool) {}
func (NopMetrics) RateLimitFallback() {}
func (NopMetrics) WebhookOutcome(webhook.Status) {}
func (NopMetrics) WebhookFailure(string) {}
func (NopMetrics) LedgerOperation(string, error) {}
