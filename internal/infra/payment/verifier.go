package payment

import (
	"strings"

	domainwebhook "course-checkout/internal/domain/webhook"
	"course-checkout/internal/pkg/config"
	"course-checkout/internal/pkg/errs"

	"github.com/stripe/stripe-go/v76/webhook"
)

// Verifier checks the stripe-signature header against the endpoint secret.
type Verifier struct {
	secret           string
	ignoreAPIVersion bool
}

func NewVerifier(cfg config.StripeConfig) *Verifier {
	return &Verifier{
		secret:           strings.TrimSpace(cfg.WebhookSecret),
		ignoreAPIVersion: cfg.IgnoreAPIVersion,
	}
}

func (v *Verifier) Verify(payload []byte, signature string) (domainwebhook.Event, error) {
	if v.secret == "" {
		return domainwebhook.Event{}, errs.ErrWebhookNotConfigured
	}
	if strings.TrimSpace(signature) == "" {
		return domainwebhook.Event{}, errs.ErrMissingSignature
	}

	evt, err := webhook.ConstructEventWithOptions(payload, signature, v.secret, webhook.ConstructEventOptions{
		IgnoreAPIVersionMismatch: v.ignoreAPIVersion,
	})
	if err != nil {
		return domainwebhook.Event{}, errs.Mark(err, errs.ErrInvalidSignature)
	}

	out := domainwebhook.Event{ID: evt.ID, Type: string(evt.Type)}
	if evt.Data != nil {
		out.Data = evt.Data.Raw
	}
	return out, nil
}
