package payment

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	domainwebhook "course-checkout/internal/domain/webhook"
	"course-checkout/internal/pkg/config"
	"course-checkout/internal/pkg/errs"
	"course-checkout/internal/usecase/shared"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
)

// Gateway talks to Stripe Checkout through an isolated client, so the
// package-level stripe.Key is never set.
type Gateway struct {
	api    *client.API
	logger *slog.Logger
}

// NewGateway builds a client for cfg.SecretKey. backends may be nil for the
// default Stripe endpoints.
func NewGateway(cfg config.StripeConfig, backends *stripe.Backends, logger *slog.Logger) *Gateway {
	api := &client.API{}
	api.Init(cfg.SecretKey, backends)
	return &Gateway{api: api, logger: logger}
}

func (g *Gateway) LookupPrice(ctx context.Context, lookupKey string) (string, error) {
	params := &stripe.PriceListParams{
		LookupKeys: stripe.StringSlice([]string{lookupKey}),
		Active:     stripe.Bool(true),
	}
	params.Context = ctx
	params.Limit = stripe.Int64(1)

	it := g.api.Prices.List(params)
	if it.Next() {
		return it.Price().ID, nil
	}
	if err := it.Err(); err != nil {
		return "", errs.Wrapf(err, "stripe: list prices for lookup key %q", lookupKey)
	}
	return "", nil
}

func (g *Gateway) CreateSession(ctx context.Context, p shared.CheckoutParams) (string, error) {
	params := &stripe.CheckoutSessionParams{
		Mode: stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{Price: stripe.String(p.PriceID), Quantity: stripe.Int64(1)},
		},
		SuccessURL:          stripe.String(p.SuccessURL),
		CancelURL:           stripe.String(p.CancelURL),
		AllowPromotionCodes: stripe.Bool(false),
		CustomerCreation:    stripe.String(string(stripe.CheckoutSessionCustomerCreationAlways)),
		PaymentIntentData: &stripe.CheckoutSessionPaymentIntentDataParams{
			SetupFutureUsage: stripe.String(string(stripe.PaymentIntentSetupFutureUsageOnSession)),
		},
	}
	params.Context = ctx
	params.AddMetadata("productType", p.Product.String())

	s, err := g.api.CheckoutSessions.New(params)
	if err != nil {
		return "", errs.Wrap(err, "stripe: create checkout session")
	}
	if s.URL == "" {
		return "", errs.Newf("stripe: checkout session %s has no url", s.ID)
	}

	g.logger.InfoContext(ctx, "Checkout session created", "session_id", s.ID, "product", p.Product)
	return s.URL, nil
}

func (g *Gateway) GetSession(ctx context.Context, id string) (domainwebhook.CheckoutSession, error) {
	params := &stripe.CheckoutSessionParams{}
	params.Context = ctx

	s, err := g.api.CheckoutSessions.Get(id, params)
	if err != nil {
		var stripeErr *stripe.Error
		if errors.As(err, &stripeErr) &&
			(stripeErr.HTTPStatusCode == http.StatusNotFound || stripeErr.Code == stripe.ErrorCodeResourceMissing) {
			return domainwebhook.CheckoutSession{}, errs.Mark(errs.Wrapf(err, "stripe: session %s", id), errs.ErrSessionNotFound)
		}
		return domainwebhook.CheckoutSession{}, errs.Wrapf(err, "stripe: retrieve session %s", id)
	}

	return toCheckoutSession(s), nil
}

func toCheckoutSession(s *stripe.CheckoutSession) domainwebhook.CheckoutSession {
	out := domainwebhook.CheckoutSession{
		ID:            s.ID,
		PaymentStatus: string(s.PaymentStatus),
		CustomerEmail: s.CustomerEmail,
		ProductType:   s.Metadata["productType"],
	}
	if s.CustomerDetails != nil && s.CustomerDetails.Email != "" {
		out.CustomerEmail = s.CustomerDetails.Email
	}
	return out
}
