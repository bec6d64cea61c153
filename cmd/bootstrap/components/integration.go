package components

import (
	"log/slog"

	"course-checkout/internal/infra/mail"
	"course-checkout/internal/infra/payment"
	"course-checkout/internal/pkg/clock"
	"course-checkout/internal/pkg/config"
	"course-checkout/internal/usecase/shared"

	"go.uber.org/fx"
)

var IntegrationModule = fx.Module("integration",
	fx.Provide(
		NewEventVerifier,
		NewCheckoutGateway,
		NewMailer,
	),
)

func NewEventVerifier(cfg config.Config, logger *slog.Logger) shared.EventVerifier {
	if cfg.Stripe.WebhookSecret == "" {
		logger.Warn("STRIPE_WEBHOOK_SECRET not set, webhooks will be rejected")
	}
	return payment.NewVerifier(cfg.Stripe)
}

func NewCheckoutGateway(cfg config.Config, logger *slog.Logger) shared.CheckoutGateway {
	if cfg.Stripe.SecretKey == "" {
		logger.Warn("STRIPE_SECRET_KEY not set, checkout only works in dev mode")
	}
	return payment.NewGateway(cfg.Stripe, nil, logger)
}

func NewMailer(cfg config.Config, clk clock.Clock, logger *slog.Logger) shared.Mailer {
	return mail.NewMailer(cfg.Mail, clk, logger)
}
