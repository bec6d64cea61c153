package commands

import (
	"context"
	"log/slog"
	"net/url"
	"time"

	"course-checkout/internal/domain/product"
	"course-checkout/internal/domain/webhook"
	"course-checkout/internal/infra"
	"course-checkout/internal/pkg/config"
	"course-checkout/internal/pkg/errs"
	"course-checkout/internal/usecase/shared"
)

// ledgerWriteTimeout bounds ledger writes that run after the request context
// may already be gone.
const ledgerWriteTimeout = 5 * time.Second

type WebhookCommands interface {
	HandleEvent(ctx context.Context, evt webhook.Event) (*webhook.Result, error)
	ReleaseEvent(ctx context.Context, eventID string) error
}

type webhookUseCaseImpl struct {
	ledger            shared.WebhookLedger
	mailer            shared.Mailer
	metrics           shared.Metrics
	logger            *slog.Logger
	publicURL         string
	sideEffectTimeout time.Duration
}

func NewWebhookUseCase(ledger shared.WebhookLedger, mailer shared.Mailer, metrics shared.Metrics, logger *slog.Logger, cfg config.Config) WebhookCommands {
	return &webhookUseCaseImpl{
		ledger:            ledger,
		mailer:            mailer,
		metrics:           metrics,
		logger:            logger,
		publicURL:         cfg.App.PublicURL(),
		sideEffectTimeout: cfg.Webhook.SideEffectTimeout,
	}
}

// HandleEvent processes one verified event at most once per event id.
//
// The event is reserved before the welcome e-mail is sent and marked processed
// afterwards. Any failure after a successful reservation releases it again so
// the provider's retry can reserve anew; the returned error must reach the
// provider as a 5xx.
func (uc *webhookUseCaseImpl) HandleEvent(ctx context.Context, evt webhook.Event) (*webhook.Result, error) {
	result := &webhook.Result{EventID: evt.ID, Type: evt.Type}
	log := uc.logger.With("event_id", evt.ID, "event_type", evt.Type)

	if !evt.IsCheckoutCompleted() {
		log.InfoContext(ctx, "Unhandled event type")
		return uc.finish(result, webhook.StatusIgnored), nil
	}

	session, err := webhook.DecodeCheckoutSession(evt.Data)
	if err != nil {
		return nil, errs.Mark(errs.Wrap(err, "failed to decode checkout session"), errs.ErrValidation)
	}
	log = log.With("session_id", session.ID)

	reserved, err := uc.ledger.Reserve(ctx, evt.ID)
	uc.metrics.LedgerOperation("reserve", err)
	if err != nil {
		uc.metrics.WebhookFailure("reserve")
		return nil, errs.Mark(errs.Wrap(err, "failed to reserve webhook event"), errs.ErrLedgerUnavailable)
	}
	if !reserved {
		log.InfoContext(ctx, "Duplicate webhook ignored")
		return uc.finish(result, webhook.StatusDuplicate), nil
	}

	if !session.Deliverable() {
		log.WarnContext(ctx, "Session not deliverable, skipping email",
			"payment_status", session.PaymentStatus,
			"has_email", session.CustomerEmail != "",
		)
		if err := uc.markProcessed(ctx, evt.ID); err != nil {
			uc.release(ctx, evt.ID, log)
			uc.metrics.WebhookFailure("mark_processed")
			return nil, err
		}
		return uc.finish(result, webhook.StatusSkipped), nil
	}

	if err := uc.sendWelcome(ctx, session); err != nil {
		uc.release(ctx, evt.ID, log)
		uc.metrics.WebhookFailure("side_effect")
		log.ErrorContext(ctx, "Welcome email failed, reservation released", "error", err)
		return nil, errs.Mark(errs.Wrap(err, "failed to send welcome email"), errs.ErrSideEffectFailed)
	}

	if err := uc.markProcessed(ctx, evt.ID); err != nil {
		// a redelivery will send the e-mail a second time
		uc.release(ctx, evt.ID, log)
		uc.metrics.WebhookFailure("mark_processed")
		log.ErrorContext(ctx, "Failed to mark webhook processed after email", "email_sent", true, "error", err)
		return nil, err
	}

	log.InfoContext(ctx, "Welcome email sent", "email", session.CustomerEmail)
	return uc.finish(result, webhook.StatusProcessed), nil
}

// ReleaseEvent hands a stuck event back so the provider's next redelivery is
// processed. Releasing a processed event makes it eligible again as well.
func (uc *webhookUseCaseImpl) ReleaseEvent(ctx context.Context, eventID string) error {
	rec, err := uc.ledger.Get(ctx, eventID)
	uc.metrics.LedgerOperation("get", err)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return errs.ErrEventNotFound
		}
		return errs.Mark(errs.Wrap(err, "failed to load webhook event"), errs.ErrLedgerUnavailable)
	}

	err = uc.ledger.Release(ctx, eventID)
	uc.metrics.LedgerOperation("release", err)
	if err != nil {
		return errs.Mark(errs.Wrap(err, "failed to release webhook event"), errs.ErrLedgerUnavailable)
	}

	uc.logger.WarnContext(ctx, "Webhook event released by operator", "event_id", eventID, "state", rec.State())
	return nil
}

func (uc *webhookUseCaseImpl) sendWelcome(ctx context.Context, session webhook.CheckoutSession) error {
	sendCtx, cancel := context.WithTimeout(ctx, uc.sideEffectTimeout)
	defer cancel()

	course, err := product.Parse(session.ProductType)
	if err != nil {
		course = product.Default
	}

	return uc.mailer.SendWelcome(sendCtx, shared.WelcomeEmail{
		To:        session.CustomerEmail,
		SessionID: session.ID,
		MagicLink: uc.magicLink(session.ID),
		Product:   course,
	})
}

// markProcessed runs detached from ctx's cancellation: once the outcome is
// known, a client that went away must not turn it into a release.
func (uc *webhookUseCaseImpl) markProcessed(ctx context.Context, eventID string) error {
	markCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), ledgerWriteTimeout)
	defer cancel()

	err := uc.ledger.MarkProcessed(markCtx, eventID)
	uc.metrics.LedgerOperation("mark_processed", err)
	if err != nil {
		return errs.Mark(errs.Wrap(err, "failed to mark webhook event processed"), errs.ErrLedgerUnavailable)
	}
	return nil
}

// release runs detached from ctx's cancellation: a request whose client went
// away must still hand the event back.
func (uc *webhookUseCaseImpl) release(ctx context.Context, eventID string, log *slog.Logger) {
	relCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), ledgerWriteTimeout)
	defer cancel()

	err := uc.ledger.Release(relCtx, eventID)
	uc.metrics.LedgerOperation("release", err)
	if err != nil {
		log.ErrorContext(ctx, "Failed to release webhook reservation; event stays reserved until released by an operator", "error", err)
	}
}

func (uc *webhookUseCaseImpl) magicLink(sessionID string) string {
	return uc.publicURL + "/checkout/success?session_id=" + url.QueryEscape(sessionID)
}

func (uc *webhookUseCaseImpl) finish(result *webhook.Result, status webhook.Status) *webhook.Result {
	result.Status = status
	uc.metrics.WebhookOutcome(status)
	return result
}
