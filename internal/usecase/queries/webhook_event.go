package queries

import (
	"context"
	"strings"

	"course-checkout/internal/domain/webhook"
	"course-checkout/internal/infra"
	"course-checkout/internal/pkg/errs"
	"course-checkout/internal/usecase/shared"
)

const (
	DefaultListLimit = 50
	MaxListLimit     = 500
)

type WebhookEventQueries interface {
	GetEvent(ctx context.Context, eventID string) (*WebhookEventView, error)
	ListEvents(ctx context.Context, limit int) ([]WebhookEventView, error)
}

type webhookEventQueriesImpl struct {
	ledger shared.WebhookLedger
}

func NewWebhookEventQueries(ledger shared.WebhookLedger) WebhookEventQueries {
	return &webhookEventQueriesImpl{
		ledger: ledger,
	}
}

func (q *webhookEventQueriesImpl) GetEvent(ctx context.Context, eventID string) (*WebhookEventView, error) {
	eventID = strings.TrimSpace(eventID)
	if eventID == "" {
		return nil, errs.Mark(errs.New("event id is required"), errs.ErrValidation)
	}

	rec, err := q.ledger.Get(ctx, eventID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrEventNotFound
		}
		return nil, errs.Mark(errs.Wrap(err, "failed to load webhook event"), errs.ErrLedgerUnavailable)
	}

	view := toWebhookEventView(*rec)
	return &view, nil
}

// ListEvents returns the newest records first. Limits outside 1..MaxListLimit
// are clamped.
func (q *webhookEventQueriesImpl) ListEvents(ctx context.Context, limit int) ([]WebhookEventView, error) {
	switch {
	case limit <= 0:
		limit = DefaultListLimit
	case limit > MaxListLimit:
		limit = MaxListLimit
	}

	recs, err := q.ledger.List(ctx, limit)
	if err != nil {
		return nil, errs.Mark(errs.Wrap(err, "failed to list webhook events"), errs.ErrLedgerUnavailable)
	}

	views := make([]WebhookEventView, 0, len(recs))
	for _, r := range recs {
		views = append(views, toWebhookEventView(r))
	}
	return views, nil
}

func toWebhookEventView(r webhook.Record) WebhookEventView {
	return WebhookEventView{
		EventID:     r.EventID,
		State:       string(r.State()),
		Processed:   r.Processed,
		CreatedAt:   r.CreatedAt,
		ProcessedAt: r.ProcessedAt,
	}
}
