package queries

import (
	"context"
	"strings"

	"course-checkout/internal/pkg/errs"
	"course-checkout/internal/usecase/shared"
)

type CheckoutSessionQueries interface {
	GetSession(ctx context.Context, sessionID string) (*CheckoutSessionView, error)
}

type checkoutSessionQueriesImpl struct {
	gateway shared.CheckoutGateway
}

func NewCheckoutSessionQueries(gateway shared.CheckoutGateway) CheckoutSessionQueries {
	return &checkoutSessionQueriesImpl{
		gateway: gateway,
	}
}

func (q *checkoutSessionQueriesImpl) GetSession(ctx context.Context, sessionID string) (*CheckoutSessionView, error) {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return nil, errs.Mark(errs.New("session id is required"), errs.ErrValidation)
	}

	session, err := q.gateway.GetSession(ctx, sessionID)
	if err != nil {
		if errs.Is(err, errs.ErrSessionNotFound) {
			return nil, errs.ErrSessionNotFound
		}
		return nil, errs.Wrap(err, "failed to retrieve checkout session")
	}

	return &CheckoutSessionView{
		ID:            session.ID,
		PaymentStatus: session.PaymentStatus,
		CustomerEmail: session.CustomerEmail,
		ProductType:   session.ProductType,
	}, nil
}
