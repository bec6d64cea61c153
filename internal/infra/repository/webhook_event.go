package repository

import (
	"context"
	"math"

	"course-checkout/internal/domain/webhook"
	"course-checkout/internal/infra"
	"course-checkout/internal/infra/sqlc"
	"course-checkout/internal/pkg/pgconv"
)

type WebhookEventQueries interface {
	InsertWebhookEvent(ctx context.Context, db sqlc.DBTX, eventID string) (int64, error)
	UpsertWebhookEventProcessed(ctx context.Context, db sqlc.DBTX, eventID string) error
	DeleteWebhookEvent(ctx context.Context, db sqlc.DBTX, eventID string) (int64, error)
	GetWebhookEvent(ctx context.Context, db sqlc.DBTX, eventID string) (sqlc.WebhookEvents, error)
	ListWebhookEvents(ctx context.Context, db sqlc.DBTX, limit int32) ([]sqlc.WebhookEvents, error)
}

// WebhookEventRepository is the durable ledger. The primary key on event_id is
// the only cross-instance guard against double processing.
type WebhookEventRepository struct {
	queries WebhookEventQueries
	db      sqlc.DBTX
}

func NewWebhookEventRepository(queries WebhookEventQueries, db sqlc.DBTX) *WebhookEventRepository {
	return &WebhookEventRepository{
		queries: queries,
		db:      db,
	}
}

func (r *WebhookEventRepository) Reserve(ctx context.Context, eventID string) (bool, error) {
	if eventID == "" {
		return false, nil
	}
	inserted, err := r.queries.InsertWebhookEvent(ctx, r.db, eventID)
	if err != nil {
		return false, infra.WrapRepoErr("failed to reserve webhook event", err)
	}
	return inserted > 0, nil
}

func (r *WebhookEventRepository) MarkProcessed(ctx context.Context, eventID string) error {
	if eventID == "" {
		return nil
	}
	if err := r.queries.UpsertWebhookEventProcessed(ctx, r.db, eventID); err != nil {
		return infra.WrapRepoErr("failed to mark webhook event processed", err)
	}
	return nil
}

func (r *WebhookEventRepository) Release(ctx context.Context, eventID string) error {
	if eventID == "" {
		return nil
	}
	if _, err := r.queries.DeleteWebhookEvent(ctx, r.db, eventID); err != nil {
		return infra.WrapRepoErr("failed to release webhook event", err)
	}
	return nil
}

func (r *WebhookEventRepository) Get(ctx context.Context, eventID string) (*webhook.Record, error) {
	row, err := r.queries.GetWebhookEvent(ctx, r.db, eventID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to get webhook event", err)
	}
	rec := toWebhookRecord(row)
	return &rec, nil
}

// List returns up to limit records, newest first. limit <= 0 returns all.
func (r *WebhookEventRepository) List(ctx context.Context, limit int) ([]webhook.Record, error) {
	if limit <= 0 || limit > math.MaxInt32 {
		limit = math.MaxInt32
	}
	rows, err := r.queries.ListWebhookEvents(ctx, r.db, int32(limit))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list webhook events", err)
	}
	records := make([]webhook.Record, 0, len(rows))
	for _, row := range rows {
		records = append(records, toWebhookRecord(row))
	}
	return records, nil
}

func toWebhookRecord(row sqlc.WebhookEvents) webhook.Record {
	return webhook.Record{
		EventID:     row.EventID,
		Processed:   row.Processed,
		CreatedAt:   pgconv.TimeFromPgtype(row.CreatedAt),
		ProcessedAt: pgconv.TimePtrFromPgtype(row.ProcessedAt),
	}
}
