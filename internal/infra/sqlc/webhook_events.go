package sqlc

import (
	"context"
)

const deleteWebhookEvent = `-- name: DeleteWebhookEvent :execrows
DELETE FROM webhook_events WHERE event_id = $1
`

func (q *Queries) DeleteWebhookEvent(ctx context.Context, db DBTX, eventID string) (int64, error) {
	result, err := db.Exec(ctx, deleteWebhookEvent, eventID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const getWebhookEvent = `-- name: GetWebhookEvent :one
SELECT event_id, processed, created_at, processed_at
FROM webhook_events
WHERE event_id = $1
`

func (q *Queries) GetWebhookEvent(ctx context.Context, db DBTX, eventID string) (WebhookEvents, error) {
	row := db.QueryRow(ctx, getWebhookEvent, eventID)
	var i WebhookEvents
	err := row.Scan(
		&i.EventID,
		&i.Processed,
		&i.CreatedAt,
		&i.ProcessedAt,
	)
	return i, err
}

const insertWebhookEvent = `-- name: InsertWebhookEvent :execrows
INSERT INTO webhook_events (event_id)
VALUES ($1)
ON CONFLICT (event_id) DO NOTHING
`

func (q *Queries) InsertWebhookEvent(ctx context.Context, db DBTX, eventID string) (int64, error) {
	result, err := db.Exec(ctx, insertWebhookEvent, eventID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const listWebhookEvents = `-- name: ListWebhookEvents :many
SELECT event_id, processed, created_at, processed_at
FROM webhook_events
ORDER BY created_at DESC, event_id
LIMIT $1
`

func (q *Queries) ListWebhookEvents(ctx context.Context, db DBTX, limit int32) ([]WebhookEvents, error) {
	rows, err := db.Query(ctx, listWebhookEvents, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []WebhookEvents
	for rows.Next() {
		var i WebhookEvents
		if err := rows.Scan(
			&i.EventID,
			&i.Processed,
			&i.CreatedAt,
			&i.ProcessedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const upsertWebhookEventProcessed = `-- name: UpsertWebhookEventProcessed :exec
INSERT INTO webhook_events (event_id, processed, processed_at)
VALUES ($1, TRUE, NOW())
ON CONFLICT (event_id) DO UPDATE
SET processed = TRUE,
    processed_at = NOW()
`

func (q *Queries) UpsertWebhookEventProcessed(ctx context.Context, db DBTX, eventID string) error {
	_, err := db.Exec(ctx, upsertWebhookEventProcessed, eventID)
	return err
}
