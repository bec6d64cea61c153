package sqlc

import (
	"github.com/jackc/pgx/v5/pgtype"
)

type RateLimits struct {
	Key             string             `json:"key"`
	Count           int32              `json:"count"`
	WindowExpiresAt pgtype.Timestamptz `json:"window_expires_at"`
}

type WebhookEvents struct {
	EventID     string             `json:"event_id"`
	Processed   bool               `json:"processed"`
	CreatedAt   pgtype.Timestamptz `json:"created_at"`
	ProcessedAt pgtype.Timestamptz `json:"processed_at"`
}
