package response

import (
	"time"

	"course-checkout/internal/domain/webhook"
	"course-checkout/internal/usecase/queries"

	"github.com/jinzhu/copier"
)

type WebhookAckResponse struct {
	OK        bool `json:"ok"`
	Duplicate bool `json:"duplicate,omitempty"`
}

func FromWebhookResult(r *webhook.Result) WebhookAckResponse {
	return WebhookAckResponse{OK: true, Duplicate: r.Duplicate()}
}

type WebhookEventResponse struct {
	EventID     string     `json:"eventId"`
	State       string     `json:"state"`
	Processed   bool       `json:"processed"`
	CreatedAt   time.Time  `json:"createdAt"`
	ProcessedAt *time.Time `json:"processedAt,omitempty"`
}

func FromWebhookEventView(v *queries.WebhookEventView) (*WebhookEventResponse, error) {
	res := &WebhookEventResponse{}
	if err := copier.Copy(res, v); err != nil {
		return nil, err
	}
	return res, nil
}

func FromWebhookEventList(views []queries.WebhookEventView) ([]WebhookEventResponse, error) {
	res := make([]WebhookEventResponse, 0, len(views))
	if err := copier.Copy(&res, &views); err != nil {
		return nil, err
	}
	return res, nil
}
