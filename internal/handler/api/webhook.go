package api

import (
	"io"
	"log/slog"
	"net/http"

	resdto "course-checkout/internal/handler/dto/response"
	"course-checkout/internal/handler/httperr"
	"course-checkout/internal/pkg/errs"
	"course-checkout/internal/usecase/commands"
	"course-checkout/internal/usecase/shared"

	"github.com/gin-gonic/gin"
)

// Stripe caps event payloads well below this.
const maxWebhookBody = 1 << 20

type WebhookHandler struct {
	verifier shared.EventVerifier
	cmds     commands.WebhookCommands
	logger   *slog.Logger
}

func NewWebhookHandler(verifier shared.EventVerifier, cmds commands.WebhookCommands, logger *slog.Logger) *WebhookHandler {
	return &WebhookHandler{verifier: verifier, cmds: cmds, logger: logger}
}

// @Summary Stripe webhook
// @Description Receive a signed Stripe event. Each event id is processed at most once; a 5xx asks Stripe to redeliver.
// @Tags webhook
// @Accept json
// @Produce json
// @Param stripe-signature header string true "Stripe signature"
// @Success 200 {object} resdto.WebhookAckResponse
// @Failure 400 {object} httperr.Response
// @Failure 429 {object} httperr.Response
// @Failure 500 {object} httperr.Response
// @Router /webhook/stripe [post]
func (h *WebhookHandler) Stripe(c *gin.Context) {
	ctx := c.Request.Context()

	payload, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBody+1))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Could not read request body", nil)
		return
	}
	if len(payload) > maxWebhookBody {
		httperr.AbortWithError(c, http.StatusRequestEntityTooLarge, errs.New("webhook body too large"), "Request body too large", nil)
		return
	}

	// the verifier reports a missing secret before a missing header
	evt, err := h.verifier.Verify(payload, c.GetHeader("stripe-signature"))
	if err != nil {
		if !errs.Is(err, errs.ErrWebhookNotConfigured) {
			h.logger.WarnContext(ctx, "Webhook signature verification failed", "error", err)
		}
		httperr.Abort(c, err)
		return
	}

	result, err := h.cmds.HandleEvent(ctx, evt)
	if err != nil {
		h.logger.ErrorContext(ctx, "Webhook processing error", "event_id", evt.ID, "error", err)
		httperr.Abort(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromWebhookResult(result))
}
