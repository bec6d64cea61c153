package api

import (
	"net/http"
	"strconv"

	resdto "course-checkout/internal/handler/dto/response"
	"course-checkout/internal/handler/httperr"
	"course-checkout/internal/usecase/commands"
	"course-checkout/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	cmds commands.WebhookCommands
	q    queries.WebhookEventQueries
}

func NewAdminHandler(cmds commands.WebhookCommands, q queries.WebhookEventQueries) *AdminHandler {
	return &AdminHandler{cmds: cmds, q: q}
}

// @Summary List webhook events
// @Description Newest ledger records first
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Maximum number of records" default(50)
// @Success 200 {array} resdto.WebhookEventResponse
// @Failure 401 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Router /admin/webhook-events [get]
func (h *AdminHandler) ListEvents(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid limit", nil)
			return
		}
		limit = n
	}

	views, err := h.q.ListEvents(c.Request.Context(), limit)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	res, err := resdto.FromWebhookEventList(views)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}
	c.JSON(http.StatusOK, res)
}

// @Summary Get webhook event
// @Description Ledger state of one provider event
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Event ID"
// @Success 200 {object} resdto.WebhookEventResponse
// @Failure 404 {object} httperr.Response
// @Router /admin/webhook-events/{id} [get]
func (h *AdminHandler) GetEvent(c *gin.Context) {
	view, err := h.q.GetEvent(c.Request.Context(), c.Param("id"))
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	res, err := resdto.FromWebhookEventView(view)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}
	c.JSON(http.StatusOK, res)
}

// @Summary Release webhook event
// @Description Remove the ledger record so the next redelivery is processed again
// @Tags admin
// @Security BearerAuth
// @Param id path string true "Event ID"
// @Success 204
// @Failure 404 {object} httperr.Response
// @Router /admin/webhook-events/{id} [delete]
func (h *AdminHandler) ReleaseEvent(c *gin.Context) {
	if err := h.cmds.ReleaseEvent(c.Request.Context(), c.Param("id")); err != nil {
		httperr.Abort(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
