package api

import (
	"net/http"

	reqdto "course-checkout/internal/handler/dto/request"
	resdto "course-checkout/internal/handler/dto/response"
	"course-checkout/internal/handler/httperr"
	"course-checkout/internal/usecase/commands"
	"course-checkout/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type CheckoutHandler struct {
	cmds commands.CheckoutCommands
	q    queries.CheckoutSessionQueries
}

func NewCheckoutHandler(cmds commands.CheckoutCommands, q queries.CheckoutSessionQueries) *CheckoutHandler {
	return &CheckoutHandler{cmds: cmds, q: q}
}

// @Summary Create checkout session
// @Description Create a Stripe Checkout session for a course product and return its URL
// @Tags checkout
// @Accept json
// @Produce json
// @Param request body reqdto.CreateCheckoutRequest true "Checkout request"
// @Success 200 {object} resdto.CheckoutResponse
// @Failure 400 {object} httperr.Response
// @Failure 429 {object} httperr.Response
// @Failure 500 {object} httperr.Response
// @Router /stripe/create-checkout [post]
func (h *CheckoutHandler) CreateCheckout(c *gin.Context) {
	var req reqdto.CreateCheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request: successUrl and cancelUrl are required", nil)
		return
	}
	in, err := req.ToInput()
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}

	out, err := h.cmds.CreateCheckout(c.Request.Context(), in)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.CheckoutResponse{URL: out.URL})
}

// @Summary Get checkout session
// @Description Look up a checkout session for the success page
// @Tags checkout
// @Produce json
// @Param id path string true "Checkout session ID"
// @Success 200 {object} resdto.CheckoutSessionResponse
// @Failure 404 {object} httperr.Response
// @Router /stripe/checkout-session/{id} [get]
func (h *CheckoutHandler) GetSession(c *gin.Context) {
	view, err := h.q.GetSession(c.Request.Context(), c.Param("id"))
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	res, err := resdto.FromCheckoutSessionView(view)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}
	c.JSON(http.StatusOK, res)
}
