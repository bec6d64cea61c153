package httperr

import (
	"net/http"

	"course-checkout/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

type Response struct {
	Status int `json:"-"`
	Error  struct {
		Message string `json:"message"`
	} `json:"error"`
	Detail    any    `json:"detail,omitempty"`
	RequestID string `json:"requestId,omitempty"`
}

// preserves original error for future monitoring
func AbortWithError(c *gin.Context, status int, err error, msg string, detail any) {
	if err == nil {
		panic("AbortWithError: err cannot be nil")
	}

	resp := Response{Status: status, RequestID: c.GetString("request_id")}
	resp.Error.Message = msg
	resp.Detail = detail

	_ = c.Error(gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(status, resp)
}

var statusBySentinel = []struct {
	sentinel error
	status   int
	message  string
}{
	{errs.ErrValidation, http.StatusBadRequest, "Invalid request"},
	{errs.ErrRedirectNotAllowed, http.StatusBadRequest, "Redirect URLs not allowed"},
	{errs.ErrMissingSignature, http.StatusBadRequest, "Missing stripe-signature header"},
	{errs.ErrInvalidSignature, http.StatusBadRequest, "Invalid webhook signature"},
	{errs.ErrEventNotFound, http.StatusNotFound, "Webhook event not found"},
	{errs.ErrSessionNotFound, http.StatusNotFound, "Checkout session not found"},
	{errs.ErrRateLimited, http.StatusTooManyRequests, "Rate limit exceeded"},
	{errs.ErrWebhookNotConfigured, http.StatusInternalServerError, "Webhook secret not configured"},
	{errs.ErrPriceNotConfigured, http.StatusInternalServerError, "Course price not configured"},
	{errs.ErrCheckoutFailed, http.StatusInternalServerError, "Checkout could not be created"},
	{errs.ErrSideEffectFailed, http.StatusInternalServerError, "Webhook processing failed"},
	{errs.ErrLedgerUnavailable, http.StatusInternalServerError, "Webhook processing failed"},
}

// Status maps a use case error onto the HTTP status and public message.
func Status(err error) (int, string) {
	for _, s := range statusBySentinel {
		if errs.Is(err, s.sentinel) {
			return s.status, s.message
		}
	}
	return http.StatusInternalServerError, "Internal server error"
}

// Abort renders err with the status its sentinel maps to.
func Abort(c *gin.Context, err error) {
	status, msg := Status(err)
	AbortWithError(c, status, err, msg, nil)
}
