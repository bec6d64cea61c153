package middleware

import (
	"net/http"
	"strconv"

	"course-checkout/internal/domain/ratelimit"
	"course-checkout/internal/handler/httperr"
	"course-checkout/internal/pkg/clock"
	"course-checkout/internal/pkg/errs"
	"course-checkout/internal/usecase"

	"github.com/gin-gonic/gin"
)

// RateLimit counts requests per client IP under "<purpose>:<ip>". A rejected
// request gets 429 with Retry-After in whole seconds.
func RateLimit(limiter usecase.RateLimiter, purpose string, policy ratelimit.Policy, clk clock.Clock) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := purpose + ":" + c.ClientIP()

		decision, err := limiter.Check(c.Request.Context(), key, policy)
		if err != nil {
			httperr.AbortWithError(c, http.StatusServiceUnavailable, err, "Request could not be admitted", nil)
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(policy.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(decision.Remaining))

		if !decision.Admitted {
			c.Header("Retry-After", strconv.Itoa(decision.RetryAfter(clk.Now())))
			httperr.AbortWithError(c, http.StatusTooManyRequests, errs.ErrRateLimited, "Rate limit exceeded", nil)
			return
		}

		c.Next()
	}
}
