//go:build unit

package middleware_test

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"testing"
	"time"

	"course-checkout/internal/domain/ratelimit"
	"course-checkout/internal/handler/middleware"
	"course-checkout/internal/pkg/clock"
	"course-checkout/internal/pkg/jwt"
	"course-checkout/internal/usecase"
	"course-checkout/tests/common/httptest"
	usecasemock "course-checkout/tests/mock/usecase"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func ok(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// ================================================================================
// RateLimit
// ================================================================================

func TestRateLimit(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	policy := ratelimit.Policy{Limit: 5, Window: time.Minute}

	newRouter := func(t *testing.T) (*gin.Engine, *usecasemock.MockRateLimiter) {
		ctrl := gomock.NewController(t)
		limiter := usecasemock.NewMockRateLimiter(ctrl)
		r := gin.New()
		r.POST("/checkout", middleware.RateLimit(limiter, "checkout", policy, clock.NewMockClock(now)), ok)
		return r, limiter
	}

	t.Run("admitted request reaches the handler", func(t *testing.T) {
		r, limiter := newRouter(t)
		limiter.EXPECT().Check(gomock.Any(), "checkout:192.0.2.1", policy).
			Return(ratelimit.Decision{Admitted: true, Remaining: 4, ResetAt: now.Add(time.Minute)}, nil)

		w := httptest.PerformRequest(t, r, http.MethodPost, "/checkout", nil, "")

		assert.Equal(t, http.StatusOK, w.Code)
		httptest.AssertHeaders(t, w, map[string]string{
			"X-RateLimit-Limit":     "5",
			"X-RateLimit-Remaining": "4",
			"Retry-After":           "",
		})
	})

	t.Run("rejected request gets 429 with Retry-After", func(t *testing.T) {
		r, limiter := newRouter(t)
		limiter.EXPECT().Check(gomock.Any(), gomock.Any(), policy).
			Return(ratelimit.Decision{Admitted: false, Remaining: 0, ResetAt: now.Add(41500 * time.Millisecond)}, nil)

		w := httptest.PerformRequest(t, r, http.MethodPost, "/checkout", nil, "")

		httptest.AssertErrorResponse(t, w, http.StatusTooManyRequests, "Rate limit exceeded")
		httptest.AssertHeaders(t, w, map[string]string{
			"Retry-After":           "42",
			"X-RateLimit-Remaining": "0",
		})
	})

	t.Run("limiter failure is 503", func(t *testing.T) {
		r, limiter := newRouter(t)
		limiter.EXPECT().Check(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(ratelimit.Decision{}, errors.New("both stores down"))

		w := httptest.PerformRequest(t, r, http.MethodPost, "/checkout", nil, "")

		httptest.AssertErrorResponse(t, w, http.StatusServiceUnavailable, "Request could not be admitted")
	})
}

// ================================================================================
// RequireAdmin
// ================================================================================

func TestRequireAdmin(t *testing.T) {
	newRouter := func(t *testing.T) (*gin.Engine, *usecasemock.MockTokenValidator) {
		ctrl := gomock.NewController(t)
		validator := usecasemock.NewMockTokenValidator(ctrl)
		auth := middleware.NewAuthMiddleware(validator)
		r := gin.New()
		r.GET("/admin", auth.RequireAdmin(), func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"operator": middleware.GetOperatorEmail(c)})
		})
		return r, validator
	}

	t.Run("admin token is admitted", func(t *testing.T) {
		r, validator := newRouter(t)
		validator.EXPECT().ValidateToken("good").Return("admin@example.com", nil)

		w := httptest.PerformRequest(t, r, http.MethodGet, "/admin", nil, "good")

		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"operator":"admin@example.com"}`, w.Body.String())
	})

	t.Run("missing token is 401", func(t *testing.T) {
		r, _ := newRouter(t)

		w := httptest.PerformRequest(t, r, http.MethodGet, "/admin", nil, "")

		httptest.AssertErrorResponse(t, w, http.StatusUnauthorized, "Access token required")
	})

	t.Run("expired token is 401", func(t *testing.T) {
		r, validator := newRouter(t)
		validator.EXPECT().ValidateToken("old").Return("", jwt.ErrExpiredToken)

		w := httptest.PerformRequest(t, r, http.MethodGet, "/admin", nil, "old")

		httptest.AssertErrorResponse(t, w, http.StatusUnauthorized, "Invalid or expired token")
	})

	t.Run("non-admin token is 403", func(t *testing.T) {
		r, validator := newRouter(t)
		validator.EXPECT().ValidateToken("buyer").Return("", usecase.ErrNotAdmin)

		w := httptest.PerformRequest(t, r, http.MethodGet, "/admin", nil, "buyer")

		httptest.AssertErrorResponse(t, w, http.StatusForbidden, "Insufficient permissions")
	})
}

// ================================================================================
// LoggingMiddleware
// ================================================================================

func TestLoggingMiddleware_RequestID(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	var seen string
	r := gin.New()
	r.Use(middleware.LoggingMiddleware(logger))
	r.GET("/ping", func(c *gin.Context) {
		seen = middleware.RequestIDFromContext(c.Request.Context())
		c.Status(http.StatusNoContent)
	})

	t.Run("incoming x-request-id is echoed", func(t *testing.T) {
		buf.Reset()
		w := httptest.PerformRawRequest(t, r, http.MethodGet, "/ping", nil, map[string]string{"X-Request-ID": "req-123"})

		assert.Equal(t, "req-123", w.Header().Get("X-Request-ID"))
		assert.Equal(t, "req-123", seen)
		assert.Contains(t, buf.String(), `"request_id":"req-123"`)
	})

	t.Run("correlation id is used when no request id is sent", func(t *testing.T) {
		w := httptest.PerformRawRequest(t, r, http.MethodGet, "/ping", nil, map[string]string{"X-Correlation-ID": "corr-9"})

		assert.Equal(t, "corr-9", w.Header().Get("X-Request-ID"))
	})

	t.Run("oversized id is replaced", func(t *testing.T) {
		long := strings.Repeat("x", 201)
		w := httptest.PerformRawRequest(t, r, http.MethodGet, "/ping", nil, map[string]string{"X-Request-ID": long})

		got := w.Header().Get("X-Request-ID")
		assert.NotEmpty(t, got)
		assert.NotEqual(t, long, got)
	})
}

// ================================================================================
// ErrorHandler / CustomRecovery
// ================================================================================

func TestCustomRecovery(t *testing.T) {
	r := gin.New()
	r.Use(middleware.CustomRecovery(), middleware.ErrorHandler())
	r.GET("/panic", func(*gin.Context) { panic("boom") })

	w := httptest.PerformRequest(t, r, http.MethodGet, "/panic", nil, "")

	httptest.AssertErrorResponse(t, w, http.StatusInternalServerError, "Internal server error")
}
