package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"course-checkout/internal/handler/httperr"
	"course-checkout/internal/usecase"

	"github.com/gin-gonic/gin"
)

type AuthMiddleware struct {
	tokenValidator usecase.TokenValidator
}

const ctxOperatorKey = "operator_email"

func NewAuthMiddleware(tokenValidator usecase.TokenValidator) *AuthMiddleware {
	return &AuthMiddleware{
		tokenValidator: tokenValidator,
	}
}

// RequireAdmin admits bearer tokens whose e-mail claim is a configured administrator.
func (m *AuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			httperr.AbortWithError(c, http.StatusUnauthorized, errors.New("missing bearer token"), "Access token required", nil)
			return
		}

		email, err := m.tokenValidator.ValidateToken(token)
		if err != nil {
			if errors.Is(err, usecase.ErrNotAdmin) {
				slog.WarnContext(c.Request.Context(), "Non-admin token rejected")
				httperr.AbortWithError(c, http.StatusForbidden, err, "Insufficient permissions", nil)
				return
			}
			slog.WarnContext(c.Request.Context(), "Token validation failed in auth middleware", "error", err.Error())
			httperr.AbortWithError(c, http.StatusUnauthorized, err, "Invalid or expired token", nil)
			return
		}

		c.Set(ctxOperatorKey, email)
		c.Next()
	}
}

func GetOperatorEmail(c *gin.Context) string {
	return c.GetString(ctxOperatorKey)
}

func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if len(authHeader) > len("Bearer ") && strings.EqualFold(authHeader[:len("Bearer ")], "Bearer ") {
		return strings.TrimSpace(authHeader[len("Bearer "):])
	}
	return ""
}
