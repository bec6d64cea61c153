//go:build unit || e2e

package authtest

import (
	"testing"
	"time"

	"course-checkout/internal/pkg/config"
	"course-checkout/internal/pkg/jwt"

	"github.com/stretchr/testify/require"
)

type JWTHelper struct {
	cfg config.AdminConfig
}

func NewJWTHelper(cfg config.AdminConfig) *JWTHelper {
	return &JWTHelper{cfg: cfg}
}

func (h *JWTHelper) GenerateToken(t *testing.T, email string) string {
	t.Helper()
	service := jwt.NewService(h.cfg.JWTSecret, h.cfg.JWTDuration)
	token, err := service.GenerateToken(email)
	require.NoError(t, err)
	return token
}

// AdminToken signs a token for the first configured administrator.
func (h *JWTHelper) AdminToken(t *testing.T) string {
	t.Helper()
	require.NotEmpty(t, h.cfg.Emails, "no admin e-mail configured")
	return h.GenerateToken(t, h.cfg.Emails[0])
}

func (h *JWTHelper) CreateExpiredToken(t *testing.T, email string) string {
	t.Helper()
	service := jwt.NewService(h.cfg.JWTSecret, 1*time.Millisecond)
	token, err := service.GenerateToken(email)
	require.NoError(t, err)
	time.Sleep(1100 * time.Millisecond)
	return token
}
