package usecase

import (
	"errors"

	"course-checkout/internal/pkg/config"
	"course-checkout/internal/pkg/jwt"
)

var ErrNotAdmin = errors.New("operator is not an administrator")

// TokenValidator provides token validation for middleware
type TokenValidator interface {
	ValidateToken(tokenString string) (string, error)
}

type tokenValidatorImpl struct {
	jwtService *jwt.Service
	admin      config.AdminConfig
}

func NewTokenValidator(jwtService *jwt.Service, cfg config.Config) TokenValidator {
	return &tokenValidatorImpl{
		jwtService: jwtService,
		admin:      cfg.Admin,
	}
}

// ValidateToken returns the operator e-mail of a valid token whose holder is
// still listed in ADMIN_EMAILS.
func (t *tokenValidatorImpl) ValidateToken(tokenString string) (string, error) {
	claims, err := t.jwtService.ValidateToken(tokenString)
	if err != nil {
		return "", err
	}
	if !t.admin.IsAdmin(claims.Email) {
		return "", ErrNotAdmin
	}
	return claims.Email, nil
}
