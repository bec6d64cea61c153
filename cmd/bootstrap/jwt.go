package bootstrap

import (
	"course-checkout/internal/pkg/config"
	"course-checkout/internal/pkg/jwt"

	"go.uber.org/fx"
)

var JWTModule = fx.Module("jwt",
	fx.Provide(
		NewJWTService,
	),
)

func NewJWTService(cfg config.Config) *jwt.Service {
	if cfg.Admin.JWTDuration <= 0 {
		panic("invalid JWT_DURATION: must be positive")
	}
	return jwt.NewService(cfg.Admin.JWTSecret, cfg.Admin.JWTDuration)
}
