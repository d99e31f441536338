package bootstrap

import (
	"slot-booker/internal/handler/api"
	"slot-booker/internal/handler/middleware"
	"slot-booker/internal/pkg/clock"
	"slot-booker/internal/pkg/config"
	"slot-booker/internal/pkg/jwt"

	"go.uber.org/fx"
)

var JWTModule = fx.Module("jwt",
	fx.Provide(
		NewJWTService,
		func(s *jwt.Service) api.SessionIssuer { return s },
		func(s *jwt.Service) middleware.SessionValidator { return s },
	),
)

func NewJWTService(cfg config.Config, clk clock.Clock) *jwt.Service {
	return jwt.NewService(cfg.Session.Secret, cfg.Session.Duration, cfg.Session.Issuer, clk)
}
