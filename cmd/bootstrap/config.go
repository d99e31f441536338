package bootstrap

import (
	"log/slog"

	"slot-booker/internal/pkg/config"

	"go.uber.org/fx"
)

var ConfigModule = fx.Module("config",
	fx.Provide(config.LoadConfig),
	fx.Invoke(logBackends),
)

// logBackends reports which optional backends this process wires. No secrets.
func logBackends(cfg config.Config, logger *slog.Logger) {
	limiter := "off"
	switch {
	case cfg.RateLimit.Enabled && cfg.Redis.Addr != "":
		limiter = "redis"
	case cfg.RateLimit.Enabled:
		limiter = "local"
	}
	events := "log"
	if cfg.Kafka.Enabled() {
		events = "kafka"
	}
	logger.Info("booking backends",
		"store", cfg.Store.Driver,
		"rate_limiter", limiter,
		"events", events,
		"tracing", cfg.Tracing.Endpoint != "",
		"hold_ttl", cfg.Booking.HoldTTL,
	)
}
