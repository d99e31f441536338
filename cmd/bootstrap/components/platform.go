package components

import (
	"context"
	"log/slog"

	"slot-booker/internal/infra/events"
	"slot-booker/internal/infra/ratelimit"
	"slot-booker/internal/pkg/clock"
	"slot-booker/internal/pkg/config"
	"slot-booker/internal/usecase/shared"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

// PlatformModule provides the event publisher and the hold rate limiter.
var PlatformModule = fx.Module("platform",
	fx.Provide(
		NewEventPublisher,
		NewRateLimiter,
	),
)

func NewEventPublisher(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) shared.EventPublisher {
	if !cfg.Kafka.Enabled() {
		return events.NewLogPublisher(logger)
	}

	kp := events.NewKafkaPublisher(events.NewKafkaWriter(cfg.Kafka.Brokers), cfg.Kafka.Topic)
	p := events.NewAsyncPublisher(kp, cfg.Kafka.QueueSize, cfg.Kafka.WriteTimeout, logger.With("component", "event_publisher"))
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			p.Start()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			stopErr := p.Stop(ctx)
			if err := kp.Close(); err != nil {
				return err
			}
			return stopErr
		},
	})
	logger.Info("publishing booking events to kafka", "brokers", cfg.Kafka.Brokers, "topic", cfg.Kafka.Topic)
	return p
}

// NewRateLimiter returns nil when rate limiting is disabled; hold commands
// skip the check then.
func NewRateLimiter(lc fx.Lifecycle, cfg config.Config, clk clock.Clock) shared.RateLimiter {
	rl := cfg.RateLimit
	if !rl.Enabled {
		return nil
	}
	if cfg.Redis.Addr == "" {
		return ratelimit.NewLocalLimiter(rl.Holds, rl.Window, clk)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return rdb.Close()
		},
	})
	return ratelimit.NewRedisLimiter(rdb, rl.Holds, rl.Window, "slot-booker")
}
