package bootstrap

import (
	"context"
	"log/slog"

	"slot-booker/internal/pkg/config"
	"slot-booker/internal/usecase/commands"
	"slot-booker/internal/worker"

	"go.uber.org/fx"
)

var WorkerModule = fx.Module("worker",
	fx.Provide(NewHoldSweeper),
	fx.Invoke(func(lc fx.Lifecycle, s *worker.HoldSweeper) {
		lc.Append(fx.Hook{
			OnStart: func(_ context.Context) error {
				s.Start()
				return nil
			},
			OnStop: func(_ context.Context) error {
				s.Stop()
				return nil
			},
		})
	}),
)

func NewHoldSweeper(cfg config.Config, holds commands.HoldCommands, logger *slog.Logger) *worker.HoldSweeper {
	return worker.NewHoldSweeper(holds, cfg.Booking.SweepInterval, cfg.Booking.SweepBatch, logger.With("component", "hold_sweeper"))
}
