package components

import (
	"slot-booker/internal/pkg/clock"
	"slot-booker/internal/pkg/config"
	"slot-booker/internal/usecase/commands"
	"slot-booker/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	func(cfg config.Config) commands.Policy {
		return commands.Policy{HoldTTL: cfg.Booking.HoldTTL}
	},
	func(cfg config.Config) queries.AvailabilityPolicy {
		return queries.AvailabilityPolicy{
			DefaultGranularity: cfg.Booking.SlotGranularity,
			MaxRangeDays:       cfg.Booking.MaxRangeDays,
		}
	},
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewHoldCommands,
		commands.NewConfirmationCommands,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewAvailabilityQueries,
		queries.NewAppointmentQueries,
	),
)
