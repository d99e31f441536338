package components

import (
	"slot-booker/internal/handler"
	"slot-booker/internal/handler/api"
	"slot-booker/internal/handler/middleware"

	"go.uber.org/fx"
)

type handlerParams struct {
	fx.In

	Session      *api.SessionHandler
	Availability *api.AvailabilityHandler
	Hold         *api.HoldHandler
	Appointment  *api.AppointmentHandler
}

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewSessionHandler,
		api.NewAvailabilityHandler,
		api.NewHoldHandler,
		api.NewAppointmentHandler,
		middleware.NewSessionMiddleware,
		func(p handlerParams) handler.Handlers {
			return handler.Handlers{
				Session:      p.Session,
				Availability: p.Availability,
				Hold:         p.Hold,
				Appointment:  p.Appointment,
			}
		},
	),
	fx.Invoke(handler.NewRouter),
)
