package events

import (
	"context"
	"log/slog"

	"slot-booker/internal/usecase/shared"
)

// LogPublisher records events in the structured log. Used when no broker is
// configured.
type LogPublisher struct {
	logger *slog.Logger
}

func NewLogPublisher(logger *slog.Logger) *LogPublisher {
	return &LogPublisher{logger: logger}
}

func (p *LogPublisher) Publish(ctx context.Context, events ...shared.Event) error {
	for _, e := range events {
		attrs := []any{
			"event_id", e.ID.String(),
			"event_type", string(e.Type),
			"tenant_id", e.TenantID.String(),
			"provider_id", e.ProviderID.String(),
			"start_at", e.StartAt,
			"end_at", e.EndAt,
		}
		if e.HoldID != nil {
			attrs = append(attrs, "hold_id", e.HoldID.String())
		}
		if e.AppointmentID != nil {
			attrs = append(attrs, "appointment_id", e.AppointmentID.String())
		}
		p.logger.InfoContext(ctx, "booking event", attrs...)
	}
	return nil
}
