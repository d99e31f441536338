package shared

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type EventType string

const (
	EventHoldPlaced           EventType = "hold.placed"
	EventHoldReleased         EventType = "hold.released"
	EventHoldExpired          EventType = "hold.expired"
	EventAppointmentConfirmed EventType = "appointment.confirmed"
	EventAppointmentCancelled EventType = "appointment.cancelled"
)

type Event struct {
	ID            uuid.UUID  `json:"id"`
	Type          EventType  `json:"type"`
	TenantID      uuid.UUID  `json:"tenantId"`
	ProviderID    uuid.UUID  `json:"providerId"`
	ServiceID     uuid.UUID  `json:"serviceId"`
	HoldID        *uuid.UUID `json:"holdId,omitempty"`
	AppointmentID *uuid.UUID `json:"appointmentId,omitempty"`
	StartAt       time.Time  `json:"startAt"`
	EndAt         time.Time  `json:"endAt"`
	OccurredAt    time.Time  `json:"occurredAt"`
}

// EventPublisher delivers events after the originating transaction
// committed. Delivery is best effort.
type EventPublisher interface {
	Publish(ctx context.Context, events ...Event) error
}

// RateLimiter bounds how often a key may perform an action.
type RateLimiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}
