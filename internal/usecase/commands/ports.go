package commands

import (
	"time"

	"slot-booker/internal/domain/appointment"
	"slot-booker/internal/domain/hold"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"
)

// Policy holds the tunables of the hold lifecycle.
type Policy struct {
	HoldTTL time.Duration
}

func DefaultPolicy() Policy {
	return Policy{HoldTTL: 10 * time.Minute}
}

type PlaceHoldInput struct {
	TenantID   uuid.UUID
	ProviderID uuid.UUID
	ServiceID  uuid.UUID
	Date       civil.Date
	StartTime  civil.Time
	SessionID  string
}

type HoldResult struct {
	Hold     *hold.Hold
	Replayed bool
}

type CustomerInput struct {
	Name  string
	Email string
	Phone string
	Notes string
}

type ConfirmInput struct {
	HoldID    uuid.UUID
	SessionID string
	Customer  CustomerInput
}

type ConfirmResult struct {
	AppointmentID uuid.UUID
	Status        appointment.Status
	Appointment   *appointment.Appointment
}

type CancelInput struct {
	AppointmentID uuid.UUID
	SessionID     string
	Reason        string
}
