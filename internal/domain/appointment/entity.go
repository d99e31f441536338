package appointment

import (
	"errors"
	"strings"
	"time"

	"slot-booker/internal/domain/hold"
	"slot-booker/internal/domain/timerange"

	"github.com/google/uuid"
)

var (
	ErrNotOwner         = errors.New("appointment belongs to another session")
	ErrAlreadyCancelled = errors.New("appointment is already cancelled")
	ErrInvalidStatus    = errors.New("invalid appointment status")
)

type Appointment struct {
	id           uuid.UUID
	tenantID     uuid.UUID
	providerID   uuid.UUID
	serviceID    uuid.UUID
	holdID       uuid.UUID
	window       timerange.Interval
	blocked      timerange.Interval
	customer     Customer
	sessionID    string
	status       Status
	cancelReason string
	createdAt    time.Time
	updatedAt    time.Time
}

// FromHold turns a live hold into a confirmed appointment covering the same
// slot and blocked window.
func FromHold(h *hold.Hold, customer Customer, now time.Time) *Appointment {
	return &Appointment{
		id:         uuid.New(),
		tenantID:   h.TenantID(),
		providerID: h.ProviderID(),
		serviceID:  h.ServiceID(),
		holdID:     h.ID(),
		window:     h.Window(),
		blocked:    h.Blocked(),
		customer:   customer,
		sessionID:  h.SessionID(),
		status:     StatusConfirmed,
		createdAt:  now,
		updatedAt:  now,
	}
}

func Reconstruct(
	id, tenantID, providerID, serviceID, holdID uuid.UUID,
	window, blocked timerange.Interval,
	customer Customer,
	sessionID string,
	status Status,
	cancelReason string,
	createdAt, updatedAt time.Time,
) *Appointment {
	return &Appointment{
		id:           id,
		tenantID:     tenantID,
		providerID:   providerID,
		serviceID:    serviceID,
		holdID:       holdID,
		window:       window,
		blocked:      blocked,
		customer:     customer,
		sessionID:    sessionID,
		status:       status,
		cancelReason: cancelReason,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}
}

// Cancel frees the slot. Only the session that booked may cancel.
func (a *Appointment) Cancel(sessionID, reason string, now time.Time) error {
	if sessionID == "" || a.sessionID != sessionID {
		return ErrNotOwner
	}
	if a.status == StatusCancelled {
		return ErrAlreadyCancelled
	}
	if a.status != StatusConfirmed {
		return ErrInvalidStatus
	}
	a.status = StatusCancelled
	a.cancelReason = strings.TrimSpace(reason)
	a.updatedAt = now
	return nil
}

func (a *Appointment) IsActive() bool {
	return a.status.Blocks()
}

func (a *Appointment) ID() uuid.UUID               { return a.id }
func (a *Appointment) TenantID() uuid.UUID         { return a.tenantID }
func (a *Appointment) ProviderID() uuid.UUID       { return a.providerID }
func (a *Appointment) ServiceID() uuid.UUID        { return a.serviceID }
func (a *Appointment) HoldID() uuid.UUID           { return a.holdID }
func (a *Appointment) Window() timerange.Interval  { return a.window }
func (a *Appointment) Blocked() timerange.Interval { return a.blocked }
func (a *Appointment) Customer() Customer          { return a.customer }
func (a *Appointment) SessionID() string           { return a.sessionID }
func (a *Appointment) Status() Status              { return a.status }
func (a *Appointment) CancelReason() string        { return a.cancelReason }
func (a *Appointment) CreatedAt() time.Time        { return a.createdAt }
func (a *Appointment) UpdatedAt() time.Time        { return a.updatedAt }
