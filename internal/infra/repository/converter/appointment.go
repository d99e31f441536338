package converter

import (
	"fmt"

	"slot-booker/internal/domain/appointment"
	"slot-booker/internal/domain/timerange"
	sqlc "slot-booker/internal/infra/sqlc/generated"
	"slot-booker/internal/pkg/pgconv"
)

func AppointmentToInfra(a *appointment.Appointment) sqlc.CreateAppointmentParams {
	c := a.Customer()
	return sqlc.CreateAppointmentParams{
		ID:            a.ID(),
		TenantID:      a.TenantID(),
		ProviderID:    a.ProviderID(),
		ServiceID:     a.ServiceID(),
		HoldID:        a.HoldID(),
		StartAt:       pgconv.TimeToPgtype(a.Window().Start),
		EndAt:         pgconv.TimeToPgtype(a.Window().End),
		Blocked:       pgconv.RangeToPgtype(a.Blocked().Start, a.Blocked().End),
		CustomerName:  c.Name(),
		CustomerEmail: c.Email(),
		CustomerPhone: c.Phone(),
		Notes:         c.Notes(),
		SessionID:     a.SessionID(),
		Status:        a.Status().String(),
		CancelReason:  a.CancelReason(),
		CreatedAt:     pgconv.TimeToPgtype(a.CreatedAt()),
		UpdatedAt:     pgconv.TimeToPgtype(a.UpdatedAt()),
	}
}

func AppointmentStatusToInfra(a *appointment.Appointment) sqlc.UpdateAppointmentStatusParams {
	return sqlc.UpdateAppointmentStatusParams{
		ID:           a.ID(),
		Status:       a.Status().String(),
		CancelReason: a.CancelReason(),
		UpdatedAt:    pgconv.TimeToPgtype(a.UpdatedAt()),
	}
}

func AppointmentFromRow(row sqlc.Appointment) (*appointment.Appointment, error) {
	status := appointment.Status(row.Status)
	if !status.IsValid() {
		return nil, fmt.Errorf("appointment %s: %w: %q", row.ID, appointment.ErrInvalidStatus, row.Status)
	}
	blockedStart, blockedEnd, err := pgconv.RangeFromPgtype(row.Blocked)
	if err != nil {
		return nil, err
	}
	return appointment.Reconstruct(
		row.ID, row.TenantID, row.ProviderID, row.ServiceID, row.HoldID,
		timerange.Interval{Start: pgconv.TimeFromPgtype(row.StartAt), End: pgconv.TimeFromPgtype(row.EndAt)},
		timerange.Interval{Start: blockedStart, End: blockedEnd},
		appointment.ReconstructCustomer(row.CustomerName, row.CustomerEmail, row.CustomerPhone, row.Notes),
		row.SessionID,
		status,
		row.CancelReason,
		pgconv.TimeFromPgtype(row.CreatedAt),
		pgconv.TimeFromPgtype(row.UpdatedAt),
	), nil
}
