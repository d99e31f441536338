package repository

import (
	"context"

	"slot-booker/internal/domain/appointment"
	"slot-booker/internal/infra"
	"slot-booker/internal/infra/repository/converter"
	sqlc "slot-booker/internal/infra/sqlc/generated"
	"slot-booker/internal/pkg/pgconv"
	"slot-booker/internal/usecase/shared"

	"github.com/google/uuid"
)

type AppointmentWriteQueries interface {
	CreateAppointment(ctx context.Context, db sqlc.DBTX, arg sqlc.CreateAppointmentParams) error
	GetAppointmentByID(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.Appointment, error)
	UpdateAppointmentStatus(ctx context.Context, db sqlc.DBTX, arg sqlc.UpdateAppointmentStatusParams) (int64, error)
	ListAppointmentsBySession(ctx context.Context, db sqlc.DBTX, arg sqlc.ListAppointmentsBySessionParams) ([]sqlc.Appointment, error)
}

type AppointmentRepository struct {
	queries AppointmentWriteQueries
	db      sqlc.DBTX
}

func NewAppointmentRepository(queries AppointmentWriteQueries, db sqlc.DBTX) *AppointmentRepository {
	return &AppointmentRepository{
		queries: queries,
		db:      db,
	}
}

// Create fails with KindConflict when the blocked window overlaps another
// confirmed appointment (appointments_no_overlap) and KindDuplicateKey when
// the hold was already confirmed.
func (r *AppointmentRepository) Create(ctx context.Context, a *appointment.Appointment) error {
	if err := r.queries.CreateAppointment(ctx, r.db, converter.AppointmentToInfra(a)); err != nil {
		return infra.WrapRepoErr("failed to create appointment", err)
	}
	return nil
}

func (r *AppointmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*appointment.Appointment, error) {
	row, err := r.queries.GetAppointmentByID(ctx, r.db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("appointment not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find appointment by ID", err)
	}

	a, err := converter.AppointmentFromRow(row)
	if err != nil {
		return nil, infra.WrapRepoErr("invalid appointment row", err)
	}
	return a, nil
}

func (r *AppointmentRepository) UpdateStatus(ctx context.Context, a *appointment.Appointment) error {
	n, err := r.queries.UpdateAppointmentStatus(ctx, r.db, converter.AppointmentStatusToInfra(a))
	if err != nil {
		return infra.WrapRepoErr("failed to update appointment status", err)
	}
	if n == 0 {
		return infra.NotFound("appointment not found")
	}
	return nil
}

func (r *AppointmentRepository) ListBySession(ctx context.Context, sessionID string, after *shared.PageKey, limit int) ([]*appointment.Appointment, error) {
	params := sqlc.ListAppointmentsBySessionParams{
		SessionID: sessionID,
		// #nosec G115 -- limit is capped by the query layer
		MaxRows: int32(max(limit, 0)),
	}
	if after != nil {
		params.HasAfter = true
		params.AfterStart = pgconv.TimeToPgtype(after.StartAt)
		params.AfterID = after.ID
	}

	rows, err := r.queries.ListAppointmentsBySession(ctx, r.db, params)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list appointments by session", err)
	}

	result := make([]*appointment.Appointment, 0, len(rows))
	for _, row := range rows {
		a, err := converter.AppointmentFromRow(row)
		if err != nil {
			return nil, infra.WrapRepoErr("invalid appointment row", err)
		}
		result = append(result, a)
	}
	return result, nil
}
