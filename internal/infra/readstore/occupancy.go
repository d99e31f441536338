package readstore

import (
	"context"
	"time"

	"slot-booker/internal/domain/appointment"
	"slot-booker/internal/domain/hold"
	"slot-booker/internal/domain/timerange"
	"slot-booker/internal/infra"
	"slot-booker/internal/infra/repository/converter"
	sqlc "slot-booker/internal/infra/sqlc/generated"
	"slot-booker/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type OccupancyReadQueries interface {
	ListLiveHolds(ctx context.Context, db sqlc.DBTX, arg sqlc.ListLiveHoldsParams) ([]sqlc.SlotHold, error)
	ListBlockingAppointments(ctx context.Context, db sqlc.DBTX, arg sqlc.ListBlockingAppointmentsParams) ([]sqlc.Appointment, error)
}

// OccupancyReadStore lists the bookings whose blocked windows overlap a
// window on one provider's timeline.
type OccupancyReadStore struct {
	queries OccupancyReadQueries
	db      sqlc.DBTX
}

func NewOccupancyReadStore(queries OccupancyReadQueries, db sqlc.DBTX) *OccupancyReadStore {
	return &OccupancyReadStore{
		queries: queries,
		db:      db,
	}
}

func (r *OccupancyReadStore) LiveHolds(ctx context.Context, providerID uuid.UUID, window timerange.Interval, now time.Time) ([]*hold.Hold, error) {
	rows, err := r.queries.ListLiveHolds(ctx, r.db, sqlc.ListLiveHoldsParams{
		ProviderID: providerID,
		Window:     pgconv.RangeToPgtype(window.Start, window.End),
		Now:        pgconv.TimeToPgtype(now),
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list live holds", err)
	}

	result := make([]*hold.Hold, 0, len(rows))
	for _, row := range rows {
		h, err := converter.HoldFromRow(row)
		if err != nil {
			return nil, infra.WrapRepoErr("invalid hold row", err)
		}
		result = append(result, h)
	}
	return result, nil
}

func (r *OccupancyReadStore) ConfirmedAppointments(ctx context.Context, providerID uuid.UUID, window timerange.Interval) ([]*appointment.Appointment, error) {
	rows, err := r.queries.ListBlockingAppointments(ctx, r.db, sqlc.ListBlockingAppointmentsParams{
		ProviderID: providerID,
		Window:     pgconv.RangeToPgtype(window.Start, window.End),
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list blocking appointments", err)
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
