package repository

import (
	"context"
	"time"

	"slot-booker/internal/domain/hold"
	"slot-booker/internal/infra"
	"slot-booker/internal/infra/repository/converter"
	sqlc "slot-booker/internal/infra/sqlc/generated"
	"slot-booker/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type HoldWriteQueries interface {
	CreateHold(ctx context.Context, db sqlc.DBTX, arg sqlc.CreateHoldParams) error
	GetHoldByID(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.SlotHold, error)
	DeleteHold(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (int64, error)
	DeleteExpiredHolds(ctx context.Context, db sqlc.DBTX, arg sqlc.DeleteExpiredHoldsParams) ([]sqlc.SlotHold, error)
}

type HoldRepository struct {
	queries HoldWriteQueries
	db      sqlc.DBTX
}

func NewHoldRepository(queries HoldWriteQueries, db sqlc.DBTX) *HoldRepository {
	return &HoldRepository{
		queries: queries,
		db:      db,
	}
}

func (r *HoldRepository) Create(ctx context.Context, h *hold.Hold) error {
	if err := r.queries.CreateHold(ctx, r.db, converter.HoldToInfra(h)); err != nil {
		return infra.WrapRepoErr("failed to create hold", err)
	}
	return nil
}

func (r *HoldRepository) FindByID(ctx context.Context, id uuid.UUID) (*hold.Hold, error) {
	row, err := r.queries.GetHoldByID(ctx, r.db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("hold not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find hold by ID", err)
	}

	h, err := converter.HoldFromRow(row)
	if err != nil {
		return nil, infra.WrapRepoErr("invalid hold row", err)
	}
	return h, nil
}

func (r *HoldRepository) Delete(ctx context.Context, id uuid.UUID) error {
	n, err := r.queries.DeleteHold(ctx, r.db, id)
	if err != nil {
		return infra.WrapRepoErr("failed to delete hold", err)
	}
	if n == 0 {
		return infra.NotFound("hold not found")
	}
	return nil
}

// DeleteExpired skips rows locked by concurrent sweepers.
func (r *HoldRepository) DeleteExpired(ctx context.Context, now time.Time, limit int) ([]*hold.Hold, error) {
	if limit <= 0 {
		return nil, nil
	}
	rows, err := r.queries.DeleteExpiredHolds(ctx, r.db, sqlc.DeleteExpiredHoldsParams{
		Now: pgconv.TimeToPgtype(now),
		// #nosec G115 -- sweep batches are small
		MaxRows: int32(min(limit, 10_000)),
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to delete expired holds", err)
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
