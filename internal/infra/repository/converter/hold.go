package converter

import (
	"slot-booker/internal/domain/hold"
	"slot-booker/internal/domain/timerange"
	sqlc "slot-booker/internal/infra/sqlc/generated"
	"slot-booker/internal/pkg/pgconv"
)

func HoldToInfra(h *hold.Hold) sqlc.CreateHoldParams {
	return sqlc.CreateHoldParams{
		ID:         h.ID(),
		TenantID:   h.TenantID(),
		ProviderID: h.ProviderID(),
		ServiceID:  h.ServiceID(),
		StartAt:    pgconv.TimeToPgtype(h.Window().Start),
		EndAt:      pgconv.TimeToPgtype(h.Window().End),
		Blocked:    pgconv.RangeToPgtype(h.Blocked().Start, h.Blocked().End),
		SessionID:  h.SessionID(),
		CreatedAt:  pgconv.TimeToPgtype(h.CreatedAt()),
		ExpiresAt:  pgconv.TimeToPgtype(h.ExpiresAt()),
	}
}

func HoldFromRow(row sqlc.SlotHold) (*hold.Hold, error) {
	blockedStart, blockedEnd, err := pgconv.RangeFromPgtype(row.Blocked)
	if err != nil {
		return nil, err
	}
	return hold.Reconstruct(
		row.ID, row.TenantID, row.ProviderID, row.ServiceID,
		timerange.Interval{Start: pgconv.TimeFromPgtype(row.StartAt), End: pgconv.TimeFromPgtype(row.EndAt)},
		timerange.Interval{Start: blockedStart, End: blockedEnd},
		row.SessionID,
		pgconv.TimeFromPgtype(row.CreatedAt),
		pgconv.TimeFromPgtype(row.ExpiresAt),
	), nil
}
