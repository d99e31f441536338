package readstore

import (
	"context"
	"encoding/json"

	"slot-booker/internal/domain/catalog"
	"slot-booker/internal/domain/schedule"
	"slot-booker/internal/infra"
	sqlc "slot-booker/internal/infra/sqlc/generated"
	"slot-booker/internal/pkg/errs"
	"slot-booker/internal/pkg/pgconv"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"
)

type CatalogReadQueries interface {
	GetTenantByID(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.GetTenantByIDRow, error)
	GetProviderByID(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.GetProviderByIDRow, error)
	GetServiceByID(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.GetServiceByIDRow, error)
	ListScheduleExceptions(ctx context.Context, db sqlc.DBTX, arg sqlc.ListScheduleExceptionsParams) ([]sqlc.ScheduleException, error)
}

// CatalogReadStore reads tenant configuration maintained by the
// administration system.
type CatalogReadStore struct {
	queries CatalogReadQueries
	db      sqlc.DBTX
}

func NewCatalogReadStore(queries CatalogReadQueries, db sqlc.DBTX) *CatalogReadStore {
	return &CatalogReadStore{
		queries: queries,
		db:      db,
	}
}

func (r *CatalogReadStore) TenantByID(ctx context.Context, id uuid.UUID) (*catalog.Tenant, error) {
	row, err := r.queries.GetTenantByID(ctx, r.db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("tenant not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find tenant by ID", err)
	}

	hours, err := decodeHours(row.WeeklyHours)
	if err != nil {
		return nil, infra.WrapRepoErr("invalid tenant weekly hours", err)
	}
	tenant, err := catalog.NewTenant(row.ID, row.Name, row.TimeZone, hours, int(row.BufferMinutes))
	if err != nil {
		return nil, infra.WrapRepoErr("invalid tenant row", err)
	}
	return tenant, nil
}

func (r *CatalogReadStore) ProviderByID(ctx context.Context, id uuid.UUID) (*catalog.Provider, error) {
	row, err := r.queries.GetProviderByID(ctx, r.db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("provider not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find provider by ID", err)
	}

	hours, err := decodeHours(row.WeeklyHours)
	if err != nil {
		return nil, infra.WrapRepoErr("invalid provider weekly hours", err)
	}
	return &catalog.Provider{
		ID:         row.ID,
		TenantID:   row.TenantID,
		Name:       row.Name,
		Hours:      hours,
		ServiceIDs: row.ServiceIds,
		Active:     row.IsActive,
	}, nil
}

func (r *CatalogReadStore) ServiceByID(ctx context.Context, id uuid.UUID) (*catalog.Service, error) {
	row, err := r.queries.GetServiceByID(ctx, r.db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("service not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find service by ID", err)
	}

	return &catalog.Service{
		ID:              row.ID,
		TenantID:        row.TenantID,
		Name:            row.Name,
		DurationMinutes: int(row.DurationMinutes),
		BufferBeforeMin: pgconv.IntPtrFromPgtype(row.BufferBeforeMinutes),
		BufferAfterMin:  pgconv.IntPtrFromPgtype(row.BufferAfterMinutes),
	}, nil
}

func (r *CatalogReadStore) Exceptions(ctx context.Context, tenantID, providerID uuid.UUID, from, to civil.Date) ([]schedule.Exception, error) {
	rows, err := r.queries.ListScheduleExceptions(ctx, r.db, sqlc.ListScheduleExceptionsParams{
		TenantID:   tenantID,
		ProviderID: providerID,
		FromDate:   pgconv.DateToPgtype(from),
		ToDate:     pgconv.DateToPgtype(to),
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list schedule exceptions", err)
	}

	result := make([]schedule.Exception, 0, len(rows))
	for _, row := range rows {
		e, err := toException(row)
		if err != nil {
			return nil, infra.WrapRepoErr("invalid schedule exception row", err)
		}
		result = append(result, e)
	}
	return result, nil
}

// decodeHours maps a NULL column to nil hours.
func decodeHours(raw []byte) (schedule.WeeklyHours, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var hours schedule.WeeklyHours
	if err := json.Unmarshal(raw, &hours); err != nil {
		return nil, err
	}
	return hours, nil
}

func toException(row sqlc.ScheduleException) (schedule.Exception, error) {
	e := schedule.Exception{
		ID:         row.ID,
		TenantID:   row.TenantID,
		ProviderID: pgconv.UUIDPtrFromPgtype(row.ProviderID),
		StartDate:  pgconv.DateFromPgtype(row.StartDate),
		EndDate:    pgconv.DateFromPgtype(row.EndDate),
		Kind:       schedule.ExceptionKind(row.Kind),
		Reason:     row.Reason,
	}
	if row.WindowStart.Valid {
		start, err := pgconv.ClockFromPgtype(row.WindowStart)
		if err != nil {
			return e, err
		}
		end, err := pgconv.ClockFromPgtype(row.WindowEnd)
		if err != nil {
			return e, err
		}
		w, err := schedule.NewWindow(start, end)
		if err != nil {
			return e, err
		}
		e.Window = &w
	}
	if err := e.Validate(); err != nil {
		return e, errs.Wrapf(err, "exception %s", row.ID)
	}
	return e, nil
}
