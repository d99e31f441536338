//go:build unit || e2e

package dbtest

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"slot-booker/internal/infra/memstore"
	"slot-booker/internal/pkg/pgconv"
	"slot-booker/tests/common/bookingtest"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// DBLike is satisfied by a pool, a connection and a transaction.
type DBLike interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// SeedReferenceData inserts the bookingtest catalog.
func SeedReferenceData(pool *pgxpool.Pool) error {
	return SeedCatalog(context.Background(), pool, bookingtest.Seed())
}

func SeedCatalog(ctx context.Context, db DBLike, seed *memstore.Seed) error {
	for _, t := range seed.Tenants {
		hours, err := json.Marshal(t.Hours)
		if err != nil {
			return err
		}
		_, err = db.Exec(ctx, `
			INSERT INTO tenants (id, name, time_zone, buffer_minutes, weekly_hours)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (id) DO NOTHING`,
			t.ID, t.Name, t.TimeZone, t.BufferMinutes, hours)
		if err != nil {
			return fmt.Errorf("insert tenant %s: %w", t.ID, err)
		}
	}
	for _, p := range seed.Providers {
		var hours []byte
		if p.Hours != nil {
			b, err := json.Marshal(p.Hours)
			if err != nil {
				return err
			}
			hours = b
		}
		serviceIDs := p.ServiceIDs
		if serviceIDs == nil {
			serviceIDs = []uuid.UUID{}
		}
		_, err := db.Exec(ctx, `
			INSERT INTO providers (id, tenant_id, name, weekly_hours, service_ids, is_active)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (id) DO NOTHING`,
			p.ID, p.TenantID, p.Name, hours, serviceIDs, !p.Inactive)
		if err != nil {
			return fmt.Errorf("insert provider %s: %w", p.ID, err)
		}
	}
	for _, s := range seed.Services {
		_, err := db.Exec(ctx, `
			INSERT INTO services (id, tenant_id, name, duration_minutes, buffer_before_minutes, buffer_after_minutes)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (id) DO NOTHING`,
			s.ID, s.TenantID, s.Name, s.DurationMinutes,
			pgconv.IntPtrToPgtype(s.BufferBeforeMinutes), pgconv.IntPtrToPgtype(s.BufferAfterMinutes))
		if err != nil {
			return fmt.Errorf("insert service %s: %w", s.ID, err)
		}
	}
	for _, e := range seed.Exceptions {
		if err := insertException(ctx, db, e); err != nil {
			return err
		}
	}
	return nil
}

func CreateException(t *testing.T, db DBLike, e memstore.SeedException) {
	t.Helper()
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	require.NoError(t, insertException(context.Background(), db, e))
}

func insertException(ctx context.Context, db DBLike, e memstore.SeedException) error {
	end := e.EndDate
	if !end.IsValid() {
		end = e.StartDate
	}
	var start, finish pgtype.Time
	if e.Window != nil {
		start = pgconv.ClockToPgtype(e.Window.Start)
		finish = pgconv.ClockToPgtype(e.Window.End)
	}
	_, err := db.Exec(ctx, `
		INSERT INTO schedule_exceptions (id, tenant_id, provider_id, start_date, end_date, kind, window_start, window_end, reason)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		e.ID, e.TenantID, pgconv.UUIDPtrToPgtype(e.ProviderID),
		pgconv.DateToPgtype(e.StartDate), pgconv.DateToPgtype(end),
		string(e.Kind), start, finish, e.Reason)
	if err != nil {
		return fmt.Errorf("insert exception %s: %w", e.ID, err)
	}
	return nil
}

// CountRows counts rows of a booking table, for asserting cleanup.
func CountRows(t *testing.T, db DBLike, table string) int {
	t.Helper()
	var n int
	require.NoError(t, db.QueryRow(context.Background(), "SELECT count(*) FROM "+table).Scan(&n))
	return n
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// truncates all tables and reseeds reference data
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'
		    AND tablename NOT IN ('schema_migrations')`)
		if err != nil {
			truncateSQL.Store("")
			return
		}
		defer rows.Close()
		var tables []string
		for rows.Next() {
			var t string
			if err := rows.Scan(&t); err != nil {
				truncateSQL.Store("")
				return
			}
			tables = append(tables, t)
		}
		if rows.Err() != nil {
			truncateSQL.Store("")
			return
		}
		if len(tables) == 0 {
			truncateSQL.Store("SELECT 1")
			return
		}
		truncateSQL.Store("TRUNCATE " + strings.Join(tables, ", ") + " RESTART IDENTITY CASCADE;")
	})
	sqlAny := truncateSQL.Load()
	if sqlAny == nil || sqlAny.(string) == "" {
		return fmt.Errorf("failed to build TRUNCATE SQL")
	}
	if _, err := pool.Exec(ctx, sqlAny.(string)); err != nil {
		return err
	}

	return SeedReferenceData(pool)
}
