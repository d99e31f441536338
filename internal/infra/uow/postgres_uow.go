package uow

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"errors"
	"log/slog"
	"time"

	"slot-booker/internal/infra/readstore"
	"slot-booker/internal/infra/repository"
	sqlc "slot-booker/internal/infra/sqlc/generated"
	"slot-booker/internal/pkg/errs"
	"slot-booker/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	pgErrCodeSerializationFailure = "40001"
	pgErrCodeDeadlockDetected     = "40P01"
)

// Transaction-scoped lock keyed by provider; released on commit or rollback.
const lockProviderSQL = `SELECT pg_advisory_xact_lock(hashtextextended($1::text, 0))`

var (
	errTransactionBegin   = errs.New("failed to begin transaction")
	errTransactionCommit  = errs.New("failed to commit transaction")
	errProviderLock       = errs.New("failed to lock provider timeline")
	errMaxRetriesExceeded = errs.New("transaction failed after max retries")
)

type RetryPolicy struct {
	Base       time.Duration
	MaxRetries int
}

var DefaultRetryPolicy = RetryPolicy{Base: 100 * time.Millisecond, MaxRetries: 3}

type PostgresUoW struct {
	pool   *pgxpool.Pool
	q      *sqlc.Queries
	policy RetryPolicy
}

func NewPostgresUoW(pool *pgxpool.Pool, q *sqlc.Queries, policy RetryPolicy) shared.UnitOfWork {
	if policy.Base <= 0 {
		policy.Base = DefaultRetryPolicy.Base
	}
	if policy.MaxRetries < 0 {
		policy.MaxRetries = 0
	}
	return &PostgresUoW{
		pool:   pool,
		q:      q,
		policy: policy,
	}
}

// WithinProvider takes the provider's advisory lock before fn runs, so the
// availability check and the insert that follows it see no interleaved
// writer on the same timeline.
func (u *PostgresUoW) WithinProvider(ctx context.Context, providerID uuid.UUID, fn func(ctx context.Context, tx shared.Tx) error) error {
	return u.runInTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted}, func(ctx context.Context, pgxTx pgx.Tx) error {
		if _, err := pgxTx.Exec(ctx, lockProviderSQL, providerID.String()); err != nil {
			return errs.Mark(err, errProviderLock)
		}
		return fn(ctx, u.newTx(pgxTx))
	})
}

// ReadCommitted prevents dirty reads while allowing concurrent writes
func (u *PostgresUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return u.runInTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted}, func(ctx context.Context, pgxTx pgx.Tx) error {
		return fn(ctx, u.newTx(pgxTx))
	})
}

// Read-only transaction for consistent multi-table snapshots
func (u *PostgresUoW) WithinReadOnly(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	pgxTx, err := u.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly})
	if err != nil {
		return errs.Mark(err, errTransactionBegin)
	}

	defer func() {
		if rollbackErr := pgxTx.Rollback(ctx); rollbackErr != nil {
			if !errors.Is(rollbackErr, pgx.ErrTxClosed) {
				slog.Warn("failed to rollback read-only transaction", "error", rollbackErr.Error())
			}
		}
	}()

	if err := fn(ctx, u.newTx(pgxTx)); err != nil {
		return err
	}

	return pgxTx.Commit(ctx)
}

func (u *PostgresUoW) newTx(pgxTx pgx.Tx) *pgTx {
	return &pgTx{dbtx: pgxTx, q: u.q}
}

// Avoids defer accumulation in retry loops to prevent connection leaks
func (u *PostgresUoW) runInTx(ctx context.Context, options pgx.TxOptions, fn func(ctx context.Context, pgxTx pgx.Tx) error) error {
	maxRetries := u.policy.MaxRetries

	for attempt := 0; attempt <= maxRetries; attempt++ {
		pgxTx, err := u.pool.BeginTx(ctx, options)
		if err != nil {
			return errs.Mark(err, errTransactionBegin)
		}

		err = fn(ctx, pgxTx)
		if err == nil {
			if err = pgxTx.Commit(ctx); err == nil {
				return nil
			}
			err = errs.Mark(err, errTransactionCommit)
		}

		if rollbackErr := pgxTx.Rollback(ctx); rollbackErr != nil {
			if !errors.Is(rollbackErr, pgx.ErrTxClosed) {
				slog.Warn("rollback failed", "attempt", attempt+1, "error", rollbackErr.Error())
			}
		}

		if !shouldRetry(err, attempt, maxRetries) {
			if attempt == maxRetries && isRetryableError(err) {
				slog.Error("transaction failed after max retries",
					"attempts", attempt+1,
					"error", err.Error())
				return errs.Mark(err, errMaxRetriesExceeded)
			}
			return err
		}

		waitTime := calculateBackoff(attempt, u.policy.Base)

		slog.Warn("retrying transaction due to retryable error",
			"attempt", attempt+1,
			"wait_ms", waitTime.Milliseconds(),
			"error", err.Error())

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(waitTime):
		}
	}

	return errMaxRetriesExceeded
}

func shouldRetry(err error, attempt, maxRetries int) bool {
	return isRetryableError(err) && attempt < maxRetries
}

func calculateBackoff(attempt int, base time.Duration) time.Duration {
	waitTime := time.Duration(1<<attempt) * base
	jitter := cryptoRandInt63n(int64(waitTime / 5))
	return waitTime + time.Duration(jitter)
}

func cryptoRandInt63n(n int64) int64 {
	if n <= 0 {
		return 0
	}
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return 0
	}
	uval := binary.BigEndian.Uint64(buf[:]) & 0x7FFFFFFFFFFFFFFF
	// #nosec G115 -- high bit masked above
	return int64(uval) % n
}

func isRetryableError(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}

	switch pgErr.Code {
	case pgErrCodeSerializationFailure, pgErrCodeDeadlockDetected:
		return true
	default:
		return false
	}
}

type pgTx struct {
	dbtx sqlc.DBTX
	q    *sqlc.Queries

	// Lazy-initialized stores
	catalog      *readstore.CatalogReadStore
	occupancy    *readstore.OccupancyReadStore
	holds        *repository.HoldRepository
	appointments *repository.AppointmentRepository
}

func (t *pgTx) Catalog() shared.CatalogReads {
	if t.catalog == nil {
		t.catalog = readstore.NewCatalogReadStore(t.q, t.dbtx)
	}
	return t.catalog
}

func (t *pgTx) Occupancy() shared.OccupancyReads {
	if t.occupancy == nil {
		t.occupancy = readstore.NewOccupancyReadStore(t.q, t.dbtx)
	}
	return t.occupancy
}

func (t *pgTx) Holds() shared.HoldRepository {
	if t.holds == nil {
		t.holds = repository.NewHoldRepository(t.q, t.dbtx)
	}
	return t.holds
}

func (t *pgTx) Appointments() shared.AppointmentRepository {
	if t.appointments == nil {
		t.appointments = repository.NewAppointmentRepository(t.q, t.dbtx)
	}
	return t.appointments
}
