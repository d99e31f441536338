package pgconv

import (
	"database/sql"
	"errors"
	"time"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

var (
	ErrUnboundedRange = errors.New("range must have both bounds")
	ErrInvalidTime    = errors.New("invalid time of day")
)

const microsPerSecond = int64(time.Second / time.Microsecond)

func UUIDPtrFromPgtype(pu pgtype.UUID) *uuid.UUID {
	if !pu.Valid {
		return nil
	}
	id := uuid.UUID(pu.Bytes)
	return &id
}

func UUIDPtrToPgtype(id *uuid.UUID) pgtype.UUID {
	if id == nil {
		return pgtype.UUID{Valid: false}
	}
	return pgtype.UUID{Bytes: *id, Valid: true}
}

func TimeFromPgtype(pt pgtype.Timestamptz) time.Time {
	return pt.Time
}

func TimeToPgtype(t time.Time) pgtype.Timestamptz {
	return pgtype.Timestamptz{Time: t, Valid: true}
}

func IntPtrFromPgtype(pi pgtype.Int4) *int {
	if !pi.Valid {
		return nil
	}
	v := int(pi.Int32)
	return &v
}

func IntPtrToPgtype(v *int) pgtype.Int4 {
	if v == nil {
		return pgtype.Int4{Valid: false}
	}
	// #nosec G115 -- buffers are bounded by domain validation
	return pgtype.Int4{Int32: int32(*v), Valid: true}
}

func DateToPgtype(d civil.Date) pgtype.Date {
	return pgtype.Date{Time: time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC), Valid: true}
}

func DateFromPgtype(pd pgtype.Date) civil.Date {
	return civil.DateOf(pd.Time)
}

// ClockFromPgtype converts a TIME column (microseconds since midnight).
func ClockFromPgtype(pt pgtype.Time) (civil.Time, error) {
	if !pt.Valid || pt.Microseconds < 0 || pt.Microseconds >= 24*3600*microsPerSecond {
		return civil.Time{}, ErrInvalidTime
	}
	secs := pt.Microseconds / microsPerSecond
	return civil.Time{
		Hour:       int(secs / 3600),
		Minute:     int(secs % 3600 / 60),
		Second:     int(secs % 60),
		Nanosecond: int(pt.Microseconds%microsPerSecond) * 1000,
	}, nil
}

func ClockToPgtype(t civil.Time) pgtype.Time {
	secs := int64(t.Hour*3600 + t.Minute*60 + t.Second)
	return pgtype.Time{Microseconds: secs*microsPerSecond + int64(t.Nanosecond/1000), Valid: true}
}

// RangeToPgtype encodes [start, end) as a tstzrange.
func RangeToPgtype(start, end time.Time) pgtype.Range[pgtype.Timestamptz] {
	return pgtype.Range[pgtype.Timestamptz]{
		Lower:     TimeToPgtype(start),
		Upper:     TimeToPgtype(end),
		LowerType: pgtype.Inclusive,
		UpperType: pgtype.Exclusive,
		Valid:     true,
	}
}

// RangeFromPgtype returns the bounds of a tstzrange. Postgres canonicalises
// non-empty ranges of this type to [lower, upper).
func RangeFromPgtype(r pgtype.Range[pgtype.Timestamptz]) (time.Time, time.Time, error) {
	if !r.Valid || r.LowerType == pgtype.Unbounded || r.UpperType == pgtype.Unbounded ||
		!r.Lower.Valid || !r.Upper.Valid {
		return time.Time{}, time.Time{}, ErrUnboundedRange
	}
	return r.Lower.Time, r.Upper.Time, nil
}

// IsNoRows checks if the error is a "no rows" error from either sql or pgx
func IsNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows) || errors.Is(err, pgx.ErrNoRows)
}
