//go:build unit || e2e

// Package bookingtest provides a small reference catalog shared by use case,
// handler and e2e tests.
package bookingtest

import (
	"testing"
	"time"

	"slot-booker/internal/domain/schedule"
	"slot-booker/internal/infra/memstore"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

const TimeZone = "America/New_York"

var (
	TenantID   = uuid.MustParse("a0000000-0000-4000-8000-000000000001")
	ProviderID = uuid.MustParse("b0000000-0000-4000-8000-000000000001")
	OtherID    = uuid.MustParse("b0000000-0000-4000-8000-000000000002")
	ServiceID  = uuid.MustParse("c0000000-0000-4000-8000-000000000001")

	// Monday is a regular working day; Saturday is regularly closed.
	Monday   = civil.Date{Year: 2030, Month: time.March, Day: 4}
	Saturday = civil.Date{Year: 2030, Month: time.March, Day: 9}
)

type Options struct {
	DurationMinutes int
	BufferMinutes   int
	Exceptions      []memstore.SeedException
}

type Option func(*Options)

func WithDuration(minutes int) Option {
	return func(o *Options) { o.DurationMinutes = minutes }
}

func WithBuffer(minutes int) Option {
	return func(o *Options) { o.BufferMinutes = minutes }
}

func WithException(e memstore.SeedException) Option {
	return func(o *Options) { o.Exceptions = append(o.Exceptions, e) }
}

// Seed describes a tenant open Monday to Friday 09:00-17:00 with two
// providers and one service, 60 minutes and no buffer by default.
func Seed(opts ...Option) *memstore.Seed {
	o := Options{DurationMinutes: 60}
	for _, opt := range opts {
		opt(&o)
	}
	hours := schedule.WeeklyHours{}
	for d := time.Monday; d <= time.Friday; d++ {
		w, _ := schedule.ParseWindow("09:00", "17:00")
		hours[d] = []schedule.Window{w}
	}
	return &memstore.Seed{
		Tenants: []memstore.SeedTenant{{
			ID:            TenantID,
			Name:          "Downtown Studio",
			TimeZone:      TimeZone,
			BufferMinutes: o.BufferMinutes,
			Hours:         hours,
		}},
		Providers: []memstore.SeedProvider{
			{ID: ProviderID, TenantID: TenantID, Name: "Alex"},
			{ID: OtherID, TenantID: TenantID, Name: "Sam"},
		},
		Services: []memstore.SeedService{{
			ID:              ServiceID,
			TenantID:        TenantID,
			Name:            "Consultation",
			DurationMinutes: o.DurationMinutes,
		}},
		Exceptions: o.Exceptions,
	}
}

func NewStore(t *testing.T, opts ...Option) *memstore.Store {
	t.Helper()
	store := memstore.New()
	require.NoError(t, store.Apply(Seed(opts...)))
	return store
}

func Location(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation(TimeZone)
	require.NoError(t, err)
	return loc
}

// At returns hh:mm on date in the tenant's zone.
func At(t *testing.T, date civil.Date, hh, mm int) time.Time {
	t.Helper()
	return time.Date(date.Year, date.Month, date.Day, hh, mm, 0, 0, Location(t))
}

func Clock(hh, mm int) civil.Time {
	return civil.Time{Hour: hh, Minute: mm}
}
