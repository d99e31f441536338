package shared

import (
	"context"
	"time"

	"slot-booker/internal/domain/appointment"
	"slot-booker/internal/domain/catalog"
	"slot-booker/internal/domain/hold"
	"slot-booker/internal/domain/schedule"
	"slot-booker/internal/domain/timerange"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"
)

type UnitOfWork interface {
	// WithinProvider: write transaction serialized against every other
	// WithinProvider call for the same provider
	WithinProvider(ctx context.Context, providerID uuid.UUID, fn func(ctx context.Context, tx Tx) error) error
	// Within: write transaction without provider serialization (bulk maintenance)
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithinReadOnly: consistent snapshot for multi-table reads
	WithinReadOnly(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}

type Tx interface {
	Catalog() CatalogReads
	Occupancy() OccupancyReads
	Holds() HoldRepository
	Appointments() AppointmentRepository
}

// CatalogReads is the read-only view of tenant configuration owned by
// another system.
type CatalogReads interface {
	TenantByID(ctx context.Context, id uuid.UUID) (*catalog.Tenant, error)
	ProviderByID(ctx context.Context, id uuid.UUID) (*catalog.Provider, error)
	ServiceByID(ctx context.Context, id uuid.UUID) (*catalog.Service, error)
	// Exceptions returns tenant-wide and provider exceptions touching [from, to].
	Exceptions(ctx context.Context, tenantID, providerID uuid.UUID, from, to civil.Date) ([]schedule.Exception, error)
}

// OccupancyReads lists what currently blocks a provider's timeline.
// Both methods match on blocked windows overlapping window.
type OccupancyReads interface {
	LiveHolds(ctx context.Context, providerID uuid.UUID, window timerange.Interval, now time.Time) ([]*hold.Hold, error)
	ConfirmedAppointments(ctx context.Context, providerID uuid.UUID, window timerange.Interval) ([]*appointment.Appointment, error)
}

type HoldRepository interface {
	Create(ctx context.Context, h *hold.Hold) error
	FindByID(ctx context.Context, id uuid.UUID) (*hold.Hold, error)
	Delete(ctx context.Context, id uuid.UUID) error
	// DeleteExpired removes up to limit holds with expiresAt <= now and returns them.
	DeleteExpired(ctx context.Context, now time.Time, limit int) ([]*hold.Hold, error)
}

type AppointmentRepository interface {
	Create(ctx context.Context, a *appointment.Appointment) error
	FindByID(ctx context.Context, id uuid.UUID) (*appointment.Appointment, error)
	UpdateStatus(ctx context.Context, a *appointment.Appointment) error
	// ListBySession pages a session's appointments ordered by (start, id),
	// strictly after the key when one is given.
	ListBySession(ctx context.Context, sessionID string, after *PageKey, limit int) ([]*appointment.Appointment, error)
}

// PageKey is the keyset position of an appointment listing.
type PageKey struct {
	StartAt time.Time
	ID      uuid.UUID
}

// Less reports whether k sorts strictly before (startAt, id), i.e. whether
// that row belongs on a page that starts after k.
func (k PageKey) Less(startAt time.Time, id uuid.UUID) bool {
	if !startAt.Equal(k.StartAt) {
		return k.StartAt.Before(startAt)
	}
	return k.ID.String() < id.String()
}
