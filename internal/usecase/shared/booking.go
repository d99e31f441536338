package shared

import (
	"context"
	"slices"
	"time"

	"slot-booker/internal/domain/catalog"
	"slot-booker/internal/domain/hold"
	"slot-booker/internal/domain/schedule"
	"slot-booker/internal/domain/timerange"
	"slot-booker/internal/infra"
	"slot-booker/internal/pkg/errs"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"
)

// BookingContext bundles the catalog entries a booking depends on.
type BookingContext struct {
	Tenant   *catalog.Tenant
	Provider *catalog.Provider
	Service  *catalog.Service
	Location *time.Location
}

func LoadBookingContext(ctx context.Context, reads CatalogReads, tenantID, providerID, serviceID uuid.UUID) (*BookingContext, error) {
	tenant, err := reads.TenantByID(ctx, tenantID)
	if err != nil {
		return nil, NotFoundOr(err, "tenant not found")
	}
	provider, err := reads.ProviderByID(ctx, providerID)
	if err != nil {
		return nil, NotFoundOr(err, "provider not found")
	}
	service, err := reads.ServiceByID(ctx, serviceID)
	if err != nil {
		return nil, NotFoundOr(err, "service not found")
	}
	if err := catalog.Bookable(tenant, provider, service); err != nil {
		return nil, errs.Mark(err, errs.ErrNotFound)
	}
	loc, err := tenant.Location()
	if err != nil {
		return nil, errs.Wrap(err, "tenant time zone")
	}
	return &BookingContext{Tenant: tenant, Provider: provider, Service: service, Location: loc}, nil
}

// ResolveDays resolves every date in [from, to] with a single exception lookup.
func (b *BookingContext) ResolveDays(ctx context.Context, reads CatalogReads, from, to civil.Date) ([]schedule.DaySchedule, error) {
	exceptions, err := reads.Exceptions(ctx, b.Tenant.ID, b.Provider.ID, from, to)
	if err != nil {
		return nil, errs.Wrap(err, "load schedule exceptions")
	}
	cal := schedule.Calendar{
		ProviderID:    b.Provider.ID,
		Location:      b.Location,
		TenantHours:   b.Tenant.Hours,
		ProviderHours: b.Provider.Hours,
		Exceptions:    exceptions,
	}
	days := make([]schedule.DaySchedule, 0, to.DaysSince(from)+1)
	for d := from; !d.After(to); d = d.AddDays(1) {
		days = append(days, schedule.Resolve(cal, d))
	}
	return days, nil
}

func (b *BookingContext) ResolveDay(ctx context.Context, reads CatalogReads, date civil.Date) (schedule.DaySchedule, error) {
	days, err := b.ResolveDays(ctx, reads, date, date)
	if err != nil {
		return schedule.DaySchedule{}, err
	}
	return days[0], nil
}

// SlotSpec builds the hold spec for a booking starting at date/start in the
// tenant's zone and checks it lies inside the provider's open hours and not
// in the past.
func (b *BookingContext) SlotSpec(ctx context.Context, reads CatalogReads, date civil.Date, start civil.Time, now time.Time) (hold.Spec, error) {
	startAt := schedule.At(date, start, b.Location)
	window := timerange.Interval{Start: startAt, End: startAt.Add(b.Service.Duration())}
	before, after := b.Service.Buffers(b.Tenant)
	spec := hold.Spec{
		TenantID:     b.Tenant.ID,
		ProviderID:   b.Provider.ID,
		ServiceID:    b.Service.ID,
		Window:       window,
		BufferBefore: before,
		BufferAfter:  after,
	}

	if startAt.Before(now) {
		return spec, errs.Mark(errs.Newf("slot %s starts in the past", window), errs.ErrSlotUnavailable)
	}
	day, err := b.ResolveDay(ctx, reads, date)
	if err != nil {
		return spec, err
	}
	if !day.IsOpen() {
		return spec, errs.Mark(errs.Newf("provider closed on %s: %s", date, day.ClosedReason), errs.ErrSlotUnavailable)
	}
	if !slices.ContainsFunc(day.Open, func(o timerange.Interval) bool { return o.Contains(window) }) {
		return spec, errs.Mark(errs.Newf("slot %s is outside working hours", window), errs.ErrSlotUnavailable)
	}
	return spec, nil
}

// OccupancyWindow is the range whose bookings can conflict with any slot of
// day: the open hours widened by the service buffers.
func (b *BookingContext) OccupancyWindow(day schedule.DaySchedule) (timerange.Interval, bool) {
	start, end, ok := day.Bounds()
	if !ok {
		return timerange.Interval{}, false
	}
	before, after := b.Service.Buffers(b.Tenant)
	return timerange.Interval{Start: start, End: end}.Expand(before, after), true
}

// NotFoundOr wraps err and marks repository not-found errors with errs.ErrNotFound.
func NotFoundOr(err error, msg string) error {
	if infra.IsKind(err, infra.KindNotFound) {
		return errs.Mark(errs.Wrap(err, msg), errs.ErrNotFound)
	}
	return errs.Wrap(err, msg)
}
