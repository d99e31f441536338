package queries

import (
	"context"
	"slices"
	"time"

	"slot-booker/internal/domain/availability"
	"slot-booker/internal/domain/schedule"
	"slot-booker/internal/domain/timerange"
	"slot-booker/internal/pkg/clock"
	"slot-booker/internal/pkg/errs"
	"slot-booker/internal/usecase/shared"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("slot-booker/usecase/queries")

type AvailabilityInput struct {
	TenantID           uuid.UUID
	ProviderID         uuid.UUID
	ServiceID          uuid.UUID
	Date               civil.Date
	GranularityMinutes int
}

type AvailabilityRangeInput struct {
	TenantID           uuid.UUID
	ProviderID         uuid.UUID
	ServiceID          uuid.UUID
	From               civil.Date
	To                 civil.Date
	GranularityMinutes int
}

type AvailabilityPolicy struct {
	DefaultGranularity int
	MaxRangeDays       int
}

func DefaultAvailabilityPolicy() AvailabilityPolicy {
	return AvailabilityPolicy{DefaultGranularity: 15, MaxRangeDays: 31}
}

type AvailabilityQueries interface {
	Resolve(ctx context.Context, in AvailabilityInput) (*DayAvailability, error)
	ResolveRange(ctx context.Context, in AvailabilityRangeInput) ([]*DayAvailability, error)
}

type availabilityQueriesImpl struct {
	uow    shared.UnitOfWork
	clock  clock.Clock
	policy AvailabilityPolicy
}

func NewAvailabilityQueries(uow shared.UnitOfWork, clock clock.Clock, policy AvailabilityPolicy) AvailabilityQueries {
	defaults := DefaultAvailabilityPolicy()
	if policy.DefaultGranularity <= 0 {
		policy.DefaultGranularity = defaults.DefaultGranularity
	}
	if policy.MaxRangeDays <= 0 {
		policy.MaxRangeDays = defaults.MaxRangeDays
	}
	return &availabilityQueriesImpl{uow: uow, clock: clock, policy: policy}
}

func (q *availabilityQueriesImpl) Resolve(ctx context.Context, in AvailabilityInput) (*DayAvailability, error) {
	days, err := q.ResolveRange(ctx, AvailabilityRangeInput{
		TenantID:           in.TenantID,
		ProviderID:         in.ProviderID,
		ServiceID:          in.ServiceID,
		From:               in.Date,
		To:                 in.Date,
		GranularityMinutes: in.GranularityMinutes,
	})
	if err != nil {
		return nil, err
	}
	return days[0], nil
}

// ResolveRange reads catalog and occupancy in one snapshot and walks every
// day of [From, To].
func (q *availabilityQueriesImpl) ResolveRange(ctx context.Context, in AvailabilityRangeInput) ([]*DayAvailability, error) {
	ctx, span := tracer.Start(ctx, "AvailabilityQueries.ResolveRange", trace.WithAttributes(
		attribute.String("provider.id", in.ProviderID.String()),
		attribute.String("range.from", in.From.String()),
		attribute.String("range.to", in.To.String()),
	))
	defer span.End()

	granularity, err := q.validate(in)
	if err != nil {
		return nil, err
	}

	var result []*DayAvailability
	err = q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		booking, err := shared.LoadBookingContext(ctx, tx.Catalog(), in.TenantID, in.ProviderID, in.ServiceID)
		if err != nil {
			return err
		}
		days, err := booking.ResolveDays(ctx, tx.Catalog(), in.From, in.To)
		if err != nil {
			return err
		}

		now := q.clock.Now()
		before, after := booking.Service.Buffers(booking.Tenant)
		result = make([]*DayAvailability, 0, len(days))
		for _, day := range days {
			view := &DayAvailability{
				Date:         day.Date,
				TenantID:     booking.Tenant.ID,
				ProviderID:   booking.Provider.ID,
				ProviderName: booking.Provider.Name,
				ServiceID:    booking.Service.ID,
				TimeZone:     booking.Location.String(),
				IsOpen:       day.IsOpen(),
				ClosedReason: string(day.ClosedReason),
				Note:         day.Note,
				Slots:        []SlotView{},
			}
			result = append(result, view)

			window, ok := booking.OccupancyWindow(day)
			if !ok {
				continue
			}
			occupied, err := occupiedWindows(ctx, tx.Occupancy(), in.ProviderID, window, now)
			if err != nil {
				return err
			}
			seq := availability.Slots(availability.Request{
				Open:         day.Open,
				Occupied:     occupied,
				Duration:     booking.Service.Duration(),
				Granularity:  granularity,
				BufferBefore: before,
				BufferAfter:  after,
				Now:          now,
			})
			for s := range seq {
				view.Slots = append(view.Slots, toSlotView(s, booking.Location))
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (q *availabilityQueriesImpl) validate(in AvailabilityRangeInput) (time.Duration, error) {
	if !in.From.IsValid() || !in.To.IsValid() {
		return 0, errs.Mark(errs.New("invalid date"), errs.ErrInvalidInput)
	}
	if in.To.Before(in.From) {
		return 0, errs.Mark(errs.New("range end is before range start"), errs.ErrInvalidInput)
	}
	if days := in.To.DaysSince(in.From) + 1; days > q.policy.MaxRangeDays {
		return 0, errs.Mark(errs.Newf("range of %d days exceeds the limit of %d", days, q.policy.MaxRangeDays), errs.ErrInvalidInput)
	}
	minutes := in.GranularityMinutes
	if minutes == 0 {
		minutes = q.policy.DefaultGranularity
	}
	if minutes < 1 || minutes > 24*60 {
		return 0, errs.Mark(errs.Newf("slot interval %d is out of range", minutes), errs.ErrInvalidInput)
	}
	return time.Duration(minutes) * time.Minute, nil
}

func occupiedWindows(ctx context.Context, reads shared.OccupancyReads, providerID uuid.UUID, window timerange.Interval, now time.Time) ([]timerange.Interval, error) {
	holds, err := reads.LiveHolds(ctx, providerID, window, now)
	if err != nil {
		return nil, errs.Wrap(err, "load live holds")
	}
	booked, err := reads.ConfirmedAppointments(ctx, providerID, window)
	if err != nil {
		return nil, errs.Wrap(err, "load confirmed appointments")
	}
	occupied := make([]timerange.Interval, 0, len(holds)+len(booked))
	for _, h := range holds {
		occupied = append(occupied, h.Blocked())
	}
	for _, a := range booked {
		occupied = append(occupied, a.Blocked())
	}
	return slices.Clip(occupied), nil
}

func toSlotView(s availability.Slot, loc *time.Location) SlotView {
	start, end := s.Start.In(loc), s.End.In(loc)
	return SlotView{
		StartTime:   start.Format("15:04"),
		EndTime:     end.Format("15:04"),
		StartAt:     start,
		EndAt:       end,
		IsAvailable: s.Available,
	}
}

// ClosedReasons lists every reason a day may be reported closed.
var ClosedReasons = []schedule.ClosedReason{
	schedule.ReasonNoHoursConfigured,
	schedule.ReasonRegularlyClosed,
	schedule.ReasonDayOff,
}
