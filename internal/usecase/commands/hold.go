package commands

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"slot-booker/internal/domain/hold"
	"slot-booker/internal/infra"
	"slot-booker/internal/pkg/clock"
	"slot-booker/internal/pkg/errs"
	"slot-booker/internal/usecase/shared"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("slot-booker/usecase/commands")

var (
	ErrSessionRequired = errs.Mark(errs.New("session id is required"), errs.ErrInvalidInput)
	ErrTooManyHolds    = errs.Mark(errs.New("too many hold requests"), errs.ErrRateLimited)
)

type HoldCommands interface {
	PlaceHold(ctx context.Context, in PlaceHoldInput) (*HoldResult, error)
	ReleaseHold(ctx context.Context, holdID uuid.UUID, sessionID string) error
	// ReclaimExpired deletes up to limit expired holds and reports how many went.
	ReclaimExpired(ctx context.Context, limit int) (int, error)
}

type holdCommandsImpl struct {
	uow       shared.UnitOfWork
	publisher shared.EventPublisher
	limiter   shared.RateLimiter
	clock     clock.Clock
	policy    Policy
	logger    *slog.Logger
}

func NewHoldCommands(
	uow shared.UnitOfWork,
	publisher shared.EventPublisher,
	limiter shared.RateLimiter,
	clock clock.Clock,
	policy Policy,
	logger *slog.Logger,
) HoldCommands {
	if policy.HoldTTL <= 0 {
		policy = DefaultPolicy()
	}
	return &holdCommandsImpl{
		uow:       uow,
		publisher: publisher,
		limiter:   limiter,
		clock:     clock,
		policy:    policy,
		logger:    logger,
	}
}

func (c *holdCommandsImpl) PlaceHold(ctx context.Context, in PlaceHoldInput) (_ *HoldResult, err error) {
	ctx, span := tracer.Start(ctx, "HoldCommands.PlaceHold", trace.WithAttributes(
		attribute.String("tenant.id", in.TenantID.String()),
		attribute.String("provider.id", in.ProviderID.String()),
		attribute.String("slot.date", in.Date.String()),
		attribute.String("slot.start", in.StartTime.String()),
	))
	defer func() { endSpan(span, err) }()

	in.SessionID = strings.TrimSpace(in.SessionID)
	if in.SessionID == "" {
		return nil, ErrSessionRequired
	}
	if !in.Date.IsValid() || !in.StartTime.IsValid() {
		return nil, errs.Mark(errs.New("invalid slot date or time"), errs.ErrInvalidInput)
	}
	if err := c.allow(ctx, in.SessionID); err != nil {
		return nil, err
	}

	var result *HoldResult
	err = c.uow.WithinProvider(ctx, in.ProviderID, func(ctx context.Context, tx shared.Tx) error {
		now := c.clock.Now()

		booking, err := shared.LoadBookingContext(ctx, tx.Catalog(), in.TenantID, in.ProviderID, in.ServiceID)
		if err != nil {
			return err
		}
		spec, err := booking.SlotSpec(ctx, tx.Catalog(), in.Date, in.StartTime, now)
		if err != nil {
			return err
		}
		blocked := spec.Window.Expand(spec.BufferBefore, spec.BufferAfter)

		live, err := tx.Occupancy().LiveHolds(ctx, in.ProviderID, blocked, now)
		if err != nil {
			return errs.Mark(errs.Wrap(err, "load live holds"), errs.ErrDatabaseOperationFailed)
		}
		for _, h := range live {
			if h.Matches(spec, in.SessionID) {
				result = &HoldResult{Hold: h, Replayed: true}
				return nil
			}
		}
		if len(live) > 0 {
			return errs.Mark(errs.Newf("slot %s overlaps %d active hold(s)", spec.Window, len(live)), errs.ErrSlotUnavailable)
		}

		booked, err := tx.Occupancy().ConfirmedAppointments(ctx, in.ProviderID, blocked)
		if err != nil {
			return errs.Mark(errs.Wrap(err, "load confirmed appointments"), errs.ErrDatabaseOperationFailed)
		}
		if len(booked) > 0 {
			return errs.Mark(errs.Newf("slot %s overlaps a confirmed appointment", spec.Window), errs.ErrSlotUnavailable)
		}

		h, err := hold.New(spec, in.SessionID, now, c.policy.HoldTTL)
		if err != nil {
			return errs.Mark(err, errs.ErrInvalidInput)
		}
		if err := tx.Holds().Create(ctx, h); err != nil {
			return mapWriteErr(err, "create hold")
		}
		result = &HoldResult{Hold: h}
		return nil
	})
	if err != nil {
		return nil, txErr(err)
	}

	if !result.Replayed {
		c.publish(ctx, holdEvent(shared.EventHoldPlaced, result.Hold, c.clock.Now()))
	}
	return result, nil
}

func (c *holdCommandsImpl) ReleaseHold(ctx context.Context, holdID uuid.UUID, sessionID string) (err error) {
	ctx, span := tracer.Start(ctx, "HoldCommands.ReleaseHold", trace.WithAttributes(
		attribute.String("hold.id", holdID.String()),
	))
	defer func() { endSpan(span, err) }()

	existing, err := findHold(ctx, c.uow, holdID)
	if err != nil {
		return err
	}

	var released *hold.Hold
	err = c.uow.WithinProvider(ctx, existing.ProviderID(), func(ctx context.Context, tx shared.Tx) error {
		h, err := tx.Holds().FindByID(ctx, holdID)
		if err != nil {
			return shared.NotFoundOr(err, "find hold")
		}
		if h.IsExpired(c.clock.Now()) {
			return errs.Mark(errs.Newf("hold %s has expired", holdID), errs.ErrNotFound)
		}
		if err := h.CheckRelease(sessionID); err != nil {
			return errs.Mark(err, errs.ErrForbidden)
		}
		if err := tx.Holds().Delete(ctx, holdID); err != nil {
			return mapWriteErr(err, "delete hold")
		}
		released = h
		return nil
	})
	if err != nil {
		return txErr(err)
	}

	c.publish(ctx, holdEvent(shared.EventHoldReleased, released, c.clock.Now()))
	return nil
}

func (c *holdCommandsImpl) ReclaimExpired(ctx context.Context, limit int) (n int, err error) {
	ctx, span := tracer.Start(ctx, "HoldCommands.ReclaimExpired")
	defer func() { endSpan(span, err) }()

	var reclaimed []*hold.Hold
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		reclaimed, err = tx.Holds().DeleteExpired(ctx, c.clock.Now(), limit)
		if err != nil {
			return errs.Mark(errs.Wrap(err, "delete expired holds"), errs.ErrDatabaseOperationFailed)
		}
		return nil
	})
	if err != nil {
		return 0, txErr(err)
	}
	if len(reclaimed) == 0 {
		return 0, nil
	}

	now := c.clock.Now()
	events := make([]shared.Event, 0, len(reclaimed))
	for _, h := range reclaimed {
		events = append(events, holdEvent(shared.EventHoldExpired, h, now))
	}
	c.publish(ctx, events...)
	span.SetAttributes(attribute.Int("holds.reclaimed", len(reclaimed)))
	return len(reclaimed), nil
}

func (c *holdCommandsImpl) allow(ctx context.Context, sessionID string) error {
	if c.limiter == nil {
		return nil
	}
	ok, err := c.limiter.Allow(ctx, "hold:"+sessionID)
	if err != nil {
		c.logger.WarnContext(ctx, "rate limiter unavailable, allowing request", "error", err.Error())
		return nil
	}
	if !ok {
		return ErrTooManyHolds
	}
	return nil
}

func (c *holdCommandsImpl) publish(ctx context.Context, events ...shared.Event) {
	publish(ctx, c.publisher, c.logger, events...)
}

// findHold reads a hold outside any lock to learn which provider to lock.
func findHold(ctx context.Context, uow shared.UnitOfWork, id uuid.UUID) (*hold.Hold, error) {
	var h *hold.Hold
	err := uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		h, err = tx.Holds().FindByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, shared.NotFoundOr(err, "find hold")
	}
	return h, nil
}

func holdEvent(t shared.EventType, h *hold.Hold, now time.Time) shared.Event {
	id := h.ID()
	return shared.Event{
		ID:         uuid.New(),
		Type:       t,
		TenantID:   h.TenantID(),
		ProviderID: h.ProviderID(),
		ServiceID:  h.ServiceID(),
		HoldID:     &id,
		StartAt:    h.Window().Start,
		EndAt:      h.Window().End,
		OccurredAt: now,
	}
}

func publish(ctx context.Context, publisher shared.EventPublisher, logger *slog.Logger, events ...shared.Event) {
	if publisher == nil || len(events) == 0 {
		return
	}
	if err := publisher.Publish(ctx, events...); err != nil {
		logger.WarnContext(ctx, "failed to publish booking events",
			"event_type", string(events[0].Type),
			"count", len(events),
			"error", err.Error())
	}
}

// mapWriteErr turns storage conflicts into SlotUnavailable.
func mapWriteErr(err error, msg string) error {
	switch {
	case infra.IsKind(err, infra.KindConflict), infra.IsKind(err, infra.KindDuplicateKey):
		return errs.Mark(errs.Wrap(err, msg), errs.ErrSlotUnavailable)
	case infra.IsKind(err, infra.KindNotFound):
		return errs.Mark(errs.Wrap(err, msg), errs.ErrNotFound)
	default:
		return errs.Mark(errs.Wrap(err, msg), errs.ErrDatabaseOperationFailed)
	}
}

// txErr classifies errors surfacing from the transaction itself, such as a
// constraint rejected at commit.
func txErr(err error) error {
	if errs.Kind(err) != nil || errs.Is(err, errs.ErrDatabaseOperationFailed) {
		return err
	}
	return mapWriteErr(err, "commit transaction")
}

// Expected outcomes such as a taken slot are not span errors.
func endSpan(span trace.Span, err error) {
	if err != nil && errs.Kind(err) == nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else if err != nil {
		span.SetAttributes(attribute.String("booking.outcome", errs.Kind(err).Error()))
	}
	span.End()
}
