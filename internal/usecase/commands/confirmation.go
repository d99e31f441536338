package commands

import (
	"context"
	"log/slog"

	"slot-booker/internal/domain/appointment"
	"slot-booker/internal/domain/hold"
	"slot-booker/internal/pkg/clock"
	"slot-booker/internal/pkg/errs"
	"slot-booker/internal/usecase/shared"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

type ConfirmationCommands interface {
	Confirm(ctx context.Context, in ConfirmInput) (*ConfirmResult, error)
	Cancel(ctx context.Context, in CancelInput) (*appointment.Appointment, error)
}

type confirmationCommandsImpl struct {
	uow       shared.UnitOfWork
	publisher shared.EventPublisher
	clock     clock.Clock
	logger    *slog.Logger
}

func NewConfirmationCommands(
	uow shared.UnitOfWork,
	publisher shared.EventPublisher,
	clock clock.Clock,
	logger *slog.Logger,
) ConfirmationCommands {
	return &confirmationCommandsImpl{
		uow:       uow,
		publisher: publisher,
		clock:     clock,
		logger:    logger,
	}
}

// Confirm converts a live hold into a confirmed appointment. Checks run in
// order: hold exists, session owns it, hold not expired, slot still free.
// The appointment is created and the hold removed in one transaction, so a
// hold can be confirmed at most once.
func (c *confirmationCommandsImpl) Confirm(ctx context.Context, in ConfirmInput) (_ *ConfirmResult, err error) {
	ctx, span := tracer.Start(ctx, "ConfirmationCommands.Confirm", trace.WithAttributes(
		attribute.String("hold.id", in.HoldID.String()),
	))
	defer func() { endSpan(span, err) }()

	if in.SessionID == "" {
		return nil, ErrSessionRequired
	}
	existing, err := findHold(ctx, c.uow, in.HoldID)
	if err != nil {
		return nil, err
	}

	var confirmed *appointment.Appointment
	err = c.uow.WithinProvider(ctx, existing.ProviderID(), func(ctx context.Context, tx shared.Tx) error {
		h, err := tx.Holds().FindByID(ctx, in.HoldID)
		if err != nil {
			return shared.NotFoundOr(err, "find hold")
		}

		now := c.clock.Now()
		switch err := h.CheckConfirm(in.SessionID, now); {
		case errs.Is(err, hold.ErrNotOwner):
			return errs.Mark(err, errs.ErrForbidden)
		case errs.Is(err, hold.ErrExpired):
			return errs.Mark(errs.Wrapf(err, "hold %s expired at %s", h.ID(), h.ExpiresAt()), errs.ErrExpired)
		}

		booked, err := tx.Occupancy().ConfirmedAppointments(ctx, h.ProviderID(), h.Blocked())
		if err != nil {
			return errs.Mark(errs.Wrap(err, "load confirmed appointments"), errs.ErrDatabaseOperationFailed)
		}
		if len(booked) > 0 {
			return errs.Mark(errs.Newf("slot %s was booked through another hold", h.Window()), errs.ErrSlotUnavailable)
		}

		customer, err := appointment.NewCustomer(in.Customer.Name, in.Customer.Email, in.Customer.Phone, in.Customer.Notes)
		if err != nil {
			return errs.Mark(err, errs.ErrInvalidInput)
		}

		a := appointment.FromHold(h, customer, now)
		if err := tx.Appointments().Create(ctx, a); err != nil {
			return mapWriteErr(err, "create appointment")
		}
		if err := tx.Holds().Delete(ctx, h.ID()); err != nil {
			return mapWriteErr(err, "consume hold")
		}
		confirmed = a
		return nil
	})
	if err != nil {
		return nil, txErr(err)
	}

	publish(ctx, c.publisher, c.logger, appointmentEvent(shared.EventAppointmentConfirmed, confirmed))
	return &ConfirmResult{
		AppointmentID: confirmed.ID(),
		Status:        confirmed.Status(),
		Appointment:   confirmed,
	}, nil
}

func (c *confirmationCommandsImpl) Cancel(ctx context.Context, in CancelInput) (_ *appointment.Appointment, err error) {
	ctx, span := tracer.Start(ctx, "ConfirmationCommands.Cancel", trace.WithAttributes(
		attribute.String("appointment.id", in.AppointmentID.String()),
	))
	defer func() { endSpan(span, err) }()

	if in.SessionID == "" {
		return nil, ErrSessionRequired
	}

	var existing *appointment.Appointment
	err = c.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		existing, err = tx.Appointments().FindByID(ctx, in.AppointmentID)
		return err
	})
	if err != nil {
		return nil, shared.NotFoundOr(err, "find appointment")
	}

	var cancelled *appointment.Appointment
	err = c.uow.WithinProvider(ctx, existing.ProviderID(), func(ctx context.Context, tx shared.Tx) error {
		a, err := tx.Appointments().FindByID(ctx, in.AppointmentID)
		if err != nil {
			return shared.NotFoundOr(err, "find appointment")
		}
		switch err := a.Cancel(in.SessionID, in.Reason, c.clock.Now()); {
		case errs.Is(err, appointment.ErrNotOwner):
			return errs.Mark(err, errs.ErrForbidden)
		case err != nil:
			return errs.Mark(err, errs.ErrInvalidInput)
		}
		if err := tx.Appointments().UpdateStatus(ctx, a); err != nil {
			return mapWriteErr(err, "cancel appointment")
		}
		cancelled = a
		return nil
	})
	if err != nil {
		return nil, txErr(err)
	}

	publish(ctx, c.publisher, c.logger, appointmentEvent(shared.EventAppointmentCancelled, cancelled))
	return cancelled, nil
}

func appointmentEvent(t shared.EventType, a *appointment.Appointment) shared.Event {
	appointmentID := a.ID()
	holdID := a.HoldID()
	return shared.Event{
		ID:            uuid.New(),
		Type:          t,
		TenantID:      a.TenantID(),
		ProviderID:    a.ProviderID(),
		ServiceID:     a.ServiceID(),
		HoldID:        &holdID,
		AppointmentID: &appointmentID,
		StartAt:       a.Window().Start,
		EndAt:         a.Window().End,
		OccurredAt:    a.UpdatedAt(),
	}
}
