package queries

import (
	"context"
	"strings"

	"slot-booker/internal/domain/appointment"
	"slot-booker/internal/pkg/errs"
	"slot-booker/internal/usecase/shared"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

type AppointmentQueries interface {
	// GetByID returns the appointment when it belongs to sessionID.
	GetByID(ctx context.Context, id uuid.UUID, sessionID string) (*AppointmentView, error)
	ListBySession(ctx context.Context, sessionID, cursor string, limit int) (*AppointmentPage, error)
}

type appointmentQueriesImpl struct {
	uow shared.UnitOfWork
}

func NewAppointmentQueries(uow shared.UnitOfWork) AppointmentQueries {
	return &appointmentQueriesImpl{uow: uow}
}

func (q *appointmentQueriesImpl) GetByID(ctx context.Context, id uuid.UUID, sessionID string) (*AppointmentView, error) {
	ctx, span := tracer.Start(ctx, "AppointmentQueries.GetByID",
		trace.WithAttributes(attribute.String("appointment.id", id.String())))
	defer span.End()

	var view *AppointmentView
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		a, err := tx.Appointments().FindByID(ctx, id)
		if err != nil {
			return shared.NotFoundOr(err, "appointment not found")
		}
		if a.SessionID() != strings.TrimSpace(sessionID) {
			return errs.Mark(errs.New("appointment belongs to another session"), errs.ErrForbidden)
		}
		view = ToAppointmentView(a)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

func (q *appointmentQueriesImpl) ListBySession(ctx context.Context, sessionID, cursor string, limit int) (*AppointmentPage, error) {
	ctx, span := tracer.Start(ctx, "AppointmentQueries.ListBySession")
	defer span.End()

	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return nil, errs.Mark(errs.New("session is required"), errs.ErrInvalidInput)
	}
	after, err := DecodeAfterCursor(cursor)
	if err != nil {
		return nil, errs.Mark(errs.Wrap(err, "decode cursor"), errs.ErrInvalidInput)
	}
	limit = ValidateLimit(limit)

	page := &AppointmentPage{Items: []*AppointmentView{}}
	err = q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		// one extra row tells whether another page exists
		rows, err := tx.Appointments().ListBySession(ctx, sessionID, after, limit+1)
		if err != nil {
			return errs.Wrap(err, "list appointments")
		}
		if len(rows) > limit {
			rows = rows[:limit]
			last := rows[len(rows)-1]
			page.NextCursor = EncodeAfterCursor(shared.PageKey{StartAt: last.Window().Start, ID: last.ID()})
		}
		for _, a := range rows {
			page.Items = append(page.Items, ToAppointmentView(a))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return page, nil
}

func ToAppointmentView(a *appointment.Appointment) *AppointmentView {
	c := a.Customer()
	return &AppointmentView{
		ID:            a.ID(),
		TenantID:      a.TenantID(),
		ProviderID:    a.ProviderID(),
		ServiceID:     a.ServiceID(),
		StartAt:       a.Window().Start,
		EndAt:         a.Window().End,
		CustomerName:  c.Name(),
		CustomerEmail: c.Email(),
		CustomerPhone: c.Phone(),
		Notes:         c.Notes(),
		Status:        a.Status().String(),
		CancelReason:  a.CancelReason(),
		CreatedAt:     a.CreatedAt(),
		UpdatedAt:     a.UpdatedAt(),
	}
}
