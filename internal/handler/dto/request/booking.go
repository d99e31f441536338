package request

import (
	"strings"

	"slot-booker/internal/domain/schedule"
	"slot-booker/internal/pkg/errs"
	"slot-booker/internal/usecase/commands"
	"slot-booker/internal/usecase/queries"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"
)

type CreateSessionRequest struct {
	TenantID uuid.UUID `json:"tenantId" binding:"required"`
}

type PlaceHoldRequest struct {
	TenantID   uuid.UUID `json:"tenantId" binding:"required"`
	ProviderID uuid.UUID `json:"providerId" binding:"required"`
	ServiceID  uuid.UUID `json:"serviceId" binding:"required"`
	Date       string    `json:"date" binding:"required"`      // YYYY-MM-DD, tenant-local
	StartTime  string    `json:"startTime" binding:"required"` // HH:MM, tenant-local
}

func (r *PlaceHoldRequest) ToInput(sessionID string) (commands.PlaceHoldInput, error) {
	date, err := ParseDate(r.Date)
	if err != nil {
		return commands.PlaceHoldInput{}, err
	}
	start, err := schedule.ParseClock(r.StartTime)
	if err != nil {
		return commands.PlaceHoldInput{}, errs.Mark(err, errs.ErrInvalidInput)
	}
	return commands.PlaceHoldInput{
		TenantID:   r.TenantID,
		ProviderID: r.ProviderID,
		ServiceID:  r.ServiceID,
		Date:       date,
		StartTime:  start,
		SessionID:  sessionID,
	}, nil
}

type CustomerRequest struct {
	Name  string `json:"name" binding:"required,max=100"`
	Email string `json:"email" binding:"required,email,max=254"`
	Phone string `json:"phone" binding:"omitempty,max=30"`
	Notes string `json:"notes" binding:"omitempty,max=1000"`
}

type ConfirmHoldRequest struct {
	Customer CustomerRequest `json:"customer" binding:"required"`
}

func (r *ConfirmHoldRequest) ToInput(holdID uuid.UUID, sessionID string) commands.ConfirmInput {
	return commands.ConfirmInput{
		HoldID:    holdID,
		SessionID: sessionID,
		Customer: commands.CustomerInput{
			Name:  r.Customer.Name,
			Email: r.Customer.Email,
			Phone: r.Customer.Phone,
			Notes: r.Customer.Notes,
		},
	}
}

type CancelAppointmentRequest struct {
	Reason string `json:"reason" binding:"omitempty,max=500"`
}

type AvailabilityQuery struct {
	SlotInterval int    `form:"slotInterval" binding:"omitempty,min=1,max=1440"`
	From         string `form:"from"`
	To           string `form:"to"`
}

type AvailabilityPath struct {
	TenantID   string `uri:"tenantId" binding:"required,uuid"`
	ProviderID string `uri:"providerId" binding:"required,uuid"`
	ServiceID  string `uri:"serviceId" binding:"required,uuid"`
	Date       string `uri:"date"`
}

func (p *AvailabilityPath) DayInput(q AvailabilityQuery) (queries.AvailabilityInput, error) {
	date, err := ParseDate(p.Date)
	if err != nil {
		return queries.AvailabilityInput{}, err
	}
	return queries.AvailabilityInput{
		TenantID:           uuid.MustParse(p.TenantID),
		ProviderID:         uuid.MustParse(p.ProviderID),
		ServiceID:          uuid.MustParse(p.ServiceID),
		Date:               date,
		GranularityMinutes: q.SlotInterval,
	}, nil
}

func (p *AvailabilityPath) RangeInput(q AvailabilityQuery) (queries.AvailabilityRangeInput, error) {
	from, err := ParseDate(q.From)
	if err != nil {
		return queries.AvailabilityRangeInput{}, err
	}
	to := from.AddDays(6)
	if q.To != "" {
		if to, err = ParseDate(q.To); err != nil {
			return queries.AvailabilityRangeInput{}, err
		}
	}
	return queries.AvailabilityRangeInput{
		TenantID:           uuid.MustParse(p.TenantID),
		ProviderID:         uuid.MustParse(p.ProviderID),
		ServiceID:          uuid.MustParse(p.ServiceID),
		From:               from,
		To:                 to,
		GranularityMinutes: q.SlotInterval,
	}, nil
}

type ListAppointmentsQuery struct {
	Cursor string `form:"cursor"`
	Limit  int    `form:"limit" binding:"omitempty,min=1"`
}

func ParseDate(s string) (civil.Date, error) {
	d, err := civil.ParseDate(strings.TrimSpace(s))
	if err != nil {
		return civil.Date{}, errs.Mark(errs.Wrapf(err, "invalid date %q", s), errs.ErrInvalidInput)
	}
	return d, nil
}
