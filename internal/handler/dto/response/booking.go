package response

import (
	"time"

	"slot-booker/internal/domain/appointment"
	"slot-booker/internal/usecase/commands"
	"slot-booker/internal/usecase/queries"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type SessionResponse struct {
	Token     string    `json:"token"`
	SessionID string    `json:"sessionId"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type HoldResponse struct {
	HoldID     uuid.UUID `json:"holdId"`
	ProviderID uuid.UUID `json:"providerId"`
	ServiceID  uuid.UUID `json:"serviceId"`
	StartAt    time.Time `json:"startAt"`
	EndAt      time.Time `json:"endAt"`
	ExpiresAt  time.Time `json:"expiresAt"`
	Replayed   bool      `json:"replayed"`
}

func FromHoldResult(r *commands.HoldResult) *HoldResponse {
	h := r.Hold
	return &HoldResponse{
		HoldID:     h.ID(),
		ProviderID: h.ProviderID(),
		ServiceID:  h.ServiceID(),
		StartAt:    h.Window().Start,
		EndAt:      h.Window().End,
		ExpiresAt:  h.ExpiresAt(),
		Replayed:   r.Replayed,
	}
}

type ConfirmResponse struct {
	AppointmentID uuid.UUID `json:"appointmentId"`
	Status        string    `json:"status"`
	StartAt       time.Time `json:"startAt"`
	EndAt         time.Time `json:"endAt"`
}

func FromConfirmResult(r *commands.ConfirmResult) *ConfirmResponse {
	resp := &ConfirmResponse{AppointmentID: r.AppointmentID, Status: r.Status.String()}
	if r.Appointment != nil {
		resp.StartAt = r.Appointment.Window().Start
		resp.EndAt = r.Appointment.Window().End
	}
	return resp
}

type AppointmentResponse struct {
	ID            uuid.UUID `json:"id"`
	TenantID      uuid.UUID `json:"tenantId"`
	ProviderID    uuid.UUID `json:"providerId"`
	ServiceID     uuid.UUID `json:"serviceId"`
	StartAt       time.Time `json:"startAt"`
	EndAt         time.Time `json:"endAt"`
	CustomerName  string    `json:"customerName"`
	CustomerEmail string    `json:"customerEmail"`
	CustomerPhone string    `json:"customerPhone,omitempty"`
	Notes         string    `json:"notes,omitempty"`
	Status        string    `json:"status"`
	CancelReason  string    `json:"cancelReason,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func FromAppointmentView(v *queries.AppointmentView) (*AppointmentResponse, error) {
	var resp AppointmentResponse
	if err := copier.Copy(&resp, v); err != nil {
		return nil, err
	}
	return &resp, nil
}

func FromAppointment(a *appointment.Appointment) (*AppointmentResponse, error) {
	return FromAppointmentView(queries.ToAppointmentView(a))
}

type AppointmentListResponse struct {
	Items      []*AppointmentResponse `json:"items"`
	NextCursor string                 `json:"nextCursor,omitempty"`
}

func FromAppointmentPage(p *queries.AppointmentPage) (*AppointmentListResponse, error) {
	resp := &AppointmentListResponse{
		Items:      make([]*AppointmentResponse, 0, len(p.Items)),
		NextCursor: p.NextCursor,
	}
	for _, v := range p.Items {
		item, err := FromAppointmentView(v)
		if err != nil {
			return nil, err
		}
		resp.Items = append(resp.Items, item)
	}
	return resp, nil
}

type SlotResponse struct {
	StartTime   string    `json:"startTime"`
	EndTime     string    `json:"endTime"`
	StartAt     time.Time `json:"startAt"`
	EndAt       time.Time `json:"endAt"`
	IsAvailable bool      `json:"isAvailable"`
}

type AvailabilityResponse struct {
	Date           string         `json:"date"`
	ProviderID     uuid.UUID      `json:"providerId"`
	ProviderName   string         `json:"providerName"`
	ServiceID      uuid.UUID      `json:"serviceId"`
	TimeZone       string         `json:"timeZone"`
	IsOpen         bool           `json:"isOpen"`
	ClosedReason   string         `json:"closedReason,omitempty"`
	Note           string         `json:"note,omitempty"`
	AvailableCount int            `json:"availableCount"`
	Slots          []SlotResponse `json:"slots"`
}

var dateConverter = copier.TypeConverter{
	SrcType: civil.Date{},
	DstType: copier.String,
	Fn: func(src any) (any, error) {
		return src.(civil.Date).String(), nil
	},
}

func FromDayAvailability(d *queries.DayAvailability) (*AvailabilityResponse, error) {
	resp := AvailabilityResponse{Slots: []SlotResponse{}}
	err := copier.CopyWithOption(&resp, d, copier.Option{Converters: []copier.TypeConverter{dateConverter}})
	if err != nil {
		return nil, err
	}
	if resp.Slots == nil {
		resp.Slots = []SlotResponse{}
	}
	resp.AvailableCount = d.AvailableCount()
	return &resp, nil
}

type AvailabilityRangeResponse struct {
	Days []*AvailabilityResponse `json:"days"`
}

func FromDayAvailabilities(days []*queries.DayAvailability) (*AvailabilityRangeResponse, error) {
	resp := &AvailabilityRangeResponse{Days: make([]*AvailabilityResponse, 0, len(days))}
	for _, d := range days {
		day, err := FromDayAvailability(d)
		if err != nil {
			return nil, err
		}
		resp.Days = append(resp.Days, day)
	}
	return resp, nil
}
