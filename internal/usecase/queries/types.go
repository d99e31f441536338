package queries

import (
	"time"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"
)

// SlotView is one candidate start; StartTime/EndTime are tenant-local HH:MM.
type SlotView struct {
	StartTime   string    `json:"startTime"`
	EndTime     string    `json:"endTime"`
	StartAt     time.Time `json:"startAt"`
	EndAt       time.Time `json:"endAt"`
	IsAvailable bool      `json:"isAvailable"`
}

// DayAvailability represents the resolved availability of one provider day
type DayAvailability struct {
	Date         civil.Date `json:"date"`
	TenantID     uuid.UUID  `json:"tenantId"`
	ProviderID   uuid.UUID  `json:"providerId"`
	ProviderName string     `json:"providerName"`
	ServiceID    uuid.UUID  `json:"serviceId"`
	TimeZone     string     `json:"timeZone"`
	IsOpen       bool       `json:"isOpen"`
	ClosedReason string     `json:"closedReason,omitempty"`
	Note         string     `json:"note,omitempty"`
	Slots        []SlotView `json:"slots"`
}

// AvailableCount is the number of bookable slots of the day.
func (d *DayAvailability) AvailableCount() int {
	n := 0
	for _, s := range d.Slots {
		if s.IsAvailable {
			n++
		}
	}
	return n
}

// AppointmentView represents read-optimized appointment data
type AppointmentView struct {
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

type AppointmentPage struct {
	Items      []*AppointmentView `json:"items"`
	NextCursor string             `json:"nextCursor,omitempty"`
}
