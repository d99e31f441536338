package memstore

import (
	"encoding/json"
	"os"

	"slot-booker/internal/domain/catalog"
	"slot-booker/internal/domain/schedule"
	"slot-booker/internal/pkg/errs"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"
)

// Seed is the catalog document loaded at startup, e.g.
//
//	{"tenants": [{"id": "...", "name": "Studio", "timeZone": "Europe/Berlin",
//	  "bufferMinutes": 10, "hours": {"monday": [{"start": "09:00", "end": "17:00"}]}}],
//	 "providers": [...], "services": [...], "exceptions": [...]}
type Seed struct {
	Tenants    []SeedTenant    `json:"tenants"`
	Providers  []SeedProvider  `json:"providers"`
	Services   []SeedService   `json:"services"`
	Exceptions []SeedException `json:"exceptions"`
}

type SeedTenant struct {
	ID            uuid.UUID            `json:"id"`
	Name          string               `json:"name"`
	TimeZone      string               `json:"timeZone"`
	BufferMinutes int                  `json:"bufferMinutes"`
	Hours         schedule.WeeklyHours `json:"hours"`
}

type SeedProvider struct {
	ID         uuid.UUID            `json:"id"`
	TenantID   uuid.UUID            `json:"tenantId"`
	Name       string               `json:"name"`
	Hours      schedule.WeeklyHours `json:"hours,omitempty"`
	ServiceIDs []uuid.UUID          `json:"serviceIds,omitempty"`
	Inactive   bool                 `json:"inactive,omitempty"`
}

type SeedService struct {
	ID                  uuid.UUID `json:"id"`
	TenantID            uuid.UUID `json:"tenantId"`
	Name                string    `json:"name"`
	DurationMinutes     int       `json:"durationMinutes"`
	BufferBeforeMinutes *int      `json:"bufferBeforeMinutes,omitempty"`
	BufferAfterMinutes  *int      `json:"bufferAfterMinutes,omitempty"`
}

type SeedException struct {
	ID         uuid.UUID              `json:"id"`
	TenantID   uuid.UUID              `json:"tenantId"`
	ProviderID *uuid.UUID             `json:"providerId,omitempty"`
	StartDate  civil.Date             `json:"startDate"`
	EndDate    civil.Date             `json:"endDate"`
	Kind       schedule.ExceptionKind `json:"kind"`
	Window     *schedule.Window       `json:"window,omitempty"`
	Reason     string                 `json:"reason,omitempty"`
}

func LoadSeedFile(path string) (*Seed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errs.Wrapf(err, "read seed file %s", path)
	}
	var seed Seed
	if err := json.Unmarshal(data, &seed); err != nil {
		return nil, errs.Wrapf(err, "decode seed file %s", path)
	}
	return &seed, nil
}

// Apply validates and stores every entry of seed. An end date defaults to
// the start date.
func (s *Store) Apply(seed *Seed) error {
	for _, t := range seed.Tenants {
		err := s.PutTenant(catalog.Tenant{
			ID:            t.ID,
			Name:          t.Name,
			TimeZone:      t.TimeZone,
			Hours:         t.Hours,
			BufferMinutes: t.BufferMinutes,
		})
		if err != nil {
			return errs.Wrapf(err, "tenant %s", t.ID)
		}
	}
	for _, p := range seed.Providers {
		err := s.PutProvider(catalog.Provider{
			ID:         p.ID,
			TenantID:   p.TenantID,
			Name:       p.Name,
			Hours:      p.Hours,
			ServiceIDs: p.ServiceIDs,
			Active:     !p.Inactive,
		})
		if err != nil {
			return errs.Wrapf(err, "provider %s", p.ID)
		}
	}
	for _, svc := range seed.Services {
		err := s.PutService(catalog.Service{
			ID:              svc.ID,
			TenantID:        svc.TenantID,
			Name:            svc.Name,
			DurationMinutes: svc.DurationMinutes,
			BufferBeforeMin: svc.BufferBeforeMinutes,
			BufferAfterMin:  svc.BufferAfterMinutes,
		})
		if err != nil {
			return errs.Wrapf(err, "service %s", svc.ID)
		}
	}
	for _, e := range seed.Exceptions {
		end := e.EndDate
		if !end.IsValid() {
			end = e.StartDate
		}
		err := s.AddException(schedule.Exception{
			ID:         e.ID,
			TenantID:   e.TenantID,
			ProviderID: e.ProviderID,
			StartDate:  e.StartDate,
			EndDate:    end,
			Kind:       e.Kind,
			Window:     e.Window,
			Reason:     e.Reason,
		})
		if err != nil {
			return errs.Wrapf(err, "exception %s", e.ID)
		}
	}
	return nil
}
