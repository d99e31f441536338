package catalog

import (
	"errors"
	"slices"
	"strings"
	"time"

	"slot-booker/internal/domain/schedule"

	"github.com/google/uuid"
)

var (
	ErrEmptyName           = errors.New("name cannot be empty")
	ErrNameTooLong         = errors.New("name is too long (max 255 characters)")
	ErrInvalidBuffer       = errors.New("buffer minutes must be between 0 and 120")
	ErrInvalidDuration     = errors.New("service duration must be between 5 and 480 minutes")
	ErrUnknownTimeZone     = errors.New("unknown time zone")
	ErrServiceNotOffered   = errors.New("service is not offered by provider")
	ErrTenantMismatch      = errors.New("entity belongs to another tenant")
	ErrProviderUnavailable = errors.New("provider is inactive")
)

const (
	MaxNameLength     = 255
	MaxBufferMinutes  = 120
	MinServiceMinutes = 5
	MaxServiceMinutes = 480
)

type Tenant struct {
	ID            uuid.UUID
	Name          string
	TimeZone      string
	Hours         schedule.WeeklyHours
	BufferMinutes int

	loc *time.Location
}

func NewTenant(id uuid.UUID, name, timeZone string, hours schedule.WeeklyHours, bufferMinutes int) (*Tenant, error) {
	t := &Tenant{
		ID:            id,
		Name:          strings.TrimSpace(name),
		TimeZone:      timeZone,
		Hours:         hours,
		BufferMinutes: bufferMinutes,
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

func (t *Tenant) Validate() error {
	if err := validateName(t.Name); err != nil {
		return err
	}
	if t.BufferMinutes < 0 || t.BufferMinutes > MaxBufferMinutes {
		return ErrInvalidBuffer
	}
	if err := t.Hours.Validate(); err != nil {
		return err
	}
	_, err := t.Location()
	return err
}

// Location loads the tenant's IANA zone once.
func (t *Tenant) Location() (*time.Location, error) {
	if t.loc != nil {
		return t.loc, nil
	}
	if t.TimeZone == "" {
		t.loc = time.UTC
		return t.loc, nil
	}
	loc, err := time.LoadLocation(t.TimeZone)
	if err != nil {
		return nil, errors.Join(ErrUnknownTimeZone, err)
	}
	t.loc = loc
	return loc, nil
}

type Provider struct {
	ID         uuid.UUID
	TenantID   uuid.UUID
	Name       string
	Hours      schedule.WeeklyHours // nil inherits the tenant's hours
	ServiceIDs []uuid.UUID          // empty offers every tenant service
	Active     bool
}

func (p *Provider) Offers(serviceID uuid.UUID) bool {
	return len(p.ServiceIDs) == 0 || slices.Contains(p.ServiceIDs, serviceID)
}

func (p *Provider) Validate() error {
	if err := validateName(p.Name); err != nil {
		return err
	}
	return p.Hours.Validate()
}

type Service struct {
	ID              uuid.UUID
	TenantID        uuid.UUID
	Name            string
	DurationMinutes int
	BufferBeforeMin *int // nil inherits 0
	BufferAfterMin  *int // nil inherits the tenant buffer
}

func (s *Service) Validate() error {
	if err := validateName(s.Name); err != nil {
		return err
	}
	if s.DurationMinutes < MinServiceMinutes || s.DurationMinutes > MaxServiceMinutes {
		return ErrInvalidDuration
	}
	for _, b := range []*int{s.BufferBeforeMin, s.BufferAfterMin} {
		if b != nil && (*b < 0 || *b > MaxBufferMinutes) {
			return ErrInvalidBuffer
		}
	}
	return nil
}

func (s *Service) Duration() time.Duration {
	return time.Duration(s.DurationMinutes) * time.Minute
}

// Buffers returns the margins kept free before and after a booking of this
// service. Service values override the tenant default, which only applies
// after the booking.
func (s *Service) Buffers(t *Tenant) (before, after time.Duration) {
	after = time.Duration(t.BufferMinutes) * time.Minute
	if s.BufferBeforeMin != nil {
		before = time.Duration(*s.BufferBeforeMin) * time.Minute
	}
	if s.BufferAfterMin != nil {
		after = time.Duration(*s.BufferAfterMin) * time.Minute
	}
	return before, after
}

// Bookable checks that provider and service belong to tenant and that the
// provider offers the service.
func Bookable(t *Tenant, p *Provider, s *Service) error {
	if p.TenantID != t.ID || s.TenantID != t.ID {
		return ErrTenantMismatch
	}
	if !p.Active {
		return ErrProviderUnavailable
	}
	if !p.Offers(s.ID) {
		return ErrServiceNotOffered
	}
	return nil
}

func validateName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	if len(name) > MaxNameLength {
		return ErrNameTooLong
	}
	return nil
}
