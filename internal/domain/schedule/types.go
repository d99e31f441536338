package schedule

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"
)

var (
	ErrInvalidWindow        = errors.New("window start must be before end")
	ErrInvalidExceptionKind = errors.New("invalid schedule exception kind")
	ErrMissingWindow        = errors.New("schedule exception requires a window")
	ErrInvalidDateRange     = errors.New("exception end date is before start date")
)

// Window is a wall-clock range [Start, End) within a single day.
type Window struct {
	Start civil.Time
	End   civil.Time
}

func NewWindow(start, end civil.Time) (Window, error) {
	if !start.Before(end) {
		return Window{}, ErrInvalidWindow
	}
	return Window{Start: start, End: end}, nil
}

// ParseWindow accepts "HH:MM" or "HH:MM:SS" bounds.
func ParseWindow(start, end string) (Window, error) {
	s, err := ParseClock(start)
	if err != nil {
		return Window{}, err
	}
	e, err := ParseClock(end)
	if err != nil {
		return Window{}, err
	}
	return NewWindow(s, e)
}

func ParseClock(s string) (civil.Time, error) {
	s = strings.TrimSpace(s)
	if len(s) == len("15:04") {
		s += ":00"
	}
	t, err := civil.ParseTime(s)
	if err != nil {
		return civil.Time{}, fmt.Errorf("invalid time of day %q: %w", s, err)
	}
	return t, nil
}

// On anchors the window to date in loc.
func (w Window) On(date civil.Date, loc *time.Location) (time.Time, time.Time) {
	return At(date, w.Start, loc), At(date, w.End, loc)
}

func At(date civil.Date, t civil.Time, loc *time.Location) time.Time {
	return time.Date(date.Year, date.Month, date.Day, t.Hour, t.Minute, t.Second, t.Nanosecond, loc)
}

// WeeklyHours lists the recurring open windows per weekday. A weekday with no
// entry is regularly closed.
type WeeklyHours map[time.Weekday][]Window

func (h WeeklyHours) IsZero() bool {
	for _, ws := range h {
		if len(ws) > 0 {
			return false
		}
	}
	return true
}

func (h WeeklyHours) Validate() error {
	for day, ws := range h {
		for _, w := range ws {
			if !w.Start.Before(w.End) {
				return fmt.Errorf("%s: %w", day, ErrInvalidWindow)
			}
		}
	}
	return nil
}

type ExceptionKind string

const (
	// Closed shuts the whole day.
	KindClosed ExceptionKind = "closed"
	// ModifiedHours replaces the regular hours of the day.
	KindModifiedHours ExceptionKind = "modified_hours"
	// ExtendedHours adds its window to the regular hours of the day.
	KindExtendedHours ExceptionKind = "extended_hours"
	// Unavailable blocks its window out of the day, e.g. a lunch break or appointment elsewhere.
	KindUnavailable ExceptionKind = "unavailable"
)

func (k ExceptionKind) IsValid() bool {
	switch k {
	case KindClosed, KindModifiedHours, KindExtendedHours, KindUnavailable:
		return true
	default:
		return false
	}
}

func (k ExceptionKind) overridesDay() bool {
	return k == KindClosed || k == KindModifiedHours || k == KindExtendedHours
}

// Exception is a dated deviation from the weekly hours. A nil ProviderID
// applies to every provider of the tenant.
type Exception struct {
	ID         uuid.UUID
	TenantID   uuid.UUID
	ProviderID *uuid.UUID
	StartDate  civil.Date
	EndDate    civil.Date
	Kind       ExceptionKind
	Window     *Window
	Reason     string
}

func (e Exception) Validate() error {
	if !e.Kind.IsValid() {
		return ErrInvalidExceptionKind
	}
	if e.EndDate.Before(e.StartDate) {
		return ErrInvalidDateRange
	}
	if e.Kind != KindClosed {
		if e.Window == nil {
			return ErrMissingWindow
		}
		if !e.Window.Start.Before(e.Window.End) {
			return ErrInvalidWindow
		}
	}
	return nil
}

func (e Exception) AppliesTo(date civil.Date) bool {
	return !date.Before(e.StartDate) && !date.After(e.EndDate)
}

func (e Exception) IsTenantWide() bool {
	return e.ProviderID == nil
}

type ClosedReason string

const (
	ReasonNoHoursConfigured ClosedReason = "no_hours_configured"
	ReasonRegularlyClosed   ClosedReason = "regularly_closed"
	ReasonDayOff            ClosedReason = "day_off"
)
