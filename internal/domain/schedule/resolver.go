package schedule

import (
	"time"

	"slot-booker/internal/domain/timerange"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"
)

// Calendar is everything needed to resolve one provider's working day.
type Calendar struct {
	ProviderID    uuid.UUID
	Location      *time.Location
	TenantHours   WeeklyHours
	ProviderHours WeeklyHours // empty inherits TenantHours
	Exceptions    []Exception
}

type DaySchedule struct {
	Date         civil.Date
	Open         []timerange.Interval
	ClosedReason ClosedReason
	Note         string
}

func (d DaySchedule) IsOpen() bool {
	return len(d.Open) > 0
}

// Bounds returns the earliest open instant and the latest close instant.
func (d DaySchedule) Bounds() (time.Time, time.Time, bool) {
	if !d.IsOpen() {
		return time.Time{}, time.Time{}, false
	}
	return d.Open[0].Start, d.Open[len(d.Open)-1].End, true
}

// Resolve computes the open intervals of a provider for date. Exceptions of
// other providers are ignored; a provider-specific override wins over a
// tenant-wide one.
func Resolve(cal Calendar, date civil.Date) DaySchedule {
	loc := cal.Location
	if loc == nil {
		loc = time.UTC
	}
	day := DaySchedule{Date: date}

	hours := cal.TenantHours
	if !cal.ProviderHours.IsZero() {
		hours = cal.ProviderHours
	}

	windows := hours[date.Weekday()]
	override := cal.override(date)
	if override != nil {
		switch override.Kind {
		case KindClosed:
			day.ClosedReason = ReasonDayOff
			day.Note = override.Reason
			return day
		case KindModifiedHours:
			windows = []Window{*override.Window}
		case KindExtendedHours:
			windows = append(append([]Window(nil), windows...), *override.Window)
		}
	}

	if override == nil && hours.IsZero() {
		day.ClosedReason = ReasonNoHoursConfigured
		return day
	}
	if len(windows) == 0 {
		day.ClosedReason = ReasonRegularlyClosed
		return day
	}

	open := make([]timerange.Interval, 0, len(windows))
	for _, w := range windows {
		start, end := w.On(date, loc)
		open = append(open, timerange.Interval{Start: start, End: end})
	}
	open = timerange.Normalize(open)

	for _, ex := range cal.applicable(date) {
		if ex.Kind != KindUnavailable {
			continue
		}
		start, end := ex.Window.On(date, loc)
		open = timerange.Subtract(open, timerange.Interval{Start: start, End: end})
		if day.Note == "" {
			day.Note = ex.Reason
		}
	}

	if len(open) == 0 {
		day.ClosedReason = ReasonDayOff
		return day
	}
	day.Open = open
	return day
}

func (cal Calendar) applicable(date civil.Date) []Exception {
	var out []Exception
	for _, ex := range cal.Exceptions {
		if !ex.AppliesTo(date) || ex.Validate() != nil {
			continue
		}
		if ex.ProviderID != nil && *ex.ProviderID != cal.ProviderID {
			continue
		}
		out = append(out, ex)
	}
	return out
}

func (cal Calendar) override(date civil.Date) *Exception {
	var tenantWide *Exception
	for _, ex := range cal.applicable(date) {
		if !ex.Kind.overridesDay() {
			continue
		}
		if !ex.IsTenantWide() {
			return &ex
		}
		if tenantWide == nil {
			tenantWide = &ex
		}
	}
	return tenantWide
}
