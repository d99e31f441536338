//go:build unit

package schedule_test

import (
	"testing"
	"time"

	"slot-booker/internal/domain/schedule"
	"slot-booker/internal/domain/timerange"

	"cloud.google.com/go/civil"
	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	providerID = uuid.MustParse("6f1c1d8e-4b8e-4a53-9f3c-0a1b2c3d4e5f")
	otherID    = uuid.MustParse("0c9a7d3e-1111-4a53-9f3c-0a1b2c3d4e5f")
	monday     = civil.Date{Year: 2030, Month: time.March, Day: 4}
	saturday   = civil.Date{Year: 2030, Month: time.March, Day: 9}
)

func window(t *testing.T, start, end string) schedule.Window {
	t.Helper()
	w, err := schedule.ParseWindow(start, end)
	require.NoError(t, err)
	return w
}

func weekdays(t *testing.T, start, end string) schedule.WeeklyHours {
	h := schedule.WeeklyHours{}
	for d := time.Monday; d <= time.Friday; d++ {
		h[d] = []schedule.Window{window(t, start, end)}
	}
	return h
}

func span(loc *time.Location, date civil.Date, h1, m1, h2, m2 int) timerange.Interval {
	return timerange.Interval{
		Start: time.Date(date.Year, date.Month, date.Day, h1, m1, 0, 0, loc),
		End:   time.Date(date.Year, date.Month, date.Day, h2, m2, 0, 0, loc),
	}
}

func TestResolve(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	pid := providerID
	oid := otherID
	lunch := window(t, "12:00", "13:00")
	short := window(t, "10:00", "14:00")
	evening := window(t, "17:00", "20:00")

	tests := []struct {
		name       string
		cal        schedule.Calendar
		date       civil.Date
		wantOpen   []timerange.Interval
		wantReason schedule.ClosedReason
		wantNote   string
	}{
		{
			name:     "tenant hours on a weekday",
			cal:      schedule.Calendar{ProviderID: pid, Location: loc, TenantHours: weekdays(t, "09:00", "17:00")},
			date:     monday,
			wantOpen: []timerange.Interval{span(loc, monday, 9, 0, 17, 0)},
		},
		{
			name:       "weekend is regularly closed",
			cal:        schedule.Calendar{ProviderID: pid, Location: loc, TenantHours: weekdays(t, "09:00", "17:00")},
			date:       saturday,
			wantReason: schedule.ReasonRegularlyClosed,
		},
		{
			name:       "no hours anywhere",
			cal:        schedule.Calendar{ProviderID: pid, Location: loc},
			date:       monday,
			wantReason: schedule.ReasonNoHoursConfigured,
		},
		{
			name: "provider hours replace tenant hours",
			cal: schedule.Calendar{
				ProviderID:    pid,
				Location:      loc,
				TenantHours:   weekdays(t, "09:00", "17:00"),
				ProviderHours: schedule.WeeklyHours{time.Monday: {window(t, "08:00", "12:00"), window(t, "14:00", "18:00")}},
			},
			date:     monday,
			wantOpen: []timerange.Interval{span(loc, monday, 8, 0, 12, 0), span(loc, monday, 14, 0, 18, 0)},
		},
		{
			name: "provider day off beats tenant modified hours",
			cal: schedule.Calendar{
				ProviderID:  pid,
				Location:    loc,
				TenantHours: weekdays(t, "09:00", "17:00"),
				Exceptions: []schedule.Exception{
					{TenantID: uuid.New(), StartDate: monday, EndDate: monday, Kind: schedule.KindModifiedHours, Window: &short},
					{TenantID: uuid.New(), ProviderID: &pid, StartDate: monday, EndDate: monday, Kind: schedule.KindClosed, Reason: "vacation"},
				},
			},
			date:       monday,
			wantReason: schedule.ReasonDayOff,
			wantNote:   "vacation",
		},
		{
			name: "other provider's exception is ignored",
			cal: schedule.Calendar{
				ProviderID:  pid,
				Location:    loc,
				TenantHours: weekdays(t, "09:00", "17:00"),
				Exceptions: []schedule.Exception{
					{ProviderID: &oid, StartDate: monday, EndDate: monday, Kind: schedule.KindClosed},
				},
			},
			date:     monday,
			wantOpen: []timerange.Interval{span(loc, monday, 9, 0, 17, 0)},
		},
		{
			name: "tenant modified hours",
			cal: schedule.Calendar{
				ProviderID:  pid,
				Location:    loc,
				TenantHours: weekdays(t, "09:00", "17:00"),
				Exceptions: []schedule.Exception{
					{StartDate: monday.AddDays(-1), EndDate: monday.AddDays(1), Kind: schedule.KindModifiedHours, Window: &short},
				},
			},
			date:     monday,
			wantOpen: []timerange.Interval{span(loc, monday, 10, 0, 14, 0)},
		},
		{
			name: "extended hours are added to regular hours",
			cal: schedule.Calendar{
				ProviderID:  pid,
				Location:    loc,
				TenantHours: weekdays(t, "09:00", "17:00"),
				Exceptions: []schedule.Exception{
					{StartDate: monday, EndDate: monday, Kind: schedule.KindExtendedHours, Window: &evening},
				},
			},
			date:     monday,
			wantOpen: []timerange.Interval{span(loc, monday, 9, 0, 20, 0)},
		},
		{
			name: "extended hours open a regularly closed day",
			cal: schedule.Calendar{
				ProviderID:  pid,
				Location:    loc,
				TenantHours: weekdays(t, "09:00", "17:00"),
				Exceptions: []schedule.Exception{
					{StartDate: saturday, EndDate: saturday, Kind: schedule.KindExtendedHours, Window: &short},
				},
			},
			date:     saturday,
			wantOpen: []timerange.Interval{span(loc, saturday, 10, 0, 14, 0)},
		},
		{
			name: "unavailable window is carved out",
			cal: schedule.Calendar{
				ProviderID:  pid,
				Location:    loc,
				TenantHours: weekdays(t, "09:00", "17:00"),
				Exceptions: []schedule.Exception{
					{ProviderID: &pid, StartDate: monday, EndDate: monday, Kind: schedule.KindUnavailable, Window: &lunch, Reason: "lunch"},
				},
			},
			date:     monday,
			wantOpen: []timerange.Interval{span(loc, monday, 9, 0, 12, 0), span(loc, monday, 13, 0, 17, 0)},
			wantNote: "lunch",
		},
		{
			name: "exception outside its date range does not apply",
			cal: schedule.Calendar{
				ProviderID:  pid,
				Location:    loc,
				TenantHours: weekdays(t, "09:00", "17:00"),
				Exceptions: []schedule.Exception{
					{StartDate: monday.AddDays(1), EndDate: monday.AddDays(3), Kind: schedule.KindClosed},
				},
			},
			date:     monday,
			wantOpen: []timerange.Interval{span(loc, monday, 9, 0, 17, 0)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := schedule.Resolve(tt.cal, tt.date)

			assert.Equal(t, tt.date, got.Date)
			assert.Equal(t, tt.wantReason, got.ClosedReason)
			assert.Equal(t, tt.wantNote, got.Note)
			assert.Equal(t, len(tt.wantOpen) > 0, got.IsOpen())
			if diff := cmp.Diff(tt.wantOpen, got.Open); len(tt.wantOpen) > 0 && diff != "" {
				t.Errorf("open intervals mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestResolve_DaylightSavingDay(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	// 2030-03-10 is the spring-forward Sunday in New York.
	dstDay := civil.Date{Year: 2030, Month: time.March, Day: 10}
	cal := schedule.Calendar{
		ProviderID:  providerID,
		Location:    loc,
		TenantHours: schedule.WeeklyHours{time.Sunday: {window(t, "00:00", "06:00")}},
	}

	got := schedule.Resolve(cal, dstDay)
	require.True(t, got.IsOpen())
	assert.Equal(t, 5*time.Hour, got.Open[0].Duration())
}

func TestException_Validate(t *testing.T) {
	w := window(t, "09:00", "10:00")

	assert.NoError(t, schedule.Exception{StartDate: monday, EndDate: monday, Kind: schedule.KindClosed}.Validate())
	assert.ErrorIs(t, schedule.Exception{StartDate: monday, EndDate: monday, Kind: "holiday"}.Validate(), schedule.ErrInvalidExceptionKind)
	assert.ErrorIs(t, schedule.Exception{StartDate: monday, EndDate: monday, Kind: schedule.KindModifiedHours}.Validate(), schedule.ErrMissingWindow)
	assert.ErrorIs(t, schedule.Exception{StartDate: monday, EndDate: monday.AddDays(-1), Kind: schedule.KindUnavailable, Window: &w}.Validate(), schedule.ErrInvalidDateRange)
}

func TestParseWindow(t *testing.T) {
	w, err := schedule.ParseWindow("09:30", "17:00:00")
	require.NoError(t, err)
	assert.Equal(t, civil.Time{Hour: 9, Minute: 30}, w.Start)

	_, err = schedule.ParseWindow("17:00", "09:00")
	assert.ErrorIs(t, err, schedule.ErrInvalidWindow)

	_, err = schedule.ParseWindow("nine", "17:00")
	assert.Error(t, err)
}
