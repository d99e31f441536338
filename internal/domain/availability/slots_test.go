//go:build unit

package availability_test

import (
	"slices"
	"testing"
	"time"

	"slot-booker/internal/domain/availability"
	"slot-booker/internal/domain/timerange"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(h, m int) time.Time {
	return time.Date(2030, 3, 4, h, m, 0, 0, time.UTC)
}

func iv(h1, m1, h2, m2 int) timerange.Interval {
	return timerange.Interval{Start: at(h1, m1), End: at(h2, m2)}
}

func baseRequest() availability.Request {
	return availability.Request{
		Open:        []timerange.Interval{iv(9, 0, 17, 0)},
		Duration:    60 * time.Minute,
		Granularity: 15 * time.Minute,
		Now:         at(0, 0),
	}
}

func collect(req availability.Request) []availability.Slot {
	return slices.Collect(availability.Slots(req))
}

func TestSlots_FullDay(t *testing.T) {
	slots := collect(baseRequest())

	require.Len(t, slots, 29)
	assert.Equal(t, at(9, 0), slots[0].Start)
	assert.Equal(t, at(10, 0), slots[0].End)
	assert.Equal(t, at(16, 0), slots[len(slots)-1].Start)
	assert.Equal(t, at(17, 0), slots[len(slots)-1].End)
	for _, s := range slots {
		assert.True(t, s.Available, "slot %s should be available", s.Start)
	}
}

func TestSlots_StaysWithinOpenIntervals(t *testing.T) {
	req := baseRequest()
	req.Open = []timerange.Interval{iv(9, 0, 12, 0), iv(13, 0, 17, 10)}
	req.Duration = 45 * time.Minute
	req.Granularity = 20 * time.Minute

	var prev time.Time
	for s := range availability.Slots(req) {
		inside := slices.ContainsFunc(req.Open, func(o timerange.Interval) bool {
			return o.Contains(s.Interval())
		})
		assert.True(t, inside, "slot %s-%s escapes open intervals", s.Start, s.End)
		assert.True(t, s.Start.After(prev), "slots must be strictly increasing")
		prev = s.Start
	}
}

func TestSlots_Restartable(t *testing.T) {
	seq := availability.Slots(baseRequest())

	first := slices.Collect(seq)
	second := slices.Collect(seq)
	assert.Equal(t, first, second)
}

func TestSlots_EarlyStop(t *testing.T) {
	n := 0
	for range availability.Slots(baseRequest()) {
		n++
		if n == 3 {
			break
		}
	}
	assert.Equal(t, 3, n)
}

func TestSlots_OccupiedWithBuffer(t *testing.T) {
	req := baseRequest()
	req.BufferAfter = 15 * time.Minute
	// existing 11:00-12:00 booking blocks until 12:15
	req.Occupied = []timerange.Interval{iv(11, 0, 12, 15)}

	byStart := map[time.Time]bool{}
	for s := range availability.Slots(req) {
		byStart[s.Start] = s.Available
	}

	assert.True(t, byStart[at(9, 45)], "09:45-10:45 +15 ends exactly at 11:00")
	assert.False(t, byStart[at(10, 0)], "10:00-11:00 +15 runs into the booking")
	assert.False(t, byStart[at(11, 0)])
	assert.False(t, byStart[at(12, 0)], "starts inside the trailing buffer")
	assert.True(t, byStart[at(12, 15)])
}

func TestSlots_BufferBefore(t *testing.T) {
	req := baseRequest()
	req.BufferBefore = 30 * time.Minute
	req.Occupied = []timerange.Interval{iv(9, 0, 10, 0)}

	byStart := map[time.Time]bool{}
	for s := range availability.Slots(req) {
		byStart[s.Start] = s.Available
	}
	assert.False(t, byStart[at(10, 15)])
	assert.True(t, byStart[at(10, 30)])
}

func TestSlots_PastSlotsUnavailable(t *testing.T) {
	req := baseRequest()
	req.Now = at(10, 0)

	for s := range availability.Slots(req) {
		if s.Start.Before(req.Now) {
			assert.False(t, s.Available, "%s is in the past", s.Start)
		} else {
			assert.True(t, s.Available, "%s should be available", s.Start)
		}
	}
}

func TestSlots_InvalidRequest(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *availability.Request)
		err    error
	}{
		{name: "zero duration", mutate: func(r *availability.Request) { r.Duration = 0 }, err: availability.ErrInvalidDuration},
		{name: "zero granularity", mutate: func(r *availability.Request) { r.Granularity = 0 }, err: availability.ErrInvalidGranularity},
		{name: "negative buffer", mutate: func(r *availability.Request) { r.BufferBefore = -time.Minute }, err: availability.ErrNegativeBuffer},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := baseRequest()
			tt.mutate(&req)
			assert.ErrorIs(t, req.Validate(), tt.err)
			assert.Empty(t, collect(req))
		})
	}
}

func TestSlots_OnlyLastSlotFreeAfterLongBooking(t *testing.T) {
	req := baseRequest()
	req.Occupied = []timerange.Interval{iv(9, 0, 16, 0)}

	var free []availability.Slot
	for s := range availability.Slots(req) {
		if s.Available {
			free = append(free, s)
		}
	}
	require.Len(t, free, 1)
	assert.Equal(t, at(16, 0), free[0].Start)
}

func TestSlots_DurationLongerThanDay(t *testing.T) {
	req := baseRequest()
	req.Duration = 9 * time.Hour
	assert.Empty(t, collect(req))
}
