package availability

import (
	"errors"
	"iter"
	"slices"
	"time"

	"slot-booker/internal/domain/timerange"
)

var (
	ErrInvalidDuration    = errors.New("duration must be positive")
	ErrInvalidGranularity = errors.New("granularity must be positive")
	ErrNegativeBuffer     = errors.New("buffers cannot be negative")
)

type Slot struct {
	Start     time.Time
	End       time.Time
	Available bool
}

func (s Slot) Interval() timerange.Interval {
	return timerange.Interval{Start: s.Start, End: s.End}
}

// Request describes one walk over a provider's open intervals.
// Occupied holds the blocked windows of live holds and confirmed
// appointments, already widened by their own buffers.
type Request struct {
	Open         []timerange.Interval
	Occupied     []timerange.Interval
	Duration     time.Duration
	Granularity  time.Duration
	BufferBefore time.Duration
	BufferAfter  time.Duration
	Now          time.Time
}

func (r Request) Validate() error {
	if r.Duration <= 0 {
		return ErrInvalidDuration
	}
	if r.Granularity <= 0 {
		return ErrInvalidGranularity
	}
	if r.BufferBefore < 0 || r.BufferAfter < 0 {
		return ErrNegativeBuffer
	}
	return nil
}

// Slots yields every candidate start in chronological order. A candidate
// exists when [start, start+Duration) fits inside an open interval; it is
// available when it is not in the past and its buffered window does not
// intersect any occupied window. The sequence can be ranged more than once.
// An invalid request yields nothing.
func Slots(req Request) iter.Seq[Slot] {
	if req.Validate() != nil {
		return func(func(Slot) bool) {}
	}
	open := timerange.Normalize(req.Open)
	occupied := timerange.Normalize(req.Occupied)

	return func(yield func(Slot) bool) {
		for _, iv := range open {
			for start := iv.Start; !start.Add(req.Duration).After(iv.End); start = start.Add(req.Granularity) {
				end := start.Add(req.Duration)
				blocked := timerange.Interval{Start: start, End: end}.Expand(req.BufferBefore, req.BufferAfter)
				slot := Slot{
					Start:     start,
					End:       end,
					Available: !start.Before(req.Now) && !intersects(occupied, blocked),
				}
				if !yield(slot) {
					return
				}
			}
		}
	}
}

// intersects relies on occupied being normalized (sorted, disjoint).
func intersects(occupied []timerange.Interval, target timerange.Interval) bool {
	i, _ := slices.BinarySearchFunc(occupied, target.Start, func(iv timerange.Interval, t time.Time) int {
		if !iv.End.After(t) {
			return -1
		}
		return 1
	})
	return i < len(occupied) && occupied[i].Overlaps(target)
}
