package timerange

import (
	"errors"
	"fmt"
	"slices"
	"time"
)

var ErrEmptyInterval = errors.New("start time must be before end time")

// Interval is the half-open range [Start, End).
type Interval struct {
	Start time.Time
	End   time.Time
}

func New(start, end time.Time) (Interval, error) {
	if !start.Before(end) {
		return Interval{}, ErrEmptyInterval
	}
	return Interval{Start: start, End: end}, nil
}

func (i Interval) Duration() time.Duration {
	return i.End.Sub(i.Start)
}

func (i Interval) IsEmpty() bool {
	return !i.Start.Before(i.End)
}

// Overlaps reports whether the two ranges share at least one instant.
// Touching ranges such as [09:00,10:00) and [10:00,11:00) do not overlap.
func (i Interval) Overlaps(o Interval) bool {
	return i.Start.Before(o.End) && o.Start.Before(i.End)
}

func (i Interval) Contains(o Interval) bool {
	return !o.Start.Before(i.Start) && !o.End.After(i.End)
}

// Expand widens the range by before on the left and after on the right.
func (i Interval) Expand(before, after time.Duration) Interval {
	return Interval{Start: i.Start.Add(-before), End: i.End.Add(after)}
}

func (i Interval) In(loc *time.Location) Interval {
	return Interval{Start: i.Start.In(loc), End: i.End.In(loc)}
}

func (i Interval) ToTstzrange() string {
	return fmt.Sprintf("[%s,%s)", i.Start.Format(time.RFC3339), i.End.Format(time.RFC3339))
}

func (i Interval) String() string {
	return i.ToTstzrange()
}

// Normalize returns the ranges sorted by start with overlapping or touching
// ranges merged. Empty ranges are dropped. The input is not modified.
func Normalize(in []Interval) []Interval {
	out := make([]Interval, 0, len(in))
	for _, iv := range in {
		if !iv.IsEmpty() {
			out = append(out, iv)
		}
	}
	slices.SortFunc(out, func(a, b Interval) int {
		return a.Start.Compare(b.Start)
	})

	merged := out[:0]
	for _, iv := range out {
		if n := len(merged); n > 0 && !iv.Start.After(merged[n-1].End) {
			if iv.End.After(merged[n-1].End) {
				merged[n-1].End = iv.End
			}
			continue
		}
		merged = append(merged, iv)
	}
	return merged
}

// Subtract removes cut from every range in base.
func Subtract(base []Interval, cut Interval) []Interval {
	out := make([]Interval, 0, len(base)+1)
	for _, iv := range Normalize(base) {
		if !iv.Overlaps(cut) {
			out = append(out, iv)
			continue
		}
		if iv.Start.Before(cut.Start) {
			out = append(out, Interval{Start: iv.Start, End: cut.Start})
		}
		if cut.End.Before(iv.End) {
			out = append(out, Interval{Start: cut.End, End: iv.End})
		}
	}
	return out
}
