package schedule

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/civil"
)

var weekdayNames = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

func ParseWeekday(s string) (time.Weekday, error) {
	d, ok := weekdayNames[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return 0, fmt.Errorf("unknown weekday %q", s)
	}
	return d, nil
}

type windowJSON struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

func formatClock(t civil.Time) string {
	if t.Second == 0 && t.Nanosecond == 0 {
		return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
	}
	return fmt.Sprintf("%02d:%02d:%02d", t.Hour, t.Minute, t.Second)
}

func (w Window) String() string {
	return formatClock(w.Start) + "-" + formatClock(w.End)
}

// MarshalJSON encodes the window as {"start":"09:00","end":"17:00"}.
func (w Window) MarshalJSON() ([]byte, error) {
	return json.Marshal(windowJSON{Start: formatClock(w.Start), End: formatClock(w.End)})
}

func (w *Window) UnmarshalJSON(data []byte) error {
	var raw windowJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := ParseWindow(raw.Start, raw.End)
	if err != nil {
		return err
	}
	*w = parsed
	return nil
}

// MarshalJSON keys the week by lowercase weekday name.
func (h WeeklyHours) MarshalJSON() ([]byte, error) {
	out := make(map[string][]Window, len(h))
	for day, ws := range h {
		if len(ws) == 0 {
			continue
		}
		out[strings.ToLower(day.String())] = ws
	}
	return json.Marshal(out)
}

func (h *WeeklyHours) UnmarshalJSON(data []byte) error {
	var raw map[string][]Window
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == nil {
		*h = nil
		return nil
	}
	out := make(WeeklyHours, len(raw))
	for name, ws := range raw {
		day, err := ParseWeekday(name)
		if err != nil {
			return err
		}
		out[day] = append(out[day], ws...)
	}
	*h = out
	return nil
}
