//go:build unit

package schedule_test

import (
	"encoding/json"
	"testing"
	"time"

	"slot-booker/internal/domain/schedule"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeeklyHoursJSON(t *testing.T) {
	t.Run("decodes weekday names and split shifts", func(t *testing.T) {
		var h schedule.WeeklyHours
		err := json.Unmarshal([]byte(`{
			"Monday": [{"start": "09:00", "end": "12:00"}, {"start": "13:00", "end": "17:30"}],
			"saturday": [{"start": "10:00:00", "end": "14:00:00"}]
		}`), &h)
		require.NoError(t, err)

		require.Len(t, h[time.Monday], 2)
		assert.Equal(t, "13:00-17:30", h[time.Monday][1].String())
		assert.Equal(t, "10:00-14:00", h[time.Saturday][0].String())
		assert.Empty(t, h[time.Sunday])
	})

	t.Run("encodes with lowercase names and HH:MM bounds", func(t *testing.T) {
		h := schedule.WeeklyHours{time.Friday: {window(t, "08:15", "16:45")}, time.Sunday: nil}
		data, err := json.Marshal(h)
		require.NoError(t, err)
		assert.JSONEq(t, `{"friday":[{"start":"08:15","end":"16:45"}]}`, string(data))
	})

	t.Run("rejects unknown weekday", func(t *testing.T) {
		var h schedule.WeeklyHours
		err := json.Unmarshal([]byte(`{"funday": []}`), &h)
		assert.Error(t, err)
	})

	t.Run("rejects inverted window", func(t *testing.T) {
		var w schedule.Window
		err := json.Unmarshal([]byte(`{"start":"17:00","end":"09:00"}`), &w)
		assert.ErrorIs(t, err, schedule.ErrInvalidWindow)
	})
}
