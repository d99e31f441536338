//go:build unit

package hold_test

import (
	"testing"
	"time"

	"slot-booker/internal/domain/hold"
	"slot-booker/internal/domain/timerange"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2030, 3, 4, 8, 0, 0, 0, time.UTC)

func spec() hold.Spec {
	return hold.Spec{
		TenantID:    uuid.New(),
		ProviderID:  uuid.New(),
		ServiceID:   uuid.New(),
		Window:      timerange.Interval{Start: now.Add(2 * time.Hour), End: now.Add(3 * time.Hour)},
		BufferAfter: 15 * time.Minute,
	}
}

func TestNew(t *testing.T) {
	s := spec()
	h, err := hold.New(s, " session-a ", now, 10*time.Minute)
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, h.ID())
	assert.Equal(t, "session-a", h.SessionID())
	assert.Equal(t, now.Add(10*time.Minute), h.ExpiresAt())
	assert.Equal(t, s.Window.End.Add(15*time.Minute), h.Blocked().End)
	assert.Equal(t, s.Window.Start, h.Blocked().Start)

	_, err = hold.New(s, "", now, time.Minute)
	assert.ErrorIs(t, err, hold.ErrEmptySession)

	_, err = hold.New(s, "a", now, 0)
	assert.ErrorIs(t, err, hold.ErrInvalidTTL)
}

func TestIsExpired(t *testing.T) {
	h, err := hold.New(spec(), "a", now, 10*time.Minute)
	require.NoError(t, err)

	assert.False(t, h.IsExpired(now.Add(10*time.Minute-time.Nanosecond)))
	assert.True(t, h.IsExpired(now.Add(10*time.Minute)), "expiry instant counts as expired")
	assert.True(t, h.IsExpired(now.Add(time.Hour)))
}

func TestCheckConfirm(t *testing.T) {
	h, err := hold.New(spec(), "a", now, 10*time.Minute)
	require.NoError(t, err)

	assert.NoError(t, h.CheckConfirm("a", now))
	assert.ErrorIs(t, h.CheckConfirm("b", now), hold.ErrNotOwner)
	assert.ErrorIs(t, h.CheckConfirm("b", now.Add(time.Hour)), hold.ErrNotOwner, "ownership is checked before expiry")
	assert.ErrorIs(t, h.CheckConfirm("a", now.Add(time.Hour)), hold.ErrExpired)
}

func TestMatches(t *testing.T) {
	s := spec()
	h, err := hold.New(s, "a", now, 10*time.Minute)
	require.NoError(t, err)

	assert.True(t, h.Matches(s, "a"))
	assert.False(t, h.Matches(s, "b"))

	moved := s
	moved.Window = timerange.Interval{Start: s.Window.Start.Add(15 * time.Minute), End: s.Window.End.Add(15 * time.Minute)}
	assert.False(t, h.Matches(moved, "a"))
}
