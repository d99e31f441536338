//go:build unit

package jwt_test

import (
	"testing"
	"time"

	"slot-booker/internal/pkg/clock"
	"slot-booker/internal/pkg/jwt"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService(t *testing.T) {
	clk := clock.NewMockClock(time.Date(2030, time.March, 4, 8, 0, 0, 0, time.UTC))
	svc := jwt.NewService("secret-1", time.Hour, "slot-booker", clk)
	tenantID := uuid.New()

	session, err := svc.IssueSession(tenantID)
	require.NoError(t, err)
	assert.NotEmpty(t, session.SessionID)
	assert.Equal(t, clk.Now().Add(time.Hour), session.ExpiresAt)

	t.Run("valid token yields the session", func(t *testing.T) {
		claims, err := svc.ValidateToken(session.Token)
		require.NoError(t, err)
		assert.Equal(t, session.SessionID, claims.SessionID)
		assert.Equal(t, tenantID, claims.TenantID)
	})

	t.Run("sessions are distinct", func(t *testing.T) {
		other, err := svc.IssueSession(tenantID)
		require.NoError(t, err)
		assert.NotEqual(t, session.SessionID, other.SessionID)
	})

	t.Run("other secret is rejected", func(t *testing.T) {
		_, err := jwt.NewService("secret-2", time.Hour, "slot-booker", clk).ValidateToken(session.Token)
		assert.ErrorIs(t, err, jwt.ErrInvalidToken)
	})

	t.Run("other issuer is rejected", func(t *testing.T) {
		_, err := jwt.NewService("secret-1", time.Hour, "someone-else", clk).ValidateToken(session.Token)
		assert.ErrorIs(t, err, jwt.ErrInvalidToken)
	})

	t.Run("garbage is rejected", func(t *testing.T) {
		_, err := svc.ValidateToken("not.a.token")
		assert.ErrorIs(t, err, jwt.ErrInvalidToken)
	})

	t.Run("expired token", func(t *testing.T) {
		later := clock.NewMockClock(clk.Now().Add(2 * time.Hour))
		_, err := jwt.NewService("secret-1", time.Hour, "slot-booker", later).ValidateToken(session.Token)
		assert.ErrorIs(t, err, jwt.ErrExpiredToken)
	})
}
