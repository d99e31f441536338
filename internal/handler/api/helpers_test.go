//go:build unit

package api_test

import (
	"encoding/json"
	"io"
	"log/slog"
	nethttptest "net/http/httptest"
	"testing"
	"time"

	"slot-booker/internal/handler/httperr"
	"slot-booker/internal/handler/middleware"
	"slot-booker/internal/pkg/clock"
	"slot-booker/internal/pkg/jwt"
	"slot-booker/tests/common/bookingtest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "handler-test-secret-0123456789abcdef"

var testNow = time.Date(2030, time.March, 4, 13, 0, 0, 0, time.UTC)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newSessions returns a token service and the real session middleware on top
// of it, both pinned to testNow.
func newSessions() (*jwt.Service, *middleware.SessionMiddleware) {
	svc := jwt.NewService(testSecret, time.Hour, "slot-booker-test", clock.NewMockClock(testNow))
	return svc, middleware.NewSessionMiddleware(svc, discardLogger())
}

func issue(t *testing.T, svc *jwt.Service) *jwt.Session {
	t.Helper()
	session, err := svc.IssueSession(bookingtest.TenantID)
	require.NoError(t, err)
	return session
}

func assertErrorCode(t *testing.T, rec *nethttptest.ResponseRecorder, status int, code string) {
	t.Helper()
	if !assert.Equal(t, status, rec.Code, "body: %s", rec.Body.String()) {
		return
	}
	var body httperr.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, code, body.Error.Code)
}
