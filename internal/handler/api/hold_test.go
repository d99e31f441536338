//go:build unit

package api_test

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"slot-booker/internal/domain/hold"
	"slot-booker/internal/domain/timerange"
	"slot-booker/internal/handler/api"
	resdto "slot-booker/internal/handler/dto/response"
	"slot-booker/internal/pkg/errs"
	"slot-booker/internal/pkg/jwt"
	"slot-booker/internal/usecase/commands"
	"slot-booker/tests/common/bookingtest"
	"slot-booker/tests/common/httptest"
	"slot-booker/tests/common/testutil"
	commandsmock "slot-booker/tests/mock/commands"

	"cloud.google.com/go/civil"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type HoldHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockHoldCommands
	session      *jwt.Session
}

func (s *HoldHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockHoldCommands(s.mockCtrl)
	handler := api.NewHoldHandler(s.mockCommands)

	tokens, mw := newSessions()
	s.session = issue(s.T(), tokens)

	holds := s.router.Group("/holds", mw.RequireSession())
	holds.POST("", handler.Place)
	holds.DELETE("/:id", handler.Release)
}

func (s *HoldHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestHoldHandlerSuite(t *testing.T) {
	suite.Run(t, new(HoldHandlerTestSuite))
}

func placeBody() map[string]any {
	return map[string]any{
		"tenantId":   bookingtest.TenantID.String(),
		"providerId": bookingtest.ProviderID.String(),
		"serviceId":  bookingtest.ServiceID.String(),
		"date":       "2030-03-04",
		"startTime":  "10:00",
	}
}

func newHoldResult(s *suite.Suite, sessionID string, replayed bool) *commands.HoldResult {
	start := time.Date(2030, time.March, 4, 15, 0, 0, 0, time.UTC)
	h, err := hold.New(hold.Spec{
		TenantID:   bookingtest.TenantID,
		ProviderID: bookingtest.ProviderID,
		ServiceID:  bookingtest.ServiceID,
		Window:     timerange.Interval{Start: start, End: start.Add(time.Hour)},
	}, sessionID, testNow, 10*time.Minute)
	s.Require().NoError(err)
	return &commands.HoldResult{Hold: h, Replayed: replayed}
}

// ================================================================================
// TestPlace
// ================================================================================

func (s *HoldHandlerTestSuite) TestPlace() {
	url := "/holds"

	s.Run("success: 201 and the input carries the token's session", func() {
		result := newHoldResult(&s.Suite, s.session.SessionID, false)
		s.mockCommands.EXPECT().PlaceHold(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ any, in commands.PlaceHoldInput) (*commands.HoldResult, error) {
				s.Equal(s.session.SessionID, in.SessionID)
				s.Equal(civil.Date{Year: 2030, Month: time.March, Day: 4}, in.Date)
				s.Equal(civil.Time{Hour: 10}, in.StartTime)
				s.Equal(bookingtest.ProviderID, in.ProviderID)
				return result, nil
			}).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, placeBody(), s.session.Token)

		var body resdto.HoldResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &body)
		s.Equal(result.Hold.ID(), body.HoldID)
		s.True(result.Hold.ExpiresAt().Equal(body.ExpiresAt))
		s.False(body.Replayed)
	})

	s.Run("success: 200 when the same hold is replayed", func() {
		s.mockCommands.EXPECT().PlaceHold(gomock.Any(), gomock.Any()).
			Return(newHoldResult(&s.Suite, s.session.SessionID, true), nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, placeBody(), s.session.Token)

		var body resdto.HoldResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.True(body.Replayed)
	})

	s.Run("error: 401 without a session token", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, placeBody(), "")
		assertErrorCode(s.T(), rec, http.StatusUnauthorized, "unauthorized")
	})

	s.Run("error: 401 on a forged token", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, placeBody(), s.session.Token+"x")
		assertErrorCode(s.T(), rec, http.StatusUnauthorized, "unauthorized")
	})

	s.Run("error: 403 when placing at another tenant", func() {
		body := placeBody()
		body["tenantId"] = uuid.NewString()
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, s.session.Token)
		assertErrorCode(s.T(), rec, http.StatusForbidden, "forbidden")
	})

	validation := []struct {
		name   string
		mutate func(m map[string]any)
	}{
		{name: "missing providerId", mutate: testutil.Field("providerId", nil)},
		{name: "missing serviceId", mutate: testutil.Field("serviceId", nil)},
		{name: "missing date", mutate: testutil.Field("date", nil)},
		{name: "missing startTime", mutate: testutil.Field("startTime", nil)},
		{name: "malformed providerId", mutate: testutil.Field("providerId", "alex")},
		{name: "impossible date", mutate: testutil.Field("date", "2030-02-30")},
		{name: "impossible start time", mutate: testutil.Field("startTime", "25:00")},
	}
	for _, tc := range validation {
		s.Run("error: 400 on "+tc.name, func() {
			body := placeBody()
			tc.mutate(body)
			rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, s.session.Token)
			assertErrorCode(s.T(), rec, http.StatusBadRequest, "invalid_input")
		})
	}

	failures := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{name: "slot taken", err: errs.Mark(errors.New("overlap"), errs.ErrSlotUnavailable), status: http.StatusConflict, code: "slot_unavailable"},
		{name: "unknown provider", err: errs.Mark(errors.New("provider"), errs.ErrNotFound), status: http.StatusNotFound, code: "not_found"},
		{name: "rate limited", err: commands.ErrTooManyHolds, status: http.StatusTooManyRequests, code: "rate_limited"},
		{name: "off grid", err: errs.Mark(errors.New("not a slot"), errs.ErrInvalidInput), status: http.StatusBadRequest, code: "invalid_input"},
		{name: "storage failure", err: errors.New("connection reset"), status: http.StatusInternalServerError, code: "internal"},
	}
	for _, tc := range failures {
		s.Run("error: "+tc.name, func() {
			s.mockCommands.EXPECT().PlaceHold(gomock.Any(), gomock.Any()).Return(nil, tc.err).Times(1)
			rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, placeBody(), s.session.Token)
			assertErrorCode(s.T(), rec, tc.status, tc.code)
		})
	}

	s.Run("error: 500 hides the cause", func() {
		s.mockCommands.EXPECT().PlaceHold(gomock.Any(), gomock.Any()).
			Return(nil, errors.New("pq: password authentication failed")).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, placeBody(), s.session.Token)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusInternalServerError, "Internal server error")
		s.NotContains(rec.Body.String(), "password")
	})
}

// ================================================================================
// TestRelease
// ================================================================================

func (s *HoldHandlerTestSuite) TestRelease() {
	holdID := uuid.New()
	url := "/holds/" + holdID.String()

	s.Run("success: 204", func() {
		s.mockCommands.EXPECT().ReleaseHold(gomock.Any(), holdID, s.session.SessionID).Return(nil).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, url, nil, s.session.Token)
		s.Equal(http.StatusNoContent, rec.Code)
		s.Empty(rec.Body.String())
	})

	s.Run("error: 403 for another session's hold", func() {
		s.mockCommands.EXPECT().ReleaseHold(gomock.Any(), holdID, gomock.Any()).
			Return(errs.Mark(hold.ErrNotOwner, errs.ErrForbidden)).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, url, nil, s.session.Token)
		assertErrorCode(s.T(), rec, http.StatusForbidden, "forbidden")
	})

	s.Run("error: 404 for an unknown hold", func() {
		s.mockCommands.EXPECT().ReleaseHold(gomock.Any(), holdID, gomock.Any()).
			Return(errs.Mark(errors.New("hold"), errs.ErrNotFound)).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, url, nil, s.session.Token)
		assertErrorCode(s.T(), rec, http.StatusNotFound, "not_found")
	})

	s.Run("error: 400 on a malformed id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, "/holds/42", nil, s.session.Token)
		assertErrorCode(s.T(), rec, http.StatusBadRequest, "invalid_input")
	})

	s.Run("error: 401 without a session token", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, url, nil, "")
		assertErrorCode(s.T(), rec, http.StatusUnauthorized, "unauthorized")
	})
}
