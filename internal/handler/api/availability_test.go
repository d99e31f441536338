//go:build unit

package api_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"slot-booker/internal/handler/api"
	resdto "slot-booker/internal/handler/dto/response"
	"slot-booker/internal/pkg/errs"
	"slot-booker/internal/usecase/queries"
	"slot-booker/tests/common/bookingtest"
	"slot-booker/tests/common/httptest"
	queriesmock "slot-booker/tests/mock/queries"

	"cloud.google.com/go/civil"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type AvailabilityHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockCtrl    *gomock.Controller
	mockQueries *queriesmock.MockAvailabilityQueries
}

func (s *AvailabilityHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockQueries = queriesmock.NewMockAvailabilityQueries(s.mockCtrl)
	handler := api.NewAvailabilityHandler(s.mockQueries)

	s.router.GET("/availability/:tenantId/:providerId/:serviceId", handler.GetRange)
	s.router.GET("/availability/:tenantId/:providerId/:serviceId/:date", handler.GetDay)
}

func (s *AvailabilityHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestAvailabilityHandlerSuite(t *testing.T) {
	suite.Run(t, new(AvailabilityHandlerTestSuite))
}

func basePath() string {
	return fmt.Sprintf("/availability/%s/%s/%s", bookingtest.TenantID, bookingtest.ProviderID, bookingtest.ServiceID)
}

func openDay(date civil.Date) *queries.DayAvailability {
	start := time.Date(date.Year, date.Month, date.Day, 14, 0, 0, 0, time.UTC)
	return &queries.DayAvailability{
		Date:         date,
		TenantID:     bookingtest.TenantID,
		ProviderID:   bookingtest.ProviderID,
		ProviderName: "Alex",
		ServiceID:    bookingtest.ServiceID,
		TimeZone:     bookingtest.TimeZone,
		IsOpen:       true,
		Slots: []queries.SlotView{
			{StartTime: "09:00", EndTime: "10:00", StartAt: start, EndAt: start.Add(time.Hour), IsAvailable: true},
			{StartTime: "09:15", EndTime: "10:15", StartAt: start.Add(15 * time.Minute), EndAt: start.Add(75 * time.Minute)},
		},
	}
}

// ================================================================================
// TestGetDay
// ================================================================================

func (s *AvailabilityHandlerTestSuite) TestGetDay() {
	url := basePath() + "/2030-03-04"

	s.Run("success: renders slots with tenant-local labels", func() {
		s.mockQueries.EXPECT().Resolve(gomock.Any(), queries.AvailabilityInput{
			TenantID:           bookingtest.TenantID,
			ProviderID:         bookingtest.ProviderID,
			ServiceID:          bookingtest.ServiceID,
			Date:               bookingtest.Monday,
			GranularityMinutes: 30,
		}).Return(openDay(bookingtest.Monday), nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url+"?slotInterval=30", nil, "")

		var body resdto.AvailabilityResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal("2030-03-04", body.Date)
		s.Equal("Alex", body.ProviderName)
		s.True(body.IsOpen)
		s.Equal(1, body.AvailableCount)
		s.Require().Len(body.Slots, 2)
		s.Equal("09:00", body.Slots[0].StartTime)
		s.True(body.Slots[0].IsAvailable)
		s.False(body.Slots[1].IsAvailable)
	})

	s.Run("success: closed day keeps an empty slot list", func() {
		closed := &queries.DayAvailability{Date: bookingtest.Saturday, ClosedReason: "closed"}
		s.mockQueries.EXPECT().Resolve(gomock.Any(), gomock.Any()).Return(closed, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, basePath()+"/2030-03-09", nil, "")

		var body map[string]any
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(false, body["isOpen"])
		s.Equal("closed", body["closedReason"])
		s.Equal([]any{}, body["slots"])
	})

	s.Run("error: 400 on a malformed tenant id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet,
			fmt.Sprintf("/availability/nope/%s/%s/2030-03-04", bookingtest.ProviderID, bookingtest.ServiceID), nil, "")
		assertErrorCode(s.T(), rec, http.StatusBadRequest, "invalid_input")
	})

	s.Run("error: 400 on a malformed date", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, basePath()+"/03-04-2030", nil, "")
		assertErrorCode(s.T(), rec, http.StatusBadRequest, "invalid_input")
	})

	s.Run("error: 400 on an out of range slot interval", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url+"?slotInterval=2000", nil, "")
		assertErrorCode(s.T(), rec, http.StatusBadRequest, "invalid_input")
	})

	s.Run("error: 404 for an unknown provider", func() {
		s.mockQueries.EXPECT().Resolve(gomock.Any(), gomock.Any()).
			Return(nil, errs.Mark(errors.New("provider"), errs.ErrNotFound)).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")
		assertErrorCode(s.T(), rec, http.StatusNotFound, "not_found")
	})
}

// ================================================================================
// TestGetRange
// ================================================================================

func (s *AvailabilityHandlerTestSuite) TestGetRange() {
	s.Run("success: to defaults to a week after from", func() {
		s.mockQueries.EXPECT().ResolveRange(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ any, in queries.AvailabilityRangeInput) ([]*queries.DayAvailability, error) {
				s.Equal(bookingtest.Monday, in.From)
				s.Equal(bookingtest.Monday.AddDays(6), in.To)
				s.Equal(0, in.GranularityMinutes)
				return []*queries.DayAvailability{openDay(bookingtest.Monday), openDay(bookingtest.Monday.AddDays(1))}, nil
			}).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, basePath()+"?from=2030-03-04", nil, "")

		var body resdto.AvailabilityRangeResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Require().Len(body.Days, 2)
		s.Equal("2030-03-05", body.Days[1].Date)
	})

	s.Run("success: explicit to is forwarded", func() {
		s.mockQueries.EXPECT().ResolveRange(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ any, in queries.AvailabilityRangeInput) ([]*queries.DayAvailability, error) {
				s.Equal(bookingtest.Monday.AddDays(2), in.To)
				return nil, nil
			}).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, basePath()+"?from=2030-03-04&to=2030-03-06", nil, "")

		s.Equal(http.StatusOK, rec.Code)
		s.JSONEq(`{"days":[]}`, rec.Body.String())
	})

	s.Run("error: 400 without from", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, basePath(), nil, "")
		assertErrorCode(s.T(), rec, http.StatusBadRequest, "invalid_input")
	})

	s.Run("error: 400 when the range is rejected", func() {
		s.mockQueries.EXPECT().ResolveRange(gomock.Any(), gomock.Any()).
			Return(nil, errs.Mark(errors.New("range too long"), errs.ErrInvalidInput)).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, basePath()+"?from=2030-03-04&to=2030-06-04", nil, "")
		assertErrorCode(s.T(), rec, http.StatusBadRequest, "invalid_input")
	})
}
