//go:build unit

package api_test

import (
	"net/http"
	"testing"
	"time"

	"slot-booker/internal/handler/api"
	resdto "slot-booker/internal/handler/dto/response"
	"slot-booker/internal/pkg/jwt"
	"slot-booker/tests/common/bookingtest"
	"slot-booker/tests/common/httptest"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
)

type SessionHandlerTestSuite struct {
	suite.Suite
	router *gin.Engine
	tokens *jwt.Service
}

func (s *SessionHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()
	s.tokens, _ = newSessions()
	s.router.POST("/sessions", api.NewSessionHandler(s.tokens).Create)
}

func TestSessionHandlerSuite(t *testing.T) {
	suite.Run(t, new(SessionHandlerTestSuite))
}

func (s *SessionHandlerTestSuite) TestCreate() {
	s.Run("success: 201 with a token carrying the session id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/sessions",
			map[string]any{"tenantId": bookingtest.TenantID.String()}, "")

		var body resdto.SessionResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &body)
		s.NotEmpty(body.SessionID)
		s.True(testNow.Add(time.Hour).Equal(body.ExpiresAt))

		claims, err := s.tokens.ValidateToken(body.Token)
		s.Require().NoError(err)
		s.Equal(body.SessionID, claims.SessionID)
		s.Equal(bookingtest.TenantID, claims.TenantID)
	})

	s.Run("every call starts a new session", func() {
		body := map[string]any{"tenantId": bookingtest.TenantID.String()}
		var first, second resdto.SessionResponse
		httptest.AssertSuccessResponse(s.T(),
			httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/sessions", body, ""), http.StatusCreated, &first)
		httptest.AssertSuccessResponse(s.T(),
			httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/sessions", body, ""), http.StatusCreated, &second)
		s.NotEqual(first.SessionID, second.SessionID)
	})

	s.Run("error: 400 without tenantId", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/sessions", map[string]any{}, "")
		assertErrorCode(s.T(), rec, http.StatusBadRequest, "invalid_input")
	})

	s.Run("error: 400 on malformed tenantId", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/sessions",
			map[string]any{"tenantId": "not-a-uuid"}, "")
		assertErrorCode(s.T(), rec, http.StatusBadRequest, "invalid_input")
	})
}
