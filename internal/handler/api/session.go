package api

import (
	"net/http"

	reqdto "slot-booker/internal/handler/dto/request"
	resdto "slot-booker/internal/handler/dto/response"
	"slot-booker/internal/handler/httperr"
	"slot-booker/internal/pkg/jwt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type SessionIssuer interface {
	IssueSession(tenantID uuid.UUID) (*jwt.Session, error)
}

type SessionHandler struct {
	issuer SessionIssuer
}

func NewSessionHandler(issuer SessionIssuer) *SessionHandler {
	return &SessionHandler{issuer: issuer}
}

// @Summary Start booking session
// @Description Issue an anonymous booking session token. Holds and appointments belong to the session that created them.
// @Tags sessions
// @Accept json
// @Produce json
// @Param request body reqdto.CreateSessionRequest true "Session request"
// @Success 201 {object} resdto.SessionResponse
// @Failure 400 {object} httperr.Response
// @Router /sessions [post]
func (h *SessionHandler) Create(c *gin.Context) {
	var req reqdto.CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", err.Error())
		return
	}
	session, err := h.issuer.IssueSession(req.TenantID)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to start session", nil)
		return
	}
	c.JSON(http.StatusCreated, resdto.SessionResponse{
		Token:     session.Token,
		SessionID: session.SessionID,
		ExpiresAt: session.ExpiresAt,
	})
}
