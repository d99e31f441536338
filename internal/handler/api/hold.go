package api

import (
	"errors"
	"net/http"

	reqdto "slot-booker/internal/handler/dto/request"
	resdto "slot-booker/internal/handler/dto/response"
	"slot-booker/internal/handler/httperr"
	"slot-booker/internal/handler/middleware"
	"slot-booker/internal/pkg/errs"
	"slot-booker/internal/usecase/commands"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

var errNoSession = errors.New("no booking session in context")

type HoldHandler struct {
	cmds commands.HoldCommands
}

func NewHoldHandler(cmds commands.HoldCommands) *HoldHandler {
	return &HoldHandler{cmds: cmds}
}

// @Summary Place hold
// @Description Reserve a slot for the calling session until the hold expires. Repeating the same request returns the existing hold with 200.
// @Tags holds
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.PlaceHoldRequest true "Hold request"
// @Success 200 {object} resdto.HoldResponse
// @Success 201 {object} resdto.HoldResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 429 {object} httperr.Response
// @Router /holds [post]
func (h *HoldHandler) Place(c *gin.Context) {
	sessionID, ok := requireSession(c)
	if !ok {
		return
	}
	var req reqdto.PlaceHoldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", err.Error())
		return
	}
	in, err := req.ToInput(sessionID)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	// A session books only at the tenant it was issued for.
	if tenantID, ok := middleware.GetSessionTenantID(c); !ok || tenantID != in.TenantID {
		httperr.Abort(c, errs.Mark(errs.Newf("session issued for tenant %s", tenantID), errs.ErrForbidden))
		return
	}
	result, err := h.cmds.PlaceHold(c.Request.Context(), in)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	status := http.StatusCreated
	if result.Replayed {
		status = http.StatusOK
	}
	c.JSON(status, resdto.FromHoldResult(result))
}

// @Summary Release hold
// @Description Give a held slot back before the hold expires.
// @Tags holds
// @Security BearerAuth
// @Param id path string true "Hold ID"
// @Success 204 "No Content"
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /holds/{id} [delete]
func (h *HoldHandler) Release(c *gin.Context) {
	sessionID, ok := requireSession(c)
	if !ok {
		return
	}
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	if err := h.cmds.ReleaseHold(c.Request.Context(), id, sessionID); err != nil {
		httperr.Abort(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func requireSession(c *gin.Context) (string, bool) {
	sessionID, ok := middleware.GetSessionID(c)
	if !ok {
		// Unexpected: route is missing RequireSession
		httperr.AbortWithError(c, http.StatusUnauthorized, errNoSession, "Session token required", nil)
		return "", false
	}
	return sessionID, true
}

func pathUUID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return uuid.Nil, false
	}
	return id, true
}
