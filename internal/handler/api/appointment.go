package api

import (
	"net/http"

	reqdto "slot-booker/internal/handler/dto/request"
	resdto "slot-booker/internal/handler/dto/response"
	"slot-booker/internal/handler/httperr"
	"slot-booker/internal/usecase/commands"
	"slot-booker/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type AppointmentHandler struct {
	cmds commands.ConfirmationCommands
	q    queries.AppointmentQueries
}

func NewAppointmentHandler(cmds commands.ConfirmationCommands, q queries.AppointmentQueries) *AppointmentHandler {
	return &AppointmentHandler{cmds: cmds, q: q}
}

// @Summary Confirm hold
// @Description Turn the session's live hold into a confirmed appointment.
// @Tags appointments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Hold ID"
// @Param request body reqdto.ConfirmHoldRequest true "Customer details"
// @Success 201 {object} resdto.ConfirmResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 410 {object} httperr.Response
// @Router /holds/{id}/confirm [post]
func (h *AppointmentHandler) Confirm(c *gin.Context) {
	sessionID, ok := requireSession(c)
	if !ok {
		return
	}
	holdID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var req reqdto.ConfirmHoldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", err.Error())
		return
	}
	result, err := h.cmds.Confirm(c.Request.Context(), req.ToInput(holdID, sessionID))
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.FromConfirmResult(result))
}

// @Summary Get appointment
// @Tags appointments
// @Produce json
// @Security BearerAuth
// @Param id path string true "Appointment ID"
// @Success 200 {object} resdto.AppointmentResponse
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /appointments/{id} [get]
func (h *AppointmentHandler) Get(c *gin.Context) {
	sessionID, ok := requireSession(c)
	if !ok {
		return
	}
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	view, err := h.q.GetByID(c.Request.Context(), id, sessionID)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	resp, err := resdto.FromAppointmentView(view)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to render appointment", nil)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary List session appointments
// @Tags appointments
// @Produce json
// @Security BearerAuth
// @Param cursor query string false "Cursor from a previous page"
// @Param limit query int false "Page size (default 20, max 100)"
// @Success 200 {object} resdto.AppointmentListResponse
// @Failure 400 {object} httperr.Response
// @Router /appointments [get]
func (h *AppointmentHandler) List(c *gin.Context) {
	sessionID, ok := requireSession(c)
	if !ok {
		return
	}
	var query reqdto.ListAppointmentsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid query", err.Error())
		return
	}
	page, err := h.q.ListBySession(c.Request.Context(), sessionID, query.Cursor, query.Limit)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	resp, err := resdto.FromAppointmentPage(page)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to render appointments", nil)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary Cancel appointment
// @Tags appointments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Appointment ID"
// @Param request body reqdto.CancelAppointmentRequest false "Cancellation reason"
// @Success 200 {object} resdto.AppointmentResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /appointments/{id}/cancel [post]
func (h *AppointmentHandler) Cancel(c *gin.Context) {
	sessionID, ok := requireSession(c)
	if !ok {
		return
	}
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var req reqdto.CancelAppointmentRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", err.Error())
			return
		}
	}
	a, err := h.cmds.Cancel(c.Request.Context(), commands.CancelInput{
		AppointmentID: id,
		SessionID:     sessionID,
		Reason:        req.Reason,
	})
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	resp, err := resdto.FromAppointment(a)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to render appointment", nil)
		return
	}
	c.JSON(http.StatusOK, resp)
}
