package api

import (
	"net/http"

	reqdto "slot-booker/internal/handler/dto/request"
	resdto "slot-booker/internal/handler/dto/response"
	"slot-booker/internal/handler/httperr"
	"slot-booker/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type AvailabilityHandler struct {
	q queries.AvailabilityQueries
}

func NewAvailabilityHandler(q queries.AvailabilityQueries) *AvailabilityHandler {
	return &AvailabilityHandler{q: q}
}

// @Summary Day availability
// @Description Candidate slots of one provider day for a service. Times are tenant-local.
// @Tags availability
// @Produce json
// @Param tenantId path string true "Tenant ID"
// @Param providerId path string true "Provider ID"
// @Param serviceId path string true "Service ID"
// @Param date path string true "Date (YYYY-MM-DD)"
// @Param slotInterval query int false "Step between candidate starts in minutes (default 15)"
// @Success 200 {object} resdto.AvailabilityResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /availability/{tenantId}/{providerId}/{serviceId}/{date} [get]
func (h *AvailabilityHandler) GetDay(c *gin.Context) {
	path, query, ok := bindAvailability(c)
	if !ok {
		return
	}
	in, err := path.DayInput(query)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	day, err := h.q.Resolve(c.Request.Context(), in)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	resp, err := resdto.FromDayAvailability(day)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to render availability", nil)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary Availability calendar
// @Description Availability for every day of [from, to]; to defaults to from + 6 days.
// @Tags availability
// @Produce json
// @Param tenantId path string true "Tenant ID"
// @Param providerId path string true "Provider ID"
// @Param serviceId path string true "Service ID"
// @Param from query string true "First date (YYYY-MM-DD)"
// @Param to query string false "Last date (YYYY-MM-DD)"
// @Param slotInterval query int false "Step between candidate starts in minutes (default 15)"
// @Success 200 {object} resdto.AvailabilityRangeResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /availability/{tenantId}/{providerId}/{serviceId} [get]
func (h *AvailabilityHandler) GetRange(c *gin.Context) {
	path, query, ok := bindAvailability(c)
	if !ok {
		return
	}
	in, err := path.RangeInput(query)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	days, err := h.q.ResolveRange(c.Request.Context(), in)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	resp, err := resdto.FromDayAvailabilities(days)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to render availability", nil)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func bindAvailability(c *gin.Context) (reqdto.AvailabilityPath, reqdto.AvailabilityQuery, bool) {
	var (
		path  reqdto.AvailabilityPath
		query reqdto.AvailabilityQuery
	)
	if err := c.ShouldBindUri(&path); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid path", err.Error())
		return path, query, false
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid query", err.Error())
		return path, query, false
	}
	return path, query, true
}
