package httperr

import (
	"net/http"

	"slot-booker/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

type Response struct {
	Status int `json:"-"`
	Error  struct {
		Code    string `json:"code,omitempty"`
		Message string `json:"message"`
	} `json:"error"`
	Detail any `json:"detail,omitempty"`
}

// preserves original error for future monitoring
func AbortWithError(c *gin.Context, status int, err error, msg string, detail any) {
	if err == nil {
		panic("AbortWithError: err cannot be nil")
	}

	resp := Response{Status: status}
	resp.Error.Code = codeFor(status)
	resp.Error.Message = msg
	resp.Detail = detail

	_ = c.Error(gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(status, resp)
}

// Abort answers with the status matching err's kind. Unclassified errors
// become a 500 whose message hides the cause.
func Abort(c *gin.Context, err error) {
	status, msg := Classify(err)
	var detail any
	if status == http.StatusBadRequest {
		detail = err.Error()
	}
	AbortWithError(c, status, err, msg, detail)
}

func Classify(err error) (int, string) {
	switch errs.Kind(err) {
	case errs.ErrNotFound:
		return http.StatusNotFound, "Resource not found"
	case errs.ErrForbidden:
		return http.StatusForbidden, "This booking belongs to another session"
	case errs.ErrSlotUnavailable:
		return http.StatusConflict, "The requested slot is no longer available"
	case errs.ErrExpired:
		return http.StatusGone, "The hold has expired"
	case errs.ErrInvalidInput:
		return http.StatusBadRequest, "Invalid request"
	case errs.ErrRateLimited:
		return http.StatusTooManyRequests, "Too many requests"
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}

func codeFor(status int) string {
	switch status {
	case http.StatusNotFound:
		return "not_found"
	case http.StatusForbidden:
		return "forbidden"
	case http.StatusConflict:
		return "slot_unavailable"
	case http.StatusGone:
		return "expired"
	case http.StatusBadRequest:
		return "invalid_input"
	case http.StatusUnauthorized:
		return "unauthorized"
	case http.StatusTooManyRequests:
		return "rate_limited"
	default:
		return "internal"
	}
}
