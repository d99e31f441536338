package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"slot-booker/internal/handler/httperr"
	"slot-booker/internal/pkg/jwt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type SessionValidator interface {
	ValidateToken(token string) (*jwt.Claims, error)
}

type SessionMiddleware struct {
	validator SessionValidator
	logger    *slog.Logger
}

const (
	ctxSessionIDKey = "session_id"
	ctxTenantIDKey  = "session_tenant_id"
)

var errMissingToken = errors.New("missing bearer token")

func NewSessionMiddleware(validator SessionValidator, logger *slog.Logger) *SessionMiddleware {
	return &SessionMiddleware{validator: validator, logger: logger}
}

// RequireSession resolves the booking session from "Authorization: Bearer".
func (m *SessionMiddleware) RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			httperr.AbortWithError(c, http.StatusUnauthorized, errMissingToken, "Session token required", nil)
			return
		}

		claims, err := m.validator.ValidateToken(token)
		if err != nil {
			m.logger.DebugContext(c.Request.Context(), "session token rejected", "error", err.Error())
			msg := "Invalid session token"
			if errors.Is(err, jwt.ErrExpiredToken) {
				msg = "Session expired"
			}
			httperr.AbortWithError(c, http.StatusUnauthorized, err, msg, nil)
			return
		}

		c.Set(ctxSessionIDKey, claims.SessionID)
		c.Set(ctxTenantIDKey, claims.TenantID)
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if token, ok := strings.CutPrefix(authHeader, "Bearer "); ok {
		return strings.TrimSpace(token)
	}
	return ""
}

func GetSessionID(c *gin.Context) (string, bool) {
	v, exists := c.Get(ctxSessionIDKey)
	if !exists {
		return "", false
	}
	id, ok := v.(string)
	return id, ok && id != ""
}

func GetSessionTenantID(c *gin.Context) (uuid.UUID, bool) {
	v, exists := c.Get(ctxTenantIDKey)
	if !exists {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}
