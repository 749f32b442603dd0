package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"leaguehub/internal/transport/httpdto"
)

const (
	ContextUserIDKey = "auth_user_id"
	ContextAdminKey  = "auth_is_admin"
)

type Claims struct {
	Admin bool `json:"admin"`
	jwt.RegisteredClaims
}

// AuthMiddleware verifies the bearer token and stores the caller's identity on
// the request context. Token issuance happens in the Discord OAuth flow, which
// lives outside this service.
func AuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := extractBearer(c)
		if tokenStr == "" {
			c.JSON(http.StatusUnauthorized, httpdto.NewErrorResponse("unauthorized", "UNAUTHORIZED"))
			c.Abort()
			return
		}

		claims := &Claims{}
		token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			c.JSON(http.StatusUnauthorized, httpdto.NewErrorResponse("unauthorized", "UNAUTHORIZED"))
			c.Abort()
			return
		}

		userID, err := uuid.Parse(claims.Subject)
		if err != nil {
			c.JSON(http.StatusUnauthorized, httpdto.NewErrorResponse("unauthorized", "UNAUTHORIZED"))
			c.Abort()
			return
		}

		c.Set(ContextUserIDKey, userID)
		c.Set(ContextAdminKey, claims.Admin)
		c.Next()
	}
}

// RequireAdmin gates admin-only endpoints (approve, reject, failed-event
// triage). Must run after AuthMiddleware.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !c.GetBool(ContextAdminKey) {
			c.JSON(http.StatusForbidden, httpdto.NewErrorResponse("admin access required", "FORBIDDEN"))
			c.Abort()
			return
		}
		c.Next()
	}
}

// UserIDFromContext returns the authenticated caller's id.
func UserIDFromContext(c *gin.Context) (uuid.UUID, bool) {
	value, ok := c.Get(ContextUserIDKey)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := value.(uuid.UUID)
	return id, ok
}

func extractBearer(c *gin.Context) string {
	value := c.GetHeader("Authorization")
	parts := strings.SplitN(value, " ", 2)
	if len(parts) != 2 {
		return ""
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
