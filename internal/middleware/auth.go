package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/calebgil/tandem/internal/auth"
	apperrors "github.com/calebgil/tandem/pkg/errors"
	"github.com/calebgil/tandem/pkg/response"
)

// CtxUserIDKey is the gin context key holding the authenticated user id.
const CtxUserIDKey = "auth.user_id"

// RequireAuth validates the bearer token and stores the caller's identity on
// the request context. WebSocket clients cannot set headers, so a token query
// parameter is accepted as a fallback.
func RequireAuth(jwtService *auth.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			token = c.Query("token")
		}
		if token == "" {
			response.Error(c, apperrors.ErrUnauthenticated)
			c.Abort()
			return
		}

		claims, err := jwtService.ValidateToken(token)
		if err != nil {
			response.Error(c, apperrors.ErrUnauthenticated)
			c.Abort()
			return
		}

		c.Set(CtxUserIDKey, claims.UserID)
		c.Next()
	}
}

// UserID returns the authenticated user id stored by RequireAuth.
func UserID(c *gin.Context) string {
	uid, _ := c.Get(CtxUserIDKey)
	id, _ := uid.(string)
	return id
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
