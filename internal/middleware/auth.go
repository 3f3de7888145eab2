package middleware

import (
	"net/http"
	"strings"

	"github.com/asrayg/betterforms/internal/dto"
	"github.com/asrayg/betterforms/internal/service"
	"github.com/gin-gonic/gin"
)

// UserIDKey is the context key under which RequireAuth stores the
// authenticated owner's user id.
const UserIDKey = "userID"

// RequireAuth validates the Bearer token and stores the caller's user id in
// the request context. Requests without a valid token never reach the
// handler.
func RequireAuth(authService service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Authorization required"})
			return
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Authorization header format must be Bearer {token}"})
			return
		}

		claims, err := authService.ParseToken(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Invalid or expired token"})
			return
		}

		c.Set(UserIDKey, claims.UserID)
		c.Next()
	}
}

// CurrentUserID returns the authenticated user id set by RequireAuth.
func CurrentUserID(c *gin.Context) (uint, bool) {
	val, ok := c.Get(UserIDKey)
	if !ok {
		return 0, false
	}
	id, ok := val.(uint)
	return id, ok
}
