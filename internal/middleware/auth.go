package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/valenn0101/koywe-challenge/internal/service"
	"github.com/valenn0101/koywe-challenge/pkg/response"
)

const (
	// UserIDKey is the context key for the authenticated user's ID
	UserIDKey = "user_id"
	// UserEmailKey is the context key for the authenticated user's email
	UserEmailKey = "user_email"

	bearerPrefix = "Bearer "
)

// Auth middleware validates the bearer access token and stores the
// caller's identity in the request context
func Auth(authService service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "Authorization header is required")
			c.Abort()
			return
		}

		if !strings.HasPrefix(authHeader, bearerPrefix) || len(authHeader) <= len(bearerPrefix) {
			response.Unauthorized(c, "Invalid authorization header format")
			c.Abort()
			return
		}
		token := authHeader[len(bearerPrefix):]

		claims, err := authService.ValidateToken(c.Request.Context(), token)
		if err != nil {
			response.Unauthorized(c, "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set(UserIDKey, claims.UserID)
		c.Set(UserEmailKey, claims.Email)

		c.Next()
	}
}

// GetUserID returns the authenticated user's ID from context
func GetUserID(c *gin.Context) string {
	if id, exists := c.Get(UserIDKey); exists {
		if userID, ok := id.(string); ok {
			return userID
		}
	}
	return ""
}
