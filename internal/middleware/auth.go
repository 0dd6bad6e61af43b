package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"retail-analytics/internal/apperror"
	"retail-analytics/internal/auth"
	"retail-analytics/internal/model"
)

const userContextKey = "user"

// AuthMiddleware validates the Bearer token and stores the authenticated user
// in the request context.
func AuthMiddleware(authService *auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			_ = c.Error(apperror.Authentication("authorization header required"))
			c.Abort()
			return
		}

		tokenParts := strings.Split(authHeader, " ")
		if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
			_ = c.Error(apperror.Authentication("authorization header must be a Bearer token"))
			c.Abort()
			return
		}

		user, err := authService.ValidateToken(tokenParts[1])
		if err != nil {
			_ = c.Error(apperror.Authentication("invalid or expired token"))
			c.Abort()
			return
		}

		c.Set(userContextKey, user)
		c.Next()
	}
}

// GetUserFromContext returns the authenticated user stored by AuthMiddleware.
func GetUserFromContext(c *gin.Context) (*model.User, bool) {
	value, exists := c.Get(userContextKey)
	if !exists {
		return nil, false
	}

	user, ok := value.(*model.User)
	return user, ok
}
