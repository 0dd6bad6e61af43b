package middleware

import (
	"github.com/gin-gonic/gin"

	"retail-analytics/internal/apperror"
	"retail-analytics/internal/auth"
)

// RequirePermission checks that the authenticated user's role grants the
// resource/action pair. It must run after AuthMiddleware.
func RequirePermission(authz *auth.Authorizer, resource, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, exists := GetUserFromContext(c)
		if !exists {
			_ = c.Error(apperror.Authentication("user not found in context"))
			c.Abort()
			return
		}

		allowed, err := authz.Authorize(user.Role, resource, action)
		if err != nil {
			_ = c.Error(apperror.Wrap(apperror.KindInternal, "authorization check failed", err))
			c.Abort()
			return
		}

		if !allowed {
			_ = c.Error(apperror.Authorizationf("role %q may not %s %s", user.Role, action, resource))
			c.Abort()
			return
		}

		c.Next()
	}
}
