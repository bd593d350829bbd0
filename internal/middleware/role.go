package middleware

import (
	"coworkspace/internal/authz"
	"coworkspace/internal/domain"
	"coworkspace/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

// RequireRole ensures that the authenticated user has one of the roles.
func RequireRole(guard *authz.Guard, roles ...domain.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, _ := IdentityFrom(c)
		if err := guard.CanAccess(identity, authz.NoOwner, roles...); err != nil {
			response.FromError(c, err)
			c.Abort()
			return
		}
		c.Next()
	}
}

// AdminOnly middleware requires admin role
func AdminOnly(guard *authz.Guard) gin.HandlerFunc {
	return RequireRole(guard, domain.RoleAdmin)
}
