package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Authorize gates a route to the given roles. It must run after Authenticate;
// an unauthenticated request fails 401, an authenticated one with a role
// outside the allowed set fails 403.
func Authorize(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		roleVal, exists := c.Get(CtxUserRole)
		if !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Access denied. Please log in."})
			return
		}
		role, _ := roleVal.(string)

		for _, allowed := range roles {
			if role == allowed {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Access denied. Insufficient permissions."})
	}
}
