package middleware

import (
	"net/http"

	"croppulse/models"

	"github.com/gin-gonic/gin"
)

// RequireCapability rejects requests from roles that lack the capability.
// Must run after JWTAuthMiddleware.
func RequireCapability(capability models.Capability) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := AccountRole(c)
		if !role.Can(capability) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": "Your role does not permit this action",
			})
			return
		}
		c.Next()
	}
}

// RequireRole rejects requests from any role other than those listed.
// Must run after JWTAuthMiddleware.
func RequireRole(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := AccountRole(c)
		for _, allowed := range roles {
			if role == allowed {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"error": "Your role does not permit this action",
		})
	}
}
