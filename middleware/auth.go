package middleware

import (
	"net/http"
	"strings"

	"croppulse/models"
	"croppulse/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// Context keys set by JWTAuthMiddleware.
const (
	ContextAccountID = "accountID"
	ContextRole      = "accountRole"
)

// JWTAuthMiddleware validates the Bearer access token and rejects revoked
// sessions. On success the account ID and role are placed in the context.
func JWTAuthMiddleware(authCache *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Insufficient authorization",
			})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Insufficient authorization",
			})
			return
		}

		claims, err := utils.ExtractClaims(tokenString, "access")
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid or expired token",
			})
			return
		}

		if authCache != nil {
			n, err := authCache.Exists(c.Request.Context(), "revoked:"+utils.HashToken(tokenString)).Result()
			if err != nil {
				// Fail closed: without the revocation list we cannot tell a
				// live session from a revoked one.
				utils.GetLogger().Error("revocation lookup failed", zap.Error(err))
				c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{
					"error": "Authorization service unavailable",
				})
				return
			}
			if n > 0 {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
					"error": "Session has been revoked",
				})
				return
			}
		}

		c.Set(ContextAccountID, claims.AccountID)
		c.Set(ContextRole, models.Role(claims.Role))
		c.Next()
	}
}

// AccountID returns the authenticated account ID from the context.
func AccountID(c *gin.Context) string {
	id, _ := c.Get(ContextAccountID)
	s, _ := id.(string)
	return s
}

// AccountRole returns the authenticated account role from the context.
func AccountRole(c *gin.Context) models.Role {
	v, _ := c.Get(ContextRole)
	r, _ := v.(models.Role)
	return r
}
