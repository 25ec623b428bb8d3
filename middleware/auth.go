// Package middleware carries the request-scoped auth checks: bearer token
// parsing plus role gating per route group.
package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"trendline/models"
	"trendline/utils"
)

// Context keys populated by AuthMiddleware
const (
	ContextUserID = "user_id"
	ContextRoles  = "roles"
)

// AuthMiddleware validates the bearer token and stores the caller's user id
// and role set in the request context
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			utils.LogDebug("AuthMiddleware: missing Authorization header path=%s", c.Request.URL.Path)
			utils.Unauthorized(c, "Authorization header required")
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(header, "Bearer ")
		if tokenString == header {
			utils.Unauthorized(c, "Authorization header must be a bearer token")
			c.Abort()
			return
		}

		userID, roles, err := utils.ParseToken(tokenString)
		if err != nil {
			utils.LogDebug("AuthMiddleware: token rejected: %v", err)
			utils.Unauthorized(c, "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set(ContextUserID, userID)
		c.Set(ContextRoles, roles)
		c.Next()
	}
}

// RequireRoles gates the route to callers holding at least one of the given
// roles. Must run after AuthMiddleware.
func RequireRoles(allowed ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		roles := RolesFromContext(c)
		for _, role := range roles {
			for _, a := range allowed {
				if role == a {
					c.Next()
					return
				}
			}
		}

		utils.LogDebug("RequireRoles: denied path=%s roles=%v", c.Request.URL.Path, roles)
		utils.Forbidden(c, "Insufficient permissions")
		c.Abort()
	}
}

// RolesFromContext returns the caller's role set, empty when unauthenticated
func RolesFromContext(c *gin.Context) []models.Role {
	value, ok := c.Get(ContextRoles)
	if !ok {
		return nil
	}
	roles, ok := value.([]models.Role)
	if !ok {
		return nil
	}
	return roles
}

// UserIDFromContext returns the caller's user id, zero when unauthenticated
func UserIDFromContext(c *gin.Context) uint {
	value, ok := c.Get(ContextUserID)
	if !ok {
		return 0
	}
	id, ok := value.(uint)
	if !ok {
		return 0
	}
	return id
}
