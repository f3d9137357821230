package middleware

import (
	"net/http"
	"strings"

	"github.com/dskendzo/eventplanner/internal/entity"
	"github.com/dskendzo/eventplanner/pkg/auth"

	"github.com/gin-gonic/gin"
)

const (
	ContextUserID = "userID"
	ContextRole   = "role"
)

// Protect verifies the Bearer token and stores the caller's identity in the
// request context. Everything behind it can assume an authenticated user.
func Protect(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "error": "missing bearer token"})
			return
		}

		claims, err := auth.ParseToken(jwtSecret, strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "error": "invalid token"})
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextRole, entity.UserRole(claims.Role))
		c.Next()
	}
}

// Authorize gates a route to the given roles. Must run after Protect.
func Authorize(roles ...entity.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, _ := c.Get(ContextRole)
		for _, allowed := range roles {
			if role == allowed {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"success": false, "error": "insufficient role"})
	}
}

// UserID returns the authenticated user's id set by Protect.
func UserID(c *gin.Context) int64 {
	id, _ := c.Get(ContextUserID)
	userID, _ := id.(int64)
	return userID
}

// Role returns the authenticated user's role set by Protect.
func Role(c *gin.Context) entity.UserRole {
	r, _ := c.Get(ContextRole)
	role, _ := r.(entity.UserRole)
	return role
}
