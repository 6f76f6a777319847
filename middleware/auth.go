package middleware

import (
	"strings"

	"github.com/Govind-619/storefront/utils"
	"github.com/gin-gonic/gin"
)

const (
	UserIDKey = "user_id"
	RoleKey   = "role"
)

func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
}

// OptionalAuth marks the request as logged in when a valid bearer token is
// present. Missing or invalid tokens continue as a guest.
func OptionalAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c)
		if tokenString == "" {
			c.Next()
			return
		}
		claims, err := utils.ValidateToken(secret, tokenString)
		if err != nil {
			utils.LogDebug("Ignoring invalid token, continuing as guest: %v", err)
			c.Next()
			return
		}
		c.Set(UserIDKey, claims.UserID)
		c.Set(RoleKey, claims.Role)
		c.Next()
	}
}

// AdminOnly requires a valid token carrying the admin role.
func AdminOnly(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c)
		if tokenString == "" {
			utils.LogError("Missing Authorization header")
			utils.Unauthorized(c, "Please login for access")
			c.Abort()
			return
		}
		claims, err := utils.ValidateToken(secret, tokenString)
		if err != nil {
			utils.LogError("Invalid token: %v", err)
			utils.Unauthorized(c, utils.ErrInvalidToken)
			c.Abort()
			return
		}
		if claims.Role != utils.RoleAdmin {
			utils.LogError("Non-admin %s attempted admin access", claims.UserID)
			utils.Forbidden(c, utils.ErrForbidden)
			c.Abort()
			return
		}
		c.Set(UserIDKey, claims.UserID)
		c.Set(RoleKey, claims.Role)
		c.Next()
	}
}
