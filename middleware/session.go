package middleware

import (
	"github.com/Govind-619/storefront/utils"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	SessionIDKey  = "session_id"
	sessionCookie = "sid"
)

// SessionID gives every browser a stable id stored in the signed session
// cookie. The id keys the shopper's cart and favorites.
func SessionID() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		id, _ := session.Get(sessionCookie).(string)
		if id == "" {
			id = uuid.New().String()
			session.Set(sessionCookie, id)
			if err := session.Save(); err != nil {
				utils.LogError("Failed to save session: %v", err)
			}
		}
		c.Set(SessionIDKey, id)
		c.Next()
	}
}
