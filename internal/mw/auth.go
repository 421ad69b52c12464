package mw

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"phone-inspection-backend/internal/session"
)

// sessionKey is the gin context key holding the resolved session.
const sessionKey = "mw.session"

// RequireAuth resolves the session cookie and rejects unauthenticated
// requests with 401. The session is stored on the context for handlers.
func RequireAuth(sessions session.Manager, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(cookieName)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
			return
		}
		sess, ok := sessions.Get(token)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
			return
		}
		c.Set(sessionKey, sess)
		c.Next()
	}
}

// SessionFrom returns the session attached by RequireAuth.
func SessionFrom(c *gin.Context) (session.Session, bool) {
	v, exists := c.Get(sessionKey)
	if !exists {
		return session.Session{}, false
	}
	sess, ok := v.(session.Session)
	return sess, ok
}
