package handlers

import (
	"net/http"
	"time"

	"github.com/SAP-F-2025/learning-assistant/internal/client"
	"github.com/SAP-F-2025/learning-assistant/internal/services"
	"github.com/gin-gonic/gin"
)

const (
	SessionCookieName = "learnassist_session"

	sessionContextKey = "session"
	sessionCreatedKey = "session_created"
)

// SessionMiddleware resolves the caller's Session from its cookie, issuing a
// new one when the cookie is missing or stale. The browser's Cookie header is
// forwarded to the backend through the request context.
func SessionMiddleware(registry *services.SessionRegistry, ttl time.Duration, secure bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, _ := c.Cookie(SessionCookieName)
		session, created := registry.GetOrCreate(id)

		if created || id != session.ID() {
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(SessionCookieName, session.ID(), int(ttl.Seconds()), "/", "", secure, true)
		}

		c.Set(sessionContextKey, session)
		c.Set(sessionCreatedKey, created)
		c.Request = c.Request.WithContext(client.WithCookie(c.Request.Context(), c.GetHeader("Cookie")))

		c.Next()
	}
}

func sessionFrom(c *gin.Context) (*services.Session, bool) {
	value, exists := c.Get(sessionContextKey)
	if !exists {
		return nil, false
	}
	session, ok := value.(*services.Session)
	return session, ok
}

// mustSession is only used behind SessionMiddleware.
func mustSession(c *gin.Context) *services.Session {
	session, ok := sessionFrom(c)
	if !ok {
		panic("handlers: session middleware not installed")
	}
	return session
}
