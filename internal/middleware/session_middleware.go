package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SessionKey is the gin context key holding the session id.
const SessionKey = "session_id"

// SessionCookie is the cookie carrying the session id across requests.
const SessionCookie = "storefront_session"

// Session lifetime in seconds, aligned with the durable store TTL.
const sessionCookieMaxAge = 30 * 24 * 3600

// SessionMiddleware assigns a session id to every request: the cookie value
// when present, a fresh uuid otherwise. The id keys the per-client cart and
// view state.
func SessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		sid, err := c.Cookie(SessionCookie)
		if err != nil || sid == "" {
			sid = uuid.NewString()
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(SessionCookie, sid, sessionCookieMaxAge, "/", "", false, true)
		}
		c.Set(SessionKey, sid)
		c.Next()
	}
}
