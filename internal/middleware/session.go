package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/learnova/gateway/internal/session"
	"github.com/learnova/gateway/pkg/response"
)

// ContextSession is the gin context key for the hydrated session.
const ContextSession = "session"

// Session returns a middleware that hydrates the viewer's session from the
// Authorization header. Anonymous requests pass through with an anonymous
// session attached; nothing is rejected here.
func Session(store *session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		bearer := ""
		if header := c.GetHeader("Authorization"); header != "" {
			parts := strings.SplitN(header, " ", 2)
			if len(parts) == 2 && parts[0] == "Bearer" {
				bearer = parts[1]
			}
		}
		c.Set(ContextSession, store.Hydrate(c.Request.Context(), bearer))
		c.Next()
	}
}

// RequireAuth aborts with 401 unless the attached session is authenticated.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !CurrentSession(c).IsAuthenticated() {
			response.Unauthorized(c, "authentication required")
			c.Abort()
			return
		}
		c.Next()
	}
}

// CurrentSession returns the session attached by Session, or an anonymous
// session when the middleware did not run.
func CurrentSession(c *gin.Context) session.Session {
	if v, ok := c.Get(ContextSession); ok {
		if sess, ok := v.(session.Session); ok {
			return sess
		}
	}
	return session.Anonymous()
}
