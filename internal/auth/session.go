package auth

import (
	"github.com/gin-gonic/gin" // Gin web framework

	"localmart/internal/domain" // Domain models
)

// sessionKey is the gin context key the JWT middleware stores the session under
const sessionKey = "authSession"

// Session is the authenticated state of one request: the fresh user record,
// the token claims it was restored from, and the raw token.
type Session struct {
	User   *domain.User // User record, re-fetched from the store
	Claims *Claims      // Decoded token claims
	Token  string       // Raw bearer token
}

// SetSession stores the session in the gin context for downstream handlers
func SetSession(c *gin.Context, sess *Session) {
	c.Set(sessionKey, sess)
}

// SessionFrom returns the session placed in the gin context by the JWT
// middleware, or false when the request is anonymous.
func SessionFrom(c *gin.Context) (*Session, bool) {
	v, ok := c.Get(sessionKey)
	if !ok {
		return nil, false
	}
	sess, ok := v.(*Session)
	return sess, ok && sess != nil && sess.User != nil
}
