package middleware

import (
	"net/http" // HTTP status codes

	"github.com/gin-gonic/gin" // Gin web framework

	"localmart/internal/auth" // Session context
)

// RequireRole restricts a route group to the given roles. Must run after
// JWTAuthMiddleware, which fetches the user's current role from the store —
// the role claim inside the token is never trusted for authorization.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := auth.SessionFrom(c) // Get session from context
		if !ok {
			// No session means the JWT middleware did not run or failed
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		// Check the freshly fetched role against the allowed set
		for _, role := range roles {
			if sess.User.Role == role {
				c.Next() // Allowed, proceed to the next handler
				return
			}
		}
		// Role not allowed for this route
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Insufficient role"})
	}
}
