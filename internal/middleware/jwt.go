package middleware

import (
	"net/http" // HTTP status codes
	"strings"  // String manipulation

	"github.com/gin-gonic/gin" // Gin web framework

	"localmart/internal/auth" // Session manager and session context
)

// JWTAuthMiddleware validates bearer tokens and attaches the restored session
// to the request context. The user record is re-fetched on every request; only
// the id claim inside the token is trusted.
func JWTAuthMiddleware(svc *auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization") // Get Authorization header
		// Check if the Authorization header is present and properly formatted
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			// If not, abort with unauthorized status
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		tokenStr := strings.TrimPrefix(authHeader, "Bearer ") // Extract the token string
		sess, err := svc.Restore(c.Request.Context(), tokenStr)
		if err != nil {
			// Expired, tampered or orphaned token: the client should clear it
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}
		auth.SetSession(c, sess) // Store session in context
		c.Next()                 // Proceed to the next handler
	}
}
