package auth

import (
	"time" // Time for token expiration

	"github.com/golang-jwt/jwt/v5" // JWT library

	"localmart/internal/domain" // Domain models
)

// TokenTTL is the default session token lifetime
const TokenTTL = 7 * 24 * time.Hour

// Claims carried by a session token
type Claims struct {
	UserID               string `json:"id"`     // User ID
	Mobile               string `json:"mobile"` // Mobile number at mint time
	Role                 string `json:"role"`   // Role at mint time
	jwt.RegisteredClaims        // Standard JWT claims (exp, iat)
}

// MintToken creates a signed session token for a user
func MintToken(user *domain.User, secret string, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		ttl = TokenTTL // Default to 7 days
	}
	now := time.Now()
	claims := Claims{
		UserID: user.ID,     // Custom claim for user ID
		Mobile: user.Mobile, // Custom claim for mobile
		Role:   user.Role,   // Custom claim for role
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)), // Absolute expiry instant
			IssuedAt:  jwt.NewNumericDate(now),          // Issued at current time
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims) // Create token with claims
	return token.SignedString([]byte(secret))                  // Sign the token with the secret
}

// ParseToken parses and validates a session token string. Malformed, tampered
// and expired tokens all come back as ErrInvalidToken.
func ParseToken(tokenStr, secret string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken // Reject unexpected signing methods
		}
		return []byte(secret), nil // Return the secret key for validation
	})
	if err != nil {
		return nil, ErrInvalidToken
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
