package api

import (
	"errors"   // Error kind checks
	"net/http" // HTTP status codes

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library

	"localmart/internal/auth"   // Session manager
	"localmart/internal/domain" // Domain models
)

// SignUpRequest represents a registration request. ShopName and Category are
// required only for vendor registrations; the service enforces that.
type SignUpRequest struct {
	Mobile          string   `json:"mobile" binding:"required"`   // Mobile number, the sign-in key
	Password        string   `json:"password" binding:"required"` // Plaintext password
	Name            string   `json:"name" binding:"required"`     // Display name
	Role            string   `json:"role" binding:"required"`     // customer, vendor or admin
	Email           string   `json:"email"`                       // Optional email
	LocationLat     *float64 `json:"location_lat"`                // Optional latitude
	LocationLng     *float64 `json:"location_lng"`                // Optional longitude
	LocationAddress string   `json:"location_address"`            // Optional free-text address
	ShopName        string   `json:"shop_name"`                   // Vendor only: shop name
	Category        string   `json:"category"`                    // Vendor only: shop category
	Description     string   `json:"description"`                 // Vendor only: shop description
}

// SignInRequest represents a sign-in request
type SignInRequest struct {
	Mobile   string `json:"mobile" binding:"required"`   // Mobile number
	Password string `json:"password" binding:"required"` // Plaintext password
}

// AuthResponse carries the user and a freshly minted session token
type AuthResponse struct {
	User  *domain.User `json:"user"`  // User record
	Token string       `json:"token"` // Signed session token
}

// SignUpHandler registers a user and signs them in
func SignUpHandler(svc *auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SignUpRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		// Register the user through the session manager
		user, err := svc.SignUp(c.Request.Context(), auth.RegisterInput{
			Mobile:          req.Mobile,          // Mobile number
			Password:        req.Password,        // Plaintext password
			Name:            req.Name,            // Display name
			Role:            req.Role,            // Requested role
			Email:           req.Email,           // Optional email
			LocationLat:     req.LocationLat,     // Optional latitude
			LocationLng:     req.LocationLng,     // Optional longitude
			LocationAddress: req.LocationAddress, // Optional address
			ShopName:        req.ShopName,        // Vendor shop name
			Category:        req.Category,        // Vendor category
			Description:     req.Description,     // Vendor description
		})
		if err != nil {
			var verr *auth.ValidationError
			switch {
			case errors.As(err, &verr):
				// Missing or malformed field: surface for form-level display
				c.JSON(http.StatusBadRequest, gin.H{"error": verr.Error()})
			case errors.Is(err, auth.ErrDuplicateMobile):
				// Duplicate mobile must not be reported as a generic failure
				c.JSON(http.StatusConflict, gin.H{"error": "Mobile number already registered"})
			default:
				// Underlying store failure
				logrus.WithFields(logrus.Fields{
					"mobile": req.Mobile,  // Attempted mobile
					"role":   req.Role,    // Requested role
					"error":  err.Error(), // Error message
				}).Error("Sign-up failed") // Log sign-up failure
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Registration failed"})
			}
			return
		}
		// Sign the new user in so the client starts with a session token
		_, token, err := svc.SignIn(c.Request.Context(), req.Mobile, req.Password)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
			return
		}
		// Log successful registration
		logrus.WithFields(logrus.Fields{
			"user_id": user.ID,   // New user ID
			"role":    user.Role, // Registered role
		}).Info("User registered") // Log registration
		c.JSON(http.StatusCreated, AuthResponse{User: user, Token: token})
	}
}

// SignInHandler authenticates a user and returns a session token. Unknown
// mobile and wrong password produce the same response.
func SignInHandler(svc *auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SignInRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		user, token, err := svc.SignIn(c.Request.Context(), req.Mobile, req.Password)
		if err != nil {
			if errors.Is(err, auth.ErrInvalidCredentials) {
				// One message for both unknown mobile and wrong password
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
				return
			}
			logrus.WithFields(logrus.Fields{
				"mobile": req.Mobile,  // Attempted mobile
				"error":  err.Error(), // Error message
			}).Error("Sign-in failed") // Log store failure
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Sign-in failed"})
			return
		}
		c.JSON(http.StatusOK, AuthResponse{User: user, Token: token})
	}
}

// SessionHandler returns the user behind the presented token. The JWT
// middleware has already re-fetched the record; a 401 from that middleware
// tells the client to clear its stored token.
func SessionHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := auth.SessionFrom(c) // Get session from context
		if !ok {
			// No session means the JWT middleware did not run or failed
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"user": sess.User})
	}
}
