package auth

import (
	"context" // Context for store operations
	"regexp"  // Mobile number validation
	"strings" // String manipulation
	"time"    // Token lifetime

	"localmart/internal/domain" // Domain models
)

// mobilePattern matches the digits-only mobile numbers accepted at sign-up
var mobilePattern = regexp.MustCompile(`^[0-9]{10,15}$`)

// isValidMobile checks if the mobile number is 10-15 digits
func isValidMobile(mobile string) bool {
	return mobilePattern.MatchString(mobile)
}

// isValidPassword checks if the password length is between 8 and 72 characters
func isValidPassword(password string) bool {
	return len(password) >= 8 && len(password) <= 72
}

// RegisterInput is the sign-up payload. ShopName and Category are required
// only when Role is vendor.
type RegisterInput struct {
	Mobile          string   // Mobile number, the sign-in key
	Password        string   // Plaintext password
	Name            string   // Display name
	Role            string   // customer, vendor or admin
	Email           string   // Optional email
	LocationLat     *float64 // Optional latitude
	LocationLng     *float64 // Optional longitude
	LocationAddress string   // Optional free-text address
	ShopName        string   // Vendor only: shop name
	Category        string   // Vendor only: shop category
	Description     string   // Vendor only: shop description
}

// validate checks the role-conditional field requirements
func (in *RegisterInput) validate() error {
	if !isValidMobile(in.Mobile) {
		return &ValidationError{Field: "mobile", Reason: "must be 10-15 digits"}
	}
	if !isValidPassword(in.Password) {
		return &ValidationError{Field: "password", Reason: "must be 8-72 characters"}
	}
	if strings.TrimSpace(in.Name) == "" {
		return &ValidationError{Field: "name", Reason: "required"}
	}
	if !domain.ValidRole(in.Role) {
		return &ValidationError{Field: "role", Reason: "must be customer, vendor or admin"}
	}
	if in.Role == domain.RoleVendor {
		if strings.TrimSpace(in.ShopName) == "" {
			return &ValidationError{Field: "shop_name", Reason: "required for vendors"}
		}
		if strings.TrimSpace(in.Category) == "" {
			return &ValidationError{Field: "category", Reason: "required for vendors"}
		}
	}
	return nil
}

// Service is the session manager: it orchestrates sign-up, sign-in and
// session restore over a credential store.
type Service struct {
	store      Store         // Credential store
	jwtSecret  string        // Token signing secret
	tokenTTL   time.Duration // Session token lifetime
	bcryptCost int           // Password hashing cost
}

// NewService creates a session manager over the given credential store
func NewService(store Store, jwtSecret string, tokenTTL time.Duration, bcryptCost int) *Service {
	if tokenTTL <= 0 {
		tokenTTL = TokenTTL // Default to 7 days
	}
	return &Service{
		store:      store,
		jwtSecret:  jwtSecret,
		tokenTTL:   tokenTTL,
		bcryptCost: bcryptCost,
	}
}

// SignUp registers a user. Vendor registrations additionally create the vendor
// profile, atomically with the user row.
func (s *Service) SignUp(ctx context.Context, in RegisterInput) (*domain.User, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	hash, err := HashPassword(in.Password, s.bcryptCost)
	if err != nil {
		return nil, err
	}
	user := &domain.User{
		Mobile:             in.Mobile,
		PasswordHash:       hash,
		Name:               strings.TrimSpace(in.Name),
		Role:               in.Role,
		Email:              in.Email,
		LocationLat:        in.LocationLat,
		LocationLng:        in.LocationLng,
		LocationAddress:    in.LocationAddress,
		LanguagePreference: "en",
		IsActive:           true,
	}
	if in.Role == domain.RoleVendor {
		// New vendors start online with an empty track record
		vendor := &domain.Vendor{
			ShopName:    strings.TrimSpace(in.ShopName),
			Category:    strings.TrimSpace(in.Category),
			Description: in.Description,
			IsOnline:    true,
			Rating:      0,
			TotalOrders: 0,
			Offers:      domain.StringList{},
		}
		if err := s.store.InsertVendorAccount(ctx, user, vendor); err != nil {
			return nil, storeErr("insert vendor account", err)
		}
		return user, nil
	}
	if err := s.store.InsertUser(ctx, user); err != nil {
		return nil, storeErr("insert user", err)
	}
	return user, nil
}

// SignIn verifies credentials and mints a session token. Unknown mobile and
// wrong password surface identically as ErrInvalidCredentials.
func (s *Service) SignIn(ctx context.Context, mobile, password string) (*domain.User, string, error) {
	user, err := s.store.FindUserByMobile(ctx, mobile)
	if err != nil {
		return nil, "", storeErr("find user by mobile", err)
	}
	if user == nil || !user.IsActive {
		return nil, "", ErrInvalidCredentials
	}
	if !CheckPassword(password, user.PasswordHash) {
		return nil, "", ErrInvalidCredentials
	}
	token, err := MintToken(user, s.jwtSecret, s.tokenTTL)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Restore validates a stored session token and re-fetches the user record.
// Only the user id claim is trusted; mobile and role are read fresh from the
// store. Expired or tampered tokens, unknown users and deactivated users all
// come back as ErrInvalidToken.
func (s *Service) Restore(ctx context.Context, token string) (*Session, error) {
	claims, err := ParseToken(token, s.jwtSecret)
	if err != nil {
		return nil, err
	}
	user, err := s.store.FindUserByID(ctx, claims.UserID)
	if err != nil {
		return nil, storeErr("find user by id", err)
	}
	if user == nil || !user.IsActive {
		return nil, ErrInvalidToken
	}
	return &Session{User: user, Claims: claims, Token: token}, nil
}
