package domain

import (
	"time" // Timestamps

	"github.com/google/uuid" // UUID generation
	"gorm.io/gorm"           // GORM ORM library
)

// User roles
const (
	RoleCustomer = "customer" // Regular buyer
	RoleVendor   = "vendor"   // Marketplace seller
	RoleAdmin    = "admin"    // Administrator
)

// ValidRole reports whether role is one of the known user roles
func ValidRole(role string) bool {
	return role == RoleCustomer || role == RoleVendor || role == RoleAdmin
}

// User Model
type User struct {
	ID                 string    `gorm:"size:36;primaryKey" json:"id"`                           // Primary key (UUID)
	Mobile             string    `gorm:"size:20;uniqueIndex;not null" json:"mobile"`             // Unique mobile number (sign-in key)
	PasswordHash       string    `gorm:"size:255;not null" json:"-"`                             // Hashed password, never serialized
	Name               string    `gorm:"size:100;not null" json:"name"`                          // Display name
	Role               string    `gorm:"size:20;not null;default:customer" json:"role"`          // Role: customer, vendor or admin
	Email              string    `gorm:"size:100" json:"email,omitempty"`                        // Optional email
	LocationLat        *float64  `json:"location_lat,omitempty"`                                 // Optional latitude
	LocationLng        *float64  `json:"location_lng,omitempty"`                                 // Optional longitude
	LocationAddress    string    `gorm:"size:255" json:"location_address,omitempty"`             // Optional free-text address
	LanguagePreference string    `gorm:"size:10;not null;default:en" json:"language_preference"` // Language preference
	IsActive           bool      `gorm:"not null;default:true" json:"is_active"`                 // Active flag
	CreatedAt          time.Time `json:"created_at"`                                             // Timestamp of creation
	UpdatedAt          time.Time `json:"updated_at"`                                             // Timestamp of last update
}

// BeforeCreate assigns a UUID primary key when none was set
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString() // Generate new UUID
	}
	return nil
}
