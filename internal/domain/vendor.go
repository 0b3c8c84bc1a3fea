package domain

import (
	"database/sql/driver" // Valuer interface for JSON columns
	"encoding/json"       // JSON encoding/decoding
	"errors"              // Error construction
)

// StringList is a list of strings stored as a JSON column
type StringList []string

// Value serializes the list to JSON for storage
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		l = StringList{} // Store empty array, not null
	}
	return json.Marshal(l)
}

// Scan deserializes a JSON column back into the list
func (l *StringList) Scan(value any) error {
	if value == nil {
		*l = StringList{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	}
	return errors.New("unsupported column type for StringList")
}

// Vendor Model. The primary key is shared with the owning User record.
type Vendor struct {
	ID           string     `gorm:"size:36;primaryKey" json:"id"`                      // Shared primary key with User
	ShopName     string     `gorm:"size:100;not null" json:"shop_name"`                // Shop name
	Category     string     `gorm:"size:50;not null" json:"category"`                  // Shop category
	Description  string     `gorm:"size:500" json:"description"`                       // Shop description
	IsOnline     bool       `gorm:"not null;default:true" json:"is_online"`            // Accepting orders right now
	Rating       float64    `gorm:"not null;default:0" json:"rating"`                  // Average rating, starts at 0
	TotalOrders  int        `gorm:"not null;default:0" json:"total_orders"`            // Completed order count
	Offers       StringList `gorm:"type:json" json:"offers"`                           // Current offer strings
	ProfileImage string     `gorm:"size:255" json:"profile_image,omitempty"`           // Optional profile image URL
	User         *User      `gorm:"foreignKey:ID;references:ID" json:"user,omitempty"` // Owning user record
}
