package domain

import (
	"time" // Timestamps

	"github.com/google/uuid" // UUID generation
	"gorm.io/gorm"           // GORM ORM library
)

// Product Model
type Product struct {
	ID          string    `gorm:"size:36;primaryKey" json:"id"`              // Primary key (UUID)
	VendorID    string    `gorm:"size:36;index;not null" json:"vendor_id"`   // Foreign key to Vendor
	Name        string    `gorm:"size:100;not null" json:"name"`             // Product name
	Description string    `gorm:"size:500" json:"description,omitempty"`     // Product description
	Price       float64   `gorm:"not null" json:"price"`                     // Unit price
	ImageURL    string    `gorm:"size:255" json:"image_url,omitempty"`       // Optional image URL
	IsAvailable bool      `gorm:"not null;default:true" json:"is_available"` // Currently orderable
	Category    string    `gorm:"size:50" json:"category,omitempty"`         // Product category
	CreatedAt   time.Time `json:"created_at"`                                // Timestamp of creation
}

// BeforeCreate assigns a UUID primary key when none was set
func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString() // Generate new UUID
	}
	return nil
}
