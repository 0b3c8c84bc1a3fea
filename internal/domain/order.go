package domain

import (
	"database/sql/driver" // Valuer interface for JSON columns
	"encoding/json"       // JSON encoding/decoding
	"errors"              // Error construction
	"time"                // Timestamps

	"github.com/google/uuid" // UUID generation
	"gorm.io/gorm"           // GORM ORM library
)

// Order statuses
const (
	OrderPending   = "pending"   // Placed, awaiting vendor decision
	OrderConfirmed = "confirmed" // Accepted by the vendor
	OrderCompleted = "completed" // Fulfilled
	OrderCancelled = "cancelled" // Rejected or cancelled
)

// ValidOrderTransition reports whether an order may move from one status to another.
// Pending orders can be confirmed or cancelled; confirmed orders can be
// completed or cancelled. Completed and cancelled are terminal.
func ValidOrderTransition(from, to string) bool {
	switch from {
	case OrderPending:
		return to == OrderConfirmed || to == OrderCancelled
	case OrderConfirmed:
		return to == OrderCompleted || to == OrderCancelled
	}
	return false
}

// OrderItem is one priced line of an order
type OrderItem struct {
	ProductID string  `json:"product_id"` // Ordered product ID
	Name      string  `json:"name"`       // Product name at order time
	Price     float64 `json:"price"`      // Unit price at order time
	Quantity  int     `json:"quantity"`   // Ordered quantity
}

// OrderItems is the order's line items stored as a JSON column
type OrderItems []OrderItem

// Value serializes the line items to JSON for storage
func (items OrderItems) Value() (driver.Value, error) {
	if items == nil {
		items = OrderItems{} // Store empty array, not null
	}
	return json.Marshal(items)
}

// Scan deserializes a JSON column back into the line items
func (items *OrderItems) Scan(value any) error {
	if value == nil {
		*items = OrderItems{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, items)
	case string:
		return json.Unmarshal([]byte(v), items)
	}
	return errors.New("unsupported column type for OrderItems")
}

// Order Model
type Order struct {
	ID              string     `gorm:"size:36;primaryKey" json:"id"`                    // Primary key (UUID)
	VendorID        string     `gorm:"size:36;index;not null" json:"vendor_id"`         // Foreign key to Vendor
	CustomerID      string     `gorm:"size:36;index;not null" json:"customer_id"`       // Foreign key to customer User
	Status          string     `gorm:"size:20;not null;default:pending" json:"status"`  // pending, confirmed, completed, cancelled
	TotalAmount     float64    `gorm:"not null" json:"total_amount"`                    // Order total, priced server-side
	Items           OrderItems `gorm:"type:json" json:"items"`                          // Line items
	DeliveryAddress string     `gorm:"size:255" json:"delivery_address,omitempty"`      // Delivery address
	DeliveryLat     *float64   `json:"delivery_lat,omitempty"`                          // Optional delivery latitude
	DeliveryLng     *float64   `json:"delivery_lng,omitempty"`                          // Optional delivery longitude
	Notes           string     `gorm:"size:500" json:"notes,omitempty"`                 // Customer notes
	CreatedAt       time.Time  `json:"created_at"`                                      // Timestamp of creation
	UpdatedAt       time.Time  `json:"updated_at"`                                      // Timestamp of last update
	Vendor          *Vendor    `gorm:"foreignKey:VendorID" json:"vendor,omitempty"`     // Vendor record, preloaded for customer views
	Customer        *User      `gorm:"foreignKey:CustomerID" json:"customer,omitempty"` // Customer record, preloaded for vendor views
}

// BeforeCreate assigns a UUID primary key when none was set
func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.NewString() // Generate new UUID
	}
	return nil
}
