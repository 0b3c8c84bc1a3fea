package domain

import (
	"time" // Timestamps

	"github.com/google/uuid" // UUID generation
	"gorm.io/gorm"           // GORM ORM library
)

// Chat Model. One message between two users; ordering is by creation time.
type Chat struct {
	ID         string    `gorm:"size:36;primaryKey" json:"id"`                // Primary key (UUID)
	SenderID   string    `gorm:"size:36;index;not null" json:"sender_id"`     // Foreign key to sending User
	ReceiverID string    `gorm:"size:36;index;not null" json:"receiver_id"`   // Foreign key to receiving User
	Message    string    `gorm:"size:1000;not null" json:"message"`           // Message body
	IsRead     bool      `gorm:"not null;default:false" json:"is_read"`       // Read flag, set when the receiver loads the conversation
	CreatedAt  time.Time `json:"created_at"`                                  // Timestamp of creation
	Sender     *User     `gorm:"foreignKey:SenderID" json:"sender,omitempty"` // Sender record, preloaded for display names
}

// BeforeCreate assigns a UUID primary key when none was set
func (m *Chat) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString() // Generate new UUID
	}
	return nil
}
