package api

import (
	"net/http" // HTTP status codes
	"strings"  // Message trimming

	"github.com/gin-gonic/gin" // Gin web framework
	"gorm.io/gorm"             // GORM ORM library

	"localmart/internal/auth"   // Session context
	"localmart/internal/domain" // Domain models
)

// ListConversationHandler returns the full conversation between the caller and
// a peer, oldest first, and marks the caller's unread messages from that peer
// as read. Clients poll this endpoint; delivery is last-write-wins with no
// guarantees beyond store ordering.
func ListConversationHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, _ := auth.SessionFrom(c) // Session, guaranteed by middleware
		peerID := c.Param("peer")      // Conversation partner from path
		ctx := c.Request.Context()
		var messages []domain.Chat
		// Both directions of the conversation, ordered by creation time
		err := db.WithContext(ctx).
			Preload("Sender").
			Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
				sess.User.ID, peerID, peerID, sess.User.ID).
			Order("created_at asc").
			Find(&messages).Error
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch messages"})
			return
		}
		// Mark messages the caller just received as read
		err = db.WithContext(ctx).
			Model(&domain.Chat{}).
			Where("receiver_id = ? AND sender_id = ? AND is_read = ?", sess.User.ID, peerID, false).
			Update("is_read", true).Error
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update messages"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"messages": messages})
	}
}

// SendChatRequest represents an outgoing message
type SendChatRequest struct {
	ReceiverID string `json:"receiver_id" binding:"required"` // Recipient user ID
	Message    string `json:"message" binding:"required"`     // Message body
}

// SendChatHandler stores one message from the caller to a recipient
func SendChatHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, _ := auth.SessionFrom(c) // Session, guaranteed by middleware
		var req SendChatRequest        // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		body := strings.TrimSpace(req.Message) // Trim surrounding whitespace
		if body == "" {
			// Empty messages are rejected
			c.JSON(http.StatusBadRequest, gin.H{"error": "Message cannot be empty"})
			return
		}
		if req.ReceiverID == sess.User.ID {
			// No conversations with oneself
			c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot message yourself"})
			return
		}
		message := domain.Chat{
			SenderID:   sess.User.ID,   // Calling user
			ReceiverID: req.ReceiverID, // Recipient
			Message:    body,           // Message body
			IsRead:     false,          // Unread until the recipient loads it
		}
		if err := db.WithContext(c.Request.Context()).Create(&message).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send message"})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"chat": message})
	}
}
