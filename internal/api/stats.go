package api

import (
	"net/http" // HTTP status codes
	"time"     // Cache TTLs

	"github.com/gin-gonic/gin" // Gin web framework
	"gorm.io/gorm"             // GORM ORM library

	"localmart/internal/domain" // Domain models
	"localmart/internal/utils"  // Cache helpers
)

// statsCacheKey caches the community stats counts
const statsCacheKey = "stats:community"

// CommunityStats are the marketplace-wide counters shown on the landing page
type CommunityStats struct {
	Vendors   int64 `json:"vendors"`   // Registered vendors
	Customers int64 `json:"customers"` // Registered customers
	Orders    int64 `json:"orders"`    // Completed orders
	Chats     int64 `json:"chats"`     // Messages exchanged
}

// CommunityStatsHandler returns the marketplace-wide counters, cached briefly
func CommunityStatsHandler(db *gorm.DB, cache *utils.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		var stats CommunityStats
		// Try the cached counters first
		found, err := cache.Get(ctx, statsCacheKey, &stats)
		if err == nil && found {
			c.JSON(http.StatusOK, gin.H{"stats": stats, "cached": true})
			return
		}
		// Count vendors
		if err := db.WithContext(ctx).Model(&domain.Vendor{}).Count(&stats.Vendors).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch stats"})
			return
		}
		// Count customers
		if err := db.WithContext(ctx).Model(&domain.User{}).Where("role = ?", domain.RoleCustomer).Count(&stats.Customers).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch stats"})
			return
		}
		// Count completed orders
		if err := db.WithContext(ctx).Model(&domain.Order{}).Where("status = ?", domain.OrderCompleted).Count(&stats.Orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch stats"})
			return
		}
		// Count chat messages
		if err := db.WithContext(ctx).Model(&domain.Chat{}).Count(&stats.Chats).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch stats"})
			return
		}
		// Cache the counters for future requests
		_ = cache.Set(ctx, statsCacheKey, stats, 60*time.Second)
		c.JSON(http.StatusOK, gin.H{"stats": stats, "cached": false})
	}
}
