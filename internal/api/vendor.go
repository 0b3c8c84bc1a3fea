package api

import (
	"net/http" // HTTP status codes
	"strings"  // Search term matching
	"time"     // Cache TTLs

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
	"gorm.io/gorm"               // GORM ORM library

	"localmart/internal/auth"   // Session context
	"localmart/internal/domain" // Domain models
	"localmart/internal/utils"  // Cache helpers
)

// vendorListCacheKey caches the full online vendor list; search and category
// filters are applied in memory on top of it
const vendorListCacheKey = "vendors:online"

// ListVendorsHandler returns online vendors with their user records, optionally
// filtered by category and a search term over shop name and description
func ListVendorsHandler(db *gorm.DB, cache *utils.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		var vendors []domain.Vendor
		// Try the cached online vendor list first
		found, err := cache.Get(ctx, vendorListCacheKey, &vendors)
		if err != nil || !found {
			// Fetch online vendors with their user rows
			if err := db.WithContext(ctx).Preload("User").Where("is_online = ?", true).Find(&vendors).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch vendors"})
				return
			}
			// Cache the unfiltered list; filters below are cheap
			_ = cache.Set(ctx, vendorListCacheKey, vendors, 30*time.Second)
		}
		// Apply category and search filters in memory
		category := c.Query("category")
		search := strings.ToLower(c.Query("search"))
		filtered := make([]domain.Vendor, 0, len(vendors))
		for _, v := range vendors {
			if category != "" && category != "all" && v.Category != category {
				continue // Category mismatch
			}
			if search != "" &&
				!strings.Contains(strings.ToLower(v.ShopName), search) &&
				!strings.Contains(strings.ToLower(v.Description), search) {
				continue // Search term mismatch
			}
			filtered = append(filtered, v)
		}
		c.JSON(http.StatusOK, gin.H{"vendors": filtered})
	}
}

// ListVendorProductsHandler returns the available products of one vendor
func ListVendorProductsHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		vendorID := c.Param("id") // Vendor ID from path
		var products []domain.Product
		// Fetch available products only
		err := db.WithContext(c.Request.Context()).
			Where("vendor_id = ? AND is_available = ?", vendorID, true).
			Order("created_at desc").
			Find(&products).Error
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"products": products})
	}
}

// VendorProfileHandler returns the calling vendor's own profile
func VendorProfileHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, _ := auth.SessionFrom(c) // Vendor session, guaranteed by middleware
		var vendor domain.Vendor
		// The vendor row shares the user's primary key
		if err := db.WithContext(c.Request.Context()).First(&vendor, "id = ?", sess.User.ID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Vendor profile not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"vendor": vendor})
	}
}

// UpdateStatusRequest toggles the vendor's online flag
type UpdateStatusRequest struct {
	IsOnline *bool `json:"is_online" binding:"required"` // Desired online state
}

// UpdateVendorStatusHandler toggles whether the vendor appears in the
// customer-facing listing
func UpdateVendorStatusHandler(db *gorm.DB, cache *utils.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, _ := auth.SessionFrom(c) // Vendor session, guaranteed by middleware
		var req UpdateStatusRequest    // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		// Update the online flag
		res := db.WithContext(c.Request.Context()).
			Model(&domain.Vendor{}).
			Where("id = ?", sess.User.ID).
			Update("is_online", *req.IsOnline)
		if res.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update status"})
			return
		}
		if res.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Vendor profile not found"})
			return
		}
		// Log the status change
		logrus.WithFields(logrus.Fields{
			"vendor_id": sess.User.ID,  // Vendor ID
			"is_online": *req.IsOnline, // New online state
		}).Info("Vendor status updated") // Log status change
		// Invalidate the cached online vendor list
		_ = cache.Delete(c.Request.Context(), vendorListCacheKey)
		c.JSON(http.StatusOK, gin.H{"is_online": *req.IsOnline})
	}
}

// UpdateProfileRequest carries the editable vendor profile fields
type UpdateProfileRequest struct {
	Description  *string   `json:"description"`   // Shop description
	Offers       *[]string `json:"offers"`        // Current offer strings
	ProfileImage *string   `json:"profile_image"` // Profile image URL
}

// UpdateVendorProfileHandler patches the vendor's profile fields; only fields
// present in the request are touched
func UpdateVendorProfileHandler(db *gorm.DB, cache *utils.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, _ := auth.SessionFrom(c) // Vendor session, guaranteed by middleware
		var req UpdateProfileRequest   // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		// Build the partial update from the provided fields
		updates := map[string]any{}
		if req.Description != nil {
			updates["description"] = *req.Description
		}
		if req.Offers != nil {
			updates["offers"] = domain.StringList(*req.Offers)
		}
		if req.ProfileImage != nil {
			updates["profile_image"] = *req.ProfileImage
		}
		if len(updates) == 0 {
			// Nothing to update
			c.JSON(http.StatusBadRequest, gin.H{"error": "No fields to update"})
			return
		}
		res := db.WithContext(c.Request.Context()).
			Model(&domain.Vendor{}).
			Where("id = ?", sess.User.ID).
			Updates(updates)
		if res.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
			return
		}
		if res.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Vendor profile not found"})
			return
		}
		// Invalidate the cached online vendor list
		_ = cache.Delete(c.Request.Context(), vendorListCacheKey)
		c.JSON(http.StatusOK, gin.H{"message": "Profile updated"})
	}
}
