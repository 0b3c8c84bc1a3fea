package api

import (
	"net/http" // HTTP status codes
	"strconv"  // String conversion
	"time"     // Cache TTLs

	"github.com/gin-gonic/gin" // Gin web framework
	"gorm.io/gorm"             // GORM ORM library

	"localmart/internal/domain" // Domain models
	"localmart/internal/utils"  // Cache helpers
)

// adminUsersCachePrefix prefixes every cached page of the admin user listing
const adminUsersCachePrefix = "admin:users:"

// UserListResponse is one page of the admin user listing
type UserListResponse struct {
	Users      []domain.User `json:"users"`       // Page of users
	Page       int           `json:"page"`        // Current page
	PageSize   int           `json:"page_size"`   // Page size
	Total      int64         `json:"total"`       // Total number of users
	TotalPages int           `json:"total_pages"` // Total pages
}

// ListUsersHandler returns a paginated user listing for administrators,
// optionally filtered by role
func ListUsersHandler(db *gorm.DB, cache *utils.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		// Create a cache key based on the listing parameters
		cacheKey := adminUsersCachePrefix +
			"role=" + c.DefaultQuery("role", "") +
			":page=" + c.DefaultQuery("page", "1") +
			":size=" + c.DefaultQuery("page_size", "20")
		var cached UserListResponse // Try to get cached response
		found, err := cache.Get(ctx, cacheKey, &cached)
		if err == nil && found {
			c.JSON(http.StatusOK, gin.H{
				"users":       cached.Users,      // Page of users
				"page":        cached.Page,       // Current page
				"page_size":   cached.PageSize,   // Page size
				"total":       cached.Total,      // Total number of users
				"total_pages": cached.TotalPages, // Total pages
				"cached":      true,              // Indicate response is from cache
			})
			return
		}
		page := 1      // Default page number
		pageSize := 20 // Default page size
		if p := c.Query("page"); p != "" {
			if v, err := strconv.Atoi(p); err == nil && v > 0 {
				page = v // Set page if valid
			}
		}
		// Check and set page size within limits
		if ps := c.Query("page_size"); ps != "" {
			if v, err := strconv.Atoi(ps); err == nil && v > 0 && v <= 100 {
				pageSize = v // Set page size
			}
		}
		offset := (page - 1) * pageSize                    // Calculate offset for pagination
		query := db.WithContext(ctx).Model(&domain.User{}) // Start building the query
		if role := c.Query("role"); role != "" {
			query = query.Where("role = ?", role) // Filter by role
		}
		var total int64 // Total user count
		if err := query.Count(&total).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count users"})
			return
		}
		var users []domain.User // Page of users
		if err := query.Order("created_at desc").Offset(offset).Limit(pageSize).Find(&users).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch users"})
			return
		}
		totalPages := (int(total) + pageSize - 1) / pageSize // Calculate total pages
		resp := UserListResponse{
			Users:      users,      // Page of users
			Page:       page,       // Current page
			PageSize:   pageSize,   // Page size
			Total:      total,      // Total number of users
			TotalPages: totalPages, // Total pages
		}
		// Cache the response for future requests
		_ = cache.Set(ctx, cacheKey, resp, 60*time.Second)
		c.JSON(http.StatusOK, gin.H{
			"users":       resp.Users,      // Page of users
			"page":        resp.Page,       // Current page
			"page_size":   resp.PageSize,   // Page size
			"total":       resp.Total,      // Total number of users
			"total_pages": resp.TotalPages, // Total pages
			"cached":      false,           // Indicate response is not from cache
		})
	}
}
