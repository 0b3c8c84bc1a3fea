package api

import (
	"net/http" // HTTP status codes

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
	"gorm.io/gorm"               // GORM ORM library

	"localmart/internal/auth"   // Session context
	"localmart/internal/domain" // Domain models
)

// CreateProductRequest represents a new catalog entry
type CreateProductRequest struct {
	Name        string  `json:"name" binding:"required"`       // Product name
	Price       float64 `json:"price" binding:"required,gt=0"` // Unit price, must be positive
	Description string  `json:"description"`                   // Product description
	Category    string  `json:"category"`                      // Product category
	ImageURL    string  `json:"image_url"`                     // Optional image URL
}

// CreateProductHandler adds a product to the calling vendor's catalog
func CreateProductHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, _ := auth.SessionFrom(c) // Vendor session, guaranteed by middleware
		var req CreateProductRequest   // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		// New products are available immediately
		product := domain.Product{
			VendorID:    sess.User.ID,    // Owning vendor
			Name:        req.Name,        // Product name
			Description: req.Description, // Product description
			Price:       req.Price,       // Unit price
			Category:    req.Category,    // Product category
			ImageURL:    req.ImageURL,    // Optional image URL
			IsAvailable: true,            // Available on creation
		}
		if err := db.WithContext(c.Request.Context()).Create(&product).Error; err != nil {
			logrus.WithFields(logrus.Fields{
				"vendor_id": sess.User.ID, // Vendor ID
				"name":      req.Name,     // Product name
				"error":     err.Error(),  // Error message
			}).Error("Failed to create product") // Log failure
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
			return
		}
		// Log successful product creation
		logrus.WithFields(logrus.Fields{
			"vendor_id":  sess.User.ID, // Vendor ID
			"product_id": product.ID,   // New product ID
		}).Info("Product created") // Log creation
		c.JSON(http.StatusCreated, gin.H{"product": product})
	}
}

// ListMyProductsHandler returns the calling vendor's full catalog, newest first
func ListMyProductsHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, _ := auth.SessionFrom(c) // Vendor session, guaranteed by middleware
		var products []domain.Product
		err := db.WithContext(c.Request.Context()).
			Where("vendor_id = ?", sess.User.ID).
			Order("created_at desc").
			Find(&products).Error
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"products": products})
	}
}

// UpdateAvailabilityRequest toggles a product's availability
type UpdateAvailabilityRequest struct {
	IsAvailable *bool `json:"is_available" binding:"required"` // Desired availability
}

// UpdateProductAvailabilityHandler toggles availability of one of the calling
// vendor's own products
func UpdateProductAvailabilityHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, _ := auth.SessionFrom(c)    // Vendor session, guaranteed by middleware
		productID := c.Param("id")        // Product ID from path
		var req UpdateAvailabilityRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		// Scope the update to the vendor's own catalog
		res := db.WithContext(c.Request.Context()).
			Model(&domain.Product{}).
			Where("id = ? AND vendor_id = ?", productID, sess.User.ID).
			Update("is_available", *req.IsAvailable)
		if res.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
			return
		}
		if res.RowsAffected == 0 {
			// Unknown product or not owned by this vendor
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"is_available": *req.IsAvailable})
	}
}
