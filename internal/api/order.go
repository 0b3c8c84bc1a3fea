package api

import (
	"net/http" // HTTP status codes

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
	"gorm.io/gorm"               // GORM ORM library

	"localmart/internal/auth"   // Session context
	"localmart/internal/domain" // Domain models
	"localmart/internal/utils"  // Cache helpers
)

// OrderItemRequest is one requested line of a new order; prices come from the
// product table, never from the client
type OrderItemRequest struct {
	ProductID string `json:"product_id" binding:"required"`    // Ordered product ID
	Quantity  int    `json:"quantity" binding:"required,gt=0"` // Ordered quantity
}

// PlaceOrderRequest represents a new order from a customer's cart
type PlaceOrderRequest struct {
	VendorID        string             `json:"vendor_id" binding:"required"`   // Target vendor
	Items           []OrderItemRequest `json:"items" binding:"required,min=1"` // Cart lines
	DeliveryAddress string             `json:"delivery_address"`               // Optional override of the stored address
	Notes           string             `json:"notes"`                          // Customer notes
}

// PlaceOrderHandler creates a pending order for an online vendor. Line items
// are priced server-side from the vendor's available products.
func PlaceOrderHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, _ := auth.SessionFrom(c) // Customer session, guaranteed by middleware
		var req PlaceOrderRequest      // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		ctx := c.Request.Context()
		var vendor domain.Vendor // Verify the vendor exists and is online
		if err := db.WithContext(ctx).First(&vendor, "id = ?", req.VendorID).Error; err != nil {
			// If vendor not found, return not found
			c.JSON(http.StatusNotFound, gin.H{"error": "Vendor not found"})
			return
		}
		if !vendor.IsOnline {
			// Offline vendors do not accept orders
			c.JSON(http.StatusBadRequest, gin.H{"error": "Vendor is offline"})
			return
		}
		// Collect the requested product IDs
		ids := make([]string, 0, len(req.Items))
		for _, item := range req.Items {
			ids = append(ids, item.ProductID)
		}
		var products []domain.Product // Load the vendor's matching available products
		err := db.WithContext(ctx).
			Where("id IN ? AND vendor_id = ? AND is_available = ?", ids, req.VendorID, true).
			Find(&products).Error
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
			return
		}
		byID := make(map[string]domain.Product, len(products))
		for _, p := range products {
			byID[p.ID] = p
		}
		// Price each line from the product table
		items := make(domain.OrderItems, 0, len(req.Items))
		total := 0.0
		for _, item := range req.Items {
			p, ok := byID[item.ProductID]
			if !ok {
				// Unknown, unavailable or foreign product
				c.JSON(http.StatusBadRequest, gin.H{"error": "Product not available: " + item.ProductID})
				return
			}
			items = append(items, domain.OrderItem{
				ProductID: p.ID,          // Ordered product
				Name:      p.Name,        // Name at order time
				Price:     p.Price,       // Price at order time
				Quantity:  item.Quantity, // Ordered quantity
			})
			total += p.Price * float64(item.Quantity) // Accumulate the total
		}
		// Default the delivery details to the customer's stored location
		address := req.DeliveryAddress
		if address == "" {
			address = sess.User.LocationAddress
		}
		order := domain.Order{
			VendorID:        req.VendorID,          // Target vendor
			CustomerID:      sess.User.ID,          // Ordering customer
			Status:          domain.OrderPending,   // Orders start pending
			TotalAmount:     total,                 // Server-side total
			Items:           items,                 // Priced line items
			DeliveryAddress: address,               // Delivery address
			DeliveryLat:     sess.User.LocationLat, // Customer latitude
			DeliveryLng:     sess.User.LocationLng, // Customer longitude
			Notes:           req.Notes,             // Customer notes
		}
		if err := db.WithContext(ctx).Create(&order).Error; err != nil {
			logrus.WithFields(logrus.Fields{
				"customer_id": sess.User.ID, // Customer ID
				"vendor_id":   req.VendorID, // Vendor ID
				"error":       err.Error(),  // Error message
			}).Error("Failed to place order") // Log failure
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to place order"})
			return
		}
		// Log the placed order
		logrus.WithFields(logrus.Fields{
			"order_id":     order.ID,     // New order ID
			"customer_id":  sess.User.ID, // Customer ID
			"vendor_id":    req.VendorID, // Vendor ID
			"total_amount": total,        // Order total
		}).Info("Order placed") // Log placement
		c.JSON(http.StatusCreated, gin.H{"order": order})
	}
}

// ListMyOrdersHandler returns the calling customer's orders, newest first,
// with the vendor record attached
func ListMyOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, _ := auth.SessionFrom(c) // Customer session, guaranteed by middleware
		var orders []domain.Order
		err := db.WithContext(c.Request.Context()).
			Preload("Vendor").
			Where("customer_id = ?", sess.User.ID).
			Order("created_at desc").
			Find(&orders).Error
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"orders": orders})
	}
}

// ListVendorOrdersHandler returns the calling vendor's incoming orders, newest
// first, with the customer record attached
func ListVendorOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, _ := auth.SessionFrom(c) // Vendor session, guaranteed by middleware
		var orders []domain.Order
		err := db.WithContext(c.Request.Context()).
			Preload("Customer").
			Where("vendor_id = ?", sess.User.ID).
			Order("created_at desc").
			Find(&orders).Error
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"orders": orders})
	}
}

// UpdateOrderStatusRequest moves an order along its lifecycle
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"` // Target status
}

// UpdateOrderStatusHandler lets a vendor confirm, complete or cancel one of
// their orders. Completing an order also bumps the vendor's completed order
// count, in the same transaction.
func UpdateOrderStatusHandler(db *gorm.DB, cache *utils.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, _ := auth.SessionFrom(c)   // Vendor session, guaranteed by middleware
		orderID := c.Param("id")         // Order ID from path
		var req UpdateOrderStatusRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		ctx := c.Request.Context()
		var statusErr string // Validation failure captured inside the transaction
		err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			var order domain.Order // Load the order within the transaction
			if err := tx.First(&order, "id = ? AND vendor_id = ?", orderID, sess.User.ID).Error; err != nil {
				statusErr = "Order not found"
				return err // Return error to rollback
			}
			// Enforce the order lifecycle
			if !domain.ValidOrderTransition(order.Status, req.Status) {
				statusErr = "Invalid status transition"
				return gorm.ErrInvalidData
			}
			// The status filter keeps the transition check honest under
			// concurrent updates: if another transaction moved the order
			// first, this update matches zero rows and nothing is counted
			res := tx.Model(&domain.Order{}).
				Where("id = ? AND status = ?", order.ID, order.Status).
				Update("status", req.Status)
			if res.Error != nil {
				return res.Error // Return error to rollback
			}
			if res.RowsAffected == 0 {
				statusErr = "Invalid status transition"
				return gorm.ErrInvalidData
			}
			if req.Status == domain.OrderCompleted {
				// Count the completed order against the vendor's track record
				err := tx.Model(&domain.Vendor{}).
					Where("id = ?", sess.User.ID).
					Update("total_orders", gorm.Expr("total_orders + 1")).Error
				if err != nil {
					return err // Return error to rollback
				}
			}
			return nil // Commit transaction
		})
		if err != nil {
			if statusErr != "" {
				// Validation failure, not a store failure
				status := http.StatusBadRequest
				if statusErr == "Order not found" {
					status = http.StatusNotFound
				}
				c.JSON(status, gin.H{"error": statusErr})
				return
			}
			logrus.WithFields(logrus.Fields{
				"order_id":  orderID,      // Order ID
				"vendor_id": sess.User.ID, // Vendor ID
				"status":    req.Status,   // Target status
				"error":     err.Error(),  // Error message
			}).Error("Order status update failed") // Log failure
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order"})
			return
		}
		// Log the status change
		logrus.WithFields(logrus.Fields{
			"order_id":  orderID,      // Order ID
			"vendor_id": sess.User.ID, // Vendor ID
			"status":    req.Status,   // New status
		}).Info("Order status updated") // Log status change
		if req.Status == domain.OrderCompleted {
			// Completed order counts feed the community stats
			_ = cache.Delete(ctx, statsCacheKey)
		}
		c.JSON(http.StatusOK, gin.H{"status": req.Status})
	}
}
