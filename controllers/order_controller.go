package controllers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/abderrahm4ne/ix-project/config"
	"github.com/abderrahm4ne/ix-project/models"
	"github.com/abderrahm4ne/ix-project/validators"
)

// maxOrderAttempts bounds the retry loop for order-number allocation.
const maxOrderAttempts = 5

// UpdateOrderStatusRequest represents the request body for an admin status
// change
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// PlaceOrder handles POST /api/Order - converts a client-held cart into a
// persisted order. The order number is allocated as MAX(seq)+1 under the
// unique index on seq; losing a race against a concurrent checkout shows up
// as a constraint violation and the allocation is retried, so no two orders
// ever share a number.
func PlaceOrder(c *gin.Context) {
	var req validators.OrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid request data",
			},
		})
		return
	}

	if fields := validators.ValidateOrder(&req); fields != nil {
		respondValidationError(c, fields)
		return
	}

	items := make([]models.OrderItem, 0, len(req.Items))
	var total float64
	for _, item := range req.Items {
		items = append(items, models.OrderItem{
			ProductID: item.ProductID,
			Name:      item.Name,
			Reference: item.Reference,
			Quantity:  item.Quantity,
			Price:     item.Price,
		})
		total += item.Price * float64(item.Quantity)
	}

	customer := models.OrderCustomer{
		Name:    req.Customer.Name,
		Email:   req.Customer.Email,
		Phone:   req.Customer.Phone,
		Address: req.Customer.Address,
		Wilaya:  req.Customer.Wilaya,
	}

	db := config.GetDB().WithContext(c.Request.Context())

	var order models.Order
	placed := false
	for attempt := 0; attempt < maxOrderAttempts; attempt++ {
		var maxSeq int64
		if err := db.Model(&models.Order{}).
			Select("COALESCE(MAX(seq), 0)").
			Scan(&maxSeq).Error; err != nil {
			respondStoreError(c, err, "DATABASE_ERROR", "Failed to allocate order number")
			return
		}

		seq := int(maxSeq) + 1
		order = models.Order{
			OrderNumber:   fmt.Sprintf("ORDER-%d", seq),
			Seq:           seq,
			Customer:      customer,
			Items:         items,
			Total:         total,
			PaymentMethod: models.PaymentCashOnDelivery,
			Status:        models.StatusPending,
		}

		err := db.Create(&order).Error
		if err == nil {
			placed = true
			break
		}
		if !isDuplicateError(err) {
			respondStoreError(c, err, "DATABASE_ERROR", "Failed to place order")
			return
		}
		// Another checkout claimed this number first; re-read and retry
	}

	if !placed {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "ORDER_NUMBER_CONFLICT",
				"message": "Could not allocate an order number, please retry",
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Order Placed Successfully",
		"order":   order,
	})
}

// ListOrders handles GET /api/admin/show-orders - newest first (admin only)
func ListOrders(c *gin.Context) {
	db := config.GetDB().WithContext(c.Request.Context())

	orders := []models.Order{}
	if err := db.Preload("Items").Order("created_at DESC").Find(&orders).Error; err != nil {
		respondStoreError(c, err, "DATABASE_ERROR", "Failed to fetch orders")
		return
	}

	c.JSON(http.StatusOK, orders)
}

// GetOrder handles GET /api/admin/orders/:id (admin only)
func GetOrder(c *gin.Context) {
	db := config.GetDB().WithContext(c.Request.Context())

	var order models.Order
	if err := db.Preload("Items").First(&order, c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "ORDER_NOT_FOUND",
					"message": "Order not found",
				},
			})
			return
		}
		respondStoreError(c, err, "DATABASE_ERROR", "Failed to fetch order")
		return
	}

	c.JSON(http.StatusOK, order)
}

// UpdateOrderStatus handles PUT /api/admin/orders/:id - moves an order
// through its status lifecycle (admin only). Transitions must follow the
// state machine; terminal orders reject every change.
func UpdateOrderStatus(c *gin.Context) {
	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Status is required",
			},
		})
		return
	}

	if !models.IsValidStatus(req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_STATUS",
				"message": fmt.Sprintf("Unknown order status %q", req.Status),
			},
		})
		return
	}

	db := config.GetDB().WithContext(c.Request.Context())

	var order models.Order
	if err := db.Preload("Items").First(&order, c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "ORDER_NOT_FOUND",
					"message": "Order not found",
				},
			})
			return
		}
		respondStoreError(c, err, "DATABASE_ERROR", "Failed to fetch order")
		return
	}

	if !models.CanTransition(order.Status, req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_TRANSITION",
				"message": fmt.Sprintf("Cannot move order from %q to %q", order.Status, req.Status),
			},
		})
		return
	}

	order.Status = req.Status
	if err := db.Save(&order).Error; err != nil {
		respondStoreError(c, err, "DATABASE_ERROR", "Failed to update order")
		return
	}

	c.JSON(http.StatusOK, order)
}

// DeleteOrder handles DELETE /api/admin/orders/:id - permanent removal of
// an order and its line items (admin only)
func DeleteOrder(c *gin.Context) {
	db := config.GetDB().WithContext(c.Request.Context())

	var order models.Order
	if err := db.First(&order, c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "ORDER_NOT_FOUND",
					"message": "Order not found",
				},
			})
			return
		}
		respondStoreError(c, err, "DATABASE_ERROR", "Failed to fetch order")
		return
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", order.ID).Delete(&models.OrderItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&order).Error
	})
	if err != nil {
		respondStoreError(c, err, "DATABASE_ERROR", "Failed to delete order")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Order deleted",
	})
}
