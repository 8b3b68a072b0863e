package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/abderrahm4ne/ix-project/config"
	"github.com/abderrahm4ne/ix-project/models"
	"github.com/abderrahm4ne/ix-project/validators"
)

// SendMessage handles POST /api/send-message - public contact form intake
func SendMessage(c *gin.Context) {
	var req validators.ContactRequest
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

	if fields := validators.ValidateContact(&req); fields != nil {
		respondValidationError(c, fields)
		return
	}

	db := config.GetDB().WithContext(c.Request.Context())

	contact := models.ContactMessage{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Message: req.Message,
		Read:    false,
	}

	if err := db.Create(&contact).Error; err != nil {
		respondStoreError(c, err, "DATABASE_ERROR", "Failed to save message")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "message sent successfully",
		"contact": contact,
	})
}

// ListMessages handles GET /api/admin/show-messages (admin only)
func ListMessages(c *gin.Context) {
	db := config.GetDB().WithContext(c.Request.Context())

	contacts := []models.ContactMessage{}
	if err := db.Order("created_at DESC").Find(&contacts).Error; err != nil {
		respondStoreError(c, err, "DATABASE_ERROR", "Failed to fetch messages")
		return
	}

	c.JSON(http.StatusOK, contacts)
}

// MarkMessageRead handles PATCH /api/admin/read-message/:id (admin only)
func MarkMessageRead(c *gin.Context) {
	db := config.GetDB().WithContext(c.Request.Context())

	var contact models.ContactMessage
	if err := db.First(&contact, c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "CONTACT_NOT_FOUND",
					"message": "Contact not found",
				},
			})
			return
		}
		respondStoreError(c, err, "DATABASE_ERROR", "Failed to fetch message")
		return
	}

	contact.Read = true
	if err := db.Save(&contact).Error; err != nil {
		respondStoreError(c, err, "DATABASE_ERROR", "Failed to update message")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"contact": contact,
	})
}

// DeleteMessage handles DELETE /api/admin/delete-message/:id (admin only)
func DeleteMessage(c *gin.Context) {
	db := config.GetDB().WithContext(c.Request.Context())

	result := db.Delete(&models.ContactMessage{}, c.Param("id"))
	if result.Error != nil {
		respondStoreError(c, result.Error, "DATABASE_ERROR", "Failed to delete message")
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "CONTACT_NOT_FOUND",
				"message": "Contact not found",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Contact deleted successfully",
	})
}
