package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/abderrahm4ne/ix-project/config"
	"github.com/abderrahm4ne/ix-project/services"
	"github.com/abderrahm4ne/ix-project/utils"
)

// UploadProductImages handles POST /api/admin/upload-product-images - admin
// multipart batch upload. Up to 5 images of at most 5MB each; any per-file
// failure fails the whole batch.
func UploadProductImages(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_REQUEST",
				"message": "Expected a multipart form",
			},
		})
		return
	}

	files := form.File["images"]
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "NO_IMAGES",
				"message": "No images uploaded",
			},
		})
		return
	}
	if len(files) > utils.MaxFilesPerUpload {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "TOO_MANY_FILES",
				"message": "At most 5 images per upload",
			},
		})
		return
	}

	cfg := config.GetConfig()
	urls, err := services.GetImageService().UploadProductImages(c.Request.Context(), files, cfg.UploadTempDir)
	if err != nil {
		// Client-side problems (size, format) are 400s; storage failures
		// are the batch-level upload error
		var uploadErr *utils.FileUploadError
		if errors.As(err, &uploadErr) {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    uploadErr.Code,
					"message": uploadErr.Message,
				},
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "UPLOAD_ERROR",
				"message": "Error uploading images",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"images":  urls,
	})
}
