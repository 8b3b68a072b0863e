package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gosimple/slug"
	"gorm.io/gorm"

	"github.com/abderrahm4ne/ix-project/config"
	"github.com/abderrahm4ne/ix-project/models"
)

// ProductRequest represents the request body for adding or updating a
// product. Updates are a full replace of the mutable fields.
type ProductRequest struct {
	Name        string   `json:"name" binding:"required"`
	Description string   `json:"description" binding:"required"`
	Reference   string   `json:"reference" binding:"required"`
	Price       float64  `json:"price" binding:"required,gt=0"`
	Category    string   `json:"category" binding:"required"`
	Stock       int      `json:"stock" binding:"gte=0"`
	Images      []string `json:"images" binding:"required,min=1"`
}

// respondProductConflict maps a uniqueness violation on the products table
// to the field that caused it.
func respondProductConflict(c *gin.Context, err error) {
	code, message := "REFERENCE_EXISTS", "A product with this reference already exists"
	if strings.Contains(strings.ToLower(err.Error()), "slug") {
		code, message = "SLUG_EXISTS", "A product with this name already exists"
	}
	c.JSON(http.StatusConflict, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}

// ListProducts handles GET /api/products - returns the full catalog.
// An empty catalog is a 200 with an empty list.
func ListProducts(c *gin.Context) {
	db := config.GetDB().WithContext(c.Request.Context())

	products := []models.Product{}
	if err := db.Find(&products).Error; err != nil {
		respondStoreError(c, err, "DATABASE_ERROR", "Failed to fetch products")
		return
	}

	c.JSON(http.StatusOK, products)
}

// GetProductBySlug handles GET /api/products/:slug
func GetProductBySlug(c *gin.Context) {
	db := config.GetDB().WithContext(c.Request.Context())

	var product models.Product
	if err := db.Where("slug = ?", c.Param("slug")).First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "PRODUCT_NOT_FOUND",
					"message": "Product not found",
				},
			})
			return
		}
		respondStoreError(c, err, "DATABASE_ERROR", "Failed to fetch product")
		return
	}

	c.JSON(http.StatusOK, product)
}

// GetProductsByCategory handles GET /api/products/category/:category.
// The route is registered as /products/:slug/:category because Gin's tree
// cannot mix the static "category" segment with the :slug parameter, so the
// first segment is checked here. An empty category is a 404, unlike the
// empty full listing.
func GetProductsByCategory(c *gin.Context) {
	if c.Param("slug") != "category" {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "NOT_FOUND",
				"message": "Not found",
			},
		})
		return
	}

	db := config.GetDB().WithContext(c.Request.Context())

	var products []models.Product
	if err := db.Where("category = ?", c.Param("category")).Find(&products).Error; err != nil {
		respondStoreError(c, err, "DATABASE_ERROR", "Failed to fetch products")
		return
	}

	if len(products) == 0 {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "CATEGORY_NOT_FOUND",
				"message": "No products found in this category",
			},
		})
		return
	}

	c.JSON(http.StatusOK, products)
}

// CreateProduct handles POST /api/admin/add/product - adds a catalog item
// (admin only). The slug is derived from the name and the main image from
// the first image.
func CreateProduct(c *gin.Context) {
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "All fields are required and at least one image must be provided",
				"details": err.Error(),
			},
		})
		return
	}

	db := config.GetDB().WithContext(c.Request.Context())

	// Check the derived slug before writing so name collisions get a clear
	// answer instead of a raw constraint error
	derived := slug.Make(req.Name)
	var count int64
	if err := db.Model(&models.Product{}).Where("slug = ?", derived).Count(&count).Error; err != nil {
		respondStoreError(c, err, "DATABASE_ERROR", "Failed to check product slug")
		return
	}
	if count > 0 {
		c.JSON(http.StatusConflict, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "SLUG_EXISTS",
				"message": "A product with this name already exists",
			},
		})
		return
	}

	product := models.Product{
		Name:        req.Name,
		Description: req.Description,
		Reference:   req.Reference,
		Price:       req.Price,
		Category:    req.Category,
		Stock:       req.Stock,
		Images:      req.Images,
	}

	if err := db.Create(&product).Error; err != nil {
		if isDuplicateError(err) {
			respondProductConflict(c, err)
			return
		}
		respondStoreError(c, err, "DATABASE_ERROR", "Failed to create product")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Product added successfully",
		"product": product,
	})
}

// UpdateProduct handles PUT /api/admin/update/product/:id - full-field
// replace of a catalog item (admin only). Slug and main image are
// re-derived from the new name and image list.
func UpdateProduct(c *gin.Context) {
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "All fields are required and at least one image must be provided",
				"details": err.Error(),
			},
		})
		return
	}

	db := config.GetDB().WithContext(c.Request.Context())

	var product models.Product
	if err := db.First(&product, c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "PRODUCT_NOT_FOUND",
					"message": "Product not found",
				},
			})
			return
		}
		respondStoreError(c, err, "DATABASE_ERROR", "Failed to fetch product")
		return
	}

	// A rename may collide with another product's slug
	derived := slug.Make(req.Name)
	var count int64
	if err := db.Model(&models.Product{}).
		Where("slug = ? AND id <> ?", derived, product.ID).
		Count(&count).Error; err != nil {
		respondStoreError(c, err, "DATABASE_ERROR", "Failed to check product slug")
		return
	}
	if count > 0 {
		c.JSON(http.StatusConflict, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "SLUG_EXISTS",
				"message": "A product with this name already exists",
			},
		})
		return
	}

	product.Name = req.Name
	product.Description = req.Description
	product.Reference = req.Reference
	product.Price = req.Price
	product.Category = req.Category
	product.Stock = req.Stock
	product.Images = req.Images

	if err := db.Save(&product).Error; err != nil {
		if isDuplicateError(err) {
			respondProductConflict(c, err)
			return
		}
		respondStoreError(c, err, "DATABASE_ERROR", "Failed to update product")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Product updated successfully",
		"product": product,
	})
}

// DeleteProduct handles DELETE /api/admin/delete/product/:id (admin only)
func DeleteProduct(c *gin.Context) {
	db := config.GetDB().WithContext(c.Request.Context())

	result := db.Delete(&models.Product{}, c.Param("id"))
	if result.Error != nil {
		respondStoreError(c, result.Error, "DATABASE_ERROR", "Failed to delete product")
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "PRODUCT_NOT_FOUND",
				"message": "Product not found",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Product deleted successfully",
	})
}
