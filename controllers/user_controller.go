package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/abderrahm4ne/ix-project/config"
	"github.com/abderrahm4ne/ix-project/middleware"
	"github.com/abderrahm4ne/ix-project/models"
	"github.com/abderrahm4ne/ix-project/validators"
)

// LoginRequest represents the request body for admin login
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AssignRoleRequest represents the request body for promoting a user
type AssignRoleRequest struct {
	UserID uint   `json:"userId" binding:"required"`
	Role   string `json:"role" binding:"required"`
}

// userSummary strips a user down to the fields safe to return to clients
func userSummary(user *models.User) gin.H {
	return gin.H{
		"id":        user.ID,
		"firstName": user.FirstName,
		"lastName":  user.LastName,
		"email":     user.Email,
		"role":      user.Role,
	}
}

// Register handles POST /api/users/register - creates a new user account
func Register(c *gin.Context) {
	var req validators.RegisterRequest
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

	if fields := validators.ValidateRegistration(&req); fields != nil {
		respondValidationError(c, fields)
		return
	}

	db := config.GetDB().WithContext(c.Request.Context())

	// Check for an existing account before hashing
	var existing models.User
	if err := db.Where("email = ?", req.Email).First(&existing).Error; err == nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "EMAIL_EXISTS",
				"message": "Email already exists",
			},
		})
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		respondStoreError(c, err, "DATABASE_ERROR", "Failed to check existing users")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INTERNAL_ERROR",
				"message": "Failed to hash password",
			},
		})
		return
	}

	user := models.User{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  string(hashed),
		Role:      models.RoleUser,
	}

	if err := db.Create(&user).Error; err != nil {
		// Lost the race against a concurrent registration for the same email
		if isDuplicateError(err) {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "EMAIL_EXISTS",
					"message": "Email already exists",
				},
			})
			return
		}
		respondStoreError(c, err, "DATABASE_ERROR", "Failed to create user")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "User registered successfully",
		"user":    userSummary(&user),
	})
}

// AdminLogin handles POST /api/users/admin/login - verifies credentials and
// issues the signed session token, both in the body and as an http-only,
// same-site-strict cookie
func AdminLogin(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Email and password are required",
			},
		})
		return
	}

	db := config.GetDB().WithContext(c.Request.Context())

	var user models.User
	if err := db.Where("email = ?", req.Email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "USER_NOT_FOUND",
					"message": "User not found",
				},
			})
			return
		}
		respondStoreError(c, err, "DATABASE_ERROR", "Failed to look up user")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_CREDENTIALS",
				"message": "Invalid password",
			},
		})
		return
	}

	cfg := config.GetConfig()
	token, err := middleware.GenerateToken(&user, cfg.JWTSecret)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INTERNAL_ERROR",
				"message": "Failed to issue session token",
			},
		})
		return
	}

	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(middleware.AdminCookieName, token, int(middleware.TokenExpiry.Seconds()), "/", "", true, true)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Login successful",
		"token":   token,
	})
}

// VerifyAdmin handles GET /api/users/admin/verify - checks the session
// cookie and reports whether it belongs to an admin
func VerifyAdmin(c *gin.Context) {
	tokenString, err := c.Cookie(middleware.AdminCookieName)
	if err != nil || tokenString == "" {
		c.JSON(http.StatusUnauthorized, gin.H{
			"valid":   false,
			"message": "No token",
		})
		return
	}

	cfg := config.GetConfig()
	claims, err := middleware.ParseToken(tokenString, cfg.JWTSecret)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"valid":   false,
			"message": "Invalid token",
		})
		return
	}

	if claims.Role != models.RoleAdmin {
		c.JSON(http.StatusForbidden, gin.H{
			"valid":   false,
			"message": "Unauthorized",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"valid": true,
		"role":  claims.Role,
	})
}

// AssignRole handles PATCH /api/admin/assign-role - promotes or demotes a
// user (admin only)
func AssignRole(c *gin.Context) {
	var req AssignRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "User id and role are required",
			},
		})
		return
	}

	if req.Role != models.RoleUser && req.Role != models.RoleAdmin {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_ROLE",
				"message": "Role must be 'user' or 'admin'",
			},
		})
		return
	}

	db := config.GetDB().WithContext(c.Request.Context())

	var user models.User
	if err := db.First(&user, req.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "USER_NOT_FOUND",
					"message": "User not found",
				},
			})
			return
		}
		respondStoreError(c, err, "DATABASE_ERROR", "Failed to look up user")
		return
	}

	user.Role = req.Role
	if err := db.Save(&user).Error; err != nil {
		respondStoreError(c, err, "DATABASE_ERROR", "Failed to update user role")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "User role updated successfully",
		"user":    userSummary(&user),
	})
}
