package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/abderrahm4ne/ix-project/config"
	"github.com/abderrahm4ne/ix-project/middleware"
	"github.com/abderrahm4ne/ix-project/models"
)

const testJWTSecret = "test-secret"

// setupTestDB opens a fresh in-memory database, migrates every model and
// installs it plus a test configuration as the globals the handlers read.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.Order{},
		&models.OrderItem{},
		&models.ContactMessage{},
	); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	config.SetDB(db)
	config.SetConfig(&config.Config{
		JWTSecret:     testJWTSecret,
		UploadTempDir: t.TempDir(),
	})

	return db
}

// setupTestRouter builds a router with the same route table as main
func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	api := router.Group("/api")
	admin := api.Group("/admin", middleware.AdminRequired(testJWTSecret))

	api.POST("/users/register", Register)
	api.POST("/users/admin/login", AdminLogin)
	api.GET("/users/admin/verify", VerifyAdmin)
	admin.PATCH("/assign-role", AssignRole)

	api.GET("/products", ListProducts)
	api.GET("/products/:slug", GetProductBySlug)
	api.GET("/products/:slug/:category", GetProductsByCategory)
	admin.POST("/add/product", CreateProduct)
	admin.PUT("/update/product/:id", UpdateProduct)
	admin.DELETE("/delete/product/:id", DeleteProduct)

	api.POST("/Order", PlaceOrder)
	admin.GET("/show-orders", ListOrders)
	admin.GET("/orders/:id", GetOrder)
	admin.PUT("/orders/:id", UpdateOrderStatus)
	admin.DELETE("/orders/:id", DeleteOrder)

	api.POST("/send-message", SendMessage)
	admin.GET("/show-messages", ListMessages)
	admin.PATCH("/read-message/:id", MarkMessageRead)
	admin.DELETE("/delete-message/:id", DeleteMessage)

	admin.POST("/upload-product-images", UploadProductImages)

	return router
}

// adminCookie mints a valid admin session cookie for guarded routes
func adminCookie(t *testing.T) *http.Cookie {
	t.Helper()

	user := models.User{ID: 999, Email: "admin@example.com", Role: models.RoleAdmin}
	token, err := middleware.GenerateToken(&user, testJWTSecret)
	if err != nil {
		t.Fatalf("Failed to generate admin token: %v", err)
	}
	return &http.Cookie{Name: middleware.AdminCookieName, Value: token}
}

// userCookie mints a valid but non-admin session cookie
func userCookie(t *testing.T) *http.Cookie {
	t.Helper()

	user := models.User{ID: 998, Email: "user@example.com", Role: models.RoleUser}
	token, err := middleware.GenerateToken(&user, testJWTSecret)
	if err != nil {
		t.Fatalf("Failed to generate user token: %v", err)
	}
	return &http.Cookie{Name: middleware.AdminCookieName, Value: token}
}

// performJSON issues a JSON request against the router and returns the
// recorder plus the decoded response body.
func performJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}, cookies ...*http.Cookie) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("Failed to marshal request body: %v", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var response map[string]interface{}
	if len(w.Body.Bytes()) > 0 && w.Body.Bytes()[0] == '{' {
		if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
			t.Fatalf("Failed to decode response body: %v", err)
		}
	}

	return w, response
}

// createTestUser inserts a user with a bcrypt-hashed password
func createTestUser(t *testing.T, db *gorm.DB, email, password, role string) *models.User {
	t.Helper()

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}

	user := models.User{
		FirstName: "Test",
		LastName:  "User",
		Email:     email,
		Password:  string(hashed),
		Role:      role,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}
	return &user
}

// errorCode digs the error code out of the response envelope
func errorCode(response map[string]interface{}) string {
	errObj, ok := response["error"].(map[string]interface{})
	if !ok {
		return ""
	}
	code, _ := errObj["code"].(string)
	return code
}
