package main

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/abderrahm4ne/ix-project/config"
	"github.com/abderrahm4ne/ix-project/controllers"
	"github.com/abderrahm4ne/ix-project/middleware"
	"github.com/abderrahm4ne/ix-project/models"
	"github.com/abderrahm4ne/ix-project/services"
)

// requestTimeout is the per-request deadline applied to every route.
const requestTimeout = 10 * time.Second

func main() {
	log.Println("Starting storefront API server...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	if err := config.ConnectDatabase(); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Auto-migrate database models
	db := config.GetDB()
	if err := db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.Order{},
		&models.OrderItem{},
		&models.ContactMessage{},
	); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("Database migration completed successfully")

	// Initialize image storage
	s3Service, err := services.InitS3Service()
	if err != nil {
		log.Fatalf("Failed to initialize S3 service: %v", err)
	}
	services.InitImageService(s3Service)

	router := setupRouter(cfg)

	port := ":" + cfg.Port
	log.Printf("Server is running on http://localhost%s", port)
	if err := router.Run(port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// setupRouter builds the Gin engine with CORS, the request deadline and the
// full route table.
func setupRouter(cfg *config.Config) *gin.Engine {
	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173", cfg.ClientURL},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		AllowCredentials: true,
	}))
	router.Use(middleware.RequestTimeout(requestTimeout))

	router.GET("/api/v1/health", healthCheck)

	api := router.Group("/api")
	admin := api.Group("/admin", middleware.AdminRequired(cfg.JWTSecret))

	// Users
	api.POST("/users/register", controllers.Register)
	api.POST("/users/admin/login", controllers.AdminLogin)
	api.GET("/users/admin/verify", controllers.VerifyAdmin)
	admin.PATCH("/assign-role", controllers.AssignRole)

	// Catalog
	api.GET("/products", controllers.ListProducts)
	api.GET("/products/:slug", controllers.GetProductBySlug)
	api.GET("/products/:slug/:category", controllers.GetProductsByCategory)
	admin.POST("/add/product", controllers.CreateProduct)
	admin.PUT("/update/product/:id", controllers.UpdateProduct)
	admin.DELETE("/delete/product/:id", controllers.DeleteProduct)

	// Orders
	api.POST("/Order", controllers.PlaceOrder)
	admin.GET("/show-orders", controllers.ListOrders)
	admin.GET("/orders/:id", controllers.GetOrder)
	admin.PUT("/orders/:id", controllers.UpdateOrderStatus)
	admin.DELETE("/orders/:id", controllers.DeleteOrder)

	// Contact
	api.POST("/send-message", controllers.SendMessage)
	admin.GET("/show-messages", controllers.ListMessages)
	admin.PATCH("/read-message/:id", controllers.MarkMessageRead)
	admin.DELETE("/delete-message/:id", controllers.DeleteMessage)

	// Uploads
	admin.POST("/upload-product-images", controllers.UploadProductImages)

	return router
}

// healthCheck handles the health check endpoint
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Storefront API is running",
	})
}
