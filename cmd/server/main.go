package main

import (
	"log"
	"os"
	"time"

	"wholesale-pos/internal/database"
	"wholesale-pos/internal/handlers"
	"wholesale-pos/internal/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: No .env file found")
	}

	db, err := database.Connect()
	if err != nil {
		log.Fatal("Failed to connect to database: ", err)
	}

	authH := handlers.NewAuthHandler(db)
	categoryH := handlers.NewCategoryHandler(db)
	productH := handlers.NewProductHandler(db)
	cartH := handlers.NewCartHandler(db)
	checkoutH := handlers.NewCheckoutHandler(db)
	stockH := handlers.NewStockHandler(db)
	cashH := handlers.NewCashHandler(db)
	reportH := handlers.NewReportHandler(db)
	aiH := handlers.NewAIHandler(db)

	r := gin.Default()

	allowedOrigin := os.Getenv("FRONTEND_ORIGIN")
	if allowedOrigin == "" {
		allowedOrigin = "http://localhost:5173"
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{allowedOrigin},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"status": "online"}) })
	r.POST("/login", authH.Login)
	r.Static("/uploads", "./uploads")

	// Only opens if we explicitly allow it in .env
	if os.Getenv("ALLOW_REGISTRATION") == "true" {
		r.POST("/register", authH.Register)
		log.Println("⚠️ WARNING: Registration route is OPEN. Disable this in production!")
	} else {
		log.Println("🔒 Registration route is safely DISABLED.")
	}

	api := r.Group("/api")
	api.Use(middleware.AuthMiddleware())
	{
		// SHARED BY OWNER & SHOPKEEPER
		api.GET("/products", productH.List)
		api.GET("/products/:id", productH.Get)
		api.GET("/scan/:sku", productH.Scan)
		api.GET("/categories", categoryH.List)
		api.GET("/stock", stockH.List)
		api.GET("/stock/:id", stockH.Get)
		api.GET("/cash", cashH.Summary)

		// OWNER ONLY
		owner := api.Group("/")
		owner.Use(middleware.RequireRole("owner"))
		{
			owner.POST("/categories", categoryH.Create)
			owner.PUT("/categories/:id", categoryH.Update)
			owner.DELETE("/categories/:id", categoryH.Delete)

			owner.POST("/products", productH.Create)
			owner.PUT("/products/:id", productH.Update)
			owner.DELETE("/products/:id", productH.Delete)
			owner.POST("/upload", productH.Upload)

			owner.POST("/stock", stockH.Create)

			owner.GET("/reports/sales", reportH.SalesSummary)
			owner.GET("/reports/valuation", reportH.StockValuation)

			owner.POST("/cash/settlements/resolve", cashH.ResolveSettlement)

			owner.POST("/ask", aiH.Ask)
		}

		// SHOPKEEPER ONLY
		shop := api.Group("/")
		shop.Use(middleware.RequireRole("shopkeeper"))
		{
			shop.POST("/cart/add", cartH.Add)
			shop.PUT("/cart/increment", cartH.Increment)
			shop.PUT("/cart/decrement", cartH.Decrement)
			shop.DELETE("/cart/remove", cartH.Remove)
			shop.GET("/cart", cartH.List)

			shop.POST("/checkout", checkoutH.Checkout)

			shop.PATCH("/stock/receive-item", stockH.ReceiveItem)
			shop.PUT("/stock/verify/:id", stockH.Verify)
			shop.PATCH("/stock/decline/:id", stockH.Decline)

			shop.POST("/cash/settlements", cashH.FileSettlement)
		}
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Println("🚀 Server starting on :" + port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal("Server failed to start:", err)
	}
}
