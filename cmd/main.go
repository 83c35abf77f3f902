package main

import (
	"inventory-service/internal/handler"
	mid "inventory-service/internal/middleware"
	"inventory-service/pkg/config"
	"inventory-service/pkg/database"
	"inventory-service/pkg/jwtutil"
	"inventory-service/pkg/logger"
	"inventory-service/prometheus"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func main() {
	// Load configuration (.env plus environment variables)
	appConfig, err := config.Load()
	if err != nil {
		// Can't use structured logger yet since it's not initialized
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	logger.InitLogger(appConfig)
	log := logger.GetLogger()
	defer log.Sync()

	log.Info("Starting inventory-service",
		zap.String("environment", appConfig.Server.Env),
		zap.String("port", appConfig.Server.Port))

	// Initialize JWT utility
	jwtutil.Initialize(&appConfig.JWT)

	// Initialize Prometheus metrics
	prometheus.InitMetrics(appConfig)
	log.Info("Prometheus metrics initialized",
		zap.String("metrics_prefix", appConfig.Metrics.Prefix))

	// Initialize database and run migrations
	if err := database.InitDB(appConfig); err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}
	log.Info("Database connection established",
		zap.String("db_host", appConfig.DB.Host),
		zap.String("db_name", appConfig.DB.Name))

	// Initialize Echo instance
	e := echo.New()

	// Middleware
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(mid.RequestIDMiddleware)
	e.Use(mid.MetricsMiddleware)

	// Metrics endpoint
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Health check endpoint
	e.GET("/health", handler.Health)

	// API routes. Bearer-token auth is optional; the clinic runs this as a
	// trusted internal tool by default.
	api := e.Group("/api")
	if appConfig.Auth.Enabled {
		api.Use(mid.AuthMiddleware)
		log.Info("Bearer-token authentication enabled on /api")
	}

	categories := api.Group("/categories")
	categories.GET("", handler.ListCategories)
	categories.GET("/:id", handler.GetCategory)
	categories.POST("", handler.CreateCategory)
	categories.PUT("/:id", handler.UpdateCategory)
	categories.DELETE("/:id", handler.DeleteCategory)

	brands := api.Group("/brands")
	brands.GET("", handler.ListBrands)
	brands.GET("/:id", handler.GetBrand)
	brands.POST("", handler.CreateBrand)
	brands.PUT("/:id", handler.UpdateBrand)
	brands.DELETE("/:id", handler.DeleteBrand)

	suppliers := api.Group("/suppliers")
	suppliers.GET("", handler.ListSuppliers)
	suppliers.GET("/:id", handler.GetSupplier)
	suppliers.POST("", handler.CreateSupplier)
	suppliers.PUT("/:id", handler.UpdateSupplier)
	suppliers.DELETE("/:id", handler.DeleteSupplier)

	locations := api.Group("/storage-locations")
	locations.GET("", handler.ListStorageLocations)
	locations.GET("/:id", handler.GetStorageLocation)
	locations.POST("", handler.CreateStorageLocation)
	locations.PUT("/:id", handler.UpdateStorageLocation)
	locations.DELETE("/:id", handler.DeleteStorageLocation)

	items := api.Group("/items")
	items.GET("", handler.ListItems)
	items.GET("/:id", handler.GetItem)
	items.POST("", handler.CreateItem)
	items.PUT("/:id", handler.UpdateItem)
	items.DELETE("/:id", handler.DeleteItem)

	transactions := api.Group("/transactions")
	transactions.GET("", handler.ListTransactions)
	transactions.GET("/:id", handler.GetTransaction)
	transactions.POST("", handler.CreateTransaction)
	transactions.PUT("/:id", handler.UpdateTransaction)
	transactions.DELETE("/:id", handler.DeleteTransaction)

	users := api.Group("/users")
	users.GET("", handler.ListUsers)
	users.GET("/:id", handler.GetUser)
	users.POST("", handler.CreateUser)
	users.PUT("/:id", handler.UpdateUser)
	users.DELETE("/:id", handler.DeleteUser)

	api.GET("/reports/low-stock", handler.LowStockReport)
	api.GET("/dashboard/stats", handler.DashboardStatsHandler)

	// Start server
	if err := e.Start(":" + appConfig.Server.Port); err != nil {
		log.Fatal("Server error", zap.Error(err))
	}
}
