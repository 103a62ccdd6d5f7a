package main

import (
	"net/http"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"catalog-service/internal/handler"
	mid "catalog-service/internal/middleware"
	"catalog-service/pkg/config"
	"catalog-service/pkg/database"
	"catalog-service/pkg/jwtutil"
	"catalog-service/pkg/logger"
	"catalog-service/prometheus"
)

func main() {
	// Load configuration (reads .env when present)
	appConfig, err := config.Load()
	if err != nil {
		// Can't use structured logger yet since it's not initialized
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	logger.InitLogger(appConfig)
	log := logger.GetLogger()
	defer log.Sync()

	log.Info("Starting catalog-service", appConfig.LogConfig()...)

	// Initialize session token utility
	jwtutil.Initialize(&appConfig.JWT)
	log.Info("Session token utility initialized")

	// Initialize Prometheus metrics
	prometheus.InitMetrics(appConfig)
	log.Info("Prometheus metrics initialized",
		zap.String("metrics_prefix", appConfig.Metrics.Prefix))

	// Initialize database
	if err := database.InitDB(appConfig); err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}
	log.Info("Database connection established")

	// Initialize Echo instance
	e := echo.New()

	// Middleware
	e.Use(echomiddleware.Recover())
	e.Use(mid.RequestIDMiddleware)
	e.Use(mid.MetricsMiddleware)

	// Metrics and health endpoints
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	// Uploaded product images
	e.Static("/uploads/products", appConfig.Upload.Dir)

	// User routes - register and login are open, profile is gated
	userAPI := e.Group("/api/users")
	userAPI.POST("/register", handler.Register)
	userAPI.POST("/login", handler.Login)
	userAPI.GET("/me", handler.CurrentProfile, mid.AuthMiddleware)

	// Category routes
	categoryAPI := e.Group("/api/categories", mid.AuthMiddleware)
	categoryAPI.POST("", handler.CreateCategory)
	categoryAPI.GET("", handler.ListCategories)
	categoryAPI.GET("/dropdown", handler.CategoryDropdown)
	categoryAPI.GET("/:id", handler.GetCategory)
	categoryAPI.PUT("/:id", handler.UpdateCategory)
	categoryAPI.DELETE("/:id", handler.DeleteCategory)

	// SubCategory routes
	subCategoryAPI := e.Group("/api/subcategories", mid.AuthMiddleware)
	subCategoryAPI.POST("", handler.CreateSubCategory)
	subCategoryAPI.GET("", handler.ListSubCategories)
	subCategoryAPI.GET("/dropdown", handler.SubCategoryDropdown)
	subCategoryAPI.GET("/:id", handler.GetSubCategory)
	subCategoryAPI.PUT("/:id", handler.UpdateSubCategory)
	subCategoryAPI.DELETE("/:id", handler.DeleteSubCategory)

	// Product routes
	productAPI := e.Group("/api/products", mid.AuthMiddleware)
	productAPI.POST("", handler.CreateProduct)
	productAPI.GET("", handler.ListProducts)
	productAPI.GET("/dropdown", handler.ProductDropdown)
	productAPI.GET("/:id", handler.GetProduct)
	productAPI.PUT("/:id", handler.UpdateProduct)
	productAPI.DELETE("/:id", handler.DeleteProduct)

	// Favorite routes
	favoriteAPI := e.Group("/api/favorites", mid.AuthMiddleware)
	favoriteAPI.POST("/add", handler.AddFavorite)
	favoriteAPI.POST("/remove", handler.RemoveFavorite)
	favoriteAPI.POST("/toggle", handler.ToggleFavorite)
	favoriteAPI.POST("/check", handler.CheckFavorite)
	favoriteAPI.GET("/list/:userId", handler.ListFavorites)

	// Start server
	port := appConfig.Server.Port
	log.Info("Starting server", zap.String("port", port))
	if err := e.Start(":" + port); err != nil {
		log.Fatal("Server error", zap.Error(err))
	}
}
