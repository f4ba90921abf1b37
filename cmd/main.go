package main

import (
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/rogenecarl/inventory-pos/internal/catalog"
	"github.com/rogenecarl/inventory-pos/internal/handler"
	"github.com/rogenecarl/inventory-pos/internal/inventory"
	mid "github.com/rogenecarl/inventory-pos/internal/middleware"
	"github.com/rogenecarl/inventory-pos/internal/registry"
	"github.com/rogenecarl/inventory-pos/internal/reporting"
	"github.com/rogenecarl/inventory-pos/internal/sales"
	"github.com/rogenecarl/inventory-pos/pkg/config"
	"github.com/rogenecarl/inventory-pos/pkg/database"
	"github.com/rogenecarl/inventory-pos/pkg/jwtutil"
	"github.com/rogenecarl/inventory-pos/pkg/logger"
	"github.com/rogenecarl/inventory-pos/prometheus"
)

func main() {
	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		// Can't use structured logger yet since it's not initialized
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	if err := logger.InitLogger(appConfig); err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	log := logger.GetLogger()
	defer log.Sync()

	log.Info("Starting inventory-pos",
		zap.String("environment", appConfig.Server.Env),
		zap.String("port", appConfig.Server.Port))

	// Initialize JWT utility
	jwtutil.Initialize(&appConfig.JWT)
	log.Info("JWT utility initialized")

	// Initialize Prometheus metrics
	prometheus.InitMetrics(appConfig)
	log.Info("Prometheus metrics initialized",
		zap.String("metrics_prefix", appConfig.Metrics.Prefix))

	// Initialize database and run migrations
	if err := database.InitDB(appConfig); err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}
	log.Info("Database connection established")

	db := database.GetDB()

	// Wire services
	storeRegistry := registry.New(db)
	categories := catalog.NewCategoryRepository(db)
	products := catalog.NewProductRepository(db)
	ledger := inventory.NewLedger(db)
	recorder := sales.NewRecorder(db)
	reporter := reporting.NewReporter(db, ledger)

	registerHandler := handler.NewRegisterHandler(storeRegistry)
	categoryHandler := handler.NewCategoryHandler(categories)
	productHandler := handler.NewProductHandler(products, ledger)
	saleHandler := handler.NewSaleHandler(recorder)
	dashboardHandler := handler.NewDashboardHandler(reporter)

	// Initialize Echo instance
	e := echo.New()

	// Middleware
	e.Use(echomw.Recover())
	e.Use(mid.RequestIDMiddleware)
	e.Use(mid.MetricsMiddleware)
	e.Use(logger.Middleware())

	// Metrics and health endpoints
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/health", handler.Health)

	// Registration is the only route without an authenticated session
	e.POST("/register", registerHandler.Register)

	// Authenticated, store-scoped routes
	app := e.Group("", mid.AuthMiddleware)

	app.GET("/dashboard", dashboardHandler.Dashboard)

	app.GET("/categories", categoryHandler.ListCategories)
	app.POST("/categories", categoryHandler.CreateCategory)
	app.PUT("/categories/:id", categoryHandler.UpdateCategory)
	app.DELETE("/categories/:id", categoryHandler.DeleteCategory)

	app.GET("/products", productHandler.ListProducts)
	app.GET("/products/:id", productHandler.GetProduct)
	app.POST("/products", productHandler.CreateProduct)
	app.PUT("/products/:id", productHandler.UpdateProduct)
	app.DELETE("/products/:id", productHandler.DeleteProduct)
	app.POST("/products/:id/adjust-stock", productHandler.AdjustStock)

	app.GET("/sales", saleHandler.ListSales)
	app.POST("/sales", saleHandler.RecordSale)

	// Placeholder views
	app.GET("/pos", handler.POSTerminal)
	app.GET("/store-settings", handler.StoreSettings)

	// Start server
	port := appConfig.Server.Port
	log.Info("Starting server", zap.String("port", port))
	if err := e.Start(":" + port); err != nil {
		log.Fatal("Server error", zap.Error(err))
	}
}
