package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	catalogapp "github.com/barstock/backend/internal/application/catalog"
	inventoryapp "github.com/barstock/backend/internal/application/inventory"
	partnerapp "github.com/barstock/backend/internal/application/partner"
	tradeapp "github.com/barstock/backend/internal/application/trade"
	"github.com/barstock/backend/internal/infrastructure/auth"
	"github.com/barstock/backend/internal/infrastructure/cache"
	"github.com/barstock/backend/internal/infrastructure/config"
	"github.com/barstock/backend/internal/infrastructure/logger"
	"github.com/barstock/backend/internal/infrastructure/persistence"
	"github.com/barstock/backend/internal/interfaces/http/handler"
	"github.com/barstock/backend/internal/interfaces/http/middleware"
	"github.com/barstock/backend/internal/interfaces/http/router"
)

const version = "1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log := logger.New(cfg.Log)
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting barstock backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Database
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected")

	// Stock cache (nil when disabled; services tolerate that)
	stockCache := cache.NewStockCache(cfg, log)

	// Repositories
	categoryRepo := persistence.NewGormCategoryRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	supplierRepo := persistence.NewGormSupplierRepository(db.DB)
	locationRepo := persistence.NewGormLocationRepository(db.DB)
	stockLevelRepo := persistence.NewGormStockLevelRepository(db.DB)
	transactionRepo := persistence.NewGormTransactionRepository(db.DB)
	countRepo := persistence.NewGormCountRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	txScope := persistence.NewGormTransactionScope(db.DB)

	// Application services
	categoryService := catalogapp.NewCategoryService(categoryRepo)
	productService := catalogapp.NewProductService(productRepo)
	supplierService := partnerapp.NewSupplierService(supplierRepo)
	locationService := partnerapp.NewLocationService(locationRepo)
	stockService := inventoryapp.NewStockService(stockLevelRepo, productRepo, stockCache)
	transactionService := inventoryapp.NewTransactionService(txScope, transactionRepo, stockCache)
	countService := inventoryapp.NewCountService(txScope, countRepo, stockLevelRepo, productRepo, stockCache)
	orderService := tradeapp.NewOrderService(txScope, orderRepo, stockCache)

	// Auth
	credentials, err := auth.NewCredentialStore(cfg.Auth)
	if err != nil {
		log.Fatal("Invalid auth configuration", zap.Error(err))
	}
	jwtService := auth.NewJWTService(cfg.JWT)

	// Handlers
	categoryHandler := handler.NewCategoryHandler(categoryService)
	productHandler := handler.NewProductHandler(productService)
	supplierHandler := handler.NewSupplierHandler(supplierService)
	locationHandler := handler.NewLocationHandler(locationService)
	stockHandler := handler.NewStockHandler(stockService)
	transactionHandler := handler.NewTransactionHandler(transactionService)
	countHandler := handler.NewCountHandler(countService)
	orderHandler := handler.NewOrderHandler(orderService)
	authHandler := handler.NewAuthHandler(credentials, jwtService)
	systemHandler := handler.NewSystemHandler(db, version)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	middleware.SetupValidator()

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Health checks live outside the authenticated API surface
	engine.GET("/health", systemHandler.Health)

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Use(middleware.JWTAuthMiddlewareWithConfig(middleware.JWTMiddlewareConfig{
		JWTService: jwtService,
		SkipPaths: []string{
			"/api/v1/auth/login",
			"/api/v1/system/ping",
		},
	}))

	staff := middleware.RequireWrite()

	authRoutes := router.NewGroup("/auth").
		POST("/login", authHandler.Login).
		GET("/me", authHandler.Me)

	catalogRoutes := router.NewGroup("/catalog").
		POST("/categories", staff, categoryHandler.Create).
		GET("/categories", categoryHandler.List).
		GET("/categories/:id", categoryHandler.Get).
		PUT("/categories/:id", staff, categoryHandler.Update).
		DELETE("/categories/:id", staff, categoryHandler.Delete).
		POST("/products", staff, productHandler.Create).
		GET("/products", productHandler.List).
		GET("/products/:id", productHandler.Get).
		PUT("/products/:id", staff, productHandler.Update).
		POST("/products/:id/deactivate", staff, productHandler.Deactivate).
		DELETE("/products/:id", staff, productHandler.Delete)

	partnerRoutes := router.NewGroup("/partner").
		POST("/suppliers", staff, supplierHandler.Create).
		GET("/suppliers", supplierHandler.List).
		GET("/suppliers/:id", supplierHandler.Get).
		PUT("/suppliers/:id", staff, supplierHandler.Update).
		DELETE("/suppliers/:id", staff, supplierHandler.Delete).
		POST("/locations", staff, locationHandler.Create).
		GET("/locations", locationHandler.List).
		GET("/locations/default-storage", locationHandler.GetDefaultStorage).
		GET("/locations/:id", locationHandler.Get).
		PUT("/locations/:id", staff, locationHandler.Update).
		POST("/locations/:id/deactivate", staff, locationHandler.Deactivate).
		DELETE("/locations/:id", staff, locationHandler.Delete)

	inventoryRoutes := router.NewGroup("/inventory").
		GET("/stock", stockHandler.List).
		GET("/stock/below-par", stockHandler.ListBelowPar).
		GET("/stock/needs-reorder", stockHandler.ListNeedsReorder).
		GET("/stock/products/:id", stockHandler.GetProductStock).
		GET("/stock/products/:id/locations/:locationId", stockHandler.GetStockAt).
		POST("/transactions", staff, transactionHandler.Create).
		GET("/transactions", transactionHandler.List).
		GET("/transactions/:id", transactionHandler.Get).
		POST("/counts", staff, countHandler.Create).
		GET("/counts", countHandler.List).
		GET("/counts/:id", countHandler.Get).
		GET("/counts/:id/uncounted", countHandler.ListUncountedItems).
		POST("/counts/:id/items", staff, countHandler.AddItem).
		PUT("/counts/:id/items/:itemId", staff, countHandler.MarkItem).
		POST("/counts/:id/complete", staff, countHandler.Complete).
		POST("/counts/:id/cancel", staff, countHandler.Cancel)

	tradeRoutes := router.NewGroup("/trade").
		POST("/orders", staff, orderHandler.Create).
		GET("/orders", orderHandler.List).
		GET("/orders/:id", orderHandler.Get).
		DELETE("/orders/:id", staff, orderHandler.Delete).
		POST("/orders/:id/items", staff, orderHandler.AddItem).
		PUT("/orders/:id/items/:itemId", staff, orderHandler.UpdateItem).
		DELETE("/orders/:id/items/:itemId", staff, orderHandler.RemoveItem).
		POST("/orders/:id/submit", staff, orderHandler.Submit).
		POST("/orders/:id/place", staff, orderHandler.Place).
		POST("/orders/:id/cancel", staff, orderHandler.Cancel).
		POST("/orders/:id/receive", staff, orderHandler.Receive)

	systemRoutes := router.NewGroup("/system").
		GET("/ping", systemHandler.Ping)

	r.Register(authRoutes, catalogRoutes, partnerRoutes, inventoryRoutes, tradeRoutes, systemRoutes)
	r.Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
