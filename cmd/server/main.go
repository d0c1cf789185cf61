package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	catalogapp "github.com/retailcore/backend/internal/application/catalog"
	inventoryapp "github.com/retailcore/backend/internal/application/inventory"
	partnerapp "github.com/retailcore/backend/internal/application/partner"
	pricingapp "github.com/retailcore/backend/internal/application/pricing"
	reportapp "github.com/retailcore/backend/internal/application/report"
	tradeapp "github.com/retailcore/backend/internal/application/trade"
	"github.com/retailcore/backend/internal/infrastructure/auth"
	"github.com/retailcore/backend/internal/infrastructure/cache"
	"github.com/retailcore/backend/internal/infrastructure/config"
	"github.com/retailcore/backend/internal/infrastructure/event"
	"github.com/retailcore/backend/internal/infrastructure/logger"
	"github.com/retailcore/backend/internal/infrastructure/persistence"
	"github.com/retailcore/backend/internal/infrastructure/telemetry"
	"github.com/retailcore/backend/internal/interfaces/http/handler"
	"github.com/retailcore/backend/internal/interfaces/http/middleware"
	"github.com/retailcore/backend/internal/interfaces/http/router"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting retailcore backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, log, logger.MapGormLogLevel(cfg.Log.Level))
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected")

	if cfg.Telemetry.Enabled {
		tracing := telemetry.NewDBTracing(telemetry.DBTracingConfig{
			Enabled:     true,
			ServiceName: cfg.Telemetry.ServiceName,
		}, log)
		if err := tracing.Register(db.DB); err != nil {
			log.Warn("Failed to register database tracing", zap.Error(err))
		}
	}

	// Repositories
	productRepo := persistence.NewGormProductRepository(db.DB)
	categoryRepo := persistence.NewGormCategoryRepository(db.DB)
	customerRepo := persistence.NewGormCustomerRepository(db.DB)
	supplierRepo := persistence.NewGormSupplierRepository(db.DB)
	warehouseRepo := persistence.NewGormWarehouseRepository(db.DB)
	bracketRepo := persistence.NewGormPriceBracketRepository(db.DB)
	customPriceRepo := persistence.NewGormCustomerCustomPriceRepository(db.DB)
	flatPriceRepo := persistence.NewGormProductPriceRepository(db.DB)
	ledgerRepo := persistence.NewGormLedgerRepository(db.DB)
	adjustmentRepo := persistence.NewGormAdjustmentRepository(db.DB)
	transferRepo := persistence.NewGormTransferRepository(db.DB)
	orderRepo := persistence.NewGormPurchaseOrderRepository(db.DB)
	reportRepo := persistence.NewGormReceivingReportRepository(db.DB)
	costTypeRepo := persistence.NewGormAdditionalCostTypeRepository(db.DB)
	saleRepo := persistence.NewGormSaleRepository(db.DB)
	saleReturnRepo := persistence.NewGormSaleReturnRepository(db.DB)
	salesReportRepo := persistence.NewGormSalesReportRepository(db.DB)
	inventoryReportRepo := persistence.NewGormInventoryReportRepository(db.DB)

	// Transaction scopes
	pricingScope := persistence.NewPricingTransactionScope(db.DB)
	inventoryScope := persistence.NewInventoryTransactionScope(db.DB)
	tradeScope := persistence.NewTradeTransactionScope(db.DB)

	// Event bus with in-process subscribers
	bus := event.NewInMemoryEventBus(log)
	lowStockHandler := inventoryapp.NewLowStockHandler(log)
	bus.Subscribe(lowStockHandler, lowStockHandler.EventTypes()...)

	// Application services
	categoryService := catalogapp.NewCategoryService(categoryRepo, productRepo)
	productService := catalogapp.NewProductService(productRepo, categoryRepo, ledgerRepo)
	productService.SetEventPublisher(bus)

	customerService := partnerapp.NewCustomerService(customerRepo, customPriceRepo)
	customerService.SetEventPublisher(bus)
	supplierService := partnerapp.NewSupplierService(supplierRepo)
	warehouseService := partnerapp.NewWarehouseService(warehouseRepo)

	pricingService := pricingapp.NewPricingService(
		pricingScope, bracketRepo, customPriceRepo, flatPriceRepo, customerRepo, productRepo)
	if cfg.Redis.Host != "" {
		priceCache, err := cache.NewRedisPriceCache(cache.RedisConfig{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		}, log)
		if err != nil {
			log.Warn("Redis unavailable, falling back to in-memory price cache", zap.Error(err))
			pricingService.SetPriceCache(cache.NewInMemoryPriceCache(5 * time.Minute))
		} else {
			defer func() {
				_ = priceCache.Close()
			}()
			pricingService.SetPriceCache(priceCache)
			log.Info("Redis price cache enabled")
		}
	} else {
		pricingService.SetPriceCache(cache.NewInMemoryPriceCache(5 * time.Minute))
	}

	inventoryService := inventoryapp.NewInventoryService(
		inventoryScope, ledgerRepo, adjustmentRepo, productRepo, warehouseRepo)
	inventoryService.SetEventPublisher(bus)
	transferService := inventoryapp.NewTransferService(
		inventoryScope, transferRepo, productRepo, warehouseRepo)
	transferService.SetEventPublisher(bus)

	orderService := tradeapp.NewPurchaseOrderService(orderRepo, supplierRepo, warehouseRepo, productRepo)
	orderService.SetEventPublisher(bus)
	receivingService := tradeapp.NewReceivingService(tradeScope, reportRepo, costTypeRepo)
	receivingService.SetEventPublisher(bus)
	salesService := tradeapp.NewSalesOrderService(
		tradeScope, saleRepo, customerRepo, warehouseRepo, productRepo,
		pricingService, cfg.Trade.DiscountApprovalThreshold)
	salesService.SetEventPublisher(bus)
	returnService := tradeapp.NewSalesReturnService(tradeScope, saleReturnRepo)
	returnService.SetEventPublisher(bus)

	reportService := reportapp.NewReportService(salesReportRepo, inventoryReportRepo)

	// HTTP handlers
	productHandler := handler.NewProductHandler(productService)
	categoryHandler := handler.NewCategoryHandler(categoryService)
	customerHandler := handler.NewCustomerHandler(customerService)
	supplierHandler := handler.NewSupplierHandler(supplierService)
	warehouseHandler := handler.NewWarehouseHandler(warehouseService)
	pricingHandler := handler.NewPricingHandler(pricingService)
	inventoryHandler := handler.NewInventoryHandler(inventoryService)
	transferHandler := handler.NewTransferHandler(transferService)
	orderHandler := handler.NewPurchaseOrderHandler(orderService)
	receivingHandler := handler.NewReceivingHandler(receivingService)
	salesHandler := handler.NewSalesOrderHandler(salesService)
	returnHandler := handler.NewSalesReturnHandler(returnService)
	reportHandler := handler.NewReportHandler(reportService)
	systemHandler := handler.NewSystemHandler(db, cfg.App.Name, cfg.App.Env)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Fatal("Invalid trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))
	if cfg.HTTP.RateLimitPerMin > 0 {
		engine.Use(middleware.RateLimit(middleware.NewRateLimiter(cfg.HTTP.RateLimitPerMin, time.Minute)))
	}
	if cfg.Telemetry.Enabled {
		engine.Use(middleware.TracingWithConfig(middleware.TracingConfig{
			ServiceName: cfg.Telemetry.ServiceName,
			Enabled:     true,
		}))
	}
	if cfg.JWT.Secret != "" {
		jwtService := auth.NewJWTService(cfg.JWT)
		engine.Use(middleware.JWTAuthMiddleware(jwtService))
	} else {
		log.Warn("JWT secret not configured, requests are unauthenticated")
	}

	engine.GET("/health", systemHandler.Health)
	engine.GET("/ready", systemHandler.Ready)

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))

	catalogRoutes := router.NewDomainGroup("catalog", "/catalog")
	catalogRoutes.POST("/products", productHandler.Create)
	catalogRoutes.GET("/products", productHandler.List)
	catalogRoutes.GET("/products/:id", productHandler.GetByID)
	catalogRoutes.PUT("/products/:id", productHandler.Update)
	catalogRoutes.DELETE("/products/:id", productHandler.Delete)
	catalogRoutes.GET("/products/sku/:sku", productHandler.GetBySKU)
	catalogRoutes.POST("/products/:id/activate", productHandler.Activate)
	catalogRoutes.POST("/products/:id/deactivate", productHandler.Deactivate)
	catalogRoutes.POST("/products/:id/discontinue", productHandler.Discontinue)
	catalogRoutes.POST("/categories", categoryHandler.Create)
	catalogRoutes.GET("/categories", categoryHandler.List)
	catalogRoutes.PUT("/categories/:id", categoryHandler.Rename)
	catalogRoutes.DELETE("/categories/:id", categoryHandler.Delete)
	catalogRoutes.GET("/categories/:id/products", productHandler.ListByCategory)

	partnerRoutes := router.NewDomainGroup("partner", "/partner")
	partnerRoutes.POST("/customers", customerHandler.Create)
	partnerRoutes.GET("/customers", customerHandler.List)
	partnerRoutes.GET("/customers/valued", customerHandler.ListValued)
	partnerRoutes.GET("/customers/code/:code", customerHandler.GetByCode)
	partnerRoutes.GET("/customers/:id", customerHandler.GetByID)
	partnerRoutes.PUT("/customers/:id", customerHandler.Update)
	partnerRoutes.POST("/customers/:id/valued", customerHandler.MarkValued)
	partnerRoutes.DELETE("/customers/:id/valued", customerHandler.UnmarkValued)
	partnerRoutes.POST("/customers/:id/activate", customerHandler.Activate)
	partnerRoutes.POST("/customers/:id/deactivate", customerHandler.Deactivate)
	partnerRoutes.GET("/customers/:id/custom-prices", pricingHandler.GetCustomPrices)
	partnerRoutes.PUT("/customers/:id/custom-prices", pricingHandler.SetCustomPrices)
	partnerRoutes.POST("/suppliers", supplierHandler.Create)
	partnerRoutes.GET("/suppliers", supplierHandler.List)
	partnerRoutes.GET("/suppliers/code/:code", supplierHandler.GetByCode)
	partnerRoutes.GET("/suppliers/:id", supplierHandler.GetByID)
	partnerRoutes.PUT("/suppliers/:id", supplierHandler.Update)
	partnerRoutes.POST("/suppliers/:id/activate", supplierHandler.Activate)
	partnerRoutes.POST("/suppliers/:id/deactivate", supplierHandler.Deactivate)
	partnerRoutes.POST("/warehouses", warehouseHandler.Create)
	partnerRoutes.GET("/warehouses", warehouseHandler.List)
	partnerRoutes.GET("/warehouses/:id", warehouseHandler.GetByID)
	partnerRoutes.PUT("/warehouses/:id", warehouseHandler.Update)
	partnerRoutes.POST("/warehouses/:id/default", warehouseHandler.SetDefault)
	partnerRoutes.POST("/warehouses/:id/deactivate", warehouseHandler.Deactivate)

	pricingRoutes := router.NewDomainGroup("pricing", "/pricing")
	pricingRoutes.POST("/brackets", pricingHandler.CreateBracket)
	pricingRoutes.GET("/brackets/:id", pricingHandler.GetBracket)
	pricingRoutes.PUT("/brackets/:id", pricingHandler.UpdateBracket)
	pricingRoutes.POST("/brackets/:id/activate", pricingHandler.ActivateBracket)
	pricingRoutes.POST("/brackets/:id/clone", pricingHandler.CloneBracket)
	pricingRoutes.POST("/brackets/:id/items/import", pricingHandler.ImportBracketItems)
	pricingRoutes.GET("/products/:id/brackets", pricingHandler.ListBracketsByProduct)
	pricingRoutes.POST("/products/:id/deactivate", pricingHandler.DeactivatePricing)
	pricingRoutes.POST("/products/:id/suggestions", pricingHandler.Suggestions)
	pricingRoutes.GET("/quote", pricingHandler.Quote)
	pricingRoutes.GET("/breakdown", pricingHandler.Breakdown)
	pricingRoutes.DELETE("/custom-prices/:id", pricingHandler.RemoveCustomPrice)
	pricingRoutes.POST("/flat-prices", pricingHandler.SetFlatPrice)

	inventoryRoutes := router.NewDomainGroup("inventory", "/inventory")
	inventoryRoutes.POST("/adjustments", inventoryHandler.CreateAdjustment)
	inventoryRoutes.GET("/adjustments", inventoryHandler.ListAdjustments)
	inventoryRoutes.GET("/adjustments/:id", inventoryHandler.GetAdjustment)
	inventoryRoutes.POST("/adjustments/:id/void", inventoryHandler.VoidAdjustment)
	inventoryRoutes.GET("/stock", inventoryHandler.GetStockLevels)
	inventoryRoutes.GET("/low-stock", inventoryHandler.GetLowStock)
	inventoryRoutes.GET("/products/:id/on-hand", inventoryHandler.GetOnHand)
	inventoryRoutes.GET("/products/:id/ledger", inventoryHandler.GetLedgerHistory)
	inventoryRoutes.POST("/transfers", transferHandler.Create)
	inventoryRoutes.GET("/transfers", transferHandler.List)
	inventoryRoutes.GET("/transfers/:id", transferHandler.GetByID)
	inventoryRoutes.POST("/transfers/:id/complete", transferHandler.Complete)
	inventoryRoutes.POST("/transfers/:id/cancel", transferHandler.Cancel)

	tradeRoutes := router.NewDomainGroup("trade", "/trade")
	tradeRoutes.POST("/purchase-orders", orderHandler.Create)
	tradeRoutes.GET("/purchase-orders", orderHandler.List)
	tradeRoutes.GET("/purchase-orders/number/:number", orderHandler.GetByNumber)
	tradeRoutes.GET("/purchase-orders/supplier/:id", orderHandler.ListBySupplier)
	tradeRoutes.GET("/purchase-orders/:id", orderHandler.GetByID)
	tradeRoutes.POST("/purchase-orders/:id/items", orderHandler.AddItem)
	tradeRoutes.PUT("/purchase-orders/:id/items/:itemId", orderHandler.UpdateItemQuantity)
	tradeRoutes.DELETE("/purchase-orders/:id/items/:itemId", orderHandler.RemoveItem)
	tradeRoutes.PUT("/purchase-orders/:id/warehouse", orderHandler.SetWarehouse)
	tradeRoutes.POST("/purchase-orders/:id/confirm", orderHandler.Confirm)
	tradeRoutes.POST("/purchase-orders/:id/cancel", orderHandler.Cancel)
	tradeRoutes.POST("/receiving-reports", receivingHandler.CreateReport)
	tradeRoutes.GET("/receiving-reports", receivingHandler.ListReports)
	tradeRoutes.GET("/receiving-reports/order/:id", receivingHandler.ListReportsByOrder)
	tradeRoutes.GET("/receiving-reports/:id", receivingHandler.GetReport)
	tradeRoutes.PUT("/receiving-reports/:id", receivingHandler.UpdateReport)
	tradeRoutes.DELETE("/receiving-reports/:id", receivingHandler.DeleteReport)
	tradeRoutes.POST("/cost-types", receivingHandler.CreateCostType)
	tradeRoutes.GET("/cost-types", receivingHandler.ListCostTypes)
	tradeRoutes.PUT("/cost-types/:id", receivingHandler.RenameCostType)
	tradeRoutes.DELETE("/cost-types/:id", receivingHandler.DeleteCostType)
	tradeRoutes.POST("/sales", salesHandler.Create)
	tradeRoutes.GET("/sales", salesHandler.List)
	tradeRoutes.GET("/sales/number/:number", salesHandler.GetByNumber)
	tradeRoutes.GET("/sales/customer/:id", salesHandler.ListByCustomer)
	tradeRoutes.GET("/sales/:id", salesHandler.GetByID)
	tradeRoutes.POST("/sales/:id/discount", salesHandler.ApplyDiscount)
	tradeRoutes.POST("/sales/:id/confirm", salesHandler.Confirm)
	tradeRoutes.POST("/sales/:id/cancel", salesHandler.Cancel)
	tradeRoutes.POST("/sales/:id/payments", salesHandler.RecordPayment)
	tradeRoutes.POST("/sales/:id/deliver", salesHandler.MarkDelivered)
	tradeRoutes.POST("/returns", returnHandler.Create)
	tradeRoutes.GET("/returns/sale/:id", returnHandler.ListBySale)
	tradeRoutes.GET("/returns/:id", returnHandler.GetByID)

	reportRoutes := router.NewDomainGroup("report", "/reports")
	reportRoutes.GET("/sales/summary", reportHandler.SalesSummary)
	reportRoutes.GET("/sales/totals", reportHandler.SalesTotals)
	reportRoutes.GET("/sales/top-products", reportHandler.TopProducts)
	reportRoutes.GET("/sales/top-customers", reportHandler.TopCustomers)
	reportRoutes.GET("/inventory/movements", reportHandler.StockMovements)
	reportRoutes.GET("/inventory/valuation", reportHandler.StockValuation)
	reportRoutes.GET("/inventory/reorder-alerts", reportHandler.ReorderAlerts)

	systemRoutes := router.NewDomainGroup("system", "/system")
	systemRoutes.GET("/health", systemHandler.Health)
	systemRoutes.GET("/db-stats", systemHandler.DBStats)

	r.Register(catalogRoutes).
		Register(partnerRoutes).
		Register(pricingRoutes).
		Register(inventoryRoutes).
		Register(tradeRoutes).
		Register(reportRoutes).
		Register(systemRoutes)
	r.Setup()

	engine.GET("/api/v1/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Forced shutdown", zap.Error(err))
	}
	log.Info("Server stopped")
}
