package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/gorm"

	"retail-analytics/internal/auth"
	"retail-analytics/internal/config"
	"retail-analytics/internal/database"
	"retail-analytics/internal/handler"
	"retail-analytics/internal/middleware"
	"retail-analytics/internal/repository"
	"retail-analytics/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := newLogger(cfg)
	defer logger.Sync()

	db, err := database.Connect(cfg.Database, cfg.Debug)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}

	if err := database.Migrate(db); err != nil {
		logger.Fatal("failed to run migrations", zap.Error(err))
	}

	if cfg.SeedOnStart {
		if err := database.NewSeedManager(db, logger).SeedAll(); err != nil {
			logger.Fatal("failed to seed database", zap.Error(err))
		}
	}

	authorizer, err := auth.NewAuthorizer()
	if err != nil {
		logger.Fatal("failed to initialize authorizer", zap.Error(err))
	}

	r := setupRouter(cfg, logger, db, authorizer)

	logger.Info("starting server",
		zap.String("port", cfg.Port),
		zap.String("environment", cfg.Env),
		zap.String("database", cfg.Database.Driver),
	)
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Fatal("server exited", zap.Error(err))
	}
}

func newLogger(cfg *config.Config) *zap.Logger {
	var zcfg zap.Config
	if cfg.IsProduction() {
		zcfg = zap.NewProductionConfig()
	} else {
		zcfg = zap.NewDevelopmentConfig()
	}
	if level, err := zapcore.ParseLevel(cfg.LogLevel); err == nil {
		zcfg.Level = zap.NewAtomicLevelAt(level)
	}

	logger, err := zcfg.Build()
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	return logger
}

func setupRouter(cfg *config.Config, logger *zap.Logger, db *gorm.DB, authorizer *auth.Authorizer) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	orderRepo := repository.NewOrderRepository(db)
	productRepo := repository.NewProductRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	userRepo := repository.NewUserRepository(db)

	analyticsService := service.NewAnalyticsService(orderRepo, customerRepo, logger)
	orderService := service.NewOrderService(orderRepo, productRepo, customerRepo, logger)
	productService := service.NewProductService(productRepo)
	customerService := service.NewCustomerService(customerRepo)
	categoryService := service.NewCategoryService(categoryRepo)
	authService := auth.NewService(userRepo, cfg.JWT)

	authHandler := handler.NewAuthHandler(authService)
	metricsHandler := handler.NewMetricsHandler(analyticsService)
	orderHandler := handler.NewOrderHandler(orderService)
	productHandler := handler.NewProductHandler(productService)
	customerHandler := handler.NewCustomerHandler(customerService)
	categoryHandler := handler.NewCategoryHandler(categoryService)
	systemHandler := handler.NewSystemHandler(db, cfg)

	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.CORS(cfg.CORSOrigins))
	r.Use(middleware.ErrorHandler(logger, cfg.Debug))

	r.NoRoute(middleware.NotFoundHandler())
	r.NoMethod(middleware.MethodNotAllowedHandler())

	r.GET("/", systemHandler.Index)
	r.GET("/health", systemHandler.Health)

	api := r.Group("/api/v1")

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/login", authHandler.Login)
	}

	metrics := api.Group("/metrics")
	metrics.Use(middleware.AuthMiddleware(authService))
	{
		metrics.GET("/summary",
			middleware.RequirePermission(authorizer, "metrics", "read"),
			metricsHandler.Summary)
		metrics.GET("/top-customers",
			middleware.RequirePermission(authorizer, "metrics", "read"),
			metricsHandler.TopCustomers)
		metrics.GET("/revenue-by-category",
			middleware.RequirePermission(authorizer, "metrics", "read"),
			metricsHandler.RevenueByCategory)
	}

	orders := api.Group("/orders")
	orders.Use(middleware.AuthMiddleware(authService))
	{
		orders.POST("",
			middleware.RequirePermission(authorizer, "orders", "write"),
			orderHandler.Create)
		orders.GET("",
			middleware.RequirePermission(authorizer, "orders", "read"),
			orderHandler.List)
		orders.GET("/:id",
			middleware.RequirePermission(authorizer, "orders", "read"),
			orderHandler.Get)
		orders.PUT("/:id/items",
			middleware.RequirePermission(authorizer, "orders", "write"),
			orderHandler.UpdateItems)
		orders.PATCH("/:id/status",
			middleware.RequirePermission(authorizer, "orders", "write"),
			orderHandler.UpdateStatus)
		orders.DELETE("/:id",
			middleware.RequirePermission(authorizer, "orders", "delete"),
			orderHandler.Delete)
	}

	products := api.Group("/products")
	products.Use(middleware.AuthMiddleware(authService))
	{
		products.GET("",
			middleware.RequirePermission(authorizer, "products", "read"),
			productHandler.List)
		products.GET("/:id",
			middleware.RequirePermission(authorizer, "products", "read"),
			productHandler.Get)
	}

	customers := api.Group("/customers")
	customers.Use(middleware.AuthMiddleware(authService))
	{
		customers.GET("",
			middleware.RequirePermission(authorizer, "customers", "read"),
			customerHandler.List)
		customers.GET("/:id",
			middleware.RequirePermission(authorizer, "customers", "read"),
			customerHandler.Get)
	}

	categories := api.Group("/categories")
	categories.Use(middleware.AuthMiddleware(authService))
	{
		categories.GET("",
			middleware.RequirePermission(authorizer, "categories", "read"),
			categoryHandler.List)
		categories.GET("/:id",
			middleware.RequirePermission(authorizer, "categories", "read"),
			categoryHandler.Get)
	}

	return r
}
