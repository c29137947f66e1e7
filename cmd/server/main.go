package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/eliasbui/asia-shop/config"
	"github.com/eliasbui/asia-shop/internal/middleware"
	"github.com/eliasbui/asia-shop/pkg/cache"
	"github.com/eliasbui/asia-shop/pkg/database"
	"github.com/eliasbui/asia-shop/pkg/logger"
	"github.com/eliasbui/asia-shop/pkg/search"

	attrH "github.com/eliasbui/asia-shop/internal/attribute/handler"
	attrRepoPkg "github.com/eliasbui/asia-shop/internal/attribute/repository"
	attrUCPkg "github.com/eliasbui/asia-shop/internal/attribute/usecase"

	catH "github.com/eliasbui/asia-shop/internal/category/handler"
	catRepoPkg "github.com/eliasbui/asia-shop/internal/category/repository"
	catUCPkg "github.com/eliasbui/asia-shop/internal/category/usecase"

	prodH "github.com/eliasbui/asia-shop/internal/product/handler"
	prodRepoPkg "github.com/eliasbui/asia-shop/internal/product/repository"
	prodUCPkg "github.com/eliasbui/asia-shop/internal/product/usecase"

	shopH "github.com/eliasbui/asia-shop/internal/shop/handler"
	shopRepoPkg "github.com/eliasbui/asia-shop/internal/shop/repository"
	shopUCPkg "github.com/eliasbui/asia-shop/internal/shop/usecase"

	translH "github.com/eliasbui/asia-shop/internal/translation/handler"
	translRepoPkg "github.com/eliasbui/asia-shop/internal/translation/repository"
	translUCPkg "github.com/eliasbui/asia-shop/internal/translation/usecase"
)

func main() {
	// 1. Load Configuration
	_ = godotenv.Load() // Load .env file if it exists
	cfg := config.LoadEnv()

	// 2. Initialize Logger
	logConfig := &logger.ZapLoggerConfig{
		IsDevelopment:     false,
		Encoding:          "json",
		Level:             "info",
		DisableCaller:     cfg.Logger.DisableCaller,
		DisableStacktrace: cfg.Logger.DisableStacktrace,
	}

	if cfg.Server.AppEnv == "dev" || cfg.Server.AppEnv == "development" {
		logConfig.IsDevelopment = true
		logConfig.Encoding = cfg.Logger.Encoding
		logConfig.Level = cfg.Logger.Level
	}

	appLogger := logger.NewZapLogger(logConfig)
	defer appLogger.Sync()

	// 3. Connect to Database
	db, err := database.NewPostgres(&database.Config{
		Host:            cfg.Postgres.Host,
		Port:            cfg.Postgres.Port,
		User:            cfg.Postgres.User,
		Password:        cfg.Postgres.Password,
		DBName:          cfg.Postgres.DBName,
		SSLMode:         cfg.Postgres.SSLMode,
		MaxOpenConns:    cfg.Postgres.MaxOpenConns,
		MaxIdleConns:    cfg.Postgres.MaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.Postgres.ConnMaxLifetime) * time.Second,
		ConnMaxIdleTime: time.Duration(cfg.Postgres.ConnMaxIdleTime) * time.Second,
	})
	if err != nil {
		appLogger.Fatal("Could not connect to database", zap.Error(err))
	}
	defer db.Close()
	appLogger.Info("Connected to PostgreSQL database", zap.String("db_name", cfg.Postgres.DBName))

	// 4. Initialize Redis
	redisClient, err := cache.NewRedisClient(&cache.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		appLogger.Warn("Could not connect to Redis (caching disabled)", zap.Error(err))
		redisClient = nil
	} else {
		defer redisClient.Close()
		appLogger.Info("Connected to Redis", zap.String("addr", cfg.Redis.Addr))
	}

	// 5. Initialize Elasticsearch
	esClient, err := search.NewClient(&search.Config{
		Addresses: cfg.Elastic.Addresses,
		Username:  cfg.Elastic.Username,
		Password:  cfg.Elastic.Password,
	})
	if err != nil {
		appLogger.Warn("Could not connect to Elasticsearch (search falls back to database)", zap.Error(err))
		esClient = nil
	} else {
		appLogger.Info("Connected to Elasticsearch", zap.Strings("addresses", cfg.Elastic.Addresses))
	}

	// 6. Initialize Repositories
	catRepo := catRepoPkg.NewPGRepository(db)
	attrRepo := attrRepoPkg.NewPGRepository(db)
	prodRepo := prodRepoPkg.NewPGRepository(db)
	shopRepo := shopRepoPkg.NewPGRepository(db)
	translRepo := translRepoPkg.NewPGRepository(db)

	// 7. Initialize UseCases
	translUC := translUCPkg.NewTranslationUseCase(translRepo, appLogger)
	catUC := catUCPkg.NewCategoryUseCase(catRepo, translUC, appLogger)
	attrUC := attrUCPkg.NewAttributeUseCase(attrRepo, redisClient, appLogger)
	prodUC := prodUCPkg.NewProductUseCase(prodRepo, attrUC, translUC, redisClient, esClient, appLogger)
	shopUC := shopUCPkg.NewShopUseCase(shopRepo, translUC, appLogger)

	// 8. Initialize Handlers
	catHandler := catH.NewCategoryHandler(catUC, appLogger)
	attrHandler := attrH.NewAttributeHandler(attrUC, appLogger)
	prodHandler := prodH.NewProductHandler(prodUC, appLogger)
	shopHandler := shopH.NewShopHandler(shopUC, appLogger)
	translHandler := translH.NewTranslationHandler(translUC, appLogger)

	// 9. HTTP Router
	if cfg.Server.AppEnv != "dev" && cfg.Server.AppEnv != "development" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	auth := middleware.RequireAuth(cfg.JWT.SecretKey)
	api := router.Group("/api/v1")
	catHandler.Routes(api, auth)
	attrHandler.Routes(api, auth)
	prodHandler.Routes(api, auth)
	shopHandler.Routes(api, auth)
	translHandler.Routes(api, auth)

	// 10. Start HTTP Server
	port := cfg.Server.HTTPPort
	if !strings.HasPrefix(port, ":") {
		port = ":" + port
	}

	srv := &http.Server{
		Addr:    port,
		Handler: router,
	}

	go func() {
		appLogger.Info("Starting HTTP server", zap.String("port", port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal("failed to serve", zap.Error(err))
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Error("forced shutdown", zap.Error(err))
	}
	appLogger.Info("Server stopped")
}
