package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/inkyard/petstock-api/api/swagger"
	"github.com/inkyard/petstock-api/internal/advice"
	"github.com/inkyard/petstock-api/internal/handler"
	"github.com/inkyard/petstock-api/internal/middleware"
	"github.com/inkyard/petstock-api/internal/models"
	"github.com/inkyard/petstock-api/internal/repository"
	"github.com/inkyard/petstock-api/internal/service"
	"github.com/inkyard/petstock-api/pkg/cache"
	"github.com/inkyard/petstock-api/pkg/config"
	"github.com/inkyard/petstock-api/pkg/database"
	"github.com/inkyard/petstock-api/pkg/logger"
	corsmiddleware "github.com/inkyard/petstock-api/pkg/middleware/cors"
	reqidmiddleware "github.com/inkyard/petstock-api/pkg/middleware/requestid"
)

// @title Petstock API
// @version 1.0.0
// @description Pet inventory management for the shop floor
// @BasePath /api/v1
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	db, err := database.NewSQLite(cfg.Store)
	if err != nil {
		logr.Sugar().Fatalw("failed to open record store", "path", cfg.Store.Path, "error", err)
	}
	defer db.Close()

	store, err := repository.NewKVStore(db)
	if err != nil {
		logr.Sugar().Fatalw("failed to init record store", "error", err)
	}

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Warnw("redis unavailable, advice caching disabled", "error", err)
		redisClient = nil
	}
	cacheRepo := repository.NewCacheRepository(redisClient, logr)

	validate := validator.New()
	metricsSvc := service.NewMetricsService()

	authSvc := service.NewAuthService(store, validate, logr, service.AuthConfig{
		TokenSecret:   cfg.JWT.Secret,
		TokenExpiry:   cfg.JWT.Expiration,
		Issuer:        cfg.JWT.Issuer,
		AdminUsername: cfg.Store.AdminUsername,
		AdminPassword: cfg.Store.AdminPassword,
	})
	if err := authSvc.Bootstrap(context.Background()); err != nil {
		logr.Sugar().Fatalw("failed to seed record store", "error", err)
	}

	inventorySvc := service.NewInventoryService(store, validate, logr, metricsSvc)
	accountSvc := service.NewAccountService(store, logr)

	var generator advice.Generator
	if cfg.Advice.Enabled {
		generator = advice.NewHTTPGenerator(cfg.Advice)
	}
	adviceSvc := service.NewAdviceService(generator, cacheRepo, cfg.Advice.CacheTTL, logr)
	exportSvc := service.NewExportService(inventorySvc)

	authHandler := handler.NewAuthHandler(authSvc)
	petHandler := handler.NewPetHandler(inventorySvc, adviceSvc, exportSvc)
	accountHandler := handler.NewAccountHandler(accountSvc)
	metricsHandler := handler.NewMetricsHandler(metricsSvc)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", metricsHandler.Scrape)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)

	auth := api.Group("/auth")
	auth.POST("/login", authHandler.Login)
	auth.POST("/register", authHandler.Register)
	auth.POST("/logout", middleware.JWT(authSvc), authHandler.Logout)
	auth.GET("/me", middleware.JWT(authSvc), authHandler.Me)

	pets := api.Group("/pets", middleware.JWT(authSvc))
	pets.GET("", petHandler.List)
	pets.POST("", petHandler.Intake)
	pets.GET("/lookup", petHandler.Lookup)
	pets.GET("/export", petHandler.Export)
	pets.GET("/:id", petHandler.Get)
	pets.GET("/:id/advice", petHandler.Advice)
	pets.PATCH("/:id/status", petHandler.Transition)
	pets.DELETE("/:id", petHandler.Remove)

	accounts := api.Group("/accounts", middleware.JWT(authSvc), middleware.RequireRoles(models.RoleAdmin))
	accounts.GET("", accountHandler.List)
	accounts.PATCH("/:id/status", accountHandler.ToggleStatus)

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env, "store", cfg.Store.Path)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
