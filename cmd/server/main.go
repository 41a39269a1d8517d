// Package main runs the storefront content HTTP server with graceful shutdown.
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
	"go.uber.org/zap/zapcore"

	"github.com/asman-store/backend/config"
	"github.com/asman-store/backend/internal/auth"
	"github.com/asman-store/backend/internal/banners"
	"github.com/asman-store/backend/internal/middleware"
	"github.com/asman-store/backend/internal/models"
	"github.com/asman-store/backend/internal/tracking"
	"github.com/asman-store/backend/pkg/database"
	"github.com/asman-store/backend/pkg/queue"
	"github.com/asman-store/backend/pkg/redis"
	"github.com/asman-store/backend/pkg/response"
	"github.com/asman-store/backend/pkg/storage"
)

func main() {
	logger := newLogger()
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("load config", zap.Error(err))
	}

	ctx := context.Background()
	pool, err := database.NewPostgresPool(ctx, cfg.Database.DSN(), logger)
	if err != nil {
		logger.Fatal("database", zap.Error(err))
	}
	defer pool.Close()

	if err := database.Migrate(ctx, pool); err != nil {
		logger.Fatal("migrate", zap.Error(err))
	}

	rdb, err := redis.NewClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, logger)
	if err != nil {
		logger.Fatal("redis", zap.Error(err))
	}
	defer rdb.Close()

	var s3Client *storage.S3
	if cfg.AWS.Region != "" {
		s3Cfg := storage.S3Config{
			Region:               cfg.AWS.Region,
			AccessKeyID:          cfg.AWS.AccessKeyID,
			SecretAccessKey:      cfg.AWS.SecretAccessKey,
			BannersBucket:        cfg.AWS.BannersBucket,
			PresignExpireMinutes: cfg.AWS.PresignExpireMinutes,
		}
		s3Client, err = storage.NewS3(ctx, s3Cfg, logger)
		if err != nil {
			logger.Warn("s3 disabled", zap.Error(err))
		}
	}

	jwtService := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.ExpireHours)

	// Auth
	authRepo := auth.NewRepository(pool)
	authHandler := auth.NewHandler(authRepo, jwtService, logger)

	// Banners
	bannerRepo := banners.NewRepository(pool)
	var assets banners.AssetResolver
	if s3Client != nil {
		assets = s3Client
	}
	projector := banners.NewProjector(assets)
	bannerHandler := banners.NewHandler(bannerRepo, projector, cfg.Content.DefaultMarket, logger)
	adminHandler := banners.NewAdminHandler(bannerRepo, s3Client, logger)

	// Analytics intake (view/click counters applied by the worker)
	jobQueue := queue.NewQueue(rdb.Client, logger)
	trackingHandler := tracking.NewHandler(jobQueue, cfg.Content.DefaultMarket, logger)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORS(cfg.Server.CORSAllowedOrigins))
	router.Use(middleware.Logger(logger))

	// Health
	router.GET("/health", func(c *gin.Context) { response.OK(c, gin.H{"status": "ok"}) })

	// Auth (public)
	authGroup := router.Group("/auth")
	{
		authGroup.POST("/login", authHandler.Login)
		authGroup.POST("/register", authHandler.Register)
	}

	api := router.Group("/api/v1")

	// Public storefront content. Identity is optional; when present, the
	// caller's home market wins market resolution.
	public := api.Group("")
	public.Use(middleware.OptionalJWT(jwtService))
	{
		public.GET("/banners", bannerHandler.List)
		public.GET("/banners/hero", bannerHandler.ListByType(models.BannerTypeHero))
		public.GET("/banners/promo", bannerHandler.ListByType(models.BannerTypePromo))
		public.GET("/banners/category", bannerHandler.ListByType(models.BannerTypeCategory))

		public.POST("/banners/:id/view", trackingHandler.View)
		public.POST("/banners/:id/click", trackingHandler.Click)
	}

	// Admin authoring surface (JWT required)
	admin := api.Group("/admin")
	admin.Use(middleware.JWT(jwtService), middleware.RequireRole("admin"))
	{
		admin.GET("/banners", adminHandler.List)
		admin.POST("/banners", adminHandler.Create)
		admin.PATCH("/banners/:id", adminHandler.Update)
		admin.PATCH("/banners/:id/toggle", adminHandler.Toggle)
		admin.DELETE("/banners/:id", adminHandler.Delete)
		admin.POST("/banners/upload", adminHandler.UploadImage)
		admin.POST("/banners/generate-upload-url", adminHandler.GenerateUploadURL)

		admin.GET("/users", authHandler.List)
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		logger.Info("server listening", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", zap.Error(err))
	}
	logger.Info("server stopped")
}

func newLogger() *zap.Logger {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	logger, _ := config.Build()
	return logger
}
