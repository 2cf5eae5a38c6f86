package main

import (
	"context"
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/zeon-projects/beach-cleanup-api/api/swagger"
	"github.com/zeon-projects/beach-cleanup-api/internal/handler"
	"github.com/zeon-projects/beach-cleanup-api/internal/middleware"
	"github.com/zeon-projects/beach-cleanup-api/internal/notifier"
	"github.com/zeon-projects/beach-cleanup-api/internal/repository"
	"github.com/zeon-projects/beach-cleanup-api/internal/service"
	"github.com/zeon-projects/beach-cleanup-api/pkg/cache"
	"github.com/zeon-projects/beach-cleanup-api/pkg/config"
	"github.com/zeon-projects/beach-cleanup-api/pkg/database"
	"github.com/zeon-projects/beach-cleanup-api/pkg/logger"
	"github.com/zeon-projects/beach-cleanup-api/pkg/mailer"
	corsmiddleware "github.com/zeon-projects/beach-cleanup-api/pkg/middleware/cors"
	reqidmiddleware "github.com/zeon-projects/beach-cleanup-api/pkg/middleware/requestid"
)

// @title Beach Cleanup Registration API
// @version 1.0.0
// @description Event registration write path with confirmation emails
// @BasePath /
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

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}

	redisClient := cache.NewOptional(cfg.Redis, logr)

	metricsSvc := service.NewMetricsService()

	var emailNotifier *notifier.EmailNotifier
	mail, err := mailer.New(cfg.SMTP)
	if err != nil {
		logr.Sugar().Errorw("mail transport unavailable, confirmations disabled", "error", err)
	} else {
		logr.Sugar().Infow("mail transport ready", "host", cfg.SMTP.Host)
		emailNotifier = notifier.New(mail, cfg.Event, notifier.Config{
			Workers:    cfg.Notifier.Workers,
			BufferSize: cfg.Notifier.BufferSize,
			Logger:     logr,
			Metrics:    metricsSvc,
		})
		emailNotifier.Start(context.Background())
		defer emailNotifier.Stop()
	}

	repo := repository.NewRegistrationRepository(db)

	registrationSvc := service.NewRegistrationService(
		repo,
		emailNotifier,
		validator.New(),
		logr,
		service.RegistrationServiceOptions{
			Cache:    redisClient,
			CacheTTL: cfg.Stats.CacheTTL,
			Metrics:  metricsSvc,
		},
	)

	registrationHandler := handler.NewRegistrationHandler(registrationSvc)
	healthHandler := handler.NewHealthHandler(registrationSvc, metricsSvc)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/", healthHandler.Root)
	r.GET("/health", healthHandler.Health)
	r.GET("/ready", healthHandler.Ready)
	r.GET("/metrics", healthHandler.Prometheus)

	api := r.Group(cfg.APIPrefix)
	api.POST("/register", registrationHandler.Register)
	api.GET("/registrations/count", registrationHandler.Count)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
