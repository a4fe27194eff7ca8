package main

import (
	"context"
	"crypto/tls"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/TiltTrack/tilt-track-backend/config"
	"github.com/TiltTrack/tilt-track-backend/db"
	"github.com/TiltTrack/tilt-track-backend/handlers"
	"github.com/TiltTrack/tilt-track-backend/internal/store/postgres"
	"github.com/TiltTrack/tilt-track-backend/logger"
	"github.com/TiltTrack/tilt-track-backend/middleware"
	"github.com/TiltTrack/tilt-track-backend/router"
	"github.com/TiltTrack/tilt-track-backend/services"
)

func main() {
	logger.InitLogger()
	log := logger.GetLogger()
	defer func() {
		_ = logger.Close()
	}()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := db.RunMigrations(cfg.Database.URL()); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	redisOptions := &redis.Options{
		Addr:     cfg.Redis.Address,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}
	if cfg.Redis.UseTLS {
		redisOptions.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	redisClient := redis.NewClient(redisOptions)
	defer func() {
		_ = redisClient.Close()
	}()

	// Stores
	quotaStore := postgres.NewFeedbackQuotaStore(pool)
	logStore := postgres.NewLogStore(pool)
	activityStore := postgres.NewActivityStore(pool)
	userStore := postgres.NewUserStore(pool)

	// Services
	emailService := services.NewEmailService(&cfg.Email)
	feedbackService := services.NewFeedbackService(quotaStore, emailService, &cfg.Email)
	trackingService := services.NewTrackingService(logStore, activityStore)
	userService := services.NewUserService(userStore)
	educationService := services.NewEducationService()
	healthService := services.NewHealthService(pool, redisClient, cfg.Server.Version)

	jwtValidator, err := middleware.NewJWTValidator(ctx, &cfg.Supabase)
	if err != nil {
		log.Fatalf("Failed to initialize JWT validator: %v", err)
	}

	r := router.SetupRouter(router.Dependencies{
		Config:           cfg,
		JWTValidator:     jwtValidator,
		RedisClient:      redisClient,
		FeedbackHandler:  handlers.NewFeedbackHandler(feedbackService),
		LogsHandler:      handlers.NewLogsHandler(trackingService),
		ActivityHandler:  handlers.NewActivityHandler(trackingService),
		DashboardHandler: handlers.NewDashboardHandler(trackingService),
		UserHandler:      handlers.NewUserHandler(userService),
		EducationHandler: handlers.NewEducationHandler(educationService),
		HealthHandler:    handlers.NewHealthHandler(healthService),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Infow("Server starting", "port", cfg.Server.Port, "environment", cfg.Server.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Errorw("Server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("Shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorw("Graceful shutdown failed", "error", err)
		os.Exit(1)
	}
	log.Info("Server stopped")
}
