package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/petsalon/salon-api/internal/config"
	"github.com/petsalon/salon-api/internal/pkg/database"
	"github.com/petsalon/salon-api/internal/pkg/email"
	"github.com/petsalon/salon-api/internal/pkg/logger"
	"github.com/petsalon/salon-api/internal/pkg/metrics"
	"github.com/petsalon/salon-api/internal/pkg/ratelimit"
)

func main() {
	cfg := config.Load()
	if err := logger.Init(logger.Config{Level: cfg.LogLevel, Environment: cfg.Env}); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialise logger")
	}

	log.Info().
		Str("env", cfg.Env).
		Str("port", cfg.Port).
		Msg("Starting grooming salon API")

	ctx := context.Background()

	db, err := database.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer database.Close(db)

	if err := database.Migrate(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("Failed to migrate database")
	}
	if cfg.SeedOnStart {
		if err := database.Seed(ctx, db); err != nil {
			log.Fatal().Err(err).Msg("Failed to seed database")
		}
	}

	redis, err := database.NewRedis(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer database.CloseRedis(redis)

	d := deps{
		db:          db,
		allowOrigin: cfg.AllowedOrigins,
	}
	if redis != nil {
		d.limiter = ratelimit.New(redis, cfg.RateLimitPerMinute, time.Minute)
	}
	if cfg.MetricsEnabled {
		d.metrics = metrics.New()
	}
	if cfg.NotificationsEnabled() {
		d.notifier = email.NewService(email.Config{
			SendGrid: email.SendGridConfig{
				APIKey:    cfg.SendGridAPIKey,
				FromEmail: cfg.EmailFrom,
				FromName:  cfg.EmailFromName,
			},
			StaffEmail: cfg.StaffEmail,
		})
		defer d.notifier.Close()
	}
	if cfg.StorageDriver == "" || cfg.StorageDriver == "local" {
		d.uploadsDir = cfg.LocalStoragePath
	}

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      newRouter(d),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Msg("HTTP server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("HTTP server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
		return
	}

	log.Info().Msg("Server exited properly")
}
