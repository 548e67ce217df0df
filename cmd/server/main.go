package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/soporte-code/API-PORTALWEB/internal/config"
	"github.com/soporte-code/API-PORTALWEB/internal/infra"
	"github.com/soporte-code/API-PORTALWEB/internal/router"
	"github.com/soporte-code/API-PORTALWEB/internal/worker"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	configurarLog(cfg)

	db, err := infra.NewDatabase(cfg.DBDriver, cfg.DatabaseURL, cfg.DBAutoMigrate)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.DBDriver).Msg("failed to connect to database")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Redis is optional: without it there is no scope cache and no
	// notification queue.
	var rdb *redis.Client
	if cfg.RedisURL != "" {
		rdb, err = infra.NewRedis(cfg.RedisURL)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to redis")
		}
	}

	mailCB := infra.NewCircuitBreaker(5, 30*time.Second)
	var dispatcher *worker.Dispatcher
	if rdb != nil && cfg.MailHabilitado() {
		dispatcher = worker.NewDispatcher(rdb)
		mailer := infra.NewMailer(cfg, mailCB)
		worker.StartWorkerPool(ctx, rdb, worker.NewNotificacionWorker(mailer), cfg.WorkerPoolSize)
		worker.StartReintentos(ctx, rdb, mailCB)
		log.Info().Int("workers", cfg.WorkerPoolSize).Msg("notificaciones habilitadas")
	}

	var blob infra.BlobStore
	if cfg.BlobS3Bucket != "" {
		s3, err := infra.NewS3Store(ctx, infra.S3Config{
			Region:    cfg.BlobS3Region,
			Bucket:    cfg.BlobS3Bucket,
			Endpoint:  cfg.BlobS3Endpoint,
			PathStyle: cfg.BlobS3PathStyle,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("failed to configure blob storage")
		}
		blob = s3
	}

	r := router.New(cfg, router.Infra{
		DB:         db,
		Redis:      rdb,
		Blob:       blob,
		Dispatcher: dispatcher,
		MailCB:     mailCB,
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown on SIGINT / SIGTERM
	go func() {
		log.Info().Msgf("API portal listening on :%d", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server…")
	cancel()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("forced shutdown")
	}
	if rdb != nil {
		_ = rdb.Close()
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	log.Info().Msg("server exited")
}

// configurarLog: pretty console in development, JSON in production.
func configurarLog(cfg *config.Config) {
	nivel, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		nivel = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(nivel)
	if cfg.Env != "production" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}
}
