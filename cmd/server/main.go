// Package main is the entry point for the Gridiron fantasy football API.
// It serves ranked player listings, trade simulation and roster session
// analytics over a single SQLite store that periodic loaders keep fresh.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gridironhq/gridiron/internal/clients/sleeper"
	"github.com/gridironhq/gridiron/internal/config"
	"github.com/gridironhq/gridiron/internal/database"
	"github.com/gridironhq/gridiron/internal/modules/ingest"
	"github.com/gridironhq/gridiron/internal/reliability"
	"github.com/gridironhq/gridiron/internal/scheduler"
	"github.com/gridironhq/gridiron/internal/server"
	"github.com/gridironhq/gridiron/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("failed to load configuration: " + err.Error() + "\n")
		os.Exit(1)
	}

	log := logger.New(logger.Config{Level: cfg.LogLevel, Pretty: cfg.DevMode})
	logger.SetGlobalLogger(log)

	db, err := database.New(cfg.DatabasePath())
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open database")
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		log.Fatal().Err(err).Msg("Failed to migrate database")
	}

	sleeperClient := sleeper.NewClient(cfg.SleeperBaseURL, log)
	ingestRepo := ingest.NewRepository(db.Conn(), log)
	ingestService := ingest.NewService(ingestRepo, sleeperClient, log)

	var backupService *reliability.BackupService
	if cfg.Backup.Enabled() {
		s3Client, err := reliability.NewS3Client(context.Background(), reliability.S3Config{
			Endpoint:  cfg.Backup.Endpoint,
			Bucket:    cfg.Backup.Bucket,
			AccessKey: cfg.Backup.AccessKey,
			SecretKey: cfg.Backup.SecretKey,
		}, log)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create backup client")
		}
		backupService = reliability.NewBackupService(s3Client, db, cfg.DataDir, cfg.Backup.Retention, log)
	}

	sched := scheduler.New(log)
	if err := sched.AddJob(cfg.TrendingSyncSchedule, scheduler.NewTrendingSyncJob(ingestService)); err != nil {
		log.Fatal().Err(err).Msg("Failed to register trending sync job")
	}
	if err := sched.AddJob(cfg.PlayerSyncSchedule, scheduler.NewPlayerSyncJob(ingestService)); err != nil {
		log.Fatal().Err(err).Msg("Failed to register player sync job")
	}
	if backupService != nil {
		if err := sched.AddJob(cfg.BackupSchedule, scheduler.NewBackupJob(backupService)); err != nil {
			log.Fatal().Err(err).Msg("Failed to register backup job")
		}
	}
	sched.Start()
	defer sched.Stop()

	srv := server.New(server.Config{
		Log:           log,
		DB:            db,
		Config:        cfg,
		IngestService: ingestService,
		BackupService: backupService,
	})

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	log.Info().
		Int("port", cfg.Port).
		Str("data_dir", cfg.DataDir).
		Msg("Gridiron started")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server shutdown failed")
	}

	log.Info().Msg("Gridiron stopped")
}
