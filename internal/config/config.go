// Package config provides configuration management functionality.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	DataDir  string // Base directory for the database and backups (always absolute)
	Port     int
	LogLevel string
	DevMode  bool

	// Ingest settings
	SleeperBaseURL    string // Sleeper API base URL (override for testing)
	ValuationsCSVPath string // FantasyCalc redraft CSV; empty disables the valuation job

	// Background job schedules (robfig/cron syntax)
	TrendingSyncSchedule string
	PlayerSyncSchedule   string
	BackupSchedule       string

	Backup *BackupConfig
}

// BackupConfig holds S3-compatible backup storage settings. Enabled only
// when endpoint, bucket, and credentials are all present.
type BackupConfig struct {
	Endpoint  string
	Bucket    string
	AccessKey string
	SecretKey string
	Retention int // number of backups to keep remotely
}

// Enabled reports whether backups are fully configured
func (b *BackupConfig) Enabled() bool {
	return b != nil && b.Endpoint != "" && b.Bucket != "" && b.AccessKey != "" && b.SecretKey != ""
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	dataDir := getEnv("GRIDIRON_DATA_DIR", "./data")

	// Always resolve to absolute path
	absDataDir, err := filepath.Abs(dataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve data directory path: %w", err)
	}

	// Ensure directory exists
	if err := os.MkdirAll(absDataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	cfg := &Config{
		DataDir:              absDataDir,
		Port:                 getEnvAsInt("PORT", 8000),
		LogLevel:             getEnv("LOG_LEVEL", "info"),
		DevMode:              getEnvAsBool("DEV_MODE", false),
		SleeperBaseURL:       getEnv("SLEEPER_BASE_URL", "https://api.sleeper.app"),
		ValuationsCSVPath:    getEnv("VALUATIONS_CSV_PATH", ""),
		TrendingSyncSchedule: getEnv("TRENDING_SYNC_SCHEDULE", "@hourly"),
		PlayerSyncSchedule:   getEnv("PLAYER_SYNC_SCHEDULE", "@daily"),
		BackupSchedule:       getEnv("BACKUP_SCHEDULE", "@daily"),
		Backup: &BackupConfig{
			Endpoint:  getEnv("BACKUP_S3_ENDPOINT", ""),
			Bucket:    getEnv("BACKUP_S3_BUCKET", ""),
			AccessKey: getEnv("BACKUP_S3_ACCESS_KEY", ""),
			SecretKey: getEnv("BACKUP_S3_SECRET_KEY", ""),
			Retention: getEnvAsInt("BACKUP_RETENTION", 14),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// DatabasePath returns the path of the SQLite database file
func (c *Config) DatabasePath() string {
	return filepath.Join(c.DataDir, "gridiron.db")
}

// Validate checks if required configuration is present
func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Port)
	}
	return nil
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
