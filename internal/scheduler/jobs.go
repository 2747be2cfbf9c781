package scheduler

import (
	"context"
	"time"

	"github.com/gridironhq/gridiron/internal/modules/ingest"
)

// Per-run deadlines. The player dump is several megabytes, the trending
// leaderboards are tiny.
const (
	playerSyncTimeout   = 5 * time.Minute
	trendingSyncTimeout = 2 * time.Minute
)

// PlayerSyncJob refreshes the players table from the external dump.
type PlayerSyncJob struct {
	service *ingest.Service
}

// NewPlayerSyncJob creates a new player sync job
func NewPlayerSyncJob(service *ingest.Service) *PlayerSyncJob {
	return &PlayerSyncJob{service: service}
}

// Name returns the job name
func (j *PlayerSyncJob) Name() string { return "player_sync" }

// Run executes the player sync
func (j *PlayerSyncJob) Run() error {
	ctx, cancel := context.WithTimeout(context.Background(), playerSyncTimeout)
	defer cancel()

	_, err := j.service.SyncPlayers(ctx)
	return err
}

// TrendingSyncJob refreshes the 24h add/drop trending table.
type TrendingSyncJob struct {
	service *ingest.Service
}

// NewTrendingSyncJob creates a new trending sync job
func NewTrendingSyncJob(service *ingest.Service) *TrendingSyncJob {
	return &TrendingSyncJob{service: service}
}

// Name returns the job name
func (j *TrendingSyncJob) Name() string { return "trending_sync" }

// Run executes the trending sync
func (j *TrendingSyncJob) Run() error {
	ctx, cancel := context.WithTimeout(context.Background(), trendingSyncTimeout)
	defer cancel()

	_, err := j.service.SyncTrending(ctx)
	return err
}

// BackupRunner is the subset of the backup service the job needs.
type BackupRunner interface {
	RunBackup(ctx context.Context) error
}

// BackupJob snapshots the database to remote storage.
type BackupJob struct {
	runner BackupRunner
}

// NewBackupJob creates a new backup job
func NewBackupJob(runner BackupRunner) *BackupJob {
	return &BackupJob{runner: runner}
}

// Name returns the job name
func (j *BackupJob) Name() string { return "database_backup" }

// Run executes the backup
func (j *BackupJob) Run() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	return j.runner.RunBackup(ctx)
}
