package server

import (
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"

	"github.com/gridironhq/gridiron/internal/database"
	"github.com/gridironhq/gridiron/internal/modules/ingest"
	"github.com/gridironhq/gridiron/internal/reliability"
)

// SystemHandlers exposes operational endpoints: status, database stats,
// manual sync triggers and backups.
type SystemHandlers struct {
	log            zerolog.Logger
	dataDir        string
	db             *database.DB
	ingestService  *ingest.Service
	backupService  *reliability.BackupService
	valuationsPath string
	startTime      time.Time
}

// NewSystemHandlers creates new system handlers
func NewSystemHandlers(
	log zerolog.Logger,
	dataDir string,
	db *database.DB,
	ingestService *ingest.Service,
	backupService *reliability.BackupService,
	valuationsPath string,
) *SystemHandlers {
	return &SystemHandlers{
		log:            log.With().Str("handler", "system").Logger(),
		dataDir:        dataDir,
		db:             db,
		ingestService:  ingestService,
		backupService:  backupService,
		valuationsPath: valuationsPath,
		startTime:      time.Now(),
	}
}

// RegisterRoutes registers the system routes
func (h *SystemHandlers) RegisterRoutes(r chi.Router) {
	r.Route("/system", func(r chi.Router) {
		r.Get("/status", h.HandleSystemStatus)
		r.Get("/database/stats", h.HandleDatabaseStats)

		r.Route("/sync", func(r chi.Router) {
			r.Post("/players", h.HandleSyncPlayers)
			r.Post("/trending", h.HandleSyncTrending)
			r.Post("/valuations", h.HandleLoadValuations)
		})

		r.Post("/backup", h.HandleRunBackup)
		r.Get("/backups", h.HandleListBackups)
	})
}

type systemStatusResponse struct {
	Status        string  `json:"status"`
	UptimeSeconds int64   `json:"uptime_seconds"`
	CPUPercent    float64 `json:"cpu_percent"`
	MemoryPercent float64 `json:"memory_percent"`
	Goroutines    int     `json:"goroutines"`
	DataDirMB     float64 `json:"data_dir_mb"`
	DatabaseOK    bool    `json:"database_ok"`
}

// HandleSystemStatus returns process and host health figures.
func (h *SystemHandlers) HandleSystemStatus(w http.ResponseWriter, r *http.Request) {
	cpuPercent, memPercent := h.systemStats()

	dbOK := h.db.HealthCheck(r.Context()) == nil

	h.writeJSON(w, http.StatusOK, systemStatusResponse{
		Status:        "running",
		UptimeSeconds: int64(time.Since(h.startTime).Seconds()),
		CPUPercent:    cpuPercent,
		MemoryPercent: memPercent,
		Goroutines:    runtime.NumGoroutine(),
		DataDirMB:     h.dirSizeMB(h.dataDir),
		DatabaseOK:    dbOK,
	})
}

// HandleDatabaseStats returns file and page statistics for the store.
func (h *SystemHandlers) HandleDatabaseStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.db.GetStats()
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to collect database stats")
		h.writeError(w, http.StatusInternalServerError, "failed to collect database stats")
		return
	}
	h.writeJSON(w, http.StatusOK, stats)
}

// HandleSyncPlayers triggers a player dump refresh.
func (h *SystemHandlers) HandleSyncPlayers(w http.ResponseWriter, r *http.Request) {
	stats, err := h.ingestService.SyncPlayers(r.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("Manual player sync failed")
		h.writeError(w, http.StatusBadGateway, "player sync failed")
		return
	}
	h.writeJSON(w, http.StatusOK, stats)
}

// HandleSyncTrending triggers a trending leaderboard refresh.
func (h *SystemHandlers) HandleSyncTrending(w http.ResponseWriter, r *http.Request) {
	stats, err := h.ingestService.SyncTrending(r.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("Manual trending sync failed")
		h.writeError(w, http.StatusBadGateway, "trending sync failed")
		return
	}
	h.writeJSON(w, http.StatusOK, stats)
}

// HandleLoadValuations reloads the valuation table from the configured CSV.
func (h *SystemHandlers) HandleLoadValuations(w http.ResponseWriter, r *http.Request) {
	if h.valuationsPath == "" {
		h.writeError(w, http.StatusConflict, "no valuations file configured")
		return
	}

	stats, err := h.ingestService.LoadValuations(h.valuationsPath)
	if err != nil {
		h.log.Error().Err(err).Msg("Manual valuation load failed")
		h.writeError(w, http.StatusInternalServerError, "valuation load failed")
		return
	}
	h.writeJSON(w, http.StatusOK, stats)
}

// HandleRunBackup triggers a backup immediately.
func (h *SystemHandlers) HandleRunBackup(w http.ResponseWriter, r *http.Request) {
	if h.backupService == nil {
		h.writeError(w, http.StatusConflict, "backups are not configured")
		return
	}

	if err := h.backupService.RunBackup(r.Context()); err != nil {
		h.log.Error().Err(err).Msg("Manual backup failed")
		h.writeError(w, http.StatusInternalServerError, "backup failed")
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// HandleListBackups lists the stored backup archives.
func (h *SystemHandlers) HandleListBackups(w http.ResponseWriter, r *http.Request) {
	if h.backupService == nil {
		h.writeError(w, http.StatusConflict, "backups are not configured")
		return
	}

	backups, err := h.backupService.ListBackups(r.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list backups")
		h.writeError(w, http.StatusInternalServerError, "failed to list backups")
		return
	}
	h.writeJSON(w, http.StatusOK, backups)
}

// systemStats samples CPU and RAM usage. The short CPU interval keeps the
// status endpoint responsive.
func (h *SystemHandlers) systemStats() (float64, float64) {
	cpuPercent, err := cpu.Percent(100*time.Millisecond, false)
	if err != nil {
		h.log.Warn().Err(err).Msg("Failed to get CPU percentage")
		cpuPercent = []float64{0}
	}

	memStat, err := mem.VirtualMemory()
	if err != nil {
		h.log.Warn().Err(err).Msg("Failed to get memory statistics")
		return 0, 0
	}

	cpuAvg := 0.0
	if len(cpuPercent) > 0 {
		cpuAvg = cpuPercent[0]
	}
	return cpuAvg, memStat.UsedPercent
}

// dirSizeMB calculates the total size of a directory in MB.
func (h *SystemHandlers) dirSizeMB(dirPath string) float64 {
	var totalSize int64

	err := filepath.Walk(dirPath, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil // Skip errors
		}
		if !info.IsDir() {
			totalSize += info.Size()
		}
		return nil
	})
	if err != nil {
		h.log.Warn().Err(err).Str("dir", dirPath).Msg("Failed to calculate directory size")
		return 0
	}

	return float64(totalSize) / 1024 / 1024
}

func (h *SystemHandlers) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}

func (h *SystemHandlers) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{"error": message})
}
