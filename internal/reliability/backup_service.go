package reliability

import (
	"archive/tar"
	"compress/gzip"
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/gridironhq/gridiron/internal/database"
)

const backupPrefix = "gridiron-backup-"
const backupTimeLayout = "2006-01-02-150405"

// BackupService snapshots the database into a tar.gz archive with a JSON
// manifest and ships it to object storage, pruning archives beyond the
// retention count.
type BackupService struct {
	s3        *S3Client
	db        *database.DB
	dataDir   string
	retention int
	log       zerolog.Logger
}

// BackupManifest describes the contents of one archive.
type BackupManifest struct {
	Timestamp time.Time `json:"timestamp"`
	Filename  string    `json:"filename"`
	SizeBytes int64     `json:"size_bytes"`
	Checksum  string    `json:"checksum"`
}

// BackupInfo describes one stored archive.
type BackupInfo struct {
	Filename  string    `json:"filename"`
	Timestamp time.Time `json:"timestamp"`
	SizeBytes int64     `json:"size_bytes"`
	AgeHours  int64     `json:"age_hours"`
}

// NewBackupService creates a new backup service
func NewBackupService(s3 *S3Client, db *database.DB, dataDir string, retention int, log zerolog.Logger) *BackupService {
	return &BackupService{
		s3:        s3,
		db:        db,
		dataDir:   dataDir,
		retention: retention,
		log:       log.With().Str("service", "backup").Logger(),
	}
}

// RunBackup creates and uploads one archive, then prunes old ones.
func (s *BackupService) RunBackup(ctx context.Context) error {
	start := time.Now()
	s.log.Info().Msg("Starting backup")

	stagingDir := filepath.Join(s.dataDir, "backup-staging")
	if err := os.MkdirAll(stagingDir, 0755); err != nil {
		return fmt.Errorf("failed to create staging directory: %w", err)
	}
	defer os.RemoveAll(stagingDir)

	// Fold the WAL into the main file so the copy is self-contained.
	if err := s.db.WALCheckpoint(); err != nil {
		return fmt.Errorf("failed to checkpoint before backup: %w", err)
	}

	dbCopy := filepath.Join(stagingDir, "gridiron.db")
	if err := copyFile(s.db.Path(), dbCopy); err != nil {
		return fmt.Errorf("failed to stage database copy: %w", err)
	}

	info, err := os.Stat(dbCopy)
	if err != nil {
		return fmt.Errorf("failed to stat staged copy: %w", err)
	}
	checksum, err := fileChecksum(dbCopy)
	if err != nil {
		return fmt.Errorf("failed to checksum staged copy: %w", err)
	}

	manifest := BackupManifest{
		Timestamp: time.Now().UTC(),
		Filename:  "gridiron.db",
		SizeBytes: info.Size(),
		Checksum:  checksum,
	}
	manifestPath := filepath.Join(stagingDir, "manifest.json")
	if err := writeManifest(manifestPath, manifest); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}

	archiveName := backupPrefix + time.Now().Format(backupTimeLayout) + ".tar.gz"
	archivePath := filepath.Join(stagingDir, archiveName)
	if err := createArchive(archivePath, []string{dbCopy, manifestPath}); err != nil {
		return fmt.Errorf("failed to create archive: %w", err)
	}

	archive, err := os.Open(archivePath)
	if err != nil {
		return fmt.Errorf("failed to open archive: %w", err)
	}
	defer archive.Close()

	if err := s.s3.Upload(ctx, archiveName, archive); err != nil {
		return err
	}

	if err := s.pruneOldBackups(ctx); err != nil {
		s.log.Warn().Err(err).Msg("Backup retention pruning failed")
	}

	s.log.Info().
		Dur("duration", time.Since(start)).
		Str("archive", archiveName).
		Msg("Backup completed")

	return nil
}

// ListBackups lists the stored archives, newest first.
func (s *BackupService) ListBackups(ctx context.Context) ([]BackupInfo, error) {
	objects, err := s.s3.List(ctx, backupPrefix)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	backups := make([]BackupInfo, 0, len(objects))
	for _, obj := range objects {
		if obj.Key == nil {
			continue
		}
		ts, ok := parseBackupTimestamp(*obj.Key)
		if !ok {
			continue
		}

		var size int64
		if obj.Size != nil {
			size = *obj.Size
		}
		backups = append(backups, BackupInfo{
			Filename:  *obj.Key,
			Timestamp: ts,
			SizeBytes: size,
			AgeHours:  int64(now.Sub(ts).Hours()),
		})
	}

	sort.Slice(backups, func(i, j int) bool {
		return backups[i].Timestamp.After(backups[j].Timestamp)
	})

	return backups, nil
}

// pruneOldBackups deletes archives beyond the retention count, oldest first.
func (s *BackupService) pruneOldBackups(ctx context.Context) error {
	if s.retention <= 0 {
		return nil
	}

	backups, err := s.ListBackups(ctx)
	if err != nil {
		return err
	}
	if len(backups) <= s.retention {
		return nil
	}

	for _, old := range backups[s.retention:] {
		if err := s.s3.Delete(ctx, old.Filename); err != nil {
			return err
		}
		s.log.Info().Str("archive", old.Filename).Msg("Pruned old backup")
	}

	return nil
}

func parseBackupTimestamp(key string) (time.Time, bool) {
	if !strings.HasPrefix(key, backupPrefix) || !strings.HasSuffix(key, ".tar.gz") {
		return time.Time{}, false
	}
	raw := strings.TrimSuffix(strings.TrimPrefix(key, backupPrefix), ".tar.gz")
	ts, err := time.Parse(backupTimeLayout, raw)
	if err != nil {
		return time.Time{}, false
	}
	return ts, true
}

func writeManifest(path string, manifest BackupManifest) error {
	data, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Sync()
}

func fileChecksum(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return fmt.Sprintf("%x", h.Sum(nil)), nil
}

func createArchive(archivePath string, files []string) error {
	out, err := os.Create(archivePath)
	if err != nil {
		return err
	}
	defer out.Close()

	gw := gzip.NewWriter(out)
	defer gw.Close()

	tw := tar.NewWriter(gw)
	defer tw.Close()

	for _, file := range files {
		if err := addToArchive(tw, file); err != nil {
			return err
		}
	}
	return nil
}

func addToArchive(tw *tar.Writer, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return err
	}

	header, err := tar.FileInfoHeader(info, "")
	if err != nil {
		return err
	}
	header.Name = filepath.Base(path)

	if err := tw.WriteHeader(header); err != nil {
		return err
	}
	_, err = io.Copy(tw, f)
	return err
}
