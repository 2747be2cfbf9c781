package reliability

import (
	"archive/tar"
	"compress/gzip"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBackupTimestamp(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		valid bool
	}{
		{"well-formed key", "gridiron-backup-2026-08-30-120000.tar.gz", true},
		{"wrong prefix", "other-backup-2026-08-30-120000.tar.gz", false},
		{"wrong suffix", "gridiron-backup-2026-08-30-120000.zip", false},
		{"garbage timestamp", "gridiron-backup-notadate.tar.gz", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts, ok := parseBackupTimestamp(tt.key)
			assert.Equal(t, tt.valid, ok)
			if tt.valid {
				expected := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
				assert.Equal(t, expected, ts)
			}
		})
	}
}

func TestCreateArchiveRoundTrip(t *testing.T) {
	dir := t.TempDir()

	dbFile := filepath.Join(dir, "payload.db")
	require.NoError(t, os.WriteFile(dbFile, []byte("database contents"), 0644))
	manifestFile := filepath.Join(dir, "manifest.json")
	require.NoError(t, os.WriteFile(manifestFile, []byte(`{"ok": true}`), 0644))

	archivePath := filepath.Join(dir, "out.tar.gz")
	require.NoError(t, createArchive(archivePath, []string{dbFile, manifestFile}))

	f, err := os.Open(archivePath)
	require.NoError(t, err)
	defer f.Close()

	gr, err := gzip.NewReader(f)
	require.NoError(t, err)
	tr := tar.NewReader(gr)

	contents := map[string]string{}
	for {
		header, err := tr.Next()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		data, err := io.ReadAll(tr)
		require.NoError(t, err)
		contents[header.Name] = string(data)
	}

	assert.Equal(t, "database contents", contents["payload.db"])
	assert.Equal(t, `{"ok": true}`, contents["manifest.json"])
}

func TestFileChecksum(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data")
	require.NoError(t, os.WriteFile(path, []byte("hello"), 0644))

	sum, err := fileChecksum(path)
	require.NoError(t, err)
	// sha256 of "hello"
	assert.Equal(t, "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824", sum)
}
