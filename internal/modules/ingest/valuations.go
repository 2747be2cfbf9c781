package ingest

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// LoadValuations replaces the valuation table from a semicolon-separated
// rankings CSV. Rows without a player id are skipped; the table is swapped
// wholesale inside one transaction.
//
// Expected columns include sleeperId, value and trend30day; extra columns
// are ignored.
func (s *Service) LoadValuations(path string) (SyncStats, error) {
	f, err := os.Open(path)
	if err != nil {
		return SyncStats{}, fmt.Errorf("failed to open valuations file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.Comma = ';'
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return SyncStats{}, fmt.Errorf("failed to parse valuations file: %w", err)
	}
	if len(rows) < 1 {
		return SyncStats{}, fmt.Errorf("valuations file %s is empty", path)
	}

	col := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		col[strings.TrimSpace(name)] = i
	}
	for _, required := range []string{"sleeperId", "value"} {
		if _, ok := col[required]; !ok {
			return SyncStats{}, fmt.Errorf("valuations file %s is missing column %s", path, required)
		}
	}

	records := make([]MetricRecord, 0, len(rows)-1)
	skipped := 0
	for _, row := range rows[1:] {
		id := field(row, col, "sleeperId")
		if id == "" {
			skipped++
			continue
		}

		value, err := strconv.ParseFloat(field(row, col, "value"), 64)
		if err != nil {
			value = 0
		}

		rec := MetricRecord{PlayerID: id, Valuation: value}
		if raw := field(row, col, "trend30day"); raw != "" {
			if trend, err := strconv.ParseFloat(raw, 64); err == nil {
				rec.Trend30d = &trend
			}
		}
		records = append(records, rec)
	}

	if err := s.repo.ReplaceMetrics(records); err != nil {
		return SyncStats{}, fmt.Errorf("valuation load failed: %w", err)
	}

	stats := SyncStats{Inserted: len(records), Skipped: skipped}
	s.log.Info().
		Str("file", path).
		Int("players", stats.Inserted).
		Int("skipped", stats.Skipped).
		Msg("Valuations loaded")

	return stats, nil
}

func field(row []string, col map[string]int, name string) string {
	idx, ok := col[name]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
