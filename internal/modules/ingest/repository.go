package ingest

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/gridironhq/gridiron/internal/database"
)

// Repository writes the loader output to the store.
type Repository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewRepository creates a new ingest repository
func NewRepository(db *sql.DB, log zerolog.Logger) *Repository {
	return &Repository{
		db:  db,
		log: log.With().Str("repo", "ingest").Logger(),
	}
}

// UpsertPlayers writes the player dump in one transaction. Existing rows are
// updated in place so roster assignments and metrics keep their references.
func (r *Repository) UpsertPlayers(records []PlayerRecord) (SyncStats, error) {
	var stats SyncStats

	err := database.WithTransaction(r.db, func(tx *sql.Tx) error {
		check, err := tx.Prepare("SELECT 1 FROM players WHERE sleeper_id = ?")
		if err != nil {
			return fmt.Errorf("failed to prepare existence check: %w", err)
		}
		defer check.Close()

		upsert, err := tx.Prepare(`
			INSERT INTO players (sleeper_id, full_name, position, nfl_team_code, age)
			VALUES (?, ?, ?, ?, ?)
			ON CONFLICT(sleeper_id) DO UPDATE SET
			  full_name = excluded.full_name,
			  position = excluded.position,
			  nfl_team_code = excluded.nfl_team_code,
			  age = excluded.age`)
		if err != nil {
			return fmt.Errorf("failed to prepare upsert: %w", err)
		}
		defer upsert.Close()

		for _, rec := range records {
			var one int
			exists := true
			if err := check.QueryRow(rec.ID).Scan(&one); err == sql.ErrNoRows {
				exists = false
			} else if err != nil {
				return fmt.Errorf("failed to check player %s: %w", rec.ID, err)
			}

			var team interface{}
			if rec.Team != "" {
				team = rec.Team
			}
			var age interface{}
			if rec.Age != nil {
				age = *rec.Age
			}

			if _, err := upsert.Exec(rec.ID, rec.FullName, rec.Position, team, age); err != nil {
				return fmt.Errorf("failed to upsert player %s: %w", rec.ID, err)
			}

			if exists {
				stats.Updated++
			} else {
				stats.Inserted++
			}
		}
		return nil
	})
	if err != nil {
		return SyncStats{}, err
	}

	return stats, nil
}

// KnownPlayerIDs returns the subset of ids present in the players table.
func (r *Repository) KnownPlayerIDs(ids []string) (map[string]bool, error) {
	known := make(map[string]bool, len(ids))
	if len(ids) == 0 {
		return known, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	args := make([]interface{}, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	rows, err := r.db.Query(
		"SELECT sleeper_id FROM players WHERE sleeper_id IN ("+placeholders+")",
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query known ids: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan id: %w", err)
		}
		known[id] = true
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating ids: %w", err)
	}

	return known, nil
}

// ReplaceTrending swaps the full trending table for the given rows in one
// transaction.
func (r *Repository) ReplaceTrending(records []TrendingRecord) error {
	return database.WithTransaction(r.db, func(tx *sql.Tx) error {
		if _, err := tx.Exec("DELETE FROM player_trending"); err != nil {
			return fmt.Errorf("failed to clear trending table: %w", err)
		}

		stmt, err := tx.Prepare(
			"INSERT INTO player_trending (player_id, adds_24h, drops_24h) VALUES (?, ?, ?)")
		if err != nil {
			return fmt.Errorf("failed to prepare trending insert: %w", err)
		}
		defer stmt.Close()

		for _, rec := range records {
			if _, err := stmt.Exec(rec.PlayerID, rec.Adds24h, rec.Drops24h); err != nil {
				return fmt.Errorf("failed to insert trending row %s: %w", rec.PlayerID, err)
			}
		}
		return nil
	})
}

// ReplaceMetrics swaps the full valuation table for the given rows in one
// transaction.
func (r *Repository) ReplaceMetrics(records []MetricRecord) error {
	return database.WithTransaction(r.db, func(tx *sql.Tx) error {
		if _, err := tx.Exec("DELETE FROM player_metrics"); err != nil {
			return fmt.Errorf("failed to clear metrics table: %w", err)
		}

		stmt, err := tx.Prepare(
			"INSERT INTO player_metrics (player_id, valuation, trend_30d) VALUES (?, ?, ?)")
		if err != nil {
			return fmt.Errorf("failed to prepare metrics insert: %w", err)
		}
		defer stmt.Close()

		for _, rec := range records {
			var trend interface{}
			if rec.Trend30d != nil {
				trend = *rec.Trend30d
			}
			if _, err := stmt.Exec(rec.PlayerID, rec.Valuation, trend); err != nil {
				return fmt.Errorf("failed to insert metric row %s: %w", rec.PlayerID, err)
			}
		}
		return nil
	})
}
