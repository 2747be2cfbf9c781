package roster

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/gridironhq/gridiron/internal/database"
	"github.com/gridironhq/gridiron/internal/domain"
)

// Repository owns the session, team and roster-assignment tables.
type Repository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewRepository creates a new roster repository
func NewRepository(db *sql.DB, log zerolog.Logger) *Repository {
	return &Repository{
		db:  db,
		log: log.With().Str("repo", "roster").Logger(),
	}
}

// CreateSession persists the session row and all of its teams in one
// transaction. Team ids are assigned by the store in insert order.
func (r *Repository) CreateSession(id string, settings LeagueSettings, teamNames []string) ([]Team, error) {
	teams := make([]Team, 0, len(teamNames))

	err := database.WithTransaction(r.db, func(tx *sql.Tx) error {
		_, err := tx.Exec(`
			INSERT INTO roster_session(
				id, created_at, num_teams, qb_slots, rb_slots, wr_slots, te_slots,
				flex_slots, def_slots, k_slots, bench_slots
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			id, time.Now().UTC().Format(time.RFC3339),
			settings.NumTeams, settings.QB, settings.RB, settings.WR, settings.TE,
			settings.Flex, settings.Defense, settings.Kicker, settings.Bench,
		)
		if err != nil {
			return fmt.Errorf("failed to insert session: %w", err)
		}

		for _, name := range teamNames {
			res, err := tx.Exec(
				"INSERT INTO roster_team(session_id, name) VALUES(?, ?)",
				id, name,
			)
			if err != nil {
				return fmt.Errorf("failed to insert team: %w", err)
			}
			teamID, err := res.LastInsertId()
			if err != nil {
				return fmt.Errorf("failed to read team id: %w", err)
			}
			teams = append(teams, Team{ID: teamID, Name: name})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return teams, nil
}

// SessionExists reports whether the session id is known.
func (r *Repository) SessionExists(id string) (bool, error) {
	var one int
	err := r.db.QueryRow("SELECT 1 FROM roster_session WHERE id = ?", id).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check session: %w", err)
	}
	return true, nil
}

// RenameTeam updates the team's display name scoped to the session.
func (r *Repository) RenameTeam(sessionID string, teamID int64, name string) error {
	res, err := r.db.Exec(
		"UPDATE roster_team SET name = ? WHERE id = ? AND session_id = ?",
		name, teamID, sessionID,
	)
	if err != nil {
		return fmt.Errorf("failed to rename team: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rename result: %w", err)
	}
	if affected == 0 {
		return domain.NewNotFound("team", fmt.Sprintf("%d", teamID))
	}
	return nil
}

// TeamExists reports whether the (session, team) pair exists.
func (r *Repository) TeamExists(sessionID string, teamID int64) (bool, error) {
	var one int
	err := r.db.QueryRow(
		"SELECT 1 FROM roster_team WHERE id = ? AND session_id = ?",
		teamID, sessionID,
	).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check team: %w", err)
	}
	return true, nil
}

// PlayerExists reports whether the player id is known.
func (r *Repository) PlayerExists(playerID string) (bool, error) {
	var one int
	err := r.db.QueryRow("SELECT 1 FROM players WHERE sleeper_id = ?", playerID).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check player: %w", err)
	}
	return true, nil
}

// SearchPlayers returns players whose name contains the query, optionally
// filtered to one position, best valuation first.
func (r *Repository) SearchPlayers(query, position string, limit int) ([]SearchItem, error) {
	sqlQuery := `
		SELECT p.sleeper_id,
		       p.full_name,
		       p.position,
		       COALESCE(p.nfl_team_code, ''),
		       COALESCE(m.valuation, 0)
		FROM players p
		LEFT JOIN player_metrics m ON m.player_id = p.sleeper_id
		WHERE LOWER(p.full_name) LIKE ?`

	args := []interface{}{"%" + strings.ToLower(query) + "%"}
	if position != "" {
		sqlQuery += " AND UPPER(p.position) = ?"
		args = append(args, position)
	}
	sqlQuery += " ORDER BY COALESCE(m.valuation, 0) DESC, p.full_name ASC LIMIT ?"
	args = append(args, limit)

	rows, err := r.db.Query(sqlQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to search players: %w", err)
	}
	defer rows.Close()

	var items []SearchItem
	for rows.Next() {
		var item SearchItem
		if err := rows.Scan(&item.ID, &item.Name, &item.Position, &item.Team, &item.Valuation); err != nil {
			return nil, fmt.Errorf("failed to scan search item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating search items: %w", err)
	}

	return items, nil
}

// AddPlayer assigns the player to the team. Re-adding an already-rostered
// player is a no-op.
func (r *Repository) AddPlayer(teamID int64, playerID string) error {
	_, err := r.db.Exec(
		"INSERT OR IGNORE INTO roster_team_player(team_id, player_id) VALUES(?, ?)",
		teamID, playerID,
	)
	if err != nil {
		return fmt.Errorf("failed to add player to team: %w", err)
	}
	return nil
}

// RemovePlayer deletes the assignment; missing assignments are not found.
func (r *Repository) RemovePlayer(teamID int64, playerID string) error {
	res, err := r.db.Exec(
		"DELETE FROM roster_team_player WHERE team_id = ? AND player_id = ?",
		teamID, playerID,
	)
	if err != nil {
		return fmt.Errorf("failed to remove player from team: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read remove result: %w", err)
	}
	if affected == 0 {
		return domain.NewNotFound("roster assignment", playerID)
	}
	return nil
}

// ListTeams returns the session's teams in ascending id order.
func (r *Repository) ListTeams(sessionID string) ([]Team, error) {
	rows, err := r.db.Query(
		"SELECT id, name FROM roster_team WHERE session_id = ? ORDER BY id",
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	defer rows.Close()

	var teams []Team
	for rows.Next() {
		var t Team
		if err := rows.Scan(&t.ID, &t.Name); err != nil {
			return nil, fmt.Errorf("failed to scan team: %w", err)
		}
		teams = append(teams, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating teams: %w", err)
	}

	return teams, nil
}

// PositionLines returns per-team per-position roster count and summed
// valuation for every assignment in the session.
func (r *Repository) PositionLines(sessionID string) ([]positionLine, error) {
	rows, err := r.db.Query(`
		SELECT rtp.team_id,
		       UPPER(p.position) AS pos,
		       COUNT(*) AS cnt,
		       COALESCE(SUM(COALESCE(m.valuation, 0)), 0) AS val
		FROM roster_team_player rtp
		JOIN players p ON p.sleeper_id = rtp.player_id
		LEFT JOIN player_metrics m ON m.player_id = p.sleeper_id
		WHERE rtp.team_id IN (SELECT id FROM roster_team WHERE session_id = ?)
		GROUP BY rtp.team_id, UPPER(p.position)`,
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate rosters: %w", err)
	}
	defer rows.Close()

	var lines []positionLine
	for rows.Next() {
		var line positionLine
		if err := rows.Scan(&line.TeamID, &line.Pos, &line.Count, &line.Value); err != nil {
			return nil, fmt.Errorf("failed to scan roster aggregate: %w", err)
		}
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating roster aggregates: %w", err)
	}

	return lines, nil
}
