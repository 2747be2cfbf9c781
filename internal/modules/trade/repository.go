package trade

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/gridironhq/gridiron/internal/domain"
)

// Repository provides the player lookups the resolver and simulator need.
type Repository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewRepository creates a new trade repository
func NewRepository(db *sql.DB, log zerolog.Logger) *Repository {
	return &Repository{
		db:  db,
		log: log.With().Str("repo", "trade").Logger(),
	}
}

const candidateSelect = `
	SELECT p.sleeper_id,
	       p.full_name,
	       p.position,
	       COALESCE(p.nfl_team_code, 'FA'),
	       COALESCE(m.valuation, 0)
	FROM players p
	LEFT JOIN player_metrics m ON m.player_id = p.sleeper_id`

// ExistsID reports whether a canonical player id exists.
func (r *Repository) ExistsID(id string) (bool, error) {
	var one int
	err := r.db.QueryRow("SELECT 1 FROM players WHERE sleeper_id = ?", id).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check player id: %w", err)
	}
	return true, nil
}

// FindByExactName returns every player whose full name equals the token
// case-insensitively, best valuation first.
func (r *Repository) FindByExactName(name string) ([]domain.PlayerCandidate, error) {
	query := candidateSelect + `
	WHERE LOWER(p.full_name) = LOWER(?)
	ORDER BY COALESCE(m.valuation, 0) DESC, p.full_name ASC`

	return r.queryCandidates(query, strings.TrimSpace(name))
}

// SearchByName returns players whose full name contains the query
// case-insensitively, ranked by valuation descending then name ascending,
// capped at limit.
func (r *Repository) SearchByName(query string, limit int) ([]domain.PlayerCandidate, error) {
	sqlQuery := candidateSelect + `
	WHERE LOWER(p.full_name) LIKE ?
	ORDER BY COALESCE(m.valuation, 0) DESC, p.full_name ASC
	LIMIT ?`

	like := "%" + strings.ToLower(strings.TrimSpace(query)) + "%"
	return r.queryCandidates(sqlQuery, like, limit)
}

// GetByIDs returns candidates keyed by player id for the given id set.
// Missing ids are simply absent from the map.
func (r *Repository) GetByIDs(ids []string) (map[string]domain.PlayerCandidate, error) {
	result := make(map[string]domain.PlayerCandidate, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	query := candidateSelect + " WHERE p.sleeper_id IN (" + placeholders + ")"

	args := make([]interface{}, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	candidates, err := r.queryCandidates(query, args...)
	if err != nil {
		return nil, err
	}

	for _, c := range candidates {
		result[c.ID] = c
	}
	return result, nil
}

func (r *Repository) queryCandidates(query string, args ...interface{}) ([]domain.PlayerCandidate, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query candidates: %w", err)
	}
	defer rows.Close()

	var result []domain.PlayerCandidate
	for rows.Next() {
		var c domain.PlayerCandidate
		if err := rows.Scan(&c.ID, &c.Name, &c.Position, &c.Team, &c.Valuation); err != nil {
			return nil, fmt.Errorf("failed to scan candidate: %w", err)
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating candidates: %w", err)
	}

	return result, nil
}
