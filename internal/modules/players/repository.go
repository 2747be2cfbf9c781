package players

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
)

// Repository reads players joined with their valuation and trending metrics.
// Metrics tables are LEFT JOINed: a missing row means "no valuation" and
// every metric defaults to 0.
type Repository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewRepository creates a new player repository
func NewRepository(db *sql.DB, log zerolog.Logger) *Repository {
	return &Repository{
		db:  db,
		log: log.With().Str("repo", "players").Logger(),
	}
}

// row is the raw join output before any rank computation.
type row struct {
	ID        string
	Name      string
	Position  string
	Team      string
	Age       *int
	Valuation float64
	Adds24h   int
	Drops24h  int
}

// buildFilter translates a Filter into a WHERE clause and its arguments.
func buildFilter(f Filter) (string, []interface{}) {
	var where []string
	var args []interface{}

	if q := strings.TrimSpace(f.Query); q != "" {
		where = append(where, "LOWER(p.full_name) LIKE ?")
		args = append(args, "%"+strings.ToLower(q)+"%")
	}

	var positions []string
	for _, pos := range f.Positions {
		if pos = strings.ToUpper(strings.TrimSpace(pos)); pos != "" {
			positions = append(positions, pos)
		}
	}
	if len(positions) > 0 {
		placeholders := strings.TrimSuffix(strings.Repeat("?,", len(positions)), ",")
		where = append(where, "UPPER(p.position) IN ("+placeholders+")")
		for _, pos := range positions {
			args = append(args, pos)
		}
	}

	if team := strings.ToUpper(strings.TrimSpace(f.Team)); team != "" {
		where = append(where, "UPPER(COALESCE(p.nfl_team_code, '"+FreeAgentTeam+"')) = ?")
		args = append(args, team)
	}

	if f.MinVal != nil {
		where = append(where, "COALESCE(m.valuation, 0) >= ?")
		args = append(args, *f.MinVal)
	}
	if f.MaxVal != nil {
		where = append(where, "COALESCE(m.valuation, 0) <= ?")
		args = append(args, *f.MaxVal)
	}

	if len(where) == 0 {
		return "", args
	}
	return "WHERE " + strings.Join(where, " AND "), args
}

// ListFiltered returns every player matching the filter in canonical ranking
// order: valuation descending, then name ascending. Rank assignment happens
// in the service as a single forward scan over this order.
func (r *Repository) ListFiltered(f Filter) ([]row, error) {
	whereSQL, args := buildFilter(f)

	query := fmt.Sprintf(`
		SELECT
			p.sleeper_id,
			p.full_name,
			p.position,
			COALESCE(p.nfl_team_code, '%s'),
			p.age,
			COALESCE(m.valuation, 0),
			COALESCE(t.adds_24h, 0),
			COALESCE(t.drops_24h, 0)
		FROM players p
		LEFT JOIN player_metrics m ON m.player_id = p.sleeper_id
		LEFT JOIN player_trending t ON t.player_id = p.sleeper_id
		%s
		ORDER BY COALESCE(m.valuation, 0) DESC, p.full_name ASC`, FreeAgentTeam, whereSQL)

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query players: %w", err)
	}
	defer rows.Close()

	var result []row
	for rows.Next() {
		var rec row
		var age sql.NullInt64
		if err := rows.Scan(&rec.ID, &rec.Name, &rec.Position, &rec.Team, &age,
			&rec.Valuation, &rec.Adds24h, &rec.Drops24h); err != nil {
			return nil, fmt.Errorf("failed to scan player row: %w", err)
		}
		if age.Valid {
			a := int(age.Int64)
			rec.Age = &a
		}
		result = append(result, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating players: %w", err)
	}

	return result, nil
}

// Positions returns the distinct position codes with player counts, most
// populated first. Codes are case-normalized to upper case.
func (r *Repository) Positions() ([]PositionCount, error) {
	rows, err := r.db.Query(`
		SELECT UPPER(position), COUNT(*)
		FROM players
		GROUP BY UPPER(position)
		ORDER BY COUNT(*) DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query positions: %w", err)
	}
	defer rows.Close()

	var result []PositionCount
	for rows.Next() {
		var pc PositionCount
		if err := rows.Scan(&pc.Position, &pc.Count); err != nil {
			return nil, fmt.Errorf("failed to scan position count: %w", err)
		}
		result = append(result, pc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating positions: %w", err)
	}

	return result, nil
}

// Teams returns the distinct team codes with player counts, alphabetical.
// Players without a team are grouped under the free-agent sentinel before
// counting.
func (r *Repository) Teams() ([]TeamCount, error) {
	rows, err := r.db.Query(fmt.Sprintf(`
		SELECT UPPER(COALESCE(nfl_team_code, '%s')) AS team, COUNT(*)
		FROM players
		GROUP BY team
		ORDER BY team ASC`, FreeAgentTeam))
	if err != nil {
		return nil, fmt.Errorf("failed to query teams: %w", err)
	}
	defer rows.Close()

	var result []TeamCount
	for rows.Next() {
		var tc TeamCount
		if err := rows.Scan(&tc.Team, &tc.Count); err != nil {
			return nil, fmt.Errorf("failed to scan team count: %w", err)
		}
		result = append(result, tc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating teams: %w", err)
	}

	return result, nil
}
