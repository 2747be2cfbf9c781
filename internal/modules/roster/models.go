// Package roster implements mock-draft roster sessions and their
// per-position league analytics.
package roster

// Position buckets analyzed for every team, independent of the session's
// configured slot counts.
var AnalysisPositions = []string{"DEF", "K", "QB", "RB", "TE", "WR"}

// ValidSearchPositions is the fixed position filter enumeration for
// roster-building type-ahead.
var ValidSearchPositions = map[string]bool{
	"QB": true, "RB": true, "WR": true, "TE": true, "DEF": true, "K": true,
}

// Search limit bounds.
const (
	DefaultSearchLimit = 20
	MaxSearchLimit     = 50
)

// LeagueSettings are the immutable league parameters captured at session
// creation.
type LeagueSettings struct {
	NumTeams int `json:"num_teams"`
	QB       int `json:"qb"`
	RB       int `json:"rb"`
	WR       int `json:"wr"`
	TE       int `json:"te"`
	Flex     int `json:"flex"`
	Defense  int `json:"defense"`
	Kicker   int `json:"kicker"`
	Bench    int `json:"bench"`
}

// DefaultSettings returns the starting-lineup defaults applied to fields the
// caller leaves out.
func DefaultSettings() LeagueSettings {
	return LeagueSettings{
		QB:    1,
		RB:    2,
		WR:    2,
		TE:    1,
		Flex:  1,
		Bench: 6,
	}
}

// Team is one team within a session.
type Team struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Session is a created roster session with its teams.
type Session struct {
	ID       string         `json:"session_id"`
	Settings LeagueSettings `json:"settings"`
	Teams    []Team         `json:"teams"`
}

// SearchItem is a compact player entry for roster-building type-ahead.
type SearchItem struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Position  string  `json:"position"`
	Team      string  `json:"team,omitempty"`
	Valuation float64 `json:"valuation"`
}

// PositionSummary is one team's standing at one position bucket. ZScore is
// nil when the league-wide standard deviation for the position is zero.
type PositionSummary struct {
	Position string   `json:"position"`
	Count    int      `json:"count"`
	Value    float64  `json:"value"`
	ZScore   *float64 `json:"z_score"`
	Rank     int      `json:"rank"`
}

// TeamAnalysis is the full positional breakdown for one team.
type TeamAnalysis struct {
	TeamID     int64             `json:"team_id"`
	TeamName   string            `json:"team_name"`
	TotalValue float64           `json:"total_value"`
	ByPosition []PositionSummary `json:"by_position"`
}

// SessionAnalysis is the league-wide analytics result for a session.
type SessionAnalysis struct {
	SessionID string         `json:"session_id"`
	Teams     []TeamAnalysis `json:"teams"`
}

// positionLine is one (team, position) aggregate read from the store.
type positionLine struct {
	TeamID int64
	Pos    string
	Count  int
	Value  float64
}
