// Package players implements the ranked, filterable player listing over the
// valuation store.
package players

// FreeAgentTeam is the placeholder team code for players without a current
// NFL team assignment.
const FreeAgentTeam = "FA"

// Sort keys accepted by List. Unrecognized keys fall back to SortByValuation.
const (
	SortByName         = "name"
	SortByPosition     = "position"
	SortByTeam         = "team"
	SortByAge          = "age"
	SortByValuation    = "valuation"
	SortByTrend30      = "trend30"
	SortByAdds24h      = "adds_24h"
	SortByDrops24h     = "drops_24h"
	SortByOverallRank  = "overall_rank"
	SortByPositionRank = "position_rank"
)

// Filter narrows the player set before ranking. Ranks are always computed
// over the filtered population, so every filter change shifts the reference
// group for rank 1.
type Filter struct {
	Query     string   // case-insensitive substring of the full name
	Positions []string // position codes, normalized to upper case
	Team      string   // exact team code
	MinVal    *float64 // inclusive valuation lower bound
	MaxVal    *float64 // inclusive valuation upper bound
}

// ListRequest is a full listing request: filter, sort, pagination.
type ListRequest struct {
	Filter   Filter
	SortBy   string
	Order    string // "asc" or "desc"; anything else becomes "desc"
	Page     int    // 1-based
	PageSize int    // 1..200
}

// Record is one row of a player listing.
type Record struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Position     string   `json:"position"`
	Team         string   `json:"team"`
	Age          *int     `json:"age"`
	Valuation    float64  `json:"valuation"`
	OverallRank  int      `json:"overall_rank"`
	PositionRank int      `json:"position_rank"`
	Trend30      int      `json:"trend30"`
	Adds24h      int      `json:"adds_24h"`
	Drops24h     int      `json:"drops_24h"`
}

// ListResult is a page of ranked player records.
type ListResult struct {
	Page       int      `json:"page"`
	PageSize   int      `json:"page_size"`
	Total      int      `json:"total"`
	TotalPages int      `json:"total_pages"`
	SortBy     string   `json:"sort_by"`
	Order      string   `json:"order"`
	Items      []Record `json:"items"`
}

// PositionCount is one entry of the positions aggregate.
type PositionCount struct {
	Position string `json:"position"`
	Count    int    `json:"count"`
}

// TeamCount is one entry of the teams aggregate.
type TeamCount struct {
	Team  string `json:"team"`
	Count int    `json:"count"`
}
