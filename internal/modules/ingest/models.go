// Package ingest implements the batch loaders that refresh the player,
// valuation and trending tables from external sources.
package ingest

// PlayerRecord is one upserted row of the players table.
type PlayerRecord struct {
	ID       string
	FullName string
	Position string
	Team     string
	Age      *int
}

// TrendingRecord is one row of the wholesale-replaced trending table.
type TrendingRecord struct {
	PlayerID string
	Adds24h  int
	Drops24h int
}

// MetricRecord is one row of the wholesale-replaced valuation table.
type MetricRecord struct {
	PlayerID  string
	Valuation float64
	Trend30d  *float64
}

// SyncStats summarizes one loader run.
type SyncStats struct {
	Inserted int `json:"inserted"`
	Updated  int `json:"updated"`
	Skipped  int `json:"skipped"`
}
