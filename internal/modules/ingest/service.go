package ingest

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/gridironhq/gridiron/internal/clients/sleeper"
)

// Service orchestrates the three batch loaders: player dump, trending
// leaderboards and valuation CSV.
type Service struct {
	repo    *Repository
	sleeper *sleeper.Client
	log     zerolog.Logger
}

// NewService creates a new ingest service
func NewService(repo *Repository, sleeperClient *sleeper.Client, log zerolog.Logger) *Service {
	return &Service{
		repo:    repo,
		sleeper: sleeperClient,
		log:     log.With().Str("service", "ingest").Logger(),
	}
}

// SyncPlayers refreshes the players table from the full Sleeper dump.
// Non-NFL entries and entries without any position are skipped.
func (s *Service) SyncPlayers(ctx context.Context) (SyncStats, error) {
	dump, err := s.sleeper.GetAllPlayers(ctx)
	if err != nil {
		return SyncStats{}, fmt.Errorf("player sync failed: %w", err)
	}

	records := make([]PlayerRecord, 0, len(dump))
	skipped := 0
	for id, p := range dump {
		if p.Sport != "nfl" {
			skipped++
			continue
		}
		if p.Position == "" && len(p.FantasyPositions) == 0 {
			skipped++
			continue
		}
		records = append(records, playerToRecord(id, p))
	}

	// Deterministic write order keeps runs comparable in the logs.
	sort.Slice(records, func(i, j int) bool { return records[i].ID < records[j].ID })

	stats, err := s.repo.UpsertPlayers(records)
	if err != nil {
		return SyncStats{}, fmt.Errorf("player sync failed: %w", err)
	}
	stats.Skipped = skipped

	s.log.Info().
		Int("inserted", stats.Inserted).
		Int("updated", stats.Updated).
		Int("skipped", stats.Skipped).
		Msg("Player sync complete")

	return stats, nil
}

// SyncTrending refreshes the trending table from the 24h add and drop
// leaderboards. Ids unknown to the players table are dropped, and the table
// is replaced wholesale.
func (s *Service) SyncTrending(ctx context.Context) (SyncStats, error) {
	adds, err := s.sleeper.GetTrending(ctx, "add")
	if err != nil {
		return SyncStats{}, fmt.Errorf("trending sync failed: %w", err)
	}
	drops, err := s.sleeper.GetTrending(ctx, "drop")
	if err != nil {
		return SyncStats{}, fmt.Errorf("trending sync failed: %w", err)
	}

	addCounts := make(map[string]int, len(adds))
	for _, e := range adds {
		if e.PlayerID != "" {
			addCounts[e.PlayerID] = e.Count
		}
	}
	dropCounts := make(map[string]int, len(drops))
	for _, e := range drops {
		if e.PlayerID != "" {
			dropCounts[e.PlayerID] = e.Count
		}
	}

	ids := make([]string, 0, len(addCounts)+len(dropCounts))
	seen := make(map[string]bool, len(addCounts)+len(dropCounts))
	for id := range addCounts {
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	for id := range dropCounts {
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)

	known, err := s.repo.KnownPlayerIDs(ids)
	if err != nil {
		return SyncStats{}, fmt.Errorf("trending sync failed: %w", err)
	}

	records := make([]TrendingRecord, 0, len(ids))
	skipped := 0
	for _, id := range ids {
		if !known[id] {
			skipped++
			continue
		}
		records = append(records, TrendingRecord{
			PlayerID: id,
			Adds24h:  addCounts[id],
			Drops24h: dropCounts[id],
		})
	}

	if err := s.repo.ReplaceTrending(records); err != nil {
		return SyncStats{}, fmt.Errorf("trending sync failed: %w", err)
	}

	stats := SyncStats{Inserted: len(records), Skipped: skipped}
	s.log.Info().
		Int("players", stats.Inserted).
		Int("skipped", stats.Skipped).
		Msg("Trending sync complete")

	return stats, nil
}

// playerToRecord maps a dump entry to a stored row, applying the name and
// position fallbacks the dump requires.
func playerToRecord(id string, p sleeper.Player) PlayerRecord {
	name := strings.TrimSpace(strings.TrimSpace(p.FirstName) + " " + strings.TrimSpace(p.LastName))
	if name == "" {
		name = p.SearchFullName
	}
	if name == "" {
		name = p.FullName
	}

	position := p.Position
	if position == "" && len(p.FantasyPositions) > 0 {
		position = p.FantasyPositions[0]
	}

	return PlayerRecord{
		ID:       id,
		FullName: name,
		Position: position,
		Team:     p.Team,
		Age:      p.Age,
	}
}
