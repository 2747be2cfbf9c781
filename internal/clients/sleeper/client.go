// Package sleeper provides a client for the Sleeper public NFL API.
package sleeper

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// Player is one entry from the full player dump. Only the fields the ingest
// pipeline needs are decoded.
type Player struct {
	PlayerID         string   `json:"player_id"`
	FirstName        string   `json:"first_name"`
	LastName         string   `json:"last_name"`
	FullName         string   `json:"full_name"`
	SearchFullName   string   `json:"search_full_name"`
	Position         string   `json:"position"`
	FantasyPositions []string `json:"fantasy_positions"`
	Team             string   `json:"team"`
	Age              *int     `json:"age"`
	Sport            string   `json:"sport"`
}

// TrendingEntry is one row of the 24h add/drop leaderboards.
type TrendingEntry struct {
	PlayerID string `json:"player_id"`
	Count    int    `json:"count"`
}

// Client for the Sleeper API
type Client struct {
	baseURL string
	client  *http.Client
	log     zerolog.Logger
}

// NewClient creates a new Sleeper API client
func NewClient(baseURL string, log zerolog.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 60 * time.Second},
		log:     log.With().Str("client", "sleeper").Logger(),
	}
}

// GetAllPlayers fetches the full NFL player dump keyed by player id.
// The payload is several megabytes; callers should invoke this sparingly.
func (c *Client) GetAllPlayers(ctx context.Context) (map[string]Player, error) {
	url := c.baseURL + "/v1/players/nfl"
	c.log.Debug().Str("url", url).Msg("Fetching player dump")

	var players map[string]Player
	if err := c.getJSON(ctx, url, &players); err != nil {
		return nil, err
	}

	return players, nil
}

// GetTrending fetches a 24h trending leaderboard. kind is "add" or "drop".
func (c *Client) GetTrending(ctx context.Context, kind string) ([]TrendingEntry, error) {
	url := fmt.Sprintf("%s/v1/players/nfl/trending/%s", c.baseURL, kind)
	c.log.Debug().Str("url", url).Msg("Fetching trending leaderboard")

	var entries []TrendingEntry
	if err := c.getJSON(ctx, url, &entries); err != nil {
		return nil, err
	}

	return entries, nil
}

func (c *Client) getJSON(ctx context.Context, url string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("API request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("API returned status %d for %s", resp.StatusCode, url)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}
