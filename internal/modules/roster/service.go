package roster

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/gridironhq/gridiron/internal/domain"
)

// Service implements the roster session operations and analytics.
type Service struct {
	repo *Repository
	log  zerolog.Logger
}

// NewService creates a new roster service
func NewService(repo *Repository, log zerolog.Logger) *Service {
	return &Service{
		repo: repo,
		log:  log.With().Str("service", "roster").Logger(),
	}
}

// CreateSession validates the league settings, persists the session and its
// teams atomically and returns the created session. When teamNames is empty
// a "Team N" naming scheme is generated.
func (s *Service) CreateSession(settings LeagueSettings, teamNames []string) (*Session, error) {
	if settings.NumTeams < 2 || settings.NumTeams > 24 {
		return nil, domain.NewValidation("num_teams must be between 2 and 24")
	}
	for _, slot := range []struct {
		name  string
		count int
	}{
		{"qb", settings.QB}, {"rb", settings.RB}, {"wr", settings.WR},
		{"te", settings.TE}, {"flex", settings.Flex}, {"defense", settings.Defense},
		{"kicker", settings.Kicker}, {"bench", settings.Bench},
	} {
		if slot.count < 0 {
			return nil, domain.NewValidation("%s slot count must not be negative", slot.name)
		}
	}

	if len(teamNames) == 0 {
		teamNames = make([]string, settings.NumTeams)
		for i := range teamNames {
			teamNames[i] = fmt.Sprintf("Team %d", i+1)
		}
	} else if len(teamNames) != settings.NumTeams {
		return nil, domain.NewValidation("team_names length must match num_teams")
	}

	sessionID := uuid.New().String()
	teams, err := s.repo.CreateSession(sessionID, settings, teamNames)
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Str("session_id", sessionID).
		Int("teams", len(teams)).
		Msg("Roster session created")

	return &Session{ID: sessionID, Settings: settings, Teams: teams}, nil
}

// RenameTeam changes a team's display name within its session.
func (s *Service) RenameTeam(sessionID string, teamID int64, name string) error {
	if strings.TrimSpace(name) == "" {
		return domain.NewValidation("team name must not be empty")
	}
	return s.repo.RenameTeam(sessionID, teamID, name)
}

// SearchPlayers is the roster-building type-ahead: name substring plus an
// optional exact position filter from the fixed enumeration.
func (s *Service) SearchPlayers(query, position string, limit int) ([]SearchItem, error) {
	if strings.TrimSpace(query) == "" {
		return nil, domain.NewValidation("query must not be empty")
	}
	if limit <= 0 {
		limit = DefaultSearchLimit
	}
	if limit > MaxSearchLimit {
		return nil, domain.NewValidation("limit must be between 1 and %d", MaxSearchLimit)
	}

	position = strings.ToUpper(strings.TrimSpace(position))
	if position != "" && !ValidSearchPositions[position] {
		return nil, domain.NewValidation("position must be one of QB, RB, WR, TE, DEF, K")
	}

	items, err := s.repo.SearchPlayers(strings.TrimSpace(query), position, limit)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []SearchItem{}
	}
	return items, nil
}

// AddPlayer assigns a player to a team. Both the (session, team) pair and
// the player must exist; re-adding an already-rostered player succeeds
// silently.
func (s *Service) AddPlayer(sessionID string, teamID int64, playerID string) error {
	ok, err := s.repo.TeamExists(sessionID, teamID)
	if err != nil {
		return err
	}
	if !ok {
		return domain.NewNotFound("team", fmt.Sprintf("%d", teamID))
	}

	ok, err = s.repo.PlayerExists(playerID)
	if err != nil {
		return err
	}
	if !ok {
		return domain.NewNotFound("player", playerID)
	}

	return s.repo.AddPlayer(teamID, playerID)
}

// RemovePlayer drops the (team, player) assignment.
func (s *Service) RemovePlayer(sessionID string, teamID int64, playerID string) error {
	ok, err := s.repo.TeamExists(sessionID, teamID)
	if err != nil {
		return err
	}
	if !ok {
		return domain.NewNotFound("team", fmt.Sprintf("%d", teamID))
	}
	return s.repo.RemovePlayer(teamID, playerID)
}
