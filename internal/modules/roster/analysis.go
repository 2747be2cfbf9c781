package roster

import (
	"github.com/gridironhq/gridiron/internal/domain"
	"github.com/gridironhq/gridiron/pkg/formulas"
)

// Analyze computes the per-position league analytics for a session.
//
// Every team is scored against the fixed position buckets regardless of the
// session's configured slot counts. A team with no players at a position
// contributes a 0 to that position's league distribution, it is never
// excluded. Distributions are built by iterating teams in ascending id
// order, which also pins the first-occurrence-wins rank tie policy.
func (s *Service) Analyze(sessionID string) (*SessionAnalysis, error) {
	exists, err := s.repo.SessionExists(sessionID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.NewNotFound("session", sessionID)
	}

	teams, err := s.repo.ListTeams(sessionID)
	if err != nil {
		return nil, err
	}

	lines, err := s.repo.PositionLines(sessionID)
	if err != nil {
		return nil, err
	}

	type cell struct {
		count int
		value float64
	}
	byTeam := make(map[int64]map[string]cell, len(teams))
	for _, t := range teams {
		byTeam[t.ID] = map[string]cell{}
	}
	for _, line := range lines {
		if m, ok := byTeam[line.TeamID]; ok {
			m[line.Pos] = cell{count: line.Count, value: line.Value}
		}
	}

	// League-wide value distribution per position, one entry per team.
	leagueValues := make(map[string][]float64, len(AnalysisPositions))
	for _, pos := range AnalysisPositions {
		values := make([]float64, 0, len(teams))
		for _, t := range teams {
			values = append(values, byTeam[t.ID][pos].value)
		}
		leagueValues[pos] = values
	}

	type posStats struct {
		mean float64
		std  float64
	}
	stats := make(map[string]posStats, len(AnalysisPositions))
	for _, pos := range AnalysisPositions {
		stats[pos] = posStats{
			mean: formulas.Mean(leagueValues[pos]),
			std:  formulas.PopStdDev(leagueValues[pos]),
		}
	}

	result := &SessionAnalysis{SessionID: sessionID, Teams: make([]TeamAnalysis, 0, len(teams))}
	for _, t := range teams {
		analysis := TeamAnalysis{
			TeamID:     t.ID,
			TeamName:   t.Name,
			ByPosition: make([]PositionSummary, 0, len(AnalysisPositions)),
		}

		total := 0.0
		for _, pos := range AnalysisPositions {
			c := byTeam[t.ID][pos]
			total += c.value

			st := stats[pos]
			z := formulas.ZScore(c.value, st.mean, st.std)
			if z != nil {
				rounded := formulas.Round2(*z)
				z = &rounded
			}

			analysis.ByPosition = append(analysis.ByPosition, PositionSummary{
				Position: pos,
				Count:    c.count,
				Value:    formulas.Round2(c.value),
				ZScore:   z,
				Rank:     formulas.DescendingRank(leagueValues[pos], c.value),
			})
		}

		analysis.TotalValue = formulas.Round2(total)
		result.Teams = append(result.Teams, analysis)
	}

	return result, nil
}
