package trade

import (
	"strings"

	"github.com/rs/zerolog"

	"github.com/gridironhq/gridiron/internal/domain"
	"github.com/gridironhq/gridiron/pkg/formulas"
)

// verdictDeadband is the half-unit of rounded value inside which a trade is
// called even rather than won.
const verdictDeadband = 0.5

// Service exposes player search, token resolution and trade simulation.
type Service struct {
	repo     *Repository
	resolver *Resolver
	log      zerolog.Logger
}

// NewService creates a new trade service
func NewService(repo *Repository, resolver *Resolver, log zerolog.Logger) *Service {
	return &Service{
		repo:     repo,
		resolver: resolver,
		log:      log.With().Str("service", "trade").Logger(),
	}
}

// Search returns fuzzy name matches for an interactive picker, capped at
// limit.
func (s *Service) Search(query string, limit int) ([]domain.PlayerCandidate, error) {
	if limit < 1 || limit > MaxSearchLimit {
		return nil, domain.NewValidation("limit must be between 1 and %d", MaxSearchLimit)
	}
	if strings.TrimSpace(query) == "" {
		return []domain.PlayerCandidate{}, nil
	}
	candidates, err := s.repo.SearchByName(query, limit)
	if err != nil {
		return nil, err
	}
	if candidates == nil {
		candidates = []domain.PlayerCandidate{}
	}
	return candidates, nil
}

// Resolve resolves both token lists without judging the trade. Ambiguity is
// data in the result, not an error.
func (s *Service) Resolve(sideA, sideB []string) (*ResolveResult, error) {
	resA, err := s.resolver.ResolveSide(sideA)
	if err != nil {
		return nil, err
	}
	resB, err := s.resolver.ResolveSide(sideB)
	if err != nil {
		return nil, err
	}
	return &ResolveResult{SideA: resA, SideB: resB}, nil
}

// Simulate resolves both sides, validates the asset sets and produces a
// verdict. Unresolved tokens are reported before any duplicate check so the
// caller can fix inputs one failure class at a time.
func (s *Service) Simulate(sideA, sideB []string) (*SimulationResult, error) {
	if len(sideA) == 0 || len(sideB) == 0 {
		return nil, domain.NewValidation("both sides of a trade must include at least one player")
	}

	resolved, err := s.Resolve(sideA, sideB)
	if err != nil {
		return nil, err
	}

	unresolved := append([]domain.UnresolvedToken{}, resolved.SideA.Unresolved...)
	unresolved = append(unresolved, resolved.SideB.Unresolved...)
	if len(unresolved) > 0 {
		return nil, &domain.UnresolvedInputError{Unresolved: unresolved}
	}

	idsA := resolved.SideA.Resolved
	idsB := resolved.SideB.Resolved

	if dup := intersect(idsA, idsB); dup != "" {
		return nil, domain.NewValidation("player %s appears on both sides of the trade", dup)
	}

	all := append(append([]string{}, idsA...), idsB...)
	lookup, err := s.repo.GetByIDs(all)
	if err != nil {
		return nil, err
	}

	packedA := packSide(idsA, lookup)
	packedB := packSide(idsB, lookup)

	// Round at the boundary, then judge on the rounded numbers so the
	// verdict always matches the figures the caller sees.
	delta := formulas.Round2(packedA.Total - packedB.Total)
	packedA.Total = formulas.Round2(packedA.Total)
	packedB.Total = formulas.Round2(packedB.Total)

	winner := WinnerEven
	switch {
	case delta > verdictDeadband:
		winner = WinnerA
	case delta < -verdictDeadband:
		winner = WinnerB
	}

	larger := packedA.Total
	if packedB.Total > larger {
		larger = packedB.Total
	}
	if larger < 1e-9 {
		larger = 1e-9
	}
	marginPct := formulas.Round2(abs(delta) / larger * 100)

	s.log.Info().
		Float64("total_a", packedA.Total).
		Float64("total_b", packedB.Total).
		Str("winner", winner).
		Msg("Trade simulated")

	return &SimulationResult{
		SideA:     packedA,
		SideB:     packedB,
		Delta:     delta,
		Winner:    winner,
		MarginPct: marginPct,
	}, nil
}

// packSide builds the item list in input order, accumulating the total at
// full precision. Ids missing from the lookup are kept as unknown entries
// worth zero.
func packSide(ids []string, lookup map[string]domain.PlayerCandidate) Side {
	side := Side{Items: make([]Item, 0, len(ids))}
	for _, id := range ids {
		c, ok := lookup[id]
		if !ok {
			side.Items = append(side.Items, Item{ID: id, Unknown: true})
			continue
		}
		side.Items = append(side.Items, Item{
			ID:        c.ID,
			Name:      c.Name,
			Position:  c.Position,
			Team:      c.Team,
			Valuation: c.Valuation,
		})
		side.Total += c.Valuation
	}
	return side
}

// intersect returns the first id present on both sides, or "".
func intersect(a, b []string) string {
	seen := make(map[string]struct{}, len(a))
	for _, id := range a {
		seen[id] = struct{}{}
	}
	for _, id := range b {
		if _, ok := seen[id]; ok {
			return id
		}
	}
	return ""
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
