package trade

import (
	"strings"

	"github.com/rs/zerolog"

	"github.com/gridironhq/gridiron/internal/domain"
)

// Resolver maps free-form tokens (canonical ids or name fragments) to
// canonical player identifiers using a tiered strategy:
//
//  1. Exact id match: resolved immediately, later tiers never run.
//  2. Exact full-name match (case-insensitive): resolved when exactly one
//     player carries that name.
//  3. Fuzzy substring match, best valuation first, capped at 8 candidates:
//     auto-resolved only when exactly one candidate remains.
//
// Anything else is reported as unresolved data, never as an error; raising
// on ambiguity is the simulator's decision, not the resolver's.
type Resolver struct {
	repo *Repository
	log  zerolog.Logger
}

// NewResolver creates a new token resolver
func NewResolver(repo *Repository, log zerolog.Logger) *Resolver {
	return &Resolver{
		repo: repo,
		log:  log.With().Str("component", "token_resolver").Logger(),
	}
}

// ResolveSide resolves an ordered token list independently per token.
// Duplicate tokens are resolved again rather than deduplicated.
func (r *Resolver) ResolveSide(tokens []string) (SideResolution, error) {
	side := SideResolution{
		Resolved:   []string{},
		Unresolved: []domain.UnresolvedToken{},
	}

	for _, token := range tokens {
		id, candidates, err := r.resolveToken(token)
		if err != nil {
			return side, err
		}
		if id != "" {
			side.Resolved = append(side.Resolved, id)
			continue
		}
		side.Unresolved = append(side.Unresolved, domain.UnresolvedToken{
			Token:      token,
			Candidates: candidates,
		})
	}

	return side, nil
}

// resolveToken resolves a single token. It returns the canonical id when a
// tier produced exactly one player, otherwise the fuzzy candidate list.
func (r *Resolver) resolveToken(token string) (string, []domain.PlayerCandidate, error) {
	trimmed := strings.TrimSpace(token)
	if trimmed == "" {
		return "", []domain.PlayerCandidate{}, nil
	}

	// Tier 1: the token is a known canonical id.
	exists, err := r.repo.ExistsID(trimmed)
	if err != nil {
		return "", nil, err
	}
	if exists {
		return trimmed, nil, nil
	}

	// Tier 2: exactly one player carries this full name.
	exact, err := r.repo.FindByExactName(trimmed)
	if err != nil {
		return "", nil, err
	}
	if len(exact) == 1 {
		return exact[0].ID, nil, nil
	}

	// Tier 3: fuzzy substring search. One candidate auto-resolves; zero or
	// many are handed back for disambiguation.
	fuzzy, err := r.repo.SearchByName(trimmed, maxFuzzyCandidates)
	if err != nil {
		return "", nil, err
	}
	if len(fuzzy) == 1 {
		return fuzzy[0].ID, nil, nil
	}
	if fuzzy == nil {
		fuzzy = []domain.PlayerCandidate{}
	}

	r.log.Debug().
		Str("token", token).
		Int("candidates", len(fuzzy)).
		Msg("Token left unresolved")

	return "", fuzzy, nil
}
