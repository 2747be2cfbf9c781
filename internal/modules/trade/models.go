// Package trade implements free-form token resolution and trade simulation
// over the valuation store.
package trade

import "github.com/gridironhq/gridiron/internal/domain"

// maxFuzzyCandidates caps the candidate list the resolver hands back for an
// ambiguous token.
const maxFuzzyCandidates = 8

// Search limit bounds for the interactive picker.
const (
	DefaultSearchLimit = 12
	MaxSearchLimit     = 50
)

// SideResolution is the outcome of resolving one side's token list.
// Resolution is per-token and order-preserving; duplicate tokens resolve
// independently.
type SideResolution struct {
	Resolved   []string                 `json:"resolved"`
	Unresolved []domain.UnresolvedToken `json:"unresolved"`
}

// Clean reports whether every token on the side resolved.
func (s SideResolution) Clean() bool {
	return len(s.Unresolved) == 0
}

// ResolveResult pairs the resolutions of both trade sides.
type ResolveResult struct {
	SideA SideResolution `json:"side_a"`
	SideB SideResolution `json:"side_b"`
}

// Item is one player entry in a simulated trade side. Unknown ids are kept
// in the list with a zero valuation rather than dropped, so the caller can
// see exactly what was counted.
type Item struct {
	ID        string  `json:"id"`
	Name      string  `json:"name,omitempty"`
	Position  string  `json:"position,omitempty"`
	Team      string  `json:"team,omitempty"`
	Valuation float64 `json:"valuation"`
	Unknown   bool    `json:"unknown,omitempty"`
}

// Side is one side of a simulated trade.
type Side struct {
	Total float64 `json:"total"`
	Items []Item  `json:"items"`
}

// Verdict values for a simulation.
const (
	WinnerA    = "A"
	WinnerB    = "B"
	WinnerEven = "even"
)

// SimulationResult is the full verdict for a proposed trade. Totals and
// delta are rounded to 2 decimals at this boundary; the half-unit deadband
// absorbs near-equal trades as ties.
type SimulationResult struct {
	SideA     Side    `json:"side_a"`
	SideB     Side    `json:"side_b"`
	Delta     float64 `json:"delta"`
	Winner    string  `json:"winner"`
	MarginPct float64 `json:"margin_pct"`
}
