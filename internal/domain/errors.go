// Package domain holds the shared domain types and the error taxonomy used
// across modules. Domain failures are classified here so the transport layer
// can map them to status codes without inspecting message strings.
package domain

import "fmt"

// NotFoundError indicates a referenced session, team, or player does not
// exist.
type NotFoundError struct {
	Resource string // "session", "team", "player", "assignment"
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// NewNotFound creates a NotFoundError
func NewNotFound(resource, id string) error {
	return &NotFoundError{Resource: resource, ID: id}
}

// ValidationError indicates a malformed input shape (team-name count
// mismatch, duplicate player across trade sides, bad position code, ...).
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidation creates a ValidationError
func NewValidation(format string, args ...interface{}) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// PlayerCandidate is one possible match for an ambiguous trade token.
type PlayerCandidate struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Position  string  `json:"position"`
	Team      string  `json:"team"`
	Valuation float64 `json:"valuation"`
}

// UnresolvedToken carries a token that did not resolve to exactly one player
// together with its candidate list (possibly empty) so the caller can
// re-prompt with a disambiguated choice.
type UnresolvedToken struct {
	Token      string            `json:"token"`
	Candidates []PlayerCandidate `json:"candidates"`
}

// UnresolvedInputError indicates trade tokens that did not resolve to
// exactly one player. Ambiguity is data at the resolver layer; it becomes an
// error only when the trade simulator needs unambiguous sides.
type UnresolvedInputError struct {
	Unresolved []UnresolvedToken
}

func (e *UnresolvedInputError) Error() string {
	return fmt.Sprintf("%d token(s) could not be resolved to a single player", len(e.Unresolved))
}
