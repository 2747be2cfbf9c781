// Package handlers provides HTTP handlers for roster session management and
// analysis.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/gridironhq/gridiron/internal/domain"
	"github.com/gridironhq/gridiron/internal/modules/roster"
)

// Handler handles roster HTTP requests
type Handler struct {
	service *roster.Service
	log     zerolog.Logger
}

// NewHandler creates a new roster handler
func NewHandler(service *roster.Service, log zerolog.Logger) *Handler {
	return &Handler{
		service: service,
		log:     log.With().Str("handler", "roster").Logger(),
	}
}

type createSessionRequest struct {
	Settings  roster.LeagueSettings `json:"settings"`
	TeamNames []string              `json:"team_names"`
}

type renameTeamRequest struct {
	Name string `json:"name"`
}

type rosterPlayerRequest struct {
	PlayerID string `json:"player_id"`
}

// HandleCreateSession creates a session with its teams.
func (h *Handler) HandleCreateSession(w http.ResponseWriter, r *http.Request) {
	// Pre-seed defaults so omitted slot counts keep their standard values.
	req := createSessionRequest{Settings: roster.DefaultSettings()}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	session, err := h.service.CreateSession(req.Settings, req.TeamNames)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, session)
}

// HandleRenameTeam renames a team within its session.
func (h *Handler) HandleRenameTeam(w http.ResponseWriter, r *http.Request) {
	sessionID, teamID, ok := h.pathIDs(w, r)
	if !ok {
		return
	}

	var req renameTeamRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.service.RenameTeam(sessionID, teamID, req.Name); err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.writeOK(w)
}

// HandleSearchPlayers is the roster-building type-ahead.
func (h *Handler) HandleSearchPlayers(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	limit := roster.DefaultSearchLimit
	if raw := q.Get("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			h.writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = v
	}

	items, err := h.service.SearchPlayers(q.Get("q"), q.Get("position"), limit)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, items)
}

// HandleAddPlayer assigns a player to a team.
func (h *Handler) HandleAddPlayer(w http.ResponseWriter, r *http.Request) {
	h.handleRosterChange(w, r, h.service.AddPlayer)
}

// HandleRemovePlayer drops a player from a team.
func (h *Handler) HandleRemovePlayer(w http.ResponseWriter, r *http.Request) {
	h.handleRosterChange(w, r, h.service.RemovePlayer)
}

func (h *Handler) handleRosterChange(w http.ResponseWriter, r *http.Request, op func(string, int64, string) error) {
	sessionID, teamID, ok := h.pathIDs(w, r)
	if !ok {
		return
	}

	var req rosterPlayerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.PlayerID == "" {
		h.writeError(w, http.StatusBadRequest, "player_id is required")
		return
	}

	if err := op(sessionID, teamID, req.PlayerID); err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.writeOK(w)
}

// HandleAnalyze returns the per-position league analytics for a session.
func (h *Handler) HandleAnalyze(w http.ResponseWriter, r *http.Request) {
	analysis, err := h.service.Analyze(chi.URLParam(r, "sessionID"))
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, analysis)
}

func (h *Handler) pathIDs(w http.ResponseWriter, r *http.Request) (string, int64, bool) {
	sessionID := chi.URLParam(r, "sessionID")
	teamID, err := strconv.ParseInt(chi.URLParam(r, "teamID"), 10, 64)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid team id")
		return "", 0, false
	}
	return sessionID, teamID, true
}

func (h *Handler) writeServiceError(w http.ResponseWriter, err error) {
	var notFoundErr *domain.NotFoundError
	if errors.As(err, &notFoundErr) {
		h.writeError(w, http.StatusNotFound, notFoundErr.Error())
		return
	}

	var validationErr *domain.ValidationError
	if errors.As(err, &validationErr) {
		h.writeError(w, http.StatusBadRequest, validationErr.Message)
		return
	}

	h.log.Error().Err(err).Msg("Roster request failed")
	h.writeError(w, http.StatusInternalServerError, "internal error")
}

func (h *Handler) writeOK(w http.ResponseWriter) {
	h.writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{"error": message})
}
