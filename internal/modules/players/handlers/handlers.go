// Package handlers provides HTTP handlers for the player listing endpoints.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/gridironhq/gridiron/internal/domain"
	"github.com/gridironhq/gridiron/internal/modules/players"
)

// Handler handles player listing HTTP requests
type Handler struct {
	service *players.Service
	log     zerolog.Logger
}

// NewHandler creates a new players handler
func NewHandler(service *players.Service, log zerolog.Logger) *Handler {
	return &Handler{
		service: service,
		log:     log.With().Str("handler", "players").Logger(),
	}
}

// HandleList returns a ranked, filtered, paginated player listing.
// Query params: page, page_size, q, positions (CSV), team, min_val, max_val,
// sort_by, order.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	page, err := intParam(q.Get("page"), 1)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid page")
		return
	}
	pageSize, err := intParam(q.Get("page_size"), players.DefaultPageSize)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid page_size")
		return
	}

	req := players.ListRequest{
		Page:     page,
		PageSize: pageSize,
		SortBy:   q.Get("sort_by"),
		Order:    q.Get("order"),
		Filter: players.Filter{
			Query: q.Get("q"),
			Team:  q.Get("team"),
		},
	}

	if positions := q.Get("positions"); positions != "" {
		for _, pos := range strings.Split(positions, ",") {
			if pos = strings.TrimSpace(pos); pos != "" {
				req.Filter.Positions = append(req.Filter.Positions, pos)
			}
		}
	}

	if req.Filter.MinVal, err = floatParam(q.Get("min_val")); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid min_val")
		return
	}
	if req.Filter.MaxVal, err = floatParam(q.Get("max_val")); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid max_val")
		return
	}

	result, err := h.service.List(req)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, result)
}

// HandleListPositions returns the distinct positions with player counts.
func (h *Handler) HandleListPositions(w http.ResponseWriter, r *http.Request) {
	positions, err := h.service.Positions()
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	if positions == nil {
		positions = []players.PositionCount{}
	}
	h.writeJSON(w, http.StatusOK, positions)
}

// HandleListTeams returns the distinct team codes with player counts.
func (h *Handler) HandleListTeams(w http.ResponseWriter, r *http.Request) {
	teams, err := h.service.Teams()
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	if teams == nil {
		teams = []players.TeamCount{}
	}
	h.writeJSON(w, http.StatusOK, teams)
}

func intParam(raw string, fallback int) (int, error) {
	if raw == "" {
		return fallback, nil
	}
	return strconv.Atoi(raw)
}

func floatParam(raw string) (*float64, error) {
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (h *Handler) writeServiceError(w http.ResponseWriter, err error) {
	var validationErr *domain.ValidationError
	if errors.As(err, &validationErr) {
		h.writeError(w, http.StatusBadRequest, validationErr.Message)
		return
	}
	h.log.Error().Err(err).Msg("Player listing failed")
	h.writeError(w, http.StatusInternalServerError, "internal error")
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
