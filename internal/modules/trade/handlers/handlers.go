// Package handlers provides HTTP handlers for trade search, resolution and
// simulation.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/gridironhq/gridiron/internal/domain"
	"github.com/gridironhq/gridiron/internal/modules/trade"
)

// Handler handles trade HTTP requests
type Handler struct {
	service *trade.Service
	log     zerolog.Logger
}

// NewHandler creates a new trade handler
func NewHandler(service *trade.Service, log zerolog.Logger) *Handler {
	return &Handler{
		service: service,
		log:     log.With().Str("handler", "trade").Logger(),
	}
}

// sidesRequest is the shared body for resolve and simulate.
type sidesRequest struct {
	SideA []string `json:"side_a"`
	SideB []string `json:"side_b"`
}

// HandleSearch returns fuzzy candidates for a free-form name query.
// Query params: q, limit (1 to 50, default 12).
func (h *Handler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	limit := trade.DefaultSearchLimit
	if raw := q.Get("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			h.writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = v
	}

	candidates, err := h.service.Search(q.Get("q"), limit)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, candidates)
}

// HandleResolve resolves both token lists without simulating. Ambiguous
// tokens come back as data with candidates, not as an error status.
func (h *Handler) HandleResolve(w http.ResponseWriter, r *http.Request) {
	var req sidesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.service.Resolve(req.SideA, req.SideB)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, result)
}

// HandleSimulate runs a full trade simulation and returns the verdict.
func (h *Handler) HandleSimulate(w http.ResponseWriter, r *http.Request) {
	var req sidesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.service.Simulate(req.SideA, req.SideB)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, result)
}

func (h *Handler) writeServiceError(w http.ResponseWriter, err error) {
	var unresolvedErr *domain.UnresolvedInputError
	if errors.As(err, &unresolvedErr) {
		h.writeJSON(w, http.StatusUnprocessableEntity, map[string]interface{}{
			"error":      "unresolved players",
			"unresolved": unresolvedErr.Unresolved,
		})
		return
	}

	var validationErr *domain.ValidationError
	if errors.As(err, &validationErr) {
		h.writeError(w, http.StatusBadRequest, validationErr.Message)
		return
	}

	h.log.Error().Err(err).Msg("Trade request failed")
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
