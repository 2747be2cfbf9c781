package handlers

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers all player listing routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/players", func(r chi.Router) {
		r.Get("/", h.HandleList)
		r.Get("/positions", h.HandleListPositions)
		r.Get("/teams", h.HandleListTeams)
	})
}
