package handlers

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers all roster session routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/roster", func(r chi.Router) {
		r.Post("/init", h.HandleCreateSession)
		r.Route("/{sessionID}", func(r chi.Router) {
			r.Get("/search", h.HandleSearchPlayers)
			r.Get("/analysis", h.HandleAnalyze)
			r.Put("/team/{teamID}/rename", h.HandleRenameTeam)
			r.Post("/team/{teamID}/add_player", h.HandleAddPlayer)
			r.Post("/team/{teamID}/remove_player", h.HandleRemovePlayer)
		})
	})
}
