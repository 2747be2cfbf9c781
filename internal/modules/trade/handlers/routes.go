package handlers

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers all trade routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/trade", func(r chi.Router) {
		r.Get("/search", h.HandleSearch)
		r.Post("/resolve", h.HandleResolve)
		r.Post("/simulate", h.HandleSimulate)
	})
}
