package assessment

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers assessment routes
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Route("/assessment", func(r chi.Router) {
		r.Post("/", h.Start)
		r.Post("/restore", h.Restore)
		r.Get("/{id}/question", h.NextQuestion)
		r.Post("/{id}/response", h.SubmitResponse)
		r.Get("/{id}/summary", h.Summary)
		r.Get("/{id}/snapshot", h.Snapshot)
		r.Get("/{id}/export", h.Export)
	})
}
