package chat

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers chat, thread and sync routes
func RegisterRoutes(r chi.Router, h *Handler, auth func(next http.Handler) http.Handler) {
	r.Route("/chat", func(r chi.Router) {
		r.Post("/", h.StreamChat)
		r.Post("/simple", h.SimpleChat)
		r.Post("/audio", h.AudioChat)
	})

	r.Get("/threads/{id}/messages", h.GetThreadMessages)

	r.With(auth).Post("/sync", h.Sync)
}
