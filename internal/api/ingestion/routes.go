package ingestion

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers knowledge ingestion routes. Write operations
// require bearer auth.
func RegisterRoutes(r chi.Router, h *Handler, auth func(next http.Handler) http.Handler) {
	r.Route("/ingestion", func(r chi.Router) {
		r.With(auth).Post("/upload", h.Upload)
		r.With(auth).Post("/guidelines", h.Guidelines)
		r.Get("/stats", h.Stats)
		r.Get("/documents", h.Documents)
	})
}
