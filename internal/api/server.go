package api

import (
	"net/http"
	"time"

	assessmentapi "github.com/achitaan/AR-diagass/internal/api/assessment"
	chatapi "github.com/achitaan/AR-diagass/internal/api/chat"
	"github.com/achitaan/AR-diagass/internal/api/docs"
	ingestionapi "github.com/achitaan/AR-diagass/internal/api/ingestion"
	"github.com/achitaan/AR-diagass/internal/api/middleware"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// SetupRouter creates and configures the HTTP router
func SetupRouter(
	chatHandler *chatapi.Handler,
	assessmentHandler *assessmentapi.Handler,
	ingestionHandler *ingestionapi.Handler,
	auth func(next http.Handler) http.Handler,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Middleware stack
	r.Use(chimiddleware.Recoverer)                  // Recover from panics
	r.Use(chimiddleware.RequestID)                  // Add request ID
	r.Use(middleware.Logger(logger))                // Log requests
	r.Use(middleware.CORS)                          // Handle CORS
	r.Use(chimiddleware.Timeout(120 * time.Second)) // Default timeout, generous for LLM streaming

	// Health check endpoints
	healthHandler := func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy"}`))
	}
	r.Get("/health", healthHandler)
	r.Get("/healthz", healthHandler)

	// Swagger documentation endpoints
	docs.RegisterRoutes(r)

	// Register routes
	chatapi.RegisterRoutes(r, chatHandler, auth)
	assessmentapi.RegisterRoutes(r, assessmentHandler)
	ingestionapi.RegisterRoutes(r, ingestionHandler, auth)

	return r
}
