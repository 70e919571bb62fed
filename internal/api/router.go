package api

import (
	"time"

	"github.com/Project-Sylos/Arbor/internal/api/handlers"
	apimiddleware "github.com/Project-Sylos/Arbor/internal/api/middleware"
	"github.com/Project-Sylos/Arbor/sdk"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Router represents the HTTP API router
type Router struct {
	fs *sdk.Arbor
}

// NewRouter creates a new API router
func NewRouter(fs *sdk.Arbor) *Router {
	return &Router{fs: fs}
}

// SetupRoutes configures all API routes using modular handlers
func (r *Router) SetupRoutes() *chi.Mux {
	router := chi.NewRouter()

	// Standard middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Timeout(60 * time.Second))

	// Custom middleware
	router.Use(apimiddleware.CORS)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler()
	importHandler := handlers.NewImportHandler(r.fs)
	nodeHandler := handlers.NewNodeHandler(r.fs)
	systemHandler := handlers.NewSystemHandler(r.fs)

	// Health check
	router.Get("/health", healthHandler.HealthCheck)

	// Engine operations
	router.Post("/imports", importHandler.Import)
	router.Get("/nodes/{id}", nodeHandler.GetNode)
	router.Delete("/delete/{id}", nodeHandler.DeleteNode)

	// System operations
	router.Get("/stats", systemHandler.Stats)
	router.Post("/reset", systemHandler.Reset)

	return router
}
