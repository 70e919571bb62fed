package api

import (
	"fmt"
	"net/http"

	"github.com/Project-Sylos/Arbor/internal/logger"
	"github.com/Project-Sylos/Arbor/internal/types"
	"github.com/Project-Sylos/Arbor/sdk"
	"github.com/go-chi/chi/v5"
)

// Server represents the HTTP API server
type Server struct {
	router *chi.Mux
	fs     *sdk.Arbor
	config *types.APIConfig
}

// NewServer creates a new API server
func NewServer(fs *sdk.Arbor, config *types.APIConfig) *Server {
	router := NewRouter(fs)

	return &Server{
		router: router.SetupRoutes(),
		fs:     fs,
		config: config,
	}
}

// Start starts the HTTP server
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)

	log := logger.Get("api")
	log.Info().Str("addr", addr).Msg("starting Arbor API server")

	return http.ListenAndServe(addr, s.router)
}

// GetRouter returns the configured router
func (s *Server) GetRouter() *chi.Mux {
	return s.router
}

// Stop closes the underlying engine
func (s *Server) Stop() error {
	return s.fs.Close()
}
