package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Project-Sylos/Arbor/internal/api"
	"github.com/Project-Sylos/Arbor/internal/logger"
	"github.com/Project-Sylos/Arbor/sdk"
)

func main() {
	configPath := getConfigPath()

	fs, err := sdk.New(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize Arbor: %v\n", err)
		os.Exit(1)
	}

	cfg := fs.GetConfig()
	logger.Init(cfg.Logging.Level)
	log := logger.Get("main")
	log.Info().Str("config", configPath).Str("db", cfg.DB.Path).Msg("Arbor initialized")

	server := api.NewServer(fs, &cfg.API)

	addr := fmt.Sprintf("%s:%d", cfg.API.Host, cfg.API.Port)
	httpServer := &http.Server{
		Addr:         addr,
		Handler:      server.GetRouter(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Handle graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		log.Info().Msg("shutting down server")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := httpServer.Shutdown(ctx); err != nil {
			log.Error().Err(err).Msg("error shutting down HTTP server")
		}
		if err := fs.Close(); err != nil {
			log.Error().Err(err).Msg("error closing engine")
		}

		log.Info().Msg("server shutdown complete")
		os.Exit(0)
	}()

	log.Info().Str("addr", addr).Msg("starting HTTP server")
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("failed to start server")
	}
}

// getConfigPath returns the configuration file path
func getConfigPath() string {
	if len(os.Args) > 1 {
		return os.Args[1]
	}
	return "configs/default.json"
}
