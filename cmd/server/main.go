package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/rpattn/filterql/internal/catalog"
	"github.com/rpattn/filterql/internal/config"
	"github.com/rpattn/filterql/internal/schema"
	"github.com/rpattn/filterql/internal/server"
)

func main() {
	log := zerolog.New(zerolog.NewConsoleWriter(func(w *zerolog.ConsoleWriter) { w.Out = os.Stdout })).
		With().Timestamp().Logger()

	cfg, err := config.Load(".", log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	// Build the filter schema. A malformed filter type is a fatal
	// configuration error, never a runtime one.
	registry := schema.NewRegistry(log)
	catalog.RegisterFilters(registry, cfg.Filtering)

	built, err := registry.Build()
	if err != nil {
		log.Fatal().Err(err).Msg("schema build failed")
	}

	srv, err := server.New(cfg.Server, built, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to set up server")
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Msg("starting GraphQL server")
		log.Info().Msg("GraphQL endpoint available at /query, SDL at /schema")

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited")
}
