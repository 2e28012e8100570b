// Package server exposes a built filter schema over HTTP: a GraphQL endpoint
// backed by the compiled SDL, an optional playground, and the raw SDL itself.
package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/99designs/gqlgen/graphql/playground"
	graphqlgo "github.com/graph-gophers/graphql-go"
	"github.com/graph-gophers/graphql-go/relay"
	"github.com/rs/cors"
	"github.com/rs/zerolog"

	"github.com/rpattn/filterql/internal/config"
	"github.com/rpattn/filterql/internal/schema"
)

// New wires a built schema into an HTTP server. Parsing the compiled SDL
// through graphql-go doubles as a structural check on the emitted document.
func New(cfg config.ServerConfig, s *schema.Schema, log zerolog.Logger) (*http.Server, error) {
	parsed, err := graphqlgo.ParseSchema(s.SDL, &Resolver{version: s.ID.String()}, graphqlgo.UseFieldResolvers())
	if err != nil {
		return nil, fmt.Errorf("server: compiled schema rejected: %w", err)
	}

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
	})
	logged := LoggingMiddleware(log)

	mux := http.NewServeMux()
	mux.Handle("/query", corsHandler.Handler(logged(&relay.Handler{Schema: parsed})))
	mux.HandleFunc("/schema", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		fmt.Fprint(w, s.SDL)
	})
	if cfg.Playground {
		mux.Handle("/", corsHandler.Handler(logged(playground.Handler("FilterQL playground", "/query"))))
	}

	return &http.Server{
		Addr:         cfg.Addr,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}, nil
}
