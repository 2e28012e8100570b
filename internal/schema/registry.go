// Package schema compiles frozen filter input type definitions into a
// GraphQL schema document and its SDL rendering.
package schema

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/vektah/gqlparser/v2/ast"

	"github.com/rpattn/filterql/internal/filtering"
)

// Factory produces one frozen filter definition. Factories run in
// registration order during Build, each to completion; a failing factory
// aborts the whole build.
type Factory func() (*filtering.Definition, error)

// Schema is the immutable result of a successful build.
type Schema struct {
	// ID identifies this build; served through the schemaVersion query field.
	ID          uuid.UUID
	Definitions []*filtering.Definition
	Document    *ast.SchemaDocument
	SDL         string
}

// Registry collects filter type factories and builds them into a schema.
type Registry struct {
	log       zerolog.Logger
	factories []Factory
}

// NewRegistry creates an empty registry.
func NewRegistry(log zerolog.Logger) *Registry {
	return &Registry{log: log}
}

// Register appends a filter type factory. Registration order is the order
// factories run in, so dependencies register before their dependents.
func (r *Registry) Register(f Factory) {
	r.factories = append(r.factories, f)
}

// Build runs every factory, validates the resulting definitions and lowers
// them into a schema document. Any error aborts the build; no partially
// valid schema is ever published.
func (r *Registry) Build() (*Schema, error) {
	comp := newCompiler()
	definitions := make([]*filtering.Definition, 0, len(r.factories))

	for i, factory := range r.factories {
		def, err := factory()
		if err != nil {
			return nil, fmt.Errorf("schema build: factory %d: %w", i, err)
		}
		if err := comp.add(def); err != nil {
			return nil, fmt.Errorf("schema build: %w", err)
		}
		definitions = append(definitions, def)
		r.log.Debug().Str("type", def.Name).Int("fields", len(def.Fields)).Msg("compiled filter type")
	}

	doc := comp.document()
	s := &Schema{
		ID:          uuid.New(),
		Definitions: definitions,
		Document:    doc,
		SDL:         render(doc),
	}
	r.log.Info().
		Str("build_id", s.ID.String()).
		Int("filter_types", len(definitions)).
		Msg("schema build complete")
	return s, nil
}
