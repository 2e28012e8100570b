// Package naming supplies the convention lookup used to default schema
// output names from Go identifiers.
package naming

import (
	"github.com/llehouerou/go-graphql-client/ident"

	"github.com/rpattn/filterql/internal/entity"
)

// Convention derives schema output names when a builder leaves them unset.
// Implementations must be read-only; one instance is shared across every
// descriptor built for a schema.
type Convention interface {
	// FieldName returns the output name for a member.
	FieldName(m entity.Member) string
	// TypeName returns the output name for a filter type over t.
	TypeName(t *entity.Type) string
}

type defaultConvention struct{}

// Default returns the standard convention: lowerCamelCase field names
// (honoring `graphql` tag overrides) and <EntityName>FilterInput type names.
func Default() Convention {
	return defaultConvention{}
}

func (defaultConvention) FieldName(m entity.Member) string {
	if m.TagName != "" {
		return m.TagName
	}
	return ident.ParseMixedCaps(m.Name).ToLowerCamelCase()
}

func (defaultConvention) TypeName(t *entity.Type) string {
	return t.Name + "FilterInput"
}
